package repository

import (
	"context"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName = "quotes"
	quotesRequestIDIndex   = "request_id-index"
)

type quoteLineItem struct {
	Description string  `dynamodbav:"description"`
	Quantity    int     `dynamodbav:"quantity"`
	UnitPrice   float64 `dynamodbav:"unit_price"`
}

type quoteItem struct {
	ID          string          `dynamodbav:"id"`
	RequestID   string          `dynamodbav:"request_id,omitempty"`
	Description string          `dynamodbav:"description,omitempty"`
	Items       []quoteLineItem `dynamodbav:"items"`
	Total       float64         `dynamodbav:"total"`
	Status      string          `dynamodbav:"status"`
	InvoiceID   string          `dynamodbav:"invoice_id,omitempty"`
	CreatedAt   string          `dynamodbav:"created_at"`
	UpdatedAt   string          `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: request_id-index (PK: request_id)

type QuoteDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	invoicesTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		invoicesTable: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesRequestIDIndex),
		KeyConditionExpression: aws.String("request_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: requestID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Quote, 0, len(out.Items))
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromQuoteItem(it))
	}
	return items, nil
}

// UpdateItems rewrites the line items and the derived total, only while the
// quote is still pending.
func (r *QuoteDynamoRepository) UpdateItems(ctx context.Context, id, description string, items []entities.QuoteItem, total float64) (entities.Quote, error) {
	lines := make([]quoteLineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, quoteLineItem(it))
	}
	itemsAV, err := attributevalue.Marshal(lines)
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #description = :description, #items = :items, #total = :total, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#status":      "status",
			"#description": "description",
			"#items":       "items",
			"#total":       "total",
			"#updated_at":  "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":     &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
			":description": &types.AttributeValueMemberS{Value: description},
			":items":       itemsAV,
			":total":       &types.AttributeValueMemberN{Value: floatToString(total)},
			":updated_at":  &types.AttributeValueMemberS{Value: formatTime(timeNow())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Quote{}, statusConditionErr(err)
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, to entities.QuoteStatus) (entities.Quote, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected":   &types.AttributeValueMemberS{Value: string(expected)},
			":status":     &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(timeNow())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Quote{}, statusConditionErr(err)
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// ApproveWithInvoice commits the approval cascade atomically: the quote
// moves pending -> approved with the invoice back-link, and the invoice
// record is created, in one TransactWriteItems. A quote whose status
// already moved cancels the whole transaction, so a lost approval race can
// never leave a second invoice behind.
func (r *QuoteDynamoRepository) ApproveWithInvoice(ctx context.Context, quoteID string, invoice entities.Invoice) (entities.Quote, error) {
	invoiceAV, err := attributevalue.MarshalMap(toInvoiceItem(invoice))
	if err != nil {
		return entities.Quote{}, err
	}

	now := formatTime(timeNow())
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: quoteID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
					UpdateExpression:    aws.String("SET #status = :approved, #invoice_id = :invoice_id, #updated_at = :updated_at"),
					ExpressionAttributeNames: map[string]string{
						"#id":         "id",
						"#status":     "status",
						"#invoice_id": "invoice_id",
						"#updated_at": "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":pending":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
						":approved":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusApproved)},
						":invoice_id": &types.AttributeValueMemberS{Value: invoice.ID},
						":updated_at": &types.AttributeValueMemberS{Value: now},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.invoicesTable),
					Item:                invoiceAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		return entities.Quote{}, statusConditionErr(err)
	}

	return r.GetByID(ctx, quoteID)
}

func toQuoteItem(q entities.Quote) quoteItem {
	lines := make([]quoteLineItem, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, quoteLineItem(it))
	}
	return quoteItem{
		ID:          q.ID,
		RequestID:   q.RequestID,
		Description: q.Description,
		Items:       lines,
		Total:       q.Total,
		Status:      string(q.Status),
		InvoiceID:   q.InvoiceID,
		CreatedAt:   formatTime(q.CreatedAt),
		UpdatedAt:   formatTime(q.UpdatedAt),
	}
}

func fromQuoteItem(it quoteItem) entities.Quote {
	items := make([]entities.QuoteItem, 0, len(it.Items))
	for _, line := range it.Items {
		items = append(items, entities.QuoteItem(line))
	}
	return entities.Quote{
		ID:          it.ID,
		RequestID:   it.RequestID,
		Description: it.Description,
		Items:       items,
		Total:       it.Total,
		Status:      entities.QuoteStatus(it.Status),
		InvoiceID:   it.InvoiceID,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
