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
	defaultInvoicesTableName = "invoices"
	invoicesClientIDIndex    = "client_id-index"
)

type invoiceItem struct {
	ID          string  `dynamodbav:"id"`
	WorkOrderID string  `dynamodbav:"work_order_id,omitempty"`
	ClientID    string  `dynamodbav:"client_id"`
	Amount      float64 `dynamodbav:"amount"`
	DueDate     string  `dynamodbav:"due_date"`
	Status      string  `dynamodbav:"status"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)
//
// Quote-originated invoices are written by the quote repository's
// transaction, into this same table.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, i entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(i))
	if err != nil {
		return entities.Invoice{}, err
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
		return entities.Invoice{}, err
	}
	return i, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Invoice, 0, len(out.Items))
	for _, raw := range out.Items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromInvoiceItem(it))
	}
	return items, nil
}

func (r *InvoiceDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, to entities.InvoiceStatus) (entities.Invoice, error) {
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
		return entities.Invoice{}, statusConditionErr(err)
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceItem(i entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:          i.ID,
		WorkOrderID: i.WorkOrderID,
		ClientID:    i.ClientID,
		Amount:      i.Amount,
		DueDate:     formatTime(i.DueDate),
		Status:      string(i.Status),
		CreatedAt:   formatTime(i.CreatedAt),
		UpdatedAt:   formatTime(i.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	return entities.Invoice{
		ID:          it.ID,
		WorkOrderID: it.WorkOrderID,
		ClientID:    it.ClientID,
		Amount:      it.Amount,
		DueDate:     parseTime(it.DueDate),
		Status:      entities.InvoiceStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
