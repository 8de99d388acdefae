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
	defaultRequestsTableName = "requests"
	requestsClientIDIndex    = "client_id-index"
)

type requestItem struct {
	ID          string   `dynamodbav:"id"`
	ClientID    string   `dynamodbav:"client_id"`
	Title       string   `dynamodbav:"title"`
	Description string   `dynamodbav:"description,omitempty"`
	Location    string   `dynamodbav:"location,omitempty"`
	ServiceType string   `dynamodbav:"service_type"`
	Priority    string   `dynamodbav:"priority"`
	Status      string   `dynamodbav:"status"`
	Attachments []string `dynamodbav:"attachments,omitempty"`
	CreatedAt   string   `dynamodbav:"created_at"`
	UpdatedAt   string   `dynamodbav:"updated_at"`
}

// RequestDynamoRepository persists Request entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id)

type RequestDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IRequestRepository = (*RequestDynamoRepository)(nil)

func NewRequestDynamoRepository(ddb *dynamodb.Client) *RequestDynamoRepository {
	return &RequestDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("REQUESTS_TABLE", defaultRequestsTableName),
	}
}

func (r *RequestDynamoRepository) Create(ctx context.Context, req entities.Request) (entities.Request, error) {
	av, err := attributevalue.MarshalMap(toRequestItem(req))
	if err != nil {
		return entities.Request{}, err
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
		return entities.Request{}, err
	}
	return req, nil
}

func (r *RequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.Request, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Request{}, err
	}
	if len(out.Item) == 0 {
		return entities.Request{}, nil
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func (r *RequestDynamoRepository) List(ctx context.Context) ([]entities.Request, error) {
	out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalRequestItems(out.Items)
}

func (r *RequestDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Request, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(requestsClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalRequestItems(out.Items)
}

// UpdateStatus flips the status only while it still equals expected, so two
// racing approvals cannot both commit.
func (r *RequestDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, to entities.RequestStatus) (entities.Request, error) {
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
		return entities.Request{}, statusConditionErr(err)
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func (r *RequestDynamoRepository) AppendAttachment(ctx context.Context, id, objectName string) (entities.Request, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #attachments = list_append(if_not_exists(#attachments, :empty), :obj), #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":          "id",
			"#attachments": "attachments",
			"#updated_at":  "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":obj":        &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberS{Value: objectName}}},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(timeNow())},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Request{}, statusConditionErr(err)
	}

	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func (r *RequestDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	return err
}

func unmarshalRequestItems(raw []map[string]types.AttributeValue) ([]entities.Request, error) {
	items := make([]entities.Request, 0, len(raw))
	for _, m := range raw {
		var it requestItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromRequestItem(it))
	}
	return items, nil
}

func toRequestItem(r entities.Request) requestItem {
	return requestItem{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		ServiceType: string(r.ServiceType),
		Priority:    string(r.Priority),
		Status:      string(r.Status),
		Attachments: r.Attachments,
		CreatedAt:   formatTime(r.CreatedAt),
		UpdatedAt:   formatTime(r.UpdatedAt),
	}
}

func fromRequestItem(it requestItem) entities.Request {
	return entities.Request{
		ID:          it.ID,
		ClientID:    it.ClientID,
		Title:       it.Title,
		Description: it.Description,
		Location:    it.Location,
		ServiceType: entities.ServiceType(it.ServiceType),
		Priority:    entities.Priority(it.Priority),
		Status:      entities.RequestStatus(it.Status),
		Attachments: it.Attachments,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
