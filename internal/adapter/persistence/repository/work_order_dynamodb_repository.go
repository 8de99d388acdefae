package repository

import (
	"context"
	"time"

	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultWorkOrdersTableName = "work_orders"
	workOrdersAssignedToIndex  = "assigned_to-index"
)

type workOrderItem struct {
	ID            string `dynamodbav:"id"`
	RequestID     string `dynamodbav:"request_id,omitempty"`
	AssignedTo    string `dynamodbav:"assigned_to"`
	Title         string `dynamodbav:"title"`
	Description   string `dynamodbav:"description,omitempty"`
	ScheduledDate string `dynamodbav:"scheduled_date"`
	Status        string `dynamodbav:"status"`
	CompletedDate string `dynamodbav:"completed_date,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: assigned_to-index (PK: assigned_to)

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName),
	}
}

func (r *WorkOrderDynamoRepository) Create(ctx context.Context, w entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(w))
	if err != nil {
		return entities.WorkOrder{}, err
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
		return entities.WorkOrder{}, err
	}
	return w, nil
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) List(ctx context.Context) ([]entities.WorkOrder, error) {
	out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalWorkOrderItems(out.Items)
}

func (r *WorkOrderDynamoRepository) ListByAssignedTo(ctx context.Context, technicianID string) ([]entities.WorkOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workOrdersAssignedToIndex),
		KeyConditionExpression: aws.String("assigned_to = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: technicianID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalWorkOrderItems(out.Items)
}

// UpdateStatus advances the order only while the stored status still equals
// expected; the completion date rides along on the completing edge.
func (r *WorkOrderDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, to entities.WorkOrderStatus, completedDate *time.Time) (entities.WorkOrder, error) {
	updateExpr := "SET #status = :status, #updated_at = :updated_at"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":expected":   &types.AttributeValueMemberS{Value: string(expected)},
		":status":     &types.AttributeValueMemberS{Value: string(to)},
		":updated_at": &types.AttributeValueMemberS{Value: formatTime(timeNow())},
	}
	if completedDate != nil {
		updateExpr += ", #completed_date = :completed_date"
		names["#completed_date"] = "completed_date"
		values[":completed_date"] = &types.AttributeValueMemberS{Value: formatTimePtr(completedDate)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :expected"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.WorkOrder{}, statusConditionErr(err)
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func unmarshalWorkOrderItems(raw []map[string]types.AttributeValue) ([]entities.WorkOrder, error) {
	items := make([]entities.WorkOrder, 0, len(raw))
	for _, m := range raw {
		var it workOrderItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		items = append(items, fromWorkOrderItem(it))
	}
	return items, nil
}

func toWorkOrderItem(w entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:            w.ID,
		RequestID:     w.RequestID,
		AssignedTo:    w.AssignedTo,
		Title:         w.Title,
		Description:   w.Description,
		ScheduledDate: formatTime(w.ScheduledDate),
		Status:        string(w.Status),
		CompletedDate: formatTimePtr(w.CompletedDate),
		CreatedAt:     formatTime(w.CreatedAt),
		UpdatedAt:     formatTime(w.UpdatedAt),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	return entities.WorkOrder{
		ID:            it.ID,
		RequestID:     it.RequestID,
		AssignedTo:    it.AssignedTo,
		Title:         it.Title,
		Description:   it.Description,
		ScheduledDate: parseTime(it.ScheduledDate),
		Status:        entities.WorkOrderStatus(it.Status),
		CompletedDate: parseTimePtr(it.CompletedDate),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
