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
	defaultTasksTableName = "tasks"
	tasksWorkOrderIDIndex = "work_order_id-index"
)

type taskItem struct {
	ID            string `dynamodbav:"id"`
	WorkOrderID   string `dynamodbav:"work_order_id"`
	Description   string `dynamodbav:"description"`
	EstimatedTime int    `dynamodbav:"estimated_time,omitempty"`
	Status        string `dynamodbav:"status"`
	StartTime     string `dynamodbav:"start_time,omitempty"`
	EndTime       string `dynamodbav:"end_time,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
}

// TaskDynamoRepository persists Task entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: work_order_id-index (PK: work_order_id)

type TaskDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITaskRepository = (*TaskDynamoRepository)(nil)

func NewTaskDynamoRepository(ddb *dynamodb.Client) *TaskDynamoRepository {
	return &TaskDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TASKS_TABLE", defaultTasksTableName),
	}
}

func (r *TaskDynamoRepository) Create(ctx context.Context, t entities.Task) (entities.Task, error) {
	av, err := attributevalue.MarshalMap(toTaskItem(t))
	if err != nil {
		return entities.Task{}, err
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
		return entities.Task{}, err
	}
	return t, nil
}

func (r *TaskDynamoRepository) GetByID(ctx context.Context, id string) (entities.Task, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Task{}, err
	}
	if len(out.Item) == 0 {
		return entities.Task{}, nil
	}

	var it taskItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Task{}, err
	}
	return fromTaskItem(it), nil
}

func (r *TaskDynamoRepository) ListByWorkOrderID(ctx context.Context, workOrderID string) ([]entities.Task, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(tasksWorkOrderIDIndex),
		KeyConditionExpression: aws.String("work_order_id = :wid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":wid": &types.AttributeValueMemberS{Value: workOrderID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Task, 0, len(out.Items))
	for _, raw := range out.Items {
		var it taskItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromTaskItem(it))
	}
	return items, nil
}

// UpdateStatus is the guarded write behind every task edge. start_time uses
// if_not_exists so a pause/restart loop keeps the first recorded start;
// end_time is written only on the completing edge.
func (r *TaskDynamoRepository) UpdateStatus(ctx context.Context, id string, expected, to entities.TaskStatus, startTime, endTime *time.Time) (entities.Task, error) {
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
	if startTime != nil {
		updateExpr += ", #start_time = if_not_exists(#start_time, :start_time)"
		names["#start_time"] = "start_time"
		values[":start_time"] = &types.AttributeValueMemberS{Value: formatTimePtr(startTime)}
	}
	if endTime != nil {
		updateExpr += ", #end_time = :end_time"
		names["#end_time"] = "end_time"
		values[":end_time"] = &types.AttributeValueMemberS{Value: formatTimePtr(endTime)}
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
		return entities.Task{}, statusConditionErr(err)
	}

	var it taskItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Task{}, err
	}
	return fromTaskItem(it), nil
}

func toTaskItem(t entities.Task) taskItem {
	return taskItem{
		ID:            t.ID,
		WorkOrderID:   t.WorkOrderID,
		Description:   t.Description,
		EstimatedTime: t.EstimatedTime,
		Status:        string(t.Status),
		StartTime:     formatTimePtr(t.StartTime),
		EndTime:       formatTimePtr(t.EndTime),
		CreatedAt:     formatTime(t.CreatedAt),
		UpdatedAt:     formatTime(t.UpdatedAt),
	}
}

func fromTaskItem(it taskItem) entities.Task {
	return entities.Task{
		ID:            it.ID,
		WorkOrderID:   it.WorkOrderID,
		Description:   it.Description,
		EstimatedTime: it.EstimatedTime,
		Status:        entities.TaskStatus(it.Status),
		StartTime:     parseTimePtr(it.StartTime),
		EndTime:       parseTimePtr(it.EndTime),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
