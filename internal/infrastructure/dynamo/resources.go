package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// ResourceRepo provides typed DynamoDB operations for meditation resources.
type ResourceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewResourceRepo(client *dynamodb.Client, tableName string) *ResourceRepo {
	return &ResourceRepo{client: client, tableName: tableName}
}

func (r *ResourceRepo) Put(ctx context.Context, res *domain.Resource) error {
	item, err := attributevalue.MarshalMap(res)
	if err != nil {
		return fmt.Errorf("marshal resource: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ResourceRepo) Get(ctx context.Context, resourceID string) (*domain.Resource, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("resource_id", resourceID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("resource not found: %w", domain.ErrNotFound)
	}
	var res domain.Resource
	if err := attributevalue.UnmarshalMap(out.Item, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByType queries the type GSI.
func (r *ResourceRepo) ListByType(ctx context.Context, resourceType string) ([]domain.Resource, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("type-index"),
		KeyConditionExpression: aws.String("#t = :v"),
		ExpressionAttributeNames:  map[string]string{"#t": "type"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: resourceType}},
	})
	if err != nil {
		return nil, err
	}
	var resources []domain.Resource
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepo) Scan(ctx context.Context) ([]domain.Resource, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var resources []domain.Resource
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepo) Update(ctx context.Context, resourceID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("resource_id", resourceID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ResourceRepo) Delete(ctx context.Context, resourceID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("resource_id", resourceID),
	})
	return err
}
