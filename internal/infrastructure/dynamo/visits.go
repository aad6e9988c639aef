package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// VisitRepo provides typed DynamoDB operations for page-visit records.
// Rollups query the date GSI one day at a time so the dashboard never scans
// the whole table.
type VisitRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVisitRepo(client *dynamodb.Client, tableName string) *VisitRepo {
	return &VisitRepo{client: client, tableName: tableName}
}

func (r *VisitRepo) Put(ctx context.Context, v *domain.Visit) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal visit: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByDate returns all visits recorded on one day (YYYY-MM-DD), following
// pagination until the day is exhausted.
func (r *VisitRepo) ListByDate(ctx context.Context, date string) ([]domain.Visit, error) {
	var visits []domain.Visit
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("date-index"),
			KeyConditionExpression: aws.String("#d = :v"),
			ExpressionAttributeNames:  map[string]string{"#d": "date"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: date}},
		}
		if lastKey != nil {
			input.ExclusiveStartKey = lastKey
		}
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.Visit
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		visits = append(visits, page...)
		if out.LastEvaluatedKey == nil {
			return visits, nil
		}
		lastKey = out.LastEvaluatedKey
	}
}
