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

// TeacherApplicationRepo provides typed DynamoDB operations for teacher
// training applications.
type TeacherApplicationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTeacherApplicationRepo(client *dynamodb.Client, tableName string) *TeacherApplicationRepo {
	return &TeacherApplicationRepo{client: client, tableName: tableName}
}

func (r *TeacherApplicationRepo) Put(ctx context.Context, a *domain.TeacherApplication) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal teacher application: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TeacherApplicationRepo) Get(ctx context.Context, applicationID string) (*domain.TeacherApplication, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("application_id", applicationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("teacher application not found: %w", domain.ErrNotFound)
	}
	var a domain.TeacherApplication
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByEmail returns an application for a lowercased email via the email
// GSI, or domain.ErrNotFound. A rejected and a later active record can
// coexist; the active one is returned so the duplicate guard sees it.
func (r *TeacherApplicationRepo) FindByEmail(ctx context.Context, email string) (*domain.TeacherApplication, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("teacher application not found: %w", domain.ErrNotFound)
	}
	var apps []domain.TeacherApplication
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return activeOrFirst(apps, (*domain.TeacherApplication).Active), nil
}

func (r *TeacherApplicationRepo) Scan(ctx context.Context) ([]domain.TeacherApplication, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var apps []domain.TeacherApplication
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *TeacherApplicationRepo) Update(ctx context.Context, applicationID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("application_id", applicationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// Count returns the number of application records.
func (r *TeacherApplicationRepo) Count(ctx context.Context) (int, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Select:    types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}
