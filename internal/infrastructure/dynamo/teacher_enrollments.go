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

// TeacherEnrollmentRepo provides typed DynamoDB operations for course
// enrollments.
type TeacherEnrollmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTeacherEnrollmentRepo(client *dynamodb.Client, tableName string) *TeacherEnrollmentRepo {
	return &TeacherEnrollmentRepo{client: client, tableName: tableName}
}

func (r *TeacherEnrollmentRepo) Put(ctx context.Context, e *domain.TeacherEnrollment) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal teacher enrollment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TeacherEnrollmentRepo) Get(ctx context.Context, enrollmentID string) (*domain.TeacherEnrollment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("enrollment_id", enrollmentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("enrollment not found: %w", domain.ErrNotFound)
	}
	var e domain.TeacherEnrollment
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByEmailAndBatch returns a lowercased email's enrollment in the given
// course batch, or domain.ErrNotFound. A withdrawn and a later active record
// can coexist; the active one is returned so the duplicate guard sees it.
func (r *TeacherEnrollmentRepo) FindByEmailAndBatch(ctx context.Context, email, courseBatch string) (*domain.TeacherEnrollment, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("email = :e"),
		FilterExpression:       aws.String("course_batch = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":b": &types.AttributeValueMemberS{Value: courseBatch},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("enrollment not found: %w", domain.ErrNotFound)
	}
	var enrs []domain.TeacherEnrollment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &enrs); err != nil {
		return nil, err
	}
	return activeOrFirst(enrs, (*domain.TeacherEnrollment).Active), nil
}

func (r *TeacherEnrollmentRepo) Scan(ctx context.Context) ([]domain.TeacherEnrollment, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var enrollments []domain.TeacherEnrollment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *TeacherEnrollmentRepo) Update(ctx context.Context, enrollmentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("enrollment_id", enrollmentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
