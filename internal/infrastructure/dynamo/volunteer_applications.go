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

// VolunteerApplicationRepo provides typed DynamoDB operations for volunteer
// applications.
type VolunteerApplicationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVolunteerApplicationRepo(client *dynamodb.Client, tableName string) *VolunteerApplicationRepo {
	return &VolunteerApplicationRepo{client: client, tableName: tableName}
}

func (r *VolunteerApplicationRepo) Put(ctx context.Context, a *domain.VolunteerApplication) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal volunteer application: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VolunteerApplicationRepo) Get(ctx context.Context, applicationID string) (*domain.VolunteerApplication, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("application_id", applicationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("volunteer application not found: %w", domain.ErrNotFound)
	}
	var a domain.VolunteerApplication
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByEmailAndOpportunity returns a lowercased email's application for the
// opportunity via the email GSI, or domain.ErrNotFound. A rejected and an
// active record can coexist after a reject/re-apply cycle; the active one is
// returned so the duplicate guard sees it.
func (r *VolunteerApplicationRepo) FindByEmailAndOpportunity(ctx context.Context, email, opportunityID string) (*domain.VolunteerApplication, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("email = :e"),
		FilterExpression:       aws.String("opportunity_id = :o"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":o": &types.AttributeValueMemberS{Value: opportunityID},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("volunteer application not found: %w", domain.ErrNotFound)
	}
	var apps []domain.VolunteerApplication
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return activeOrFirst(apps, (*domain.VolunteerApplication).Active), nil
}

// ListByOpportunity returns all applications for an opportunity via its GSI.
func (r *VolunteerApplicationRepo) ListByOpportunity(ctx context.Context, opportunityID string) ([]domain.VolunteerApplication, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("opportunity_id-index"),
		KeyConditionExpression: aws.String("opportunity_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: opportunityID},
		},
	})
	if err != nil {
		return nil, err
	}
	var apps []domain.VolunteerApplication
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *VolunteerApplicationRepo) Update(ctx context.Context, applicationID string, updates map[string]interface{}) error {
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
