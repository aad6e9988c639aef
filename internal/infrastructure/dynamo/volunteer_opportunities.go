package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sumasrimallavolu/buddha-ceo-api/internal/domain"
)

// VolunteerOpportunityRepo provides typed DynamoDB operations for volunteer
// opportunities.
type VolunteerOpportunityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVolunteerOpportunityRepo(client *dynamodb.Client, tableName string) *VolunteerOpportunityRepo {
	return &VolunteerOpportunityRepo{client: client, tableName: tableName}
}

func (r *VolunteerOpportunityRepo) Put(ctx context.Context, o *domain.VolunteerOpportunity) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal opportunity: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VolunteerOpportunityRepo) Get(ctx context.Context, opportunityID string) (*domain.VolunteerOpportunity, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("opportunity_id", opportunityID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("opportunity not found: %w", domain.ErrNotFound)
	}
	var o domain.VolunteerOpportunity
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByStatus queries the status GSI.
func (r *VolunteerOpportunityRepo) ListByStatus(ctx context.Context, status string) ([]domain.VolunteerOpportunity, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("status-index"),
		KeyConditionExpression: aws.String("#s = :v"),
		ExpressionAttributeNames:  map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: status}},
	})
	if err != nil {
		return nil, err
	}
	var opps []domain.VolunteerOpportunity
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *VolunteerOpportunityRepo) Scan(ctx context.Context) ([]domain.VolunteerOpportunity, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var opps []domain.VolunteerOpportunity
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *VolunteerOpportunityRepo) Update(ctx context.Context, opportunityID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("opportunity_id", opportunityID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// IncrementApplications bumps current_applications by one under the same
// conditional-capacity guard used for event registrations.
func (r *VolunteerOpportunityRepo) IncrementApplications(ctx context.Context, opportunityID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("opportunity_id", opportunityID),
		UpdateExpression:    aws.String("ADD current_applications :one"),
		ConditionExpression: aws.String("attribute_exists(opportunity_id) AND (max_volunteers = :zero OR current_applications < max_volunteers)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":  &types.AttributeValueMemberN{Value: "1"},
			":zero": &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("opportunity full: %w", domain.ErrCapacityFull)
		}
		return err
	}
	return nil
}

// DecrementApplications releases a claimed slot, e.g. when an application
// write fails or the application is rejected. Never drops below zero.
func (r *VolunteerOpportunityRepo) DecrementApplications(ctx context.Context, opportunityID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("opportunity_id", opportunityID),
		UpdateExpression:    aws.String("ADD current_applications :negOne"),
		ConditionExpression: aws.String("current_applications > :zero"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":negOne": &types.AttributeValueMemberN{Value: "-1"},
			":zero":   &types.AttributeValueMemberN{Value: "0"},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return err
	}
	return nil
}

func (r *VolunteerOpportunityRepo) Delete(ctx context.Context, opportunityID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("opportunity_id", opportunityID),
	})
	return err
}
