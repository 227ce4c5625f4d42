package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mc-parking-api/internal/domain"
)

// api is the subset of *dynamodb.Client the store uses.
type api interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements the generic item verbs directly against DynamoDB.
type Store struct {
	client api
}

func NewStore(client api) *Store {
	return &Store{client: client}
}

func (s *Store) PutItem(ctx context.Context, table string, item domain.Item) error {
	av, err := marshalItem(item)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	return err
}

func (s *Store) GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error) {
	k, err := marshalItem(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       k,
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	return unmarshalItem(out.Item)
}

// UpdateItem applies a SET of updates to an existing item and returns the new item.
// Missing items are reported as domain.ErrNotFound rather than created.
func (s *Store) UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error) {
	k, err := marshalItem(key)
	if err != nil {
		return nil, err
	}
	ue, err := buildUpdateExpr(withoutKey(updates, key))
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = firstKeyName(key)
	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       k,
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
		}
		return nil, err
	}
	return unmarshalItem(out.Attributes)
}

func (s *Store) DeleteItem(ctx context.Context, table string, key domain.Item) error {
	k, err := marshalItem(key)
	if err != nil {
		return err
	}
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(table),
		Key:          k,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return err
	}
	if len(out.Attributes) == 0 {
		return fmt.Errorf("item not found in %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// Scan reads every page of the table, applying filter server-side.
func (s *Store) Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	fe, err := buildFilterExpr(filter)
	if err != nil {
		return nil, err
	}
	if fe.Expr != "" {
		input.FilterExpression = aws.String(fe.Expr)
		input.ExpressionAttributeNames = fe.Names
		input.ExpressionAttributeValues = fe.Values
	}

	var items []domain.Item
	p := dynamodb.NewScanPaginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, av := range page.Items {
			item, err := unmarshalItem(av)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// Query returns all items whose key attribute equals the value, optionally on a GSI.
func (s *Store) Query(ctx context.Context, table string, q domain.Query) ([]domain.Item, error) {
	if q.KeyName == "" {
		return nil, fmt.Errorf("query key name required: %w", domain.ErrBadRequest)
	}
	ke, err := buildFilterExpr(domain.Filter{q.KeyName: q.KeyValue})
	if err != nil {
		return nil, err
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(table),
		KeyConditionExpression:    aws.String(ke.Expr),
		ExpressionAttributeNames:  ke.Names,
		ExpressionAttributeValues: ke.Values,
	}
	if q.IndexName != "" {
		input.IndexName = aws.String(q.IndexName)
	}

	var items []domain.Item
	p := dynamodb.NewQueryPaginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, av := range page.Items {
			item, err := unmarshalItem(av)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	return items, nil
}
