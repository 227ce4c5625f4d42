package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mc-parking-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct{ mock.Mock }

func (m *mockAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DeleteItemOutput)
	return out, args.Error(1)
}
func (m *mockAPI) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.ScanOutput)
	return out, args.Error(1)
}
func (m *mockAPI) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}

func strAV(s string) types.AttributeValue { return &types.AttributeValueMemberS{Value: s} }

func TestStore_PutItem_MarshalsAttributes(t *testing.T) {
	api := &mockAPI{}
	api.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		s, ok := in.Item["zone_id"].(*types.AttributeValueMemberS)
		n, okN := in.Item["total_spots"].(*types.AttributeValueMemberN)
		return *in.TableName == "pz" && ok && s.Value == "Z1" && okN && n.Value == "12"
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := NewStore(api).PutItem(context.Background(), "pz", domain.Item{"zone_id": "Z1", "total_spots": 12})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestStore_GetItem_NotFound(t *testing.T) {
	api := &mockAPI{}
	api.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewStore(api).GetItem(context.Background(), "pz", domain.Item{"zone_id": "missing"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_GetItem_Found(t *testing.T) {
	api := &mockAPI{}
	api.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{
		Item: map[string]types.AttributeValue{"zone_id": strAV("Z1"), "name": strAV("Fort")},
	}, nil)

	item, err := NewStore(api).GetItem(context.Background(), "pz", domain.Item{"zone_id": "Z1"})
	require.NoError(t, err)
	assert.Equal(t, "Fort", item["name"])
}

func TestStore_UpdateItem_ConditionFailed_IsNotFound(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return *in.ConditionExpression == "attribute_exists(#pk)" && in.ExpressionAttributeNames["#pk"] == "zone_id"
	})).Return(nil, &types.ConditionalCheckFailedException{})

	_, err := NewStore(api).UpdateItem(context.Background(), "pz", domain.Item{"zone_id": "Z1"}, map[string]interface{}{"name": "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_UpdateItem_StripsKeyAndReturnsNewItem(t *testing.T) {
	api := &mockAPI{}
	api.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return *in.UpdateExpression == "SET #f0 = :v0" && in.ExpressionAttributeNames["#f0"] == "name"
	})).Return(&dynamodb.UpdateItemOutput{
		Attributes: map[string]types.AttributeValue{"zone_id": strAV("Z1"), "name": strAV("x")},
	}, nil)

	item, err := NewStore(api).UpdateItem(context.Background(), "pz", domain.Item{"zone_id": "Z1"},
		map[string]interface{}{"zone_id": "Z1", "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", item["name"])
}

func TestStore_DeleteItem_MissingIsNotFound(t *testing.T) {
	api := &mockAPI{}
	api.On("DeleteItem", mock.Anything, mock.Anything).Return(&dynamodb.DeleteItemOutput{}, nil)

	err := NewStore(api).DeleteItem(context.Background(), "pz", domain.Item{"zone_id": "Z1"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_Scan_FollowsPages(t *testing.T) {
	api := &mockAPI{}
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{{"zone_id": strAV("Z1")}},
		LastEvaluatedKey: map[string]types.AttributeValue{"zone_id": strAV("Z1")},
	}, nil).Once()
	api.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{{"zone_id": strAV("Z2")}},
	}, nil).Once()

	items, err := NewStore(api).Scan(context.Background(), "pz", domain.Filter{"status": "active"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Z2", items[1]["zone_id"])
	api.AssertExpectations(t)
}

func TestStore_Query_RequiresKeyName(t *testing.T) {
	_, err := NewStore(&mockAPI{}).Query(context.Background(), "fc", domain.Query{})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}
