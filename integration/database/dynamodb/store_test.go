package dynamodb_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashboard/core/session"
	ddb "github.com/dmitrymomot/dashboard/integration/database/dynamodb"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockClient) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*dynamodb.DescribeTableOutput)
	return out, args.Error(1)
}

const table = "sessions"

var now = time.Unix(1_700_000_000, 0)

func newStore(c *mockClient) *ddb.Store {
	return ddb.NewStore(c, table, ddb.WithClock(func() time.Time { return now }))
}

func sessionItem(id string, expiry int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"sessionid":  &types.AttributeValueMemberS{Value: id},
		"created_at": &types.AttributeValueMemberN{Value: "1699999999000"},
		"client_ip":  &types.AttributeValueMemberS{Value: "203.0.113.7"},
		"requests":   &types.AttributeValueMemberN{Value: "4"},
		"expiry":     &types.AttributeValueMemberN{Value: strconv.FormatInt(expiry, 10)},
	}
}


func TestStoreGet(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			key, ok := in.Key["sessionid"].(*types.AttributeValueMemberS)
			return aws.ToString(in.TableName) == table && ok && key.Value == "s1"
		})).Return(&dynamodb.GetItemOutput{Item: sessionItem("s1", now.Unix()+60)}, nil)

		rec, err := newStore(c).Get(context.Background(), "s1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "s1", rec.ID)
		assert.Equal(t, int64(1699999999000), rec.CreatedAt)
		assert.Equal(t, "203.0.113.7", rec.ClientIP)
		assert.Equal(t, int64(4), rec.Requests)
		assert.Equal(t, now.Unix()+60, rec.ExpiresAt)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		rec, err := newStore(c).Get(context.Background(), "s1")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("expired but not yet evicted", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("GetItem", mock.Anything, mock.Anything).
			Return(&dynamodb.GetItemOutput{Item: sessionItem("s1", now.Unix()-1)}, nil)

		rec, err := newStore(c).Get(context.Background(), "s1")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("throttled")
		c := &mockClient{}
		c.On("GetItem", mock.Anything, mock.Anything).Return(nil, cause)

		_, err := newStore(c).Get(context.Background(), "s1")
		assert.ErrorIs(t, err, session.ErrStorage)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		_, err := newStore(c).Get(context.Background(), "")
		assert.ErrorIs(t, err, session.ErrInvalidID)
		c.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})
}

func TestStoreSet(t *testing.T) {
	t.Parallel()

	t.Run("writes item", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			id, _ := in.Item["sessionid"].(*types.AttributeValueMemberS)
			exp, _ := in.Item["expiry"].(*types.AttributeValueMemberN)
			reqs, _ := in.Item["requests"].(*types.AttributeValueMemberN)
			_, hasIP := in.Item["client_ip"]
			return aws.ToString(in.TableName) == table &&
				id != nil && id.Value == "s1" &&
				exp != nil && exp.Value == strconv.FormatInt(now.Unix()+3600, 10) &&
				reqs != nil && reqs.Value == "0" &&
				!hasIP
		})).Return(&dynamodb.PutItemOutput{}, nil)

		rec := session.NewRecord("s1", "", now, time.Hour)
		require.NoError(t, newStore(c).Set(context.Background(), rec))
		c.AssertExpectations(t)
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		err := newStore(c).Set(context.Background(), session.NewRecord("s1", "", now, time.Hour))
		assert.ErrorIs(t, err, session.ErrStorage)
	})

	t.Run("empty id", func(t *testing.T) {
		t.Parallel()
		err := newStore(&mockClient{}).Set(context.Background(), session.Record{})
		assert.ErrorIs(t, err, session.ErrInvalidID)
	})
}

func TestStoreIncrementRequests(t *testing.T) {
	t.Parallel()

	t.Run("increments existing session", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
			return aws.ToString(in.UpdateExpression) == "SET #requests = if_not_exists(#requests, :zero) + :incr" &&
				aws.ToString(in.ConditionExpression) == "attribute_exists(#id)" &&
				in.ExpressionAttributeNames["#requests"] == "requests"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		require.NoError(t, newStore(c).IncrementRequests(context.Background(), "s1"))
		c.AssertExpectations(t)
	})

	t.Run("unknown session is not created", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")})

		assert.NoError(t, newStore(c).IncrementRequests(context.Background(), "gone"))
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		err := newStore(c).IncrementRequests(context.Background(), "s1")
		assert.ErrorIs(t, err, session.ErrStorage)
	})
}

func TestStoreHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("table exists", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("DescribeTable", mock.Anything, mock.MatchedBy(func(in *dynamodb.DescribeTableInput) bool {
			return aws.ToString(in.TableName) == table
		})).Return(&dynamodb.DescribeTableOutput{}, nil)

		assert.NoError(t, newStore(c).Healthcheck(context.Background()))
	})

	t.Run("table missing", func(t *testing.T) {
		t.Parallel()
		c := &mockClient{}
		c.On("DescribeTable", mock.Anything, mock.Anything).
			Return(nil, &types.ResourceNotFoundException{Message: aws.String("no table")})

		err := newStore(c).Healthcheck(context.Background())
		assert.ErrorIs(t, err, ddb.ErrHealthcheckFailed)
		assert.ErrorIs(t, err, ddb.ErrTableNotFound)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	_, err := ddb.Connect(context.Background(), ddb.Config{})
	assert.ErrorIs(t, err, ddb.ErrEmptyTableName)

	client, err := ddb.Connect(context.Background(), ddb.Config{
		TableName: table,
		Region:    "eu-west-2",
		Local:     true,
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
