package dynamodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/dashboard/core/logger"
	"github.com/dmitrymomot/dashboard/core/session"
)

const (
	attrID       = "sessionid"
	attrRequests = "requests"

	codeConditionalCheckFailed = "ConditionalCheckFailedException"
	codeResourceNotFound       = "ResourceNotFoundException"
)

// item is the table representation of a session.
type item struct {
	ID        string `dynamodbav:"sessionid"`
	CreatedAt int64  `dynamodbav:"created_at"`
	ClientIP  string `dynamodbav:"client_ip,omitempty"`
	Requests  int64  `dynamodbav:"requests"`
	Expiry    int64  `dynamodbav:"expiry,omitempty"`
}

func toItem(r session.Record) item {
	return item{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		ClientIP:  r.ClientIP,
		Requests:  r.Requests,
		Expiry:    r.ExpiresAt,
	}
}

func (i item) record() *session.Record {
	return &session.Record{
		ID:        i.ID,
		CreatedAt: i.CreatedAt,
		ClientIP:  i.ClientIP,
		Requests:  i.Requests,
		ExpiresAt: i.Expiry,
	}
}

// Store keeps sessions in a DynamoDB table.
type Store struct {
	client Client
	table  string
	now    func() time.Time
	logger *slog.Logger
}

// StoreOption configures Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a Store backed by table.
func NewStore(client Client, table string, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		table:  table,
		now:    time.Now,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("dynamodb_store"))
	return s
}

var (
	_ session.Store         = (*Store)(nil)
	_ session.HealthChecker = (*Store)(nil)
)

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}

// Get returns the session or nil when it is absent or expired.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, session.StorageError("get", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, session.StorageError("decode", err)
	}
	rec := it.record()
	if rec.Expired(s.now()) {
		return nil, nil
	}
	return rec, nil
}

// Set writes the session, replacing any existing item with the same id.
func (s *Store) Set(ctx context.Context, rec session.Record) error {
	if rec.ID == "" {
		return session.ErrInvalidID
	}

	av, err := attributevalue.MarshalMap(toItem(rec))
	if err != nil {
		return session.StorageError("encode", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return session.StorageError("set", err)
	}
	return nil
}

// IncrementRequests bumps the usage counter of an existing session.
// Unknown ids are left alone.
func (s *Store) IncrementRequests(ctx context.Context, id string) error {
	if id == "" {
		return session.ErrInvalidID
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 s.key(id),
		UpdateExpression:    aws.String("SET #requests = if_not_exists(#requests, :zero) + :incr"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#requests": attrRequests,
			"#id":       attrID,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":incr": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueNone,
	})
	if err != nil {
		if errorCode(err) == codeConditionalCheckFailed {
			s.logger.DebugContext(ctx, "usage increment skipped for unknown session", logger.SessionID(id))
			return nil
		}
		return session.StorageError("increment", err)
	}
	return nil
}

// Healthcheck verifies that the table exists and is reachable.
func (s *Store) Healthcheck(ctx context.Context) error {
	return Healthcheck(s.client, s.table)(ctx)
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
