package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/dashboard/core/session"
)

type document struct {
	ID        string     `bson:"_id"`
	CreatedAt int64      `bson:"created_at"`
	ClientIP  string     `bson:"client_ip"`
	Requests  int64      `bson:"requests"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

func toDocument(r session.Record) document {
	d := document{ID: r.ID, CreatedAt: r.CreatedAt, ClientIP: r.ClientIP, Requests: r.Requests}
	if r.ExpiresAt > 0 {
		t := time.Unix(r.ExpiresAt, 0).UTC()
		d.ExpiresAt = &t
	}
	return d
}

func (d document) record() *session.Record {
	r := &session.Record{ID: d.ID, CreatedAt: d.CreatedAt, ClientIP: d.ClientIP, Requests: d.Requests}
	if d.ExpiresAt != nil {
		r.ExpiresAt = d.ExpiresAt.Unix()
	}
	return r
}

// Store keeps sessions in a collection.
type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewStore returns a Store using coll.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll, now: time.Now}
}

var (
	_ session.Store         = (*Store)(nil)
	_ session.HealthChecker = (*Store)(nil)
)

// EnsureIndexes creates the TTL index on expires_at.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("sessions_ttl").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return session.StorageError("ensure indexes", err)
	}
	return nil
}

// Get returns the session or nil when it is absent or expired.
func (s *Store) Get(ctx context.Context, id string) (*session.Record, error) {
	if id == "" {
		return nil, session.ErrInvalidID
	}

	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, session.StorageError("get", err)
	}
	rec := doc.record()
	if rec.Expired(s.now()) {
		return nil, nil
	}
	return rec, nil
}

// Set replaces the session document, inserting it when missing.
func (s *Store) Set(ctx context.Context, rec session.Record) error {
	if rec.ID == "" {
		return session.ErrInvalidID
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, toDocument(rec), options.Replace().SetUpsert(true))
	if err != nil {
		return session.StorageError("set", err)
	}
	return nil
}

// IncrementRequests bumps the usage counter. Without upsert an unknown id
// matches nothing.
func (s *Store) IncrementRequests(ctx context.Context, id string) error {
	if id == "" {
		return session.ErrInvalidID
	}
	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"requests": 1}}); err != nil {
		return session.StorageError("increment", err)
	}
	return nil
}

// Healthcheck pings the deployment behind the collection.
func (s *Store) Healthcheck(ctx context.Context) error {
	return Healthcheck(s.coll.Database().Client())(ctx)
}
