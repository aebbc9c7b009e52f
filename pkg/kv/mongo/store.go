package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/enteocode/mfa/pkg/kv"
)

type document struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// Store implements kv.Store on a single collection.
type Store struct {
	coll *mongo.Collection
}

var _ kv.Store = (*Store)(nil)

// New wraps coll as a kv.Store.
func New(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	n, err := s.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: key}}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return n > 0, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	var doc document
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	if doc.Value == nil {
		doc.Value = []byte{}
	}
	return doc.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: key}},
		document{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return res.DeletedCount > 0, nil
}
