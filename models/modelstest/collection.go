// Package modelstest serves models.Collection from memory for service and
// router tests.
package modelstest

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotStubbed = errors.New("modelstest: call not stubbed")

// Collection answers each call with its matching Fn. A nil Fn fails the call
// with ErrNotStubbed.
type Collection struct {
	FindFn      func(filter bson.D, opts *options.FindOptions) ([]interface{}, error)
	FindOneFn   func(filter bson.D) (interface{}, error)
	AggregateFn func(pipeline mongo.Pipeline) ([]interface{}, error)
	InsertFn    func(data interface{}) (interface{}, error)
	UpdateFn    func(id primitive.ObjectID, update interface{}) (*mongo.UpdateResult, error)
	DeleteFn    func(id primitive.ObjectID) (*mongo.DeleteResult, error)
}

func (c *Collection) Use() *mongo.Collection {
	return nil
}

func cursor(documents []interface{}, err error) (*mongo.Cursor, error) {
	if err != nil {
		return nil, err
	}
	if documents == nil {
		documents = []interface{}{}
	}
	return mongo.NewCursorFromDocuments(documents, nil, nil)
}

func (c *Collection) GetByID(ctx context.Context, id primitive.ObjectID) *mongo.SingleResult {
	return c.GetOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (c *Collection) GetOne(ctx context.Context, filter bson.D) *mongo.SingleResult {
	if c.FindOneFn == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, ErrNotStubbed, nil)
	}
	document, err := c.FindOneFn(filter)
	if err != nil || document == nil {
		if err == nil {
			err = mongo.ErrNoDocuments
		}
		return mongo.NewSingleResultFromDocument(bson.D{}, err, nil)
	}
	return mongo.NewSingleResultFromDocument(document, nil, nil)
}

func (c *Collection) GetAll(ctx context.Context, filter bson.D, opts *options.FindOptions) (*mongo.Cursor, error) {
	if c.FindFn == nil {
		return nil, ErrNotStubbed
	}
	return cursor(c.FindFn(filter, opts))
}

func (c *Collection) Aggregate(ctx context.Context, pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	if c.AggregateFn == nil {
		return nil, ErrNotStubbed
	}
	return cursor(c.AggregateFn(pipeline))
}

func (c *Collection) NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error) {
	if c.InsertFn == nil {
		return nil, ErrNotStubbed
	}
	id, err := c.InsertFn(data)
	if err != nil {
		return nil, err
	}
	return &mongo.InsertOneResult{InsertedID: id}, nil
}

func (c *Collection) UpdateByID(ctx context.Context, id primitive.ObjectID, update interface{}) (*mongo.UpdateResult, error) {
	if c.UpdateFn == nil {
		return nil, ErrNotStubbed
	}
	return c.UpdateFn(id, update)
}

func (c *Collection) DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	if c.DeleteFn == nil {
		return nil, ErrNotStubbed
	}
	return c.DeleteFn(id)
}
