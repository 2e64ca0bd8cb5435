package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection interface {
	Use() *mongo.Collection
	GetByID(ctx context.Context, id primitive.ObjectID) *mongo.SingleResult
	GetOne(ctx context.Context, filter bson.D) *mongo.SingleResult
	GetAll(ctx context.Context, filter bson.D, options *options.FindOptions) (*mongo.Cursor, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) (*mongo.Cursor, error)
	NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, update interface{}) (*mongo.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error)
}

// model binds a collection name to the database handed in at startup.
type model struct {
	CollectionName string
	database       *mongo.Database
}

func (m *model) Use() *mongo.Collection {
	return m.database.Collection(m.CollectionName)
}

func (m *model) GetByID(ctx context.Context, id primitive.ObjectID) *mongo.SingleResult {
	cursor := m.Use().FindOne(ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
	return cursor
}

func (m *model) GetOne(ctx context.Context, filter bson.D) *mongo.SingleResult {
	cursor := m.Use().FindOne(ctx, filter)
	return cursor
}

func (m *model) GetAll(ctx context.Context, filter bson.D, options *options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := m.Use().Find(ctx, filter, options)
	return cursor, err
}

func (m *model) Aggregate(ctx context.Context, pipeline mongo.Pipeline) (*mongo.Cursor, error) {
	cursor, err := m.Use().Aggregate(ctx, pipeline)
	return cursor, err
}

func (m *model) NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error) {
	result, err := m.Use().InsertOne(ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *model) UpdateByID(ctx context.Context, id primitive.ObjectID, update interface{}) (*mongo.UpdateResult, error) {
	return m.Use().UpdateByID(ctx, id, update)
}

func (m *model) DeleteByID(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	return m.Use().DeleteOne(ctx, bson.D{
		{
			Key:   "_id",
			Value: id,
		},
	})
}
