package res

import "go.mongodb.org/mongo-driver/mongo"

type InsertAck struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateAck struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func NewInsertAck(result *mongo.InsertOneResult) *InsertAck {
	return &InsertAck{
		Acknowledged: true,
		InsertedID:   result.InsertedID,
	}
}

func NewUpdateAck(result *mongo.UpdateResult) *UpdateAck {
	return &UpdateAck{
		Acknowledged:  true,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedID:    result.UpsertedID,
	}
}

func NewDeleteAck(result *mongo.DeleteResult) *DeleteAck {
	return &DeleteAck{
		Acknowledged: true,
		DeletedCount: result.DeletedCount,
	}
}
