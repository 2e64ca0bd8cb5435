package models

import "go.mongodb.org/mongo-driver/mongo"

const INSTRUCTORS_COLLECTION = "instructors"

type InstructorModel struct {
	model
}

func NewInstructorModel(database *mongo.Database) Collection {
	return &InstructorModel{
		model: model{
			CollectionName: INSTRUCTORS_COLLECTION,
			database:       database,
		},
	}
}
