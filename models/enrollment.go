package models

import (
	"go.mongodb.org/mongo-driver/mongo"
)

const ENROLLMENTS_COLLECTION = "enrollments"

// EnrollmentWithCourse is one row of the enrollment/course join. Every field
// keeps whatever type the client stored.
type EnrollmentWithCourse struct {
	ID               interface{} `json:"_id" bson:"_id"`
	UserEmail        interface{} `json:"userEmail" bson:"userEmail"`
	CourseID         interface{} `json:"courseId" bson:"courseId"`
	EnrolledAt       interface{} `json:"enrolledAt" bson:"enrolledAt"`
	Title            interface{} `json:"title" bson:"title"`
	Image            interface{} `json:"image" bson:"image"`
	InstructorName   interface{} `json:"instructorName" bson:"instructorName"`
	Category         interface{} `json:"category" bson:"category"`
	Level            interface{} `json:"level" bson:"level"`
	Duration         interface{} `json:"duration" bson:"duration"`
	Seats            interface{} `json:"seats" bson:"seats"`
	EnrolledCount    interface{} `json:"enrolledCount" bson:"enrolledCount"`
	ShortDescription interface{} `json:"shortDescription" bson:"shortDescription"`
}

type EnrollmentModel struct {
	model
}

func NewEnrollmentModel(database *mongo.Database) Collection {
	return &EnrollmentModel{
		model: model{
			CollectionName: ENROLLMENTS_COLLECTION,
			database:       database,
		},
	}
}
