package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Course fields copied onto each enrollment by the join.
var enrollmentCourseFields = []string{
	"title",
	"image",
	"instructorName",
	"category",
	"level",
	"duration",
	"seats",
	"enrolledCount",
	"shortDescription",
}

type EnrollmentsService struct {
	enrollmentModel models.Collection
	events          *eventPublisher
}

func getMatchUser(email string) bson.D {
	return bson.D{{
		Key: "$match",
		Value: bson.M{
			"userEmail": email,
		},
	}}
}

// courseId is whatever the client stored. Valid hex strings become
// ObjectIDs, anything else is kept so string ids still compare.
func getAddCourseObjectID(field string) bson.D {
	return bson.D{{
		Key: "$addFields",
		Value: bson.M{
			"courseObjectId": bson.M{
				"$convert": bson.M{
					"input":   field,
					"to":      "objectId",
					"onError": field,
					"onNull":  nil,
				},
			},
		},
	}}
}

func getLookupCourse() bson.D {
	return bson.D{{
		Key: "$lookup",
		Value: bson.M{
			"from":         models.COURSE_COLLECTION,
			"localField":   "courseObjectId",
			"foreignField": "_id",
			"as":           "course",
		},
	}}
}

// No preserveNullAndEmptyArrays: rows without a course are dropped.
func getUnwindCourse() bson.D {
	return bson.D{{
		Key:   "$unwind",
		Value: "$course",
	}}
}

func getAddCourseFields() bson.D {
	fields := bson.M{}
	for _, field := range enrollmentCourseFields {
		fields[field] = "$course." + field
	}
	return bson.D{{
		Key:   "$addFields",
		Value: fields,
	}}
}

func getProjectJoinHelpers() bson.D {
	return bson.D{{
		Key: "$project",
		Value: bson.M{
			"course":         0,
			"courseObjectId": 0,
		},
	}}
}

func enrollmentsWithCoursePipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		getMatchUser(email),
		getAddCourseObjectID("$courseId"),
		getLookupCourse(),
		getUnwindCourse(),
		getAddCourseFields(),
		getProjectJoinHelpers(),
	}
}

// GetEnrollments joins each enrollment of the user with its course.
func (e *EnrollmentsService) GetEnrollments(ctx context.Context, email string) ([]bson.M, *res.ErrorRes) {
	cursor, err := e.enrollmentModel.Aggregate(ctx, enrollmentsWithCoursePipeline(email))
	if err != nil {
		return nil, res.ServerError(err)
	}
	enrollments := make([]bson.M, 0)
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, res.ServerError(err)
	}
	return enrollments, nil
}

func (e *EnrollmentsService) GetEnrollmentRows(
	ctx context.Context,
	email string,
) ([]models.EnrollmentWithCourse, *res.ErrorRes) {
	cursor, err := e.enrollmentModel.Aggregate(ctx, enrollmentsWithCoursePipeline(email))
	if err != nil {
		return nil, res.ServerError(err)
	}
	rows := make([]models.EnrollmentWithCourse, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, res.ServerError(err)
	}
	return rows, nil
}

func (e *EnrollmentsService) Enroll(ctx context.Context, enrollment bson.M) (*res.InsertAck, *res.ErrorRes) {
	inserted, err := e.enrollmentModel.NewDocument(ctx, enrollment)
	if err != nil {
		return nil, res.ServerError(err)
	}
	e.events.publishChange(models.ENROLLMENTS_COLLECTION, res.CREATED, idToString(inserted.InsertedID))
	return res.NewInsertAck(inserted), nil
}

func (e *EnrollmentsService) DeleteEnrollment(ctx context.Context, id primitive.ObjectID) (*res.DeleteAck, *res.ErrorRes) {
	result, err := e.enrollmentModel.DeleteByID(ctx, id)
	if err != nil {
		return nil, res.ServerErrorMessage(err, "Failed to delete enrollment")
	}
	if result.DeletedCount > 0 {
		e.events.publishChange(models.ENROLLMENTS_COLLECTION, res.DELETED, id.Hex())
	}
	return res.NewDeleteAck(result), nil
}

func NewEnrollmentsService(enrollmentModel models.Collection, events *eventPublisher) *EnrollmentsService {
	return &EnrollmentsService{
		enrollmentModel: enrollmentModel,
		events:          events,
	}
}
