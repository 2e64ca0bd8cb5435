package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const POPULAR_LIMIT = 6

func getGroupByCourse() bson.D {
	return bson.D{{
		Key: "$group",
		Value: bson.M{
			"_id": "$courseId",
			// Not read by any later stage
			"userEnrollCount": bson.M{
				"$sum": 1,
			},
		},
	}}
}

func getLookupAllEnrollments() bson.D {
	return bson.D{{
		Key: "$lookup",
		Value: bson.M{
			"from":         models.ENROLLMENTS_COLLECTION,
			"localField":   "_id",
			"foreignField": "courseId",
			"as":           "allEnrollments",
		},
	}}
}

func getAddTotalEnrollCount() bson.D {
	return bson.D{{
		Key: "$addFields",
		Value: bson.M{
			"totalEnrollCount": bson.M{
				"$size": "$allEnrollments",
			},
		},
	}}
}

func getSortByTotal() bson.D {
	return bson.D{{
		Key: "$sort",
		Value: bson.D{
			{Key: "totalEnrollCount", Value: -1},
			{Key: "_id", Value: 1},
		},
	}}
}

func getLimit(limit int64) bson.D {
	return bson.D{{
		Key:   "$limit",
		Value: limit,
	}}
}

func getProjectPopular() bson.D {
	return bson.D{{
		Key: "$project",
		Value: bson.M{
			"_id":              "$course._id",
			"title":            "$course.title",
			"image":            "$course.image",
			"shortDescription": "$course.shortDescription",
			"category":         "$course.category",
			"level":            "$course.level",
			"duration":         "$course.duration",
			"instructor_email": "$course.instructor_email",
			"seats":            "$course.seats",
			"enrolledCount":    "$course.enrolledCount",
			"totalEnrollCount": 1,
		},
	}}
}

func popularCoursesPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		getMatchUser(email),
		getGroupByCourse(),
		getLookupAllEnrollments(),
		getAddTotalEnrollCount(),
		getSortByTotal(),
		getLimit(POPULAR_LIMIT),
		getAddCourseObjectID("$_id"),
		getLookupCourse(),
		getUnwindCourse(),
		getProjectPopular(),
	}
}

// GetPopularCourses ranks the courses the user enrolled in by how many
// enrollments, from any user, each of them has.
// Rows stay bson.M, stored courses carry any field types.
func (e *EnrollmentsService) GetPopularCourses(ctx context.Context, email string) ([]bson.M, *res.ErrorRes) {
	cursor, err := e.enrollmentModel.Aggregate(ctx, popularCoursesPipeline(email))
	if err != nil {
		return nil, res.ServerError(err)
	}
	courses := make([]bson.M, 0, POPULAR_LIMIT)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, res.ServerError(err)
	}
	return courses, nil
}
