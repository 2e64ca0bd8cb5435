package services

import (
	"context"
	"errors"

	"github.com/CPU-commits/Intranet_BAcademix/forms"
	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const COURSE_NOT_FOUND = "Course not found"
const COURSE_NOT_CHANGED = "Course not found or no changes made"

type CoursesService struct {
	courseModel models.Collection
	search      *SearchService
	events      *eventPublisher
	logger      *zap.Logger
}

func idToString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if s, ok := id.(string); ok {
		return s
	}
	return ""
}

func (c *CoursesService) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]bson.M, *res.ErrorRes) {
	cursor, err := c.courseModel.GetAll(ctx, filter, opts)
	if err != nil {
		return nil, res.ServerError(err)
	}
	courses := make([]bson.M, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, res.ServerError(err)
	}
	return courses, nil
}

// GetCourses returns every course, or only the ones of an instructor when
// email is not empty.
func (c *CoursesService) GetCourses(ctx context.Context, email string) ([]bson.M, *res.ErrorRes) {
	filter := bson.D{}
	if email != "" {
		filter = bson.D{{
			Key:   "instructor_email",
			Value: email,
		}}
	}
	return c.find(ctx, filter, nil)
}

// GetCoursesLimited is unbounded when limit is nil.
func (c *CoursesService) GetCoursesLimited(ctx context.Context, limit *int64) ([]bson.M, *res.ErrorRes) {
	opts := options.Find()
	if limit != nil {
		opts.SetLimit(*limit)
	}
	return c.find(ctx, bson.D{}, opts)
}

func (c *CoursesService) GetCourse(ctx context.Context, id primitive.ObjectID) (bson.M, *res.ErrorRes) {
	var course bson.M

	cursor := c.courseModel.GetByID(ctx, id)
	if err := cursor.Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, res.NotFound(COURSE_NOT_FOUND)
		}
		return nil, res.ServerError(err)
	}
	return course, nil
}

func (c *CoursesService) NewCourse(ctx context.Context, course bson.M) (*res.InsertAck, *res.ErrorRes) {
	inserted, err := c.courseModel.NewDocument(ctx, course)
	if err != nil {
		return nil, res.ServerError(err)
	}
	id := idToString(inserted.InsertedID)
	if oid, ok := inserted.InsertedID.(primitive.ObjectID); ok {
		course["_id"] = oid
	}
	c.search.IndexCourse(ctx, id, course)
	c.events.publishChange(models.COURSE_COLLECTION, res.CREATED, id)

	return res.NewInsertAck(inserted), nil
}

func (c *CoursesService) UpdateCourse(
	ctx context.Context,
	id primitive.ObjectID,
	courseData *forms.CourseUpdateForm,
) (*res.UpdateAck, *res.ErrorRes) {
	set := courseData.ToSet()
	if len(set) == 0 {
		return nil, res.NotFound(COURSE_NOT_CHANGED)
	}
	result, err := c.courseModel.UpdateByID(ctx, id, bson.D{{
		Key:   "$set",
		Value: set,
	}})
	if err != nil {
		return nil, res.ServerError(err)
	}
	if result.ModifiedCount == 0 {
		return nil, res.NotFound(COURSE_NOT_CHANGED)
	}
	if c.search.Enabled() {
		if course, errRes := c.GetCourse(ctx, id); errRes == nil {
			c.search.IndexCourse(ctx, id.Hex(), course)
		} else {
			c.logger.Warn("reload course for index", zap.Error(errRes))
		}
	}
	c.events.publishChange(models.COURSE_COLLECTION, res.UPDATED, id.Hex())

	return res.NewUpdateAck(result), nil
}

func (c *CoursesService) DeleteCourse(ctx context.Context, id primitive.ObjectID) (*res.DeleteAck, *res.ErrorRes) {
	result, err := c.courseModel.DeleteByID(ctx, id)
	if err != nil {
		return nil, res.ServerError(err)
	}
	if result.DeletedCount > 0 {
		c.search.RemoveCourse(ctx, id.Hex())
		c.events.publishChange(models.COURSE_COLLECTION, res.DELETED, id.Hex())
	}
	return res.NewDeleteAck(result), nil
}

// ReindexCourses pushes every stored course to the search index.
func (c *CoursesService) ReindexCourses(ctx context.Context) *res.ErrorRes {
	if !c.search.Enabled() {
		return nil
	}
	courses, errRes := c.find(ctx, bson.D{}, nil)
	if errRes != nil {
		return errRes
	}
	return c.search.Reindex(ctx, courses)
}

func NewCoursesService(
	courseModel models.Collection,
	search *SearchService,
	events *eventPublisher,
	logger *zap.Logger,
) *CoursesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if search == nil {
		search = NewSearchService(nil, logger)
	}
	return &CoursesService{
		courseModel: courseModel,
		search:      search,
		events:      events,
		logger:      logger,
	}
}
