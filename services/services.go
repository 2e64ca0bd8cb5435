package services

import (
	"encoding/json"
	"fmt"

	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/stack"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Services groups every service built on one database handle.
type Services struct {
	Courses     *CoursesService
	Enrollments *EnrollmentsService
	Instructors *InstructorsService
	Search      *SearchService
	Images      *ImagesService
}

type Deps struct {
	Database *mongo.Database
	Search   *SearchService
	Images   *ImagesService
	Nats     *stack.Nats
	Logger   *zap.Logger
}

func NewServices(deps Deps) *Services {
	courseModel := models.NewCourseModel(deps.Database)
	enrollmentModel := models.NewEnrollmentModel(deps.Database)
	instructorModel := models.NewInstructorModel(deps.Database)

	search := deps.Search
	if search == nil {
		search = NewSearchService(nil, deps.Logger)
	}
	images := deps.Images
	if images == nil {
		images = NewImagesService(nil)
	}
	events := newEventPublisher(deps.Nats, deps.Logger)

	return &Services{
		Courses:     NewCoursesService(courseModel, search, events, deps.Logger),
		Enrollments: NewEnrollmentsService(enrollmentModel, events),
		Instructors: NewInstructorsService(instructorModel),
		Search:      search,
		Images:      images,
	}
}

func formatRequestToNats(data interface{}) ([]byte, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	request := make(map[string]interface{})
	request["id"] = id.String()
	if data != nil {
		request["data"] = data
	}
	jsonMarshal, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	return jsonMarshal, nil
}

type eventPublisher struct {
	nats   *stack.Nats
	logger *zap.Logger
}

func newEventPublisher(nats *stack.Nats, logger *zap.Logger) *eventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventPublisher{
		nats:   nats,
		logger: logger,
	}
}

// Fire and forget, a failed publish never fails the write it reports.
func (e *eventPublisher) publishChange(collection, operation, documentID string) {
	if e == nil || !e.nats.Enabled() {
		return
	}
	data, err := formatRequestToNats(res.ChangeEvent{
		Collection: collection,
		Operation:  operation,
		DocumentID: documentID,
	})
	if err != nil {
		e.logger.Error("format change event", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("academix.%s.%s", collection, operation)
	if err := e.nats.Publish(subject, data); err != nil {
		e.logger.Warn(
			"publish change event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
