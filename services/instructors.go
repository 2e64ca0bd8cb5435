package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BAcademix/models"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"go.mongodb.org/mongo-driver/bson"
)

type InstructorsService struct {
	instructorModel models.Collection
}

func (i *InstructorsService) GetInstructors(ctx context.Context) ([]bson.M, *res.ErrorRes) {
	cursor, err := i.instructorModel.GetAll(ctx, bson.D{}, nil)
	if err != nil {
		return nil, res.ServerError(err)
	}
	instructors := make([]bson.M, 0)
	if err := cursor.All(ctx, &instructors); err != nil {
		return nil, res.ServerError(err)
	}
	return instructors, nil
}

func NewInstructorsService(instructorModel models.Collection) *InstructorsService {
	return &InstructorsService{
		instructorModel: instructorModel,
	}
}
