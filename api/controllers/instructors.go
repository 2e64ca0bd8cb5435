package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAcademix/services"
	"github.com/gin-gonic/gin"
)

type InstructorsController struct {
	instructorService *services.InstructorsService
}

func (instructors *InstructorsController) GetInstructors(c *gin.Context) {
	data, err := instructors.instructorService.GetInstructors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func NewInstructorsController(s *services.Services) *InstructorsController {
	return &InstructorsController{
		instructorService: s.Instructors,
	}
}
