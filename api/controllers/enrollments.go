package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/CPU-commits/Intranet_BAcademix/forms"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/services"
	"github.com/gin-gonic/gin"
)

const XLSX_CONTENT_TYPE = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EnrollmentsController struct {
	enrollmentService *services.EnrollmentsService
}

// GetEnrollments godoc
// @Summary     Get enrollments
// @Description Get the enrollments of a user joined with their course
// @Tags        enrollments
// @Produce     json
// @Param       email query    string true "User email"
// @Success     200   {array}  object
// @Failure     500   {object} res.Response{} "Server Error"
// @Router      /enrollments [get]
func (enrollments *EnrollmentsController) GetEnrollments(c *gin.Context) {
	var query forms.EmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Bad query param"))
		return
	}
	data, err := enrollments.enrollmentService.GetEnrollments(c.Request.Context(), query.Email)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetPopularCourses godoc
// @Summary     Get popular courses
// @Description Top 6 courses of the user ranked by total enrollments
// @Tags        enrollments
// @Produce     json
// @Param       email query    string true "User email"
// @Success     200   {array}  object
// @Failure     400   {object} res.Response{} "Email is required"
// @Failure     500   {object} res.Response{} "Server Error"
// @Router      /api/my-popular-courses [get]
func (enrollments *EnrollmentsController) GetPopularCourses(c *gin.Context) {
	var query forms.RequiredEmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Email is required"))
		return
	}
	courses, err := enrollments.enrollmentService.GetPopularCourses(c.Request.Context(), query.Email)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (enrollments *EnrollmentsController) ExportEnrollments(c *gin.Context) {
	var query forms.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Email is required and format must be xlsx or pdf"))
		return
	}
	if query.Format == "" {
		query.Format = services.EXPORT_XLSX
	}
	rows, errRes := enrollments.enrollmentService.GetEnrollmentRows(c.Request.Context(), query.Email)
	if errRes != nil {
		c.Error(errRes)
		return
	}

	var buf bytes.Buffer
	contentType := XLSX_CONTENT_TYPE
	var err error
	if query.Format == services.EXPORT_PDF {
		contentType = "application/pdf"
		err = services.ExportEnrollmentsPdf(query.Email, rows, &buf)
	} else {
		err = services.ExportEnrollmentsXlsx(query.Email, rows, &buf)
	}
	if err != nil {
		c.Error(res.ServerError(err))
		return
	}
	c.Header(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=enrollments.%s", query.Format),
	)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (enrollments *EnrollmentsController) Enroll(c *gin.Context) {
	enrollment, errRes := bindDocument(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	ack, errRes := enrollments.enrollmentService.Enroll(c.Request.Context(), enrollment)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (enrollments *EnrollmentsController) DeleteEnrollment(c *gin.Context) {
	id, errRes := bindID(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	ack, errRes := enrollments.enrollmentService.DeleteEnrollment(c.Request.Context(), id)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func NewEnrollmentsController(s *services.Services) *EnrollmentsController {
	return &EnrollmentsController{
		enrollmentService: s.Enrollments,
	}
}
