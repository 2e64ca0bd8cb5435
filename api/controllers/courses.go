package controllers

import (
	"net/http"

	"github.com/CPU-commits/Intranet_BAcademix/forms"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/services"
	"github.com/gin-gonic/gin"
)

type CoursesController struct {
	courseService *services.CoursesService
	searchService *services.SearchService
	imageService  *services.ImagesService
}

// GetCourses godoc
// @Summary     Get courses
// @Description Get all courses, or the courses of an instructor
// @Tags        courses
// @Produce     json
// @Param       email query    string false "Instructor email"
// @Success     200   {array}  object
// @Failure     500   {object} res.Response{} "Server Error"
// @Router      /courses [get]
func (courses *CoursesController) GetCourses(c *gin.Context) {
	var query forms.EmailQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Bad query param"))
		return
	}
	data, err := courses.courseService.GetCourses(c.Request.Context(), query.Email)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetCoursesLimited godoc
// @Summary     Get courses
// @Description Get courses for the landing page, all of them unless limit is set
// @Tags        courses
// @Produce     json
// @Param       limit query    integer false "Limit"
// @Success     200   {array}  object
// @Failure     400   {object} res.Response{} "Bad query param"
// @Failure     500   {object} res.Response{} "Server Error"
// @Router      /api/courses [get]
func (courses *CoursesController) GetCoursesLimited(c *gin.Context) {
	var query forms.LimitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Limit must be a positive number"))
		return
	}
	data, err := courses.courseService.GetCoursesLimited(c.Request.Context(), query.Limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetCourse godoc
// @Summary     Get course
// @Tags        courses
// @Produce     json
// @Param       id  path     string true "MongoID"
// @Success     200 {object} object
// @Failure     400 {object} res.Response{} "Invalid id"
// @Failure     404 {object} res.Response{} "Course not found"
// @Failure     500 {object} res.Response{} "Server Error"
// @Router      /courseDetails/{id} [get]
func (courses *CoursesController) GetCourse(c *gin.Context) {
	id, errRes := bindID(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	course, errRes := courses.courseService.GetCourse(c.Request.Context(), id)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, course)
}

// Search godoc
// @Summary     Search courses
// @Tags        courses
// @Produce     json
// @Param       q   query    string true "Search"
// @Success     200 {object} object
// @Failure     400 {object} res.Response{} "Bad query param"
// @Failure     503 {object} res.Response{} "Search unavailable"
// @Router      /api/courses/search [get]
func (courses *CoursesController) Search(c *gin.Context) {
	var query forms.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(res.BadRequest(err, "Search is required"))
		return
	}
	hits, err := courses.searchService.Search(c.Request.Context(), query.Q)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, hits)
}

func (courses *CoursesController) NewCourse(c *gin.Context) {
	course, errRes := bindDocument(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	ack, errRes := courses.courseService.NewCourse(c.Request.Context(), course)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (courses *CoursesController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.Error(res.BadRequest(err, "Image is required"))
		return
	}
	location, errRes := courses.imageService.UploadCourseImage(c.Request.Context(), file)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image": location,
	})
}

// Only title, detailedDescription, instructorName, duration and image are applied.
func (courses *CoursesController) UpdateCourse(c *gin.Context) {
	var courseData forms.CourseUpdateForm

	id, errRes := bindID(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	if err := c.ShouldBindJSON(&courseData); err != nil {
		c.Error(res.BadRequest(err, "Invalid course data"))
		return
	}
	ack, errRes := courses.courseService.UpdateCourse(c.Request.Context(), id, &courseData)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (courses *CoursesController) DeleteCourse(c *gin.Context) {
	id, errRes := bindID(c)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	ack, errRes := courses.courseService.DeleteCourse(c.Request.Context(), id)
	if errRes != nil {
		c.Error(errRes)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func NewCoursesController(s *services.Services) *CoursesController {
	return &CoursesController{
		courseService: s.Courses,
		searchService: s.Search,
		imageService:  s.Images,
	}
}
