package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	controllers "github.com/CPU-commits/Intranet_BAcademix/api/controllers"
	"github.com/CPU-commits/Intranet_BAcademix/models/modelstest"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/CPU-commits/Intranet_BAcademix/services"
	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEnv struct {
	courses     *modelstest.Collection
	enrollments *modelstest.Collection
	instructors *modelstest.Collection
	config      RouterConfig
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		courses:     &modelstest.Collection{},
		enrollments: &modelstest.Collection{},
		instructors: &modelstest.Collection{},
	}
	env.config = RouterConfig{
		Services: &services.Services{
			Courses:     services.NewCoursesService(env.courses, nil, nil, nil),
			Enrollments: services.NewEnrollmentsService(env.enrollments, nil),
			Instructors: services.NewInstructorsService(env.instructors),
			Search:      services.NewSearchService(nil, nil),
			Images:      services.NewImagesService(nil),
		},
	}
	return env
}

func (env *testEnv) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	NewHandler(env.config).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) res.Response {
	t.Helper()
	var response res.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("error body is not json: %v\n%s", err, rec.Body.String())
	}
	if response.Success {
		t.Fatalf("error body reports success: %s", rec.Body.String())
	}
	return response
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

func TestLiveness(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != LIVENESS_MESSAGE {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv()
	env.config.Ping = func(context.Context) error { return nil }
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	expectStatus(t, rec, http.StatusOK)
	var health res.Response
	json.Unmarshal(rec.Body.Bytes(), &health)
	if diff := cmp.Diff(map[string]interface{}{
		"database": "up",
		"search":   false,
		"images":   false,
	}, health.Data); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}

	env.config.Ping = func(context.Context) error { return errors.New("no reachable servers") }
	rec = env.do(t, http.MethodGet, "/healthz", nil)
	expectStatus(t, rec, http.StatusServiceUnavailable)
	if response := decodeError(t, rec); response.Message != "Database unavailable" {
		t.Fatalf("message = %q", response.Message)
	}
}

func TestGetCourses(t *testing.T) {
	env := newTestEnv()
	var filter bson.D
	env.courses.FindFn = func(f bson.D, _ *options.FindOptions) ([]interface{}, error) {
		filter = f
		return []interface{}{bson.M{"title": "Intro to Go", "seats": 40.0}}, nil
	}
	rec := env.do(t, http.MethodGet, "/courses?email=ana@academix.dev", nil)
	expectStatus(t, rec, http.StatusOK)

	var courses []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &courses); err != nil {
		t.Fatalf("body is not an array: %v", err)
	}
	if len(courses) != 1 || courses[0]["title"] != "Intro to Go" {
		t.Fatalf("courses = %v", courses)
	}
	if diff := cmp.Diff(bson.D{{Key: "instructor_email", Value: "ana@academix.dev"}}, filter); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCoursesEmptyArray(t *testing.T) {
	env := newTestEnv()
	env.courses.FindFn = func(bson.D, *options.FindOptions) ([]interface{}, error) {
		return nil, nil
	}
	rec := env.do(t, http.MethodGet, "/courses", nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestGetCoursesLimited(t *testing.T) {
	env := newTestEnv()
	var limit *int64
	env.courses.FindFn = func(_ bson.D, opts *options.FindOptions) ([]interface{}, error) {
		limit = opts.Limit
		return nil, nil
	}
	expectStatus(t, env.do(t, http.MethodGet, "/api/courses?limit=2", nil), http.StatusOK)
	if limit == nil || *limit != 2 {
		t.Fatalf("limit = %v", limit)
	}
	expectStatus(t, env.do(t, http.MethodGet, "/api/courses?limit=0", nil), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, "/api/courses?limit=many", nil), http.StatusBadRequest)
}

func TestCourseDetails(t *testing.T) {
	env := newTestEnv()
	id := primitive.NewObjectID()
	env.courses.FindOneFn = func(filter bson.D) (interface{}, error) {
		if filter[0].Value == id {
			return bson.M{"_id": id, "title": "Intro to Go"}, nil
		}
		return nil, nil
	}

	rec := env.do(t, http.MethodGet, "/courseDetails/"+id.Hex(), nil)
	expectStatus(t, rec, http.StatusOK)
	var course map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &course)
	if course["_id"] != id.Hex() {
		t.Fatalf("course = %v", course)
	}

	rec = env.do(t, http.MethodGet, "/courseDetails/"+primitive.NewObjectID().Hex(), nil)
	expectStatus(t, rec, http.StatusNotFound)
	if response := decodeError(t, rec); response.Message != services.COURSE_NOT_FOUND {
		t.Fatalf("message = %q", response.Message)
	}

	rec = env.do(t, http.MethodGet, "/courseDetails/not-an-id", nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if response := decodeError(t, rec); response.Message != "Invalid id" {
		t.Fatalf("message = %q", response.Message)
	}
}

func TestNewCourse(t *testing.T) {
	env := newTestEnv()
	id := primitive.NewObjectID()
	var stored bson.M
	env.courses.InsertFn = func(data interface{}) (interface{}, error) {
		stored = data.(bson.M)
		return id, nil
	}

	rec := env.do(t, http.MethodPost, "/courses", strings.NewReader(`{"title":"Intro to Go","seats":40,"tags":["go"]}`))
	expectStatus(t, rec, http.StatusOK)
	var ack res.InsertAck
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if !ack.Acknowledged || ack.InsertedID != id.Hex() {
		t.Fatalf("ack = %+v", ack)
	}
	if stored["title"] != "Intro to Go" || stored["seats"] != 40.0 {
		t.Fatalf("stored = %v", stored)
	}

	rec = env.do(t, http.MethodPost, "/courses", strings.NewReader(`["not","an","object"]`))
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestNewCourseStoreFault(t *testing.T) {
	env := newTestEnv()
	env.courses.InsertFn = func(interface{}) (interface{}, error) {
		return nil, errors.New("not primary")
	}
	rec := env.do(t, http.MethodPost, "/courses", strings.NewReader(`{"title":"Go"}`))
	expectStatus(t, rec, http.StatusInternalServerError)
	response := decodeError(t, rec)
	if response.Message != "Server Error" || response.Error != "not primary" {
		t.Fatalf("response = %+v", response)
	}
}

func TestUpdateCourse(t *testing.T) {
	env := newTestEnv()
	id := primitive.NewObjectID()
	env.courses.UpdateFn = func(target primitive.ObjectID, _ interface{}) (*mongo.UpdateResult, error) {
		if target != id {
			return &mongo.UpdateResult{}, nil
		}
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	rec := env.do(t, http.MethodPut, "/courses/"+id.Hex(), strings.NewReader(`{"title":"Advanced Go"}`))
	expectStatus(t, rec, http.StatusOK)
	var ack res.UpdateAck
	json.Unmarshal(rec.Body.Bytes(), &ack)
	if ack.ModifiedCount != 1 {
		t.Fatalf("ack = %+v", ack)
	}

	var update interface{}
	env.courses.UpdateFn = func(target primitive.ObjectID, u interface{}) (*mongo.UpdateResult, error) {
		update = u
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	rec = env.do(t, http.MethodPut, "/courses/"+id.Hex(), strings.NewReader(`{"title":101}`))
	expectStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff(bson.D{{Key: "$set", Value: bson.D{{Key: "title", Value: 101.0}}}}, update); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}
	env.courses.UpdateFn = func(target primitive.ObjectID, _ interface{}) (*mongo.UpdateResult, error) {
		if target != id {
			return &mongo.UpdateResult{}, nil
		}
		return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	cases := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "missing course", target: primitive.NewObjectID().Hex(), body: `{"title":"x"}`, status: http.StatusNotFound},
		{name: "no allowed field", target: id.Hex(), body: `{"category":"x"}`, status: http.StatusNotFound},
		{name: "bad id", target: "123", body: `{"title":"x"}`, status: http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/courses/"+tc.target, strings.NewReader(tc.body))
			expectStatus(t, rec, tc.status)
			decodeError(t, rec)
		})
	}
}

func TestDeleteCourseMissing(t *testing.T) {
	env := newTestEnv()
	env.courses.DeleteFn = func(primitive.ObjectID) (*mongo.DeleteResult, error) {
		return &mongo.DeleteResult{}, nil
	}
	rec := env.do(t, http.MethodDelete, "/courses/"+primitive.NewObjectID().Hex(), nil)
	expectStatus(t, rec, http.StatusOK)
	if diff := cmp.Diff(`{"acknowledged":true,"deletedCount":0}`, rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestEnrollments(t *testing.T) {
	env := newTestEnv()
	env.enrollments.AggregateFn = func(pipeline mongo.Pipeline) ([]interface{}, error) {
		return []interface{}{bson.M{"userEmail": "ana@academix.dev", "title": "Intro to Go"}}, nil
	}
	env.enrollments.InsertFn = func(interface{}) (interface{}, error) {
		return primitive.NewObjectID(), nil
	}

	rec := env.do(t, http.MethodGet, "/enrollments?email=ana@academix.dev", nil)
	expectStatus(t, rec, http.StatusOK)
	var enrollments []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &enrollments)
	if len(enrollments) != 1 || enrollments[0]["title"] != "Intro to Go" {
		t.Fatalf("enrollments = %v", enrollments)
	}

	rec = env.do(t, http.MethodPost, "/enroll", strings.NewReader(`{"userEmail":"ana@academix.dev","courseId":"64b7f0f1a2b3c4d5e6f70812"}`))
	expectStatus(t, rec, http.StatusOK)
}

func TestPopularCoursesRequiresEmail(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/api/my-popular-courses", nil)
	expectStatus(t, rec, http.StatusBadRequest)
	if response := decodeError(t, rec); response.Message != "Email is required" {
		t.Fatalf("message = %q", response.Message)
	}
}

func TestPopularCourses(t *testing.T) {
	env := newTestEnv()
	env.enrollments.AggregateFn = func(mongo.Pipeline) ([]interface{}, error) {
		return []interface{}{bson.M{"title": "Intro to Go", "totalEnrollCount": int32(4)}}, nil
	}
	rec := env.do(t, http.MethodGet, "/api/my-popular-courses?email=ana@academix.dev", nil)
	expectStatus(t, rec, http.StatusOK)
	var courses []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &courses)
	if len(courses) != 1 || courses[0]["totalEnrollCount"] != 4.0 {
		t.Fatalf("courses = %v", courses)
	}
}

func TestDeleteEnrollment(t *testing.T) {
	env := newTestEnv()
	env.enrollments.DeleteFn = func(primitive.ObjectID) (*mongo.DeleteResult, error) {
		return nil, errors.New("write conflict")
	}
	rec := env.do(t, http.MethodDelete, "/api/my-enrollments/"+primitive.NewObjectID().Hex(), nil)
	expectStatus(t, rec, http.StatusInternalServerError)
	if response := decodeError(t, rec); response.Message != "Failed to delete enrollment" {
		t.Fatalf("message = %q", response.Message)
	}

	expectStatus(t, env.do(t, http.MethodDelete, "/api/my-enrollments/nope", nil), http.StatusBadRequest)
}

func TestExportEnrollments(t *testing.T) {
	env := newTestEnv()
	env.enrollments.AggregateFn = func(mongo.Pipeline) ([]interface{}, error) {
		return []interface{}{bson.M{"title": "Intro to Go", "duration": 12.0}}, nil
	}

	rec := env.do(t, http.MethodGet, "/api/my-enrollments/export?email=ana@academix.dev&format=pdf", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("content type = %s", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "enrollments.pdf") {
		t.Fatalf("disposition = %s", rec.Header().Get("Content-Disposition"))
	}

	rec = env.do(t, http.MethodGet, "/api/my-enrollments/export?email=ana@academix.dev", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Content-Type") != controllers.XLSX_CONTENT_TYPE {
		t.Fatalf("content type = %s", rec.Header().Get("Content-Type"))
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/my-enrollments/export?email=a&format=csv", nil), http.StatusBadRequest)
	expectStatus(t, env.do(t, http.MethodGet, "/api/my-enrollments/export", nil), http.StatusBadRequest)
}

func TestInstructors(t *testing.T) {
	env := newTestEnv()
	env.instructors.FindFn = func(bson.D, *options.FindOptions) ([]interface{}, error) {
		return []interface{}{bson.M{"name": "Ana"}, bson.M{"name": "José"}}, nil
	}
	rec := env.do(t, http.MethodGet, "/api/instructors", nil)
	expectStatus(t, rec, http.StatusOK)
	var instructors []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &instructors)
	if len(instructors) != 2 {
		t.Fatalf("instructors = %v", instructors)
	}
}

func TestOptionalBackendsUnavailable(t *testing.T) {
	env := newTestEnv()
	expectStatus(t, env.do(t, http.MethodGet, "/api/courses/search?q=go", nil), http.StatusServiceUnavailable)
	expectStatus(t, env.do(t, http.MethodGet, "/api/courses/search", nil), http.StatusBadRequest)
	// Missing image file
	expectStatus(t, env.do(t, http.MethodPost, "/courses/image", nil), http.StatusBadRequest)
}

func TestNoRoute(t *testing.T) {
	rec := newTestEnv().do(t, http.MethodGet, "/nope", nil)
	expectStatus(t, rec, http.StatusNotFound)
	decodeError(t, rec)
}

func TestRequestID(t *testing.T) {
	env := newTestEnv()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	NewHandler(env.config).ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "abc-123" {
		t.Fatalf("request id = %q", rec.Header().Get("X-Request-Id"))
	}

	rec = env.do(t, http.MethodGet, "/", nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("no request id generated")
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv()
	env.config.RateLimit = 1
	handler := NewHandler(env.config)

	statuses := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}
	if diff := cmp.Diff([]int{http.StatusOK, http.StatusTooManyRequests}, statuses); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestGzip(t *testing.T) {
	env := newTestEnv()
	env.courses.FindFn = func(bson.D, *options.FindOptions) ([]interface{}, error) {
		courses := make([]interface{}, 0, 100)
		for i := 0; i < 100; i++ {
			courses = append(courses, bson.M{"title": fmt.Sprintf("Course %d", i)})
		}
		return courses, nil
	}
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	NewHandler(env.config).ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("content encoding = %q", rec.Header().Get("Content-Encoding"))
	}
	reader, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	var courses []map[string]interface{}
	if err := json.NewDecoder(reader).Decode(&courses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(courses) != 100 {
		t.Fatalf("got %d courses", len(courses))
	}
}

func TestPanicRecovery(t *testing.T) {
	cases := []struct {
		name   string
		value  interface{}
		detail string
	}{
		{name: "string", value: "nil course", detail: "nil course"},
		{name: "error", value: errors.New("index out of range"), detail: "index out of range"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			core, logs := observer.New(zap.ErrorLevel)
			env.config.Logger = zap.New(core)
			router := NewRouter(env.config)
			router.GET("/panic", func(*gin.Context) {
				panic(tc.value)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
			expectStatus(t, rec, http.StatusInternalServerError)
			// One JSON document, nothing written before it
			response := decodeError(t, rec)
			if response.Message != "Server Internal Error" || response.Error != tc.detail {
				t.Fatalf("response = %+v", response)
			}
			recovered := logs.FilterMessage("[Recovery from panic]").All()
			if len(recovered) != 1 {
				t.Fatalf("expected one recovery log, got %d", len(recovered))
			}
			if _, ok := recovered[0].ContextMap()["stack"]; !ok {
				t.Fatal("recovery log has no stack")
			}
		})
	}
}
