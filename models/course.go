package models

import (
	"github.com/CPU-commits/Intranet_BAcademix/db"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/mongo"
)

const COURSE_COLLECTION = "course"
const COURSES_INDEX = "courses"

// ElasticSearch Struct - Course content, read straight out of the stored course document, other fields are skipped.
type ContentCourse struct {
	Title               string `json:"title" bson:"title"`
	ShortDescription    string `json:"shortDescription" bson:"shortDescription"`
	DetailedDescription string `json:"detailedDescription" bson:"detailedDescription"`
	Category            string `json:"category" bson:"category"`
	Level               string `json:"level" bson:"level"`
	InstructorName      string `json:"instructorName" bson:"instructorName"`
	InstructorEmail     string `json:"instructor_email" bson:"instructor_email"`
}

type CourseModel struct {
	model
}

func NewCourseModel(database *mongo.Database) Collection {
	return &CourseModel{
		model: model{
			CollectionName: COURSE_COLLECTION,
			database:       database,
		},
	}
}

// ElastichSearch Bulk
func NewBulkCourse(es *elasticsearch.Client) (esutil.BulkIndexer, error) {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         COURSES_INDEX,
		Client:        es,
		NumWorkers:    db.NUM_WORKERS,
		FlushBytes:    int(db.FLUSH_BYTES),
		FlushInterval: db.FLUSH_INTERVAL,
	})
	if err != nil {
		return nil, err
	}
	return bi, nil
}
