package forms

import "go.mongodb.org/mongo-driver/bson"

// CourseUpdateForm holds the allow-listed fields of a course update. A nil
// field was absent from the body and is left untouched.
type CourseUpdateForm struct {
	Title               *interface{} `json:"title"`
	DetailedDescription *interface{} `json:"detailedDescription"`
	InstructorName      *interface{} `json:"instructorName"`
	Duration            *interface{} `json:"duration"`
	Image               *interface{} `json:"image"`
}

func (f *CourseUpdateForm) ToSet() bson.D {
	set := bson.D{}
	if f.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *f.Title})
	}
	if f.DetailedDescription != nil {
		set = append(set, bson.E{Key: "detailedDescription", Value: *f.DetailedDescription})
	}
	if f.InstructorName != nil {
		set = append(set, bson.E{Key: "instructorName", Value: *f.InstructorName})
	}
	if f.Duration != nil {
		set = append(set, bson.E{Key: "duration", Value: *f.Duration})
	}
	if f.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *f.Image})
	}
	return set
}
