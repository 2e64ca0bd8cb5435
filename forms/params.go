package forms

import "go.mongodb.org/mongo-driver/bson/primitive"

// IDParam binds /:id path segments. ObjectID rejects anything that is not a
// 24 char hex ObjectID before it reaches the store.
type IDParam struct {
	ID string `uri:"id" binding:"required" example:"637d5de216f58bc8ec7f7f51"`
}

func (p *IDParam) ObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(p.ID)
}

type EmailQuery struct {
	Email string `form:"email"`
}

type RequiredEmailQuery struct {
	Email string `form:"email" binding:"required"`
}

type LimitQuery struct {
	Limit *int64 `form:"limit" binding:"omitempty,min=1"`
}

type SearchQuery struct {
	Q string `form:"q" binding:"required,min=1,max=100"`
}

type ExportQuery struct {
	Email  string `form:"email" binding:"required"`
	Format string `form:"format" binding:"omitempty,exportFormat"`
}
