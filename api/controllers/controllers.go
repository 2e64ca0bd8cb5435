package controllers

import (
	"github.com/CPU-commits/Intranet_BAcademix/forms"
	"github.com/CPU-commits/Intranet_BAcademix/res"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const INVALID_ID = "Invalid id"

func bindID(c *gin.Context) (primitive.ObjectID, *res.ErrorRes) {
	var params forms.IDParam
	if err := c.ShouldBindUri(&params); err != nil {
		return primitive.NilObjectID, res.BadRequest(err, INVALID_ID)
	}
	id, err := params.ObjectID()
	if err != nil {
		return primitive.NilObjectID, res.BadRequest(err, INVALID_ID)
	}
	return id, nil
}

// bindDocument reads the body as a schemaless document, stored as sent.
func bindDocument(c *gin.Context) (bson.M, *res.ErrorRes) {
	var document bson.M
	if err := c.ShouldBindJSON(&document); err != nil {
		return nil, res.BadRequest(err, "Body must be a JSON object")
	}
	if document == nil {
		document = bson.M{}
	}
	return document, nil
}
