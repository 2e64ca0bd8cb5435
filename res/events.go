package res

const (
	CREATED = "created"
	UPDATED = "updated"
	DELETED = "deleted"
)

type ChangeEvent struct {
	Collection string `json:"collection"`
	Operation  string `json:"operation"`
	DocumentID string `json:"documentId"`
}
