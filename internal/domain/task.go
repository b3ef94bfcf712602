package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskID is a value object for task identity.
type TaskID struct{ primitive.ObjectID }

// NewTaskID creates a TaskID from a document object id.
func NewTaskID(id primitive.ObjectID) TaskID { return TaskID{ObjectID: id} }

// ParseTaskID parses the hex form used in URLs.
func ParseTaskID(s string) (TaskID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{ObjectID: oid}, nil
}

// String returns the canonical hex form.
func (t TaskID) String() string { return t.ObjectID.Hex() }

// Task belongs to exactly one user and is deleted en masse when its
// owner is deleted.
type Task struct {
	ID          TaskID
	Owner       UserID
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskProblems validates a task description.
func TaskProblems(description string) []string {
	if strings.TrimSpace(description) == "" {
		return []string{"description is required"}
	}
	return nil
}
