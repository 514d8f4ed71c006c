package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Todo is a single todo document. CompletedAt is milliseconds since epoch
// and stays nil while the todo is open.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text        string             `bson:"text" json:"text"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *int64             `bson:"completedAt" json:"completedAt"`
}
