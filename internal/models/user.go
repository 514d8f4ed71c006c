package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserToken is one live credential held by a user. Access is always "auth";
// no other scope exists in this system.
type UserToken struct {
	Access string `bson:"access" json:"-"`
	Token  string `bson:"token" json:"-"`
}

// User represents an application user record. A user may hold several tokens
// at once, one per live session. Only the id and email are ever serialized
// out; the password hash and token list stay inside the process.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Tokens       []UserToken        `bson:"tokens" json:"-"`
}
