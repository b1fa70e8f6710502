package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account registered with the service. The password field holds
// a bcrypt hash and is never serialized to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
}
