package models

import "time"

// Contestant identifies one league member. Authentication is out of scope;
// the engine only needs a stable ID and a display handle.
type Contestant struct {
	ID        string    `bson:"id" json:"id"`
	Handle    string    `bson:"handle" json:"handle"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
