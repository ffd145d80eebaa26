package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue statuses. New reports always start out "ongoing".
const (
	StatusOngoing    = "ongoing"
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Issue is a reported community problem. The bson keys are camelCase
// because the collection is shared with the web client, which wrote
// documents in that shape long before this server existed.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"` // Garbage, Footpath, Dumping, Waterlogging, ...
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Amount      float64            `bson:"amount" json:"amount"` // suggested fix budget, BDT
	Status      string             `bson:"status" json:"status"`
	Email       string             `bson:"email" json:"email"` // reporter
	Date        time.Time          `bson:"date" json:"date"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
