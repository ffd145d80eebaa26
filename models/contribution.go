package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contribution is a monetary pledge toward fixing one Issue. IssueTitle
// and Category are denormalized copies taken at contribution time so
// receipts stay stable even if the issue is edited later. Amounts are
// immutable once stored; there is no update route.
type Contribution struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID         primitive.ObjectID `bson:"issueId" json:"issueId"`
	IssueTitle      string             `bson:"issueTitle,omitempty" json:"issueTitle,omitempty"`
	Category        string             `bson:"category,omitempty" json:"category,omitempty"`
	ContributorName string             `bson:"contributorName,omitempty" json:"contributorName,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	Note            string             `bson:"note,omitempty" json:"note,omitempty"`
	Amount          float64            `bson:"amount" json:"amount"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
	CreatedAt       time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
