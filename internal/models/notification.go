package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind tells the toast surface how to present a notification
type NotificationKind string

const (
	NotificationSuccess  NotificationKind = "SUCCESS"
	NotificationFailure  NotificationKind = "FAILURE"  // rejected input, paired with an inline field message
	NotificationBlocking NotificationKind = "BLOCKING" // operation not allowed from the current state
)

// Notification represents a toast sent to the merchant's admin surface
type Notification struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MerchantID string             `bson:"merchantId" json:"merchantId"`
	Kind       NotificationKind   `bson:"kind" json:"kind"`
	Operation  string             `bson:"operation" json:"operation"` // e.g. season.create, wallet.fund
	Title      string             `bson:"title" json:"title"`
	Message    string             `bson:"message" json:"message"`
	Field      string             `bson:"field,omitempty" json:"field,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
