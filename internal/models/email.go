package models

import "time"

// Status is the lifecycle state of a captured address.
type Status string

const (
	StatusActive       Status = "active"
	StatusUnsubscribed Status = "unsubscribed"
)

// EmailRecord is one captured waitlist address in the emails collection.
// Records are append-only; Timestamp is assigned by the store at insert
// time, never taken from the client.
type EmailRecord struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Email     string    `bson:"email"         json:"email"`
	Timestamp time.Time `bson:"timestamp"     json:"timestamp"`
	Status    Status    `bson:"status"        json:"status"`
}

// DateString renders the timestamp the way the management table and the
// export columns display it.
func (r EmailRecord) DateString() string {
	return r.Timestamp.Local().Format("1/2/2006")
}

// TimeString renders the clock portion of the timestamp for display.
func (r EmailRecord) TimeString() string {
	return r.Timestamp.Local().Format("3:04:05 PM")
}
