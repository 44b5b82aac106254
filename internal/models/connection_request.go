// Package models contains data structures for the application's domain models.
package models

import "time"

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusInterested indicates the sender wants to connect.
	ConnectionStatusInterested ConnectionStatus = "interested"
	// ConnectionStatusIgnored indicates the sender passed on the target.
	// Ignored requests are never reviewable and act as a one-way block.
	ConnectionStatusIgnored ConnectionStatus = "ignored"
	// ConnectionStatusAccepted indicates the recipient accepted. Terminal.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusRejected indicates the recipient rejected. Terminal.
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// IsInitial reports whether the status may be set at creation time.
func (s ConnectionStatus) IsInitial() bool {
	return s == ConnectionStatusInterested || s == ConnectionStatusIgnored
}

// IsDecision reports whether the status is a valid review outcome.
func (s ConnectionStatus) IsDecision() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusRejected
}

// IsTerminal reports whether no further transition is possible.
func (s ConnectionStatus) IsTerminal() bool {
	return s == ConnectionStatusAccepted || s == ConnectionStatusRejected
}

// ConnectionRequest is a directional relationship request between two users.
//
// At most one row exists per unordered user pair: the composite unique index
// covers the ordered pair and callers pre-check both orderings before insert.
// MatchedAt is non-null iff the request was accepted.
type ConnectionRequest struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	FromUserID uint             `gorm:"not null;uniqueIndex:idx_connection_request_pair" json:"from_user_id"`
	ToUserID   uint             `gorm:"not null;uniqueIndex:idx_connection_request_pair" json:"to_user_id"`
	Status     ConnectionStatus `gorm:"type:varchar(20);not null;index:idx_connection_requests_status" json:"status"`
	MatchedAt  *time.Time       `json:"matched_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relationships. Pointers so an unloaded side is omitted from JSON
	// instead of serializing as a zero-value user.
	FromUser *User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (ConnectionRequest) TableName() string {
	return "connection_requests"
}

// Involves reports whether the given user is on either side of the request.
func (r *ConnectionRequest) Involves(userID uint) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// CounterpartOf returns the user on the other side of the request relative to
// userID. Returns a zero user if that side was not preloaded.
func (r *ConnectionRequest) CounterpartOf(userID uint) User {
	if r.FromUserID == userID {
		if r.ToUser != nil {
			return *r.ToUser
		}
		return User{}
	}
	if r.FromUser != nil {
		return *r.FromUser
	}
	return User{}
}
