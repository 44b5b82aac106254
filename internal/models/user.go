// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"
)

// Gender values accepted on signup and profile edits.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOthers = "others"
)

// User represents a member of the devmesh network.
//
// Password always holds a bcrypt hash, never plaintext, and is excluded from
// every JSON rendering. Email is stored lowercase.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Age       int       `json:"age,omitempty"`
	Gender    string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	About     string    `json:"about"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Skills    []string  `gorm:"serializer:json;type:jsonb" json:"skills"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// DisplayName returns the user's full name for human-readable messages.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// PublicUser is the projection of a User that is safe to return to other
// members: no email, no credential, no internal bookkeeping.
type PublicUser struct {
	ID        uint     `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	About     string   `json:"about"`
	PhotoURL  string   `json:"photo_url,omitempty"`
	Skills    []string `json:"skills"`
}

// Public returns the public-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
		Gender:    u.Gender,
		About:     u.About,
		PhotoURL:  u.PhotoURL,
		Skills:    u.Skills,
	}
}

// SkillOverlap counts the skills the user shares with other, ignoring case.
// Used only for feed ranking; the score is computed, never stored.
func (u *User) SkillOverlap(other *User) int {
	if len(u.Skills) == 0 || len(other.Skills) == 0 {
		return 0
	}
	mine := make(map[string]struct{}, len(u.Skills))
	for _, s := range u.Skills {
		mine[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	overlap := 0
	seen := make(map[string]struct{}, len(other.Skills))
	for _, s := range other.Skills {
		k := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := mine[k]; ok {
			overlap++
		}
	}
	return overlap
}
