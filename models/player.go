package models

import (
	"fmt"

	"github.com/go-openapi/strfmt"
)

type Player struct {

	// Unique identifier for the player.
	ID string `json:"Id"`

	// Rating system the player is ranked in.
	RatingSystemID string `json:"RatingSystemId,omitempty"`

	// Display name.
	// Required: true
	Name string `json:"Name"`

	// Contact email.
	// Format: email
	Email strfmt.Email `json:"Email,omitempty"`

	// Current rating.
	// Minimum: 0
	Rating int `json:"Rating"`

	// Timestamp when the player joined.
	// Format: date-time
	JoinedAt strfmt.DateTime `json:"JoinedAt"`
}

// Validate checks the player's required fields and formats.
func (m *Player) Validate(formats strfmt.Registry) error {
	if m.Name == "" {
		return fmt.Errorf("Name in body is required")
	}
	if m.Email != "" && !formats.Validates("email", m.Email.String()) {
		return fmt.Errorf("Email in body must be of type email: %q", m.Email)
	}
	if m.Rating < 0 {
		return fmt.Errorf("Rating in body should be greater than or equal to 0")
	}
	return nil
}

func (m *Player) SetEntityKey(key string) {
	m.ID = key
}
