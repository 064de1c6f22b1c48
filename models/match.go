package models

import (
	"fmt"

	"github.com/go-openapi/strfmt"
)

type Match struct {

	// Unique identifier for the match.
	ID string `json:"Id"`

	// Rating system the match counts towards.
	RatingSystemID string `json:"RatingSystemId,omitempty"`

	// Winning player.
	WinnerID string `json:"WinnerId,omitempty"`

	// Losing player.
	LoserID string `json:"LoserId,omitempty"`

	// Game score, e.g. "3-1".
	Score string `json:"Score"`

	// When the match was played.
	// Format: date-time
	PlayedAt strfmt.DateTime `json:"PlayedAt"`
}

// Validate rejects a match a player plays against themselves.
func (m *Match) Validate(formats strfmt.Registry) error {
	if m.WinnerID != "" && m.WinnerID == m.LoserID {
		return fmt.Errorf("WinnerId and LoserId must differ")
	}
	return nil
}

func (m *Match) SetEntityKey(key string) {
	m.ID = key
}
