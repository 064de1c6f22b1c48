package models

import (
	"fmt"

	"github.com/go-openapi/strfmt"
)

type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description"`

	// Unique identifier for the rating system.
	ID *string `json:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt"`
}

// Validate checks the required fields of the rating system.
func (m *RatingSystem) Validate(formats strfmt.Registry) error {
	if m.Name == nil || *m.Name == "" {
		return fmt.Errorf("Name in body is required")
	}
	if m.Description == nil {
		return fmt.Errorf("Description in body is required")
	}
	if m.CreatedAt == nil {
		return fmt.Errorf("CreatedAt in body is required")
	}
	if m.UpdatedAt == nil {
		return fmt.Errorf("UpdatedAt in body is required")
	}
	if m.SiteURL != "" && !formats.Validates("uri", m.SiteURL) {
		return fmt.Errorf("SiteUrl in body must be of type uri: %q", m.SiteURL)
	}
	return nil
}

func (m *RatingSystem) SetEntityKey(key string) {
	m.ID = &key
}
