package model

import (
	"time"
)

// MaxMessageLength is the upper bound for an edited NOTAM message, in characters.
const MaxMessageLength = 1000

type Notam struct {
	ID        uint      `json:"id"`
	AirportID string    `json:"airport_id"`
	City      string    `json:"city"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Airport   *Airport  `json:"airport,omitempty"`
}

type Airport struct {
	IATACode    string `json:"iata_code"`
	AirportName string `json:"airport_name"`
}

// AirportName returns the joined airport name, or an empty string when the
// airport row is missing.
func (n Notam) AirportName() string {
	if n.Airport == nil {
		return ""
	}
	return n.Airport.AirportName
}

// UpdateNotamRequest is validated after Message has been trimmed.
type UpdateNotamRequest struct {
	Message string `json:"message" form:"message" validate:"required,max=1000"`
}
