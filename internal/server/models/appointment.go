package models

import "time"

// Appointment books a patient (UserID) with a practitioner (ProfesionalID).
// DayDate and Schedule are free-form strings as entered by the client.
type Appointment struct {
	ID            string    `json:"id"`
	CreatedDate   time.Time `json:"created_date"`
	DayDate       string    `json:"day_date"`
	Schedule      string    `json:"schedule"`
	Via           string    `json:"via"`
	UserID        string    `json:"user_id"`
	ProfesionalID string    `json:"profesional_id"`
}
