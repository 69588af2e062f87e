package models

import "time"

// Report is a diagnostic filed by a practitioner about a patient.
type Report struct {
	ID            string    `json:"id"`
	Diagnostic    string    `json:"diagnostic"`
	Progress      string    `json:"progress"`
	Finished      string    `json:"finished"`
	Bitacora      string    `json:"bitacora"`
	ExerciseID    *string   `json:"exercise_id"`
	UserID        string    `json:"user_id"`
	ProfesionalID string    `json:"profesional_id"`
	CreatedAt     time.Time `json:"created_at"`
}
