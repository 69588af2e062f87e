package models

import "time"

// Exercise is a task assigned to a patient. Reports may point at one.
type Exercise struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
