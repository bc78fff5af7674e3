package models

import "time"

type Program struct {
	ID          int64     `json:"id"`
	CoachID     int64     `json:"coach_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProgramDetail struct {
	Program
	Workouts []Workout `json:"workouts"`
}
