package models

import "time"

type Workout struct {
	ID           int64     `json:"id"`
	ProgramID    int64     `json:"program_id"`
	TargetMuscle string    `json:"target_muscle"`
	Description  *string   `json:"description,omitempty"`
	SetCount     int       `json:"set_count"`
	Equipment    *string   `json:"equipment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
