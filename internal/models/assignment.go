package models

import "time"

type Assignment struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ProgramID   int64      `json:"program_id"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AssignmentProgress pairs an assignment with its progress counts for list views.
type AssignmentProgress struct {
	Assignment
	TotalWorkouts int `json:"total_workouts"`
	DoneWorkouts  int `json:"done_workouts"`
}
