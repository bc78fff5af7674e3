package models

import "time"

const (
	ProgressPending = "pending"
	ProgressDone    = "done"
)

type ProgressEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkoutID int64     `json:"workout_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
