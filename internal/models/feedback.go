package models

import "time"

type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProgramID int64     `json:"program_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
