package model

import "time"

type Exam struct {
	ID                string     `json:"_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Duration          int        `json:"duration,omitempty"` // minutes; 0 means untimed
	PassingPercentage float64    `json:"passingPercentage,omitempty"`
	IsPublished       bool       `json:"isPublished,omitempty"`
	Questions         []Question `json:"questions,omitempty"`
	CreatedBy         string     `json:"createdBy,omitempty"`
	CreatedAt         time.Time  `json:"createdAt,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt,omitempty"`
}

// Timed reports whether the exam enforces a duration.
func (e *Exam) Timed() bool {
	return e.Duration > 0
}

// DurationSeconds is the full time allotment in seconds, 0 when untimed.
func (e *Exam) DurationSeconds() int {
	return e.Duration * 60
}
