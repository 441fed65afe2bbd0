package domain

import "time"

// GoalType selects the reporting window a goal is measured over.
type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

func (t GoalType) Valid() bool {
	return t == GoalDaily || t == GoalWeekly || t == GoalMonthly
}

// Goal is a net-profit target over a rolling window.
type Goal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      GoalType  `json:"type"`
	Target    Money     `json:"target"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
