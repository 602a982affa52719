package entity

import "time"

// Bootcamp is a training program published by a user.
type Bootcamp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     string    `json:"website,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Careers     []string  `json:"careers"`
	Photo       string    `json:"photo"`
	AverageCost *float64  `json:"averageCost,omitempty"`
	UserID      string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Course belongs to a bootcamp and is owned by the user that added it.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Weeks        int       `json:"weeks"`
	Tuition      float64   `json:"tuition"`
	MinimumSkill string    `json:"minimumSkill"`
	BootcampID   string    `json:"bootcamp"`
	UserID       string    `json:"user"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Review is a rating left on a bootcamp, at most one per user per bootcamp.
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
}
