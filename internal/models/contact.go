package models

import "time"

// ContactRecord is one student's directory entry. The directory is keyed
// logically by normalized student name but uniqueness is not guaranteed;
// readers take the first match.
type ContactRecord struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	ParentName  string    `json:"parent_name,omitempty"`
	Phone       string    `json:"phone"`
	Class       string    `json:"class,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	Stream      string    `json:"stream,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	Search   string
	Class    string
	Page     int
	PageSize int
}
