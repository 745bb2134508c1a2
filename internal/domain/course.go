package domain

import "time"

// Course models a course owned by a teacher. Ownership drives the
// owner-or-admin authorization rule on course mutations.
type Course struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
