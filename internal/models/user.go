package models

import "time"

// Roles
const (
	RoleRecruiter = "recruiter"
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

type UserProfile struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Company     string         `json:"company,omitempty"`
	Avatar      string         `json:"avatar,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

