package models

import "time"

// Records below back the shared workspace slots. They are not owner scoped.

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	Experience int       `json:"experience"` // in years
	Skills     []string  `json:"skills"`
	Status     string    `json:"status"`
	Rating     float64   `json:"rating"`
	Tags       []string  `json:"tags,omitempty"`
	AppliedAt  time.Time `json:"appliedAt"`
}

type Interview struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidateId"`
	CandidateName string    `json:"candidateName"`
	JobTitle      string    `json:"jobTitle"`
	Type          string    `json:"type"` // phone, video, onsite
	ScheduledAt   time.Time `json:"scheduledAt"`
	Duration      int       `json:"duration"` // in min
	Interviewers  []string  `json:"interviewers"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type MetricPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Analytics values are illustrative, not derived from stored records
type Analytics struct {
	TotalJobs            int           `json:"totalJobs"`
	ActiveJobs           int           `json:"activeJobs"`
	TotalApplications    int           `json:"totalApplications"`
	InterviewsScheduled  int           `json:"interviewsScheduled"`
	HireRate             float64       `json:"hireRate"`
	AvgTimeToHire        int           `json:"avgTimeToHire"` // in days
	ApplicationsOverTime []MetricPoint `json:"applicationsOverTime"`
	SourceBreakdown      []MetricPoint `json:"sourceBreakdown"`
	GeneratedAt          time.Time     `json:"generatedAt"`
}
