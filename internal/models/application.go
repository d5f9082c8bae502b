package models

import (
	"fmt"
	"time"
)

// Application statuses
const (
	ApplicationPending     = "pending"
	ApplicationReviewing   = "reviewing"
	ApplicationShortlisted = "shortlisted"
	ApplicationInterview   = "interview"
	ApplicationOffered     = "offered"
	ApplicationHired       = "hired"
	ApplicationRejected    = "rejected"
)

type AIAnalysis struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
}

// Application is the stored shape. AIAnalysis holds JSON text.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	ApplicantID string    `json:"applicantId"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	ResumeURL   string    `json:"resumeUrl,omitempty"`
	AIScore     float64   `json:"aiScore,omitempty"`
	AIAnalysis  string    `json:"aiAnalysis,omitempty"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TrackedApplication is the in-memory shape with the analysis decoded
type TrackedApplication struct {
	ID          string      `json:"id"`
	JobID       string      `json:"jobId"`
	ApplicantID string      `json:"applicantId"`
	Status      string      `json:"status"`
	CoverLetter string      `json:"coverLetter,omitempty"`
	ResumeURL   string      `json:"resumeUrl,omitempty"`
	AIScore     float64     `json:"aiScore,omitempty"`
	AIAnalysis  *AIAnalysis `json:"aiAnalysis,omitempty"`
	AppliedAt   time.Time   `json:"appliedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (a Application) Tracked() (TrackedApplication, error) {
	t := TrackedApplication{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		AIScore:     a.AIScore,
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}

	if a.AIAnalysis == "" {
		return t, nil
	}

	var analysis AIAnalysis
	if err := decodeEmbedded(a.AIAnalysis, &analysis); err != nil {
		return t, fmt.Errorf("ai analysis: %w", err)
	}
	t.AIAnalysis = &analysis

	return t, nil
}

func (t TrackedApplication) Record() (Application, error) {
	a := Application{
		ID:          t.ID,
		JobID:       t.JobID,
		ApplicantID: t.ApplicantID,
		Status:      t.Status,
		CoverLetter: t.CoverLetter,
		ResumeURL:   t.ResumeURL,
		AIScore:     t.AIScore,
		AppliedAt:   t.AppliedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.AIAnalysis != nil {
		text, err := encodeEmbedded(t.AIAnalysis)
		if err != nil {
			return Application{}, fmt.Errorf("ai analysis: %w", err)
		}
		a.AIAnalysis = text
	}

	return a, nil
}
