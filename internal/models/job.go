package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Job statuses
const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

type JobSalary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is the stored shape. Requirements, Salary and Skills hold JSON text.
type Job struct {
	ID           string    `json:"id"`
	RecruiterID  string    `json:"recruiterId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Salary       string    `json:"salary"`
	Skills       string    `json:"skills"`
	Type         string    `json:"type"`
	Location     string    `json:"location,omitempty"`
	Remote       bool      `json:"remote"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// JobPosting is the in-memory shape with embedded fields decoded
type JobPosting struct {
	ID           string    `json:"id"`
	RecruiterID  string    `json:"recruiterId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Salary       JobSalary `json:"salary"`
	Skills       []string  `json:"skills"`
	Type         string    `json:"type"`
	Location     string    `json:"location,omitempty"`
	Remote       bool      `json:"remote"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Posting decodes the embedded fields. A field that fails to decode is left
// empty and reported in the returned error; the rest of the posting is usable.
func (j Job) Posting() (JobPosting, error) {
	p := JobPosting{
		ID:          j.ID,
		RecruiterID: j.RecruiterID,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
		Type:        j.Type,
		Location:    j.Location,
		Remote:      j.Remote,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}

	var errs []error
	if err := decodeEmbedded(j.Requirements, &p.Requirements); err != nil {
		errs = append(errs, fmt.Errorf("requirements: %w", err))
	}
	if err := decodeEmbedded(j.Salary, &p.Salary); err != nil {
		errs = append(errs, fmt.Errorf("salary: %w", err))
	}
	if err := decodeEmbedded(j.Skills, &p.Skills); err != nil {
		errs = append(errs, fmt.Errorf("skills: %w", err))
	}

	return p, errors.Join(errs...)
}

// Record encodes the embedded fields back to text
func (p JobPosting) Record() (Job, error) {
	requirements, err := encodeEmbedded(p.Requirements)
	if err != nil {
		return Job{}, fmt.Errorf("requirements: %w", err)
	}
	salary, err := encodeEmbedded(p.Salary)
	if err != nil {
		return Job{}, fmt.Errorf("salary: %w", err)
	}
	skills, err := encodeEmbedded(p.Skills)
	if err != nil {
		return Job{}, fmt.Errorf("skills: %w", err)
	}

	return Job{
		ID:           p.ID,
		RecruiterID:  p.RecruiterID,
		Title:        p.Title,
		Company:      p.Company,
		Description:  p.Description,
		Requirements: requirements,
		Salary:       salary,
		Skills:       skills,
		Type:         p.Type,
		Location:     p.Location,
		Remote:       p.Remote,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func decodeEmbedded(text string, dest any) error {
	if text == "" {
		return nil
	}
	return json.Unmarshal([]byte(text), dest)
}

func encodeEmbedded(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
