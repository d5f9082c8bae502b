package models

import "time"

// Job types
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeFreelance  = "freelance"
)

var JobTypeDisplayNames = map[string]string{
	JobTypeFullTime:   "Full-time",
	JobTypePartTime:   "Part-time",
	JobTypeContract:   "Contract",
	JobTypeInternship: "Internship",
	JobTypeFreelance:  "Freelance",
}

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SearchFilters is replaced as a whole on every save
type SearchFilters struct {
	UserID      string      `json:"userId"`
	Location    string      `json:"location"`
	Remote      bool        `json:"remote"`
	JobType     string      `json:"jobType"`
	SalaryRange SalaryRange `json:"salaryRange"`
	Skills      []string    `json:"skills"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func JobTypeOptions() []string {
	return []string{
		JobTypeFullTime,
		JobTypePartTime,
		JobTypeContract,
		JobTypeInternship,
		JobTypeFreelance,
	}
}

func IsValidJobType(jobType string) bool {
	_, ok := JobTypeDisplayNames[jobType]
	return ok
}

func GetJobTypeDisplayName(jobType string) string {
	if name, ok := JobTypeDisplayNames[jobType]; ok {
		return name
	}
	return jobType
}
