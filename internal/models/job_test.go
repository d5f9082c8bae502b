package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobPosting_RecordAndBack(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	posting := JobPosting{
		ID:           "job-1",
		RecruiterID:  "rec-1",
		Title:        "Backend Engineer",
		Company:      "Acme",
		Requirements: []string{"Go", "SQL"},
		Salary:       JobSalary{Min: 100, Max: 200, Currency: "EUR"},
		Skills:       []string{"go"},
		Type:         JobTypeFullTime,
		Status:       JobStatusActive,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	job, err := posting.Record()
	require.NoError(t, err)
	assert.Equal(t, `["Go","SQL"]`, job.Requirements)
	assert.Equal(t, `{"min":100,"max":200,"currency":"EUR"}`, job.Salary)
	assert.Equal(t, `["go"]`, job.Skills)

	back, err := job.Posting()
	require.NoError(t, err)
	assert.Equal(t, posting, back)
}

func TestJob_PostingToleratesBadField(t *testing.T) {
	job := Job{
		ID:           "job-1",
		Title:        "Designer",
		Requirements: "not json",
		Salary:       `{"min":1,"max":2,"currency":"USD"}`,
		Skills:       `["figma"]`,
	}

	p, err := job.Posting()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirements")

	assert.Nil(t, p.Requirements)
	assert.Equal(t, JobSalary{Min: 1, Max: 2, Currency: "USD"}, p.Salary)
	assert.Equal(t, []string{"figma"}, p.Skills)
	assert.Equal(t, "Designer", p.Title)
}

func TestJob_PostingEmptyFields(t *testing.T) {
	p, err := Job{ID: "job-1"}.Posting()
	require.NoError(t, err)
	assert.Nil(t, p.Skills)
	assert.Equal(t, JobSalary{}, p.Salary)
}

func TestApplication_Tracked(t *testing.T) {
	t.Run("with analysis", func(t *testing.T) {
		app := Application{
			ID:         "app-1",
			AIAnalysis: `{"summary":"solid","strengths":["go"],"gaps":[],"recommendation":"interview"}`,
		}

		tracked, err := app.Tracked()
		require.NoError(t, err)
		require.NotNil(t, tracked.AIAnalysis)
		assert.Equal(t, "solid", tracked.AIAnalysis.Summary)

		back, err := tracked.Record()
		require.NoError(t, err)
		assert.JSONEq(t, app.AIAnalysis, back.AIAnalysis)
	})

	t.Run("without analysis", func(t *testing.T) {
		tracked, err := Application{ID: "app-2"}.Tracked()
		require.NoError(t, err)
		assert.Nil(t, tracked.AIAnalysis)

		back, err := tracked.Record()
		require.NoError(t, err)
		assert.Empty(t, back.AIAnalysis)
	})

	t.Run("corrupt analysis", func(t *testing.T) {
		tracked, err := Application{ID: "app-3", Status: ApplicationPending, AIAnalysis: "{"}.Tracked()
		assert.Error(t, err)
		assert.Nil(t, tracked.AIAnalysis)
		assert.Equal(t, ApplicationPending, tracked.Status)
	})
}

func TestIsValidJobType(t *testing.T) {
	for _, jt := range JobTypeOptions() {
		assert.True(t, IsValidJobType(jt), jt)
	}
	assert.False(t, IsValidJobType("gig"))
	assert.Equal(t, "Part-time", GetJobTypeDisplayName(JobTypePartTime))
	assert.Equal(t, "gig", GetJobTypeDisplayName("gig"))
}
