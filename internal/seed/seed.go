// Package seed builds default values for state slots. Every call returns a
// fresh value; nothing here is shared between callers.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"skillmatch/internal/models"
)

// Free plan limits
const (
	FreeJobPostings  = 3
	FreeApplications = 50
	FreeTeamMembers  = 1
	FreeAIAnalyses   = 10
)

// Billing is the default billing record for a user without one
func Billing(userID, company string) models.BillingData {
	return models.BillingData{
		UserID:       userID,
		CurrentPlan:  models.PlanFree,
		BillingCycle: models.CycleMonthly,
		Subscription: models.Subscription{
			Status: "active",
		},
		Usage: models.Usage{
			JobPostings:  models.UsageCounter{Limit: FreeJobPostings},
			Applications: models.UsageCounter{Limit: FreeApplications},
			TeamMembers:  models.UsageCounter{Used: 1, Limit: FreeTeamMembers},
			AIAnalyses:   models.UsageCounter{Limit: FreeAIAnalyses},
		},
		BillingHistory: []models.Invoice{},
		VAT: models.VATSettings{
			CompanyName: company,
		},
	}
}

func SearchFilters(userID string) models.SearchFilters {
	return models.SearchFilters{
		UserID:      userID,
		SalaryRange: models.SalaryRange{Min: 0, Max: 200000},
		Skills:      []string{},
	}
}

func Settings(userID string) models.SettingsData {
	return models.SettingsData{
		UserID: userID,
		Notifications: models.NotificationSettings{
			Email:           true,
			Push:            true,
			NewApplications: true,
			InterviewAlerts: true,
			WeeklyDigest:    true,
		},
		Privacy: models.PrivacySettings{
			ProfileVisible:  true,
			AllowDataExport: true,
		},
		General: models.GeneralSettings{
			Theme:    "light",
			Language: "en",
			Timezone: "UTC",
			AutoSave: true,
		},
	}
}

// Workspace seeds are dated relative to now so dashboards look current.

func Activities() []models.Activity {
	now := time.Now().UTC()
	return []models.Activity{
		{ID: "act-1", Type: "application", Title: "New application", Description: "Sarah Chen applied for Senior Frontend Developer", Actor: "Sarah Chen", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "act-2", Type: "interview", Title: "Interview scheduled", Description: "Technical interview with Marcus Johnson", Actor: "Recruiting", CreatedAt: now.Add(-5 * time.Hour)},
		{ID: "act-3", Type: "job", Title: "Job published", Description: "Product Designer is now live", Actor: "Recruiting", CreatedAt: now.Add(-26 * time.Hour)},
		{ID: "act-4", Type: "hire", Title: "Offer accepted", Description: "Elena Rodriguez accepted the DevOps Engineer offer", Actor: "Elena Rodriguez", CreatedAt: now.Add(-72 * time.Hour)},
	}
}

func Candidates() []models.Candidate {
	now := time.Now().UTC()
	return []models.Candidate{
		{ID: "cand-1", Name: "Sarah Chen", Email: "sarah.chen@example.com", Title: "Senior Frontend Developer", Location: "San Francisco, CA", Experience: 7, Skills: []string{"React", "TypeScript", "GraphQL"}, Status: models.ApplicationReviewing, Rating: 4.8, Tags: []string{"top-talent"}, AppliedAt: now.Add(-2 * time.Hour)},
		{ID: "cand-2", Name: "Marcus Johnson", Email: "marcus.j@example.com", Title: "Backend Engineer", Location: "Austin, TX", Experience: 5, Skills: []string{"Go", "PostgreSQL", "Kubernetes"}, Status: models.ApplicationInterview, Rating: 4.5, AppliedAt: now.Add(-30 * time.Hour)},
		{ID: "cand-3", Name: "Elena Rodriguez", Email: "elena.r@example.com", Title: "DevOps Engineer", Location: "Remote", Experience: 9, Skills: []string{"Terraform", "AWS", "CI/CD"}, Status: models.ApplicationHired, Rating: 4.9, Tags: []string{"referral"}, AppliedAt: now.Add(-240 * time.Hour)},
		{ID: "cand-4", Name: "James Park", Email: "james.park@example.com", Title: "Product Designer", Location: "New York, NY", Experience: 4, Skills: []string{"Figma", "Design Systems"}, Status: models.ApplicationPending, Rating: 4.1, AppliedAt: now.Add(-6 * time.Hour)},
	}
}

func Interviews() []models.Interview {
	now := time.Now().UTC().Truncate(time.Hour)
	return []models.Interview{
		{ID: "int-1", CandidateID: "cand-2", CandidateName: "Marcus Johnson", JobTitle: "Backend Engineer", Type: "video", ScheduledAt: now.Add(26 * time.Hour), Duration: 60, Interviewers: []string{"Alex Kim"}, Status: "scheduled"},
		{ID: "int-2", CandidateID: "cand-1", CandidateName: "Sarah Chen", JobTitle: "Senior Frontend Developer", Type: "phone", ScheduledAt: now.Add(50 * time.Hour), Duration: 30, Interviewers: []string{"Priya Patel"}, Status: "scheduled"},
		{ID: "int-3", CandidateID: "cand-3", CandidateName: "Elena Rodriguez", JobTitle: "DevOps Engineer", Type: "onsite", ScheduledAt: now.Add(-200 * time.Hour), Duration: 120, Interviewers: []string{"Alex Kim", "Priya Patel"}, Status: "completed", Notes: "Strong infrastructure background"},
	}
}

func Notifications() []models.Notification {
	now := time.Now().UTC()
	return []models.Notification{
		{ID: "notif-1", Type: "application", Title: "New application", Message: "Sarah Chen applied for Senior Frontend Developer", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "notif-2", Type: "interview", Title: "Interview tomorrow", Message: "Video interview with Marcus Johnson", CreatedAt: now.Add(-4 * time.Hour)},
		{ID: "notif-3", Type: "system", Title: "Plan usage", Message: "You have used 2 of 3 job postings this month", Read: true, CreatedAt: now.Add(-48 * time.Hour)},
	}
}

func Tags() []models.Tag {
	return []models.Tag{
		{ID: "tag-1", Name: "top-talent", Color: "#16a34a", Count: 1},
		{ID: "tag-2", Name: "referral", Color: "#2563eb", Count: 1},
		{ID: "tag-3", Name: "relocation", Color: "#d97706", Count: 0},
	}
}

// Analytics returns illustrative dashboard numbers drawn from rng
func Analytics(rng *rand.Rand) models.Analytics {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	overTime := make([]models.MetricPoint, 0, len(months))
	total := 0
	for _, m := range months {
		v := 40 + rng.Intn(120)
		total += v
		overTime = append(overTime, models.MetricPoint{Label: m, Value: v})
	}

	sources := []string{"LinkedIn", "Referral", "Job boards", "Company site"}
	breakdown := make([]models.MetricPoint, 0, len(sources))
	for _, s := range sources {
		breakdown = append(breakdown, models.MetricPoint{Label: s, Value: 5 + rng.Intn(45)})
	}

	totalJobs := 5 + rng.Intn(20)
	return models.Analytics{
		TotalJobs:            totalJobs,
		ActiveJobs:           1 + rng.Intn(totalJobs),
		TotalApplications:    total,
		InterviewsScheduled:  rng.Intn(30),
		HireRate:             float64(5+rng.Intn(20)) / 100,
		AvgTimeToHire:        14 + rng.Intn(30),
		ApplicationsOverTime: overTime,
		SourceBreakdown:      breakdown,
		GeneratedAt:          time.Now().UTC(),
	}
}

// Jobs returns demo postings owned by recruiterID
func Jobs(recruiterID, company string) []models.JobPosting {
	now := time.Now().UTC()
	titles := []struct {
		title  string
		kind   string
		remote bool
		skills []string
	}{
		{"Senior Frontend Developer", models.JobTypeFullTime, true, []string{"React", "TypeScript"}},
		{"Backend Engineer", models.JobTypeFullTime, false, []string{"Go", "PostgreSQL"}},
		{"Product Design Intern", models.JobTypeInternship, false, []string{"Figma"}},
	}

	jobs := make([]models.JobPosting, 0, len(titles))
	for i, t := range titles {
		jobs = append(jobs, models.JobPosting{
			ID:           fmt.Sprintf("%s-job-%d", recruiterID, i+1),
			RecruiterID:  recruiterID,
			Title:        t.title,
			Company:      company,
			Description:  fmt.Sprintf("%s at %s.", t.title, company),
			Requirements: []string{"Strong communication", fmt.Sprintf("Experience with %s", t.skills[0])},
			Salary:       models.JobSalary{Min: 60000 + i*10000, Max: 90000 + i*10000, Currency: "USD"},
			Skills:       append([]string(nil), t.skills...),
			Type:         t.kind,
			Remote:       t.remote,
			Status:       models.JobStatusActive,
			CreatedAt:    now.Add(-time.Duration(i) * 24 * time.Hour),
			UpdatedAt:    now,
		})
	}
	return jobs
}
