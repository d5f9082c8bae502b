package models

import "time"

// Plans
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Billing cycles
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Unlimited marks a usage limit without a cap
const Unlimited = -1

type Subscription struct {
	Status             string     `json:"status"`
	CurrentPeriodStart time.Time  `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time  `json:"currentPeriodEnd"`
	CancelAtPeriodEnd  bool       `json:"cancelAtPeriodEnd"`
	TrialEnd           *time.Time `json:"trialEnd,omitempty"`
}

type UsageCounter struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

type Usage struct {
	JobPostings  UsageCounter `json:"jobPostings"`
	Applications UsageCounter `json:"applications"`
	TeamMembers  UsageCounter `json:"teamMembers"`
	AIAnalyses   UsageCounter `json:"aiAnalyses"`
}

type Invoice struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	InvoiceURL  string    `json:"invoiceUrl,omitempty"`
}

type VATSettings struct {
	Enabled     bool    `json:"enabled"`
	Rate        float64 `json:"rate"`
	Number      string  `json:"number,omitempty"`
	CompanyName string  `json:"companyName"`
	Country     string  `json:"country"`
	Address     string  `json:"address,omitempty"`
}

type BillingData struct {
	UserID         string       `json:"userId"`
	CurrentPlan    string       `json:"currentPlan"`
	BillingCycle   string       `json:"billingCycle"`
	Subscription   Subscription `json:"subscription"`
	Usage          Usage        `json:"usage"`
	BillingHistory []Invoice    `json:"billingHistory"`
	VAT            VATSettings  `json:"vatSettings"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
