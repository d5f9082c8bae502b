package models

import "time"

type NotificationSettings struct {
	Email           bool `json:"email"`
	Push            bool `json:"push"`
	NewApplications bool `json:"newApplications"`
	InterviewAlerts bool `json:"interviewAlerts"`
	WeeklyDigest    bool `json:"weeklyDigest"`
	Marketing       bool `json:"marketing"`
}

type PrivacySettings struct {
	ProfileVisible  bool `json:"profileVisible"`
	ShowEmail       bool `json:"showEmail"`
	ShareAnalytics  bool `json:"shareAnalytics"`
	AllowDataExport bool `json:"allowDataExport"`
}

type GeneralSettings struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	AutoSave bool   `json:"autoSave"`
}

type SettingsData struct {
	UserID        string               `json:"userId"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	General       GeneralSettings      `json:"general"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
