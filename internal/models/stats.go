package models

// WeekdayActivity is one bar of the trailing-week workout histogram.
type WeekdayActivity struct {
	Day      string `json:"day"`
	Workouts int    `json:"workouts"`
	IsToday  bool   `json:"is_today"`
}

type WeekdayBookings struct {
	Day       string `json:"day"`
	Confirmed int    `json:"confirmed"`
	Pending   int    `json:"pending"`
}

type ClientStats struct {
	CurrentStreak  int               `json:"current_streak"`
	LongestStreak  int               `json:"longest_streak"`
	TotalWorkouts  int               `json:"total_workouts"`
	NextSession    *Booking          `json:"next_session,omitempty"`
	Countdown      string            `json:"countdown,omitempty"`
	WeeklyActivity []WeekdayActivity `json:"weekly_activity"`
	RecentProgress []ProgressRecord  `json:"recent_progress"`
}

type AtRiskClient struct {
	Engagement
	Profile *Profile `json:"profile,omitempty"`
}

type CoachStats struct {
	TotalClients     int               `json:"total_clients"`
	ActiveClients    int               `json:"active_clients"`
	AtRiskClients    []AtRiskClient    `json:"at_risk_clients"`
	WeeklyBookings   []WeekdayBookings `json:"weekly_bookings"`
	EstimatedRevenue float64           `json:"estimated_revenue"`
	PendingApprovals int               `json:"pending_approvals"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
