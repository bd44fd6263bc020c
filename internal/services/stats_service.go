package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

// Business thresholds for the coach overview. Tunable in one place rather
// than buried in the aggregation code.
const (
	// AtRiskThreshold flags clients for outreach once their last login is
	// this old.
	AtRiskThreshold = 48 * time.Hour
	// ActiveWindow is how recently a client must have logged in to count
	// as active.
	ActiveWindow = 7 * 24 * time.Hour
	// SessionPriceUSD is the flat per-session figure behind the estimated
	// revenue card. A placeholder until real billing lands.
	SessionPriceUSD = 199.0

	atRiskDisplayCap    = 5
	recentProgressLimit = 5
	weeklyWindowDays    = 7
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type engagementStore interface {
	TouchLogin(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*models.Engagement, error)
	ListAll(ctx context.Context) ([]models.Engagement, error)
}

type workoutReader interface {
	CountByUserID(ctx context.Context, userID int64) (int, error)
	ListDatesSince(ctx context.Context, userID int64, fromDate time.Time) ([]time.Time, error)
}

type bookingReader interface {
	NextConfirmed(ctx context.Context, userID int64, fromDate time.Time) (*models.Booking, error)
	ListSince(ctx context.Context, fromDate time.Time) ([]models.Booking, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type progressReader interface {
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.ProgressRecord, error)
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	CountClients(ctx context.Context) (int, error)
}

type StatsService struct {
	engagementRepo engagementStore
	workoutRepo    workoutReader
	bookingRepo    bookingReader
	progressRepo   progressReader
	profileRepo    profileReader
	now            func() time.Time
}

func NewStatsService(
	engagementRepo engagementStore,
	workoutRepo workoutReader,
	bookingRepo bookingReader,
	progressRepo progressReader,
	profileRepo profileReader,
) *StatsService {
	return &StatsService{
		engagementRepo: engagementRepo,
		workoutRepo:    workoutRepo,
		bookingRepo:    bookingRepo,
		progressRepo:   progressRepo,
		profileRepo:    profileRepo,
		now:            time.Now,
	}
}

// ClientStats assembles the client home view. Loading it counts as a login,
// so the engagement row is touched first; the streak columns come back
// already recomputed by the database.
func (s *StatsService) ClientStats(ctx context.Context, userID int64) (*models.ClientStats, error) {
	if err := s.engagementRepo.TouchLogin(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	today := truncateToDay(now)
	stats := &models.ClientStats{}

	engagement, err := s.engagementRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if engagement != nil {
		stats.CurrentStreak = engagement.CurrentStreak
		stats.LongestStreak = engagement.LongestStreak
	}

	stats.TotalWorkouts, err = s.workoutRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := s.bookingRepo.NextConfirmed(ctx, userID, today)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if next != nil {
		stats.NextSession = next
		stats.Countdown = FormatCountdown(now, SessionDateTime(next.SessionDate, next.SessionTime))
	}

	weekStart := today.AddDate(0, 0, -(weeklyWindowDays - 1))
	dates, err := s.workoutRepo.ListDatesSince(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	stats.WeeklyActivity = BuildWeeklyActivity(dates, now)

	stats.RecentProgress, err = s.progressRepo.ListRecent(ctx, userID, recentProgressLimit)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// CoachStats assembles the coach overview from every client's engagement and
// the trailing week of bookings.
func (s *StatsService) CoachStats(ctx context.Context) (*models.CoachStats, error) {
	now := s.now()
	stats := &models.CoachStats{}

	var err error
	stats.TotalClients, err = s.profileRepo.CountClients(ctx)
	if err != nil {
		return nil, err
	}

	engagements, err := s.engagementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveClients = CountActive(engagements, now)

	atRisk := FilterAtRisk(engagements, now)
	stats.AtRiskClients = make([]models.AtRiskClient, 0, len(atRisk))
	for _, engagement := range atRisk {
		client := models.AtRiskClient{Engagement: engagement}
		profile, err := s.profileRepo.GetByUserID(ctx, engagement.UserID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		client.Profile = profile
		stats.AtRiskClients = append(stats.AtRiskClients, client)
	}

	weekStart := truncateToDay(now).AddDate(0, 0, -(weeklyWindowDays - 1))
	bookings, err := s.bookingRepo.ListSince(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	stats.WeeklyBookings = BuildWeeklyBookings(bookings)
	stats.EstimatedRevenue = EstimateRevenue(bookings)

	stats.PendingApprovals, err = s.bookingRepo.CountByStatus(ctx, "pending")
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// SessionDateTime combines a session's calendar date with its "HH:MM" time
// of day. An unparseable time falls back to midnight.
func SessionDateTime(sessionDate time.Time, sessionTime string) time.Time {
	day := truncateToDay(sessionDate)
	parsed, err := time.Parse("15:04", sessionTime)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute)
}

// FormatCountdown renders the time remaining before a session as "Nd Nh",
// "Nh Nm" or "Nm", or reports that the session has passed.
func FormatCountdown(now, sessionAt time.Time) string {
	diff := sessionAt.Sub(now)
	if diff < 0 {
		return "Session has passed"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// BuildWeeklyActivity buckets workout dates by calendar weekday, Sun..Sat,
// always producing seven entries with today's bar flagged.
func BuildWeeklyActivity(dates []time.Time, now time.Time) []models.WeekdayActivity {
	counts := make([]int, len(weekdayNames))
	for _, date := range dates {
		counts[int(date.Weekday())]++
	}

	today := int(now.Weekday())
	activity := make([]models.WeekdayActivity, len(weekdayNames))
	for i, day := range weekdayNames {
		activity[i] = models.WeekdayActivity{
			Day:      day,
			Workouts: counts[i],
			IsToday:  i == today,
		}
	}
	return activity
}

// BuildWeeklyBookings buckets a week of bookings by weekday and status.
// Cancelled bookings are left out of both columns.
func BuildWeeklyBookings(bookings []models.Booking) []models.WeekdayBookings {
	buckets := make([]models.WeekdayBookings, len(weekdayNames))
	for i, day := range weekdayNames {
		buckets[i].Day = day
	}
	for _, booking := range bookings {
		index := int(booking.SessionDate.Weekday())
		switch booking.Status {
		case "confirmed":
			buckets[index].Confirmed++
		case "pending":
			buckets[index].Pending++
		}
	}
	return buckets
}

func EstimateRevenue(bookings []models.Booking) float64 {
	confirmed := 0
	for _, booking := range bookings {
		if booking.Status == "confirmed" {
			confirmed++
		}
	}
	return float64(confirmed) * SessionPriceUSD
}

// FilterAtRisk returns clients whose last login is at least AtRiskThreshold
// old, capped for display.
func FilterAtRisk(engagements []models.Engagement, now time.Time) []models.Engagement {
	atRisk := make([]models.Engagement, 0)
	for _, engagement := range engagements {
		if now.Sub(engagement.LastLogin) >= AtRiskThreshold {
			atRisk = append(atRisk, engagement)
			if len(atRisk) == atRiskDisplayCap {
				break
			}
		}
	}
	return atRisk
}

func CountActive(engagements []models.Engagement, now time.Time) int {
	active := 0
	for _, engagement := range engagements {
		if now.Sub(engagement.LastLogin) <= ActiveWindow {
			active++
		}
	}
	return active
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
