package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/models"
)

func TestFormatCountdown(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		sessionAt time.Time
		want      string
	}{
		{"days and hours", now.Add(25 * time.Hour), "1d 1h"},
		{"hours and minutes", now.Add(3*time.Hour + 20*time.Minute), "3h 20m"},
		{"minutes only", now.Add(40 * time.Minute), "40m"},
		{"zero", now, "0m"},
		{"passed", now.Add(-time.Minute), "Session has passed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCountdown(now, tc.sessionAt); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSessionDateTimeCombinesDateAndClock(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	got := SessionDateTime(date, "09:30")
	want := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := SessionDateTime(date, "not a time"); !got.Equal(date) {
		t.Fatalf("expected midnight fallback, got %v", got)
	}
}

func TestBuildWeeklyActivityAlwaysSevenEntries(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),  // Monday
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),  // Monday again
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), // Tuesday
	}

	activity := BuildWeeklyActivity(dates, now)
	if len(activity) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(activity))
	}
	if activity[0].Day != "Sun" || activity[6].Day != "Sat" {
		t.Fatalf("expected Sun..Sat ordering, got %q..%q", activity[0].Day, activity[6].Day)
	}
	if activity[1].Workouts != 2 {
		t.Fatalf("expected 2 Monday workouts, got %d", activity[1].Workouts)
	}
	if activity[2].Workouts != 1 {
		t.Fatalf("expected 1 Tuesday workout, got %d", activity[2].Workouts)
	}
	for i, entry := range activity {
		if entry.IsToday != (i == 2) {
			t.Fatalf("expected only Tuesday flagged as today, entry %d: %+v", i, entry)
		}
	}
}

func TestBuildWeeklyActivityEmptyInput(t *testing.T) {
	activity := BuildWeeklyActivity(nil, time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC))
	if len(activity) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(activity))
	}
	for _, entry := range activity {
		if entry.Workouts != 0 {
			t.Fatalf("expected empty histogram, got %+v", entry)
		}
	}
}

func TestBuildWeeklyBookingsSkipsCancelled(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		{SessionDate: monday, Status: "confirmed"},
		{SessionDate: monday, Status: "pending"},
		{SessionDate: monday, Status: "cancelled"},
	}

	buckets := BuildWeeklyBookings(bookings)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[1].Confirmed != 1 || buckets[1].Pending != 1 {
		t.Fatalf("unexpected Monday bucket: %+v", buckets[1])
	}
}

func TestEstimateRevenueCountsConfirmedOnly(t *testing.T) {
	bookings := []models.Booking{
		{Status: "confirmed"},
		{Status: "confirmed"},
		{Status: "pending"},
		{Status: "cancelled"},
	}
	if got := EstimateRevenue(bookings); got != 2*SessionPriceUSD {
		t.Fatalf("expected %v, got %v", 2*SessionPriceUSD, got)
	}
}

func TestFilterAtRiskThresholdAndCap(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	justOver := models.Engagement{UserID: 1, LastLogin: now.Add(-(AtRiskThreshold + time.Minute))}
	justUnder := models.Engagement{UserID: 2, LastLogin: now.Add(-(AtRiskThreshold - time.Minute))}

	atRisk := FilterAtRisk([]models.Engagement{justOver, justUnder}, now)
	if len(atRisk) != 1 || atRisk[0].UserID != 1 {
		t.Fatalf("expected only user 1 at risk, got %+v", atRisk)
	}

	var many []models.Engagement
	for i := int64(1); i <= 9; i++ {
		many = append(many, models.Engagement{UserID: i, LastLogin: now.Add(-100 * time.Hour)})
	}
	if got := len(FilterAtRisk(many, now)); got != 5 {
		t.Fatalf("expected cap of 5, got %d", got)
	}
}

func TestCountActiveUsesSevenDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	engagements := []models.Engagement{
		{UserID: 1, LastLogin: now.Add(-time.Hour)},
		{UserID: 2, LastLogin: now.Add(-(ActiveWindow - time.Minute))},
		{UserID: 3, LastLogin: now.Add(-(ActiveWindow + time.Hour))},
	}
	if got := CountActive(engagements, now); got != 2 {
		t.Fatalf("expected 2 active clients, got %d", got)
	}
}

type stubEngagementStore struct {
	touched    []int64
	engagement *models.Engagement
	all        []models.Engagement
}

func (s *stubEngagementStore) TouchLogin(_ context.Context, userID int64) error {
	s.touched = append(s.touched, userID)
	return nil
}

func (s *stubEngagementStore) GetByUserID(_ context.Context, _ int64) (*models.Engagement, error) {
	if s.engagement == nil {
		return nil, pgx.ErrNoRows
	}
	return s.engagement, nil
}

func (s *stubEngagementStore) ListAll(_ context.Context) ([]models.Engagement, error) {
	return s.all, nil
}

type stubWorkoutReader struct {
	count int
	dates []time.Time
}

func (s *stubWorkoutReader) CountByUserID(_ context.Context, _ int64) (int, error) {
	return s.count, nil
}

func (s *stubWorkoutReader) ListDatesSince(_ context.Context, _ int64, _ time.Time) ([]time.Time, error) {
	return s.dates, nil
}

type stubBookingReader struct {
	next        *models.Booking
	weekly      []models.Booking
	statusCount int
}

func (s *stubBookingReader) NextConfirmed(_ context.Context, _ int64, _ time.Time) (*models.Booking, error) {
	if s.next == nil {
		return nil, pgx.ErrNoRows
	}
	return s.next, nil
}

func (s *stubBookingReader) ListSince(_ context.Context, _ time.Time) ([]models.Booking, error) {
	return s.weekly, nil
}

func (s *stubBookingReader) CountByStatus(_ context.Context, _ string) (int, error) {
	return s.statusCount, nil
}

type stubProgressReader struct {
	recent []models.ProgressRecord
}

func (s *stubProgressReader) ListRecent(_ context.Context, _ int64, _ int) ([]models.ProgressRecord, error) {
	return s.recent, nil
}

type stubProfileReader struct {
	profiles    map[int64]*models.Profile
	clientCount int
}

func (s *stubProfileReader) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	if profile, ok := s.profiles[userID]; ok {
		return profile, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubProfileReader) CountClients(_ context.Context) (int, error) {
	return s.clientCount, nil
}

func newStubStatsService(
	engagement *stubEngagementStore,
	workouts *stubWorkoutReader,
	bookings *stubBookingReader,
	progress *stubProgressReader,
	profiles *stubProfileReader,
	now time.Time,
) *StatsService {
	service := NewStatsService(engagement, workouts, bookings, progress, profiles)
	service.now = func() time.Time { return now }
	return service
}

func TestClientStatsTouchesLoginAndAssemblesView(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	engagement := &stubEngagementStore{
		engagement: &models.Engagement{UserID: 4, CurrentStreak: 3, LongestStreak: 9},
	}
	bookings := &stubBookingReader{
		next: &models.Booking{
			ID:          21,
			UserID:      4,
			SessionDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			SessionTime: "13:00",
			Status:      "confirmed",
		},
	}
	service := newStubStatsService(
		engagement,
		&stubWorkoutReader{count: 17},
		bookings,
		&stubProgressReader{recent: []models.ProgressRecord{{ID: 8}}},
		&stubProfileReader{},
		now,
	)

	stats, err := service.ClientStats(context.Background(), 4)
	if err != nil {
		t.Fatalf("ClientStats: %v", err)
	}

	if len(engagement.touched) != 1 || engagement.touched[0] != 4 {
		t.Fatalf("expected login touch for user 4, got %v", engagement.touched)
	}
	if stats.CurrentStreak != 3 || stats.LongestStreak != 9 {
		t.Fatalf("unexpected streaks: %+v", stats)
	}
	if stats.TotalWorkouts != 17 {
		t.Fatalf("expected 17 workouts, got %d", stats.TotalWorkouts)
	}
	if stats.NextSession == nil || stats.NextSession.ID != 21 {
		t.Fatalf("expected next session 21, got %+v", stats.NextSession)
	}
	if stats.Countdown != "1d 1h" {
		t.Fatalf("expected countdown 1d 1h, got %q", stats.Countdown)
	}
	if len(stats.WeeklyActivity) != 7 {
		t.Fatalf("expected 7 activity entries, got %d", len(stats.WeeklyActivity))
	}
	if len(stats.RecentProgress) != 1 {
		t.Fatalf("expected 1 progress record, got %d", len(stats.RecentProgress))
	}
}

func TestClientStatsNoEngagementNoSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service := newStubStatsService(
		&stubEngagementStore{},
		&stubWorkoutReader{},
		&stubBookingReader{},
		&stubProgressReader{},
		&stubProfileReader{},
		now,
	)

	stats, err := service.ClientStats(context.Background(), 4)
	if err != nil {
		t.Fatalf("ClientStats: %v", err)
	}
	if stats.CurrentStreak != 0 || stats.LongestStreak != 0 {
		t.Fatalf("expected zero streaks, got %+v", stats)
	}
	if stats.NextSession != nil || stats.Countdown != "" {
		t.Fatalf("expected no next session, got %+v", stats)
	}
}

func TestCoachStatsResolvesAtRiskProfiles(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	service := newStubStatsService(
		&stubEngagementStore{
			all: []models.Engagement{
				{UserID: 1, LastLogin: now.Add(-time.Hour)},
				{UserID: 2, LastLogin: now.Add(-8 * 24 * time.Hour)},
			},
		},
		&stubWorkoutReader{},
		&stubBookingReader{
			weekly: []models.Booking{
				{SessionDate: monday, Status: "confirmed"},
				{SessionDate: monday, Status: "pending"},
			},
			statusCount: 4,
		},
		&stubProgressReader{},
		&stubProfileReader{
			clientCount: 2,
			profiles: map[int64]*models.Profile{
				2: {UserID: 2, FullName: "Jamie Cole", Role: "client"},
			},
		},
		now,
	)

	stats, err := service.CoachStats(context.Background())
	if err != nil {
		t.Fatalf("CoachStats: %v", err)
	}

	if stats.TotalClients != 2 || stats.ActiveClients != 1 {
		t.Fatalf("unexpected client counts: %+v", stats)
	}
	if len(stats.AtRiskClients) != 1 {
		t.Fatalf("expected 1 at-risk client, got %d", len(stats.AtRiskClients))
	}
	if stats.AtRiskClients[0].Profile == nil || stats.AtRiskClients[0].Profile.FullName != "Jamie Cole" {
		t.Fatalf("expected resolved profile, got %+v", stats.AtRiskClients[0])
	}
	if stats.EstimatedRevenue != SessionPriceUSD {
		t.Fatalf("expected revenue %v, got %v", SessionPriceUSD, stats.EstimatedRevenue)
	}
	if stats.PendingApprovals != 4 {
		t.Fatalf("expected 4 pending approvals, got %d", stats.PendingApprovals)
	}
}
