package progress

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

func setupEngineDB(t *testing.T) *gorm.DB {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&tracker.Domain{}, &tracker.Tag{}, &tracker.Goal{}, &tracker.ScheduleEntry{},
		&tracker.TrackerEntry{}, &tracker.GoalReview{}, &tracker.DomainReview{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{"tracker_entries", "schedule_entries", "goal_reviews", "domain_reviews", "goals", "domains"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
	return conn
}

func seedStudyHoursGoal(t *testing.T, conn *gorm.DB, domainName string, target float64) tracker.Goal {
	d := tracker.Domain{Name: domainName}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("failed to seed domain: %v", err)
	}
	goalData, err := tracker.Blob(map[string]any{"hours": target})
	if err != nil {
		t.Fatalf("failed to encode goal data: %v", err)
	}
	month := 1
	g := tracker.Goal{
		DomainID:    d.ID,
		Year:        2024,
		Month:       &month,
		Description: "study",
		GoalType:    "study_hours",
		GoalData:    goalData,
	}
	if err := conn.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	return g
}

func logHours(t *testing.T, conn *gorm.DB, g *tracker.Goal, hours float64, day int) tracker.TrackerEntry {
	logData, err := tracker.Blob(map[string]any{"hours": hours})
	if err != nil {
		t.Fatalf("failed to encode log data: %v", err)
	}
	entry := tracker.TrackerEntry{
		GoalID:      &g.ID,
		DomainID:    g.DomainID,
		Date:        time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		Description: "study session",
		LogData:     logData,
		Status:      tracker.StatusDone,
	}
	if err := conn.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed tracker entry: %v", err)
	}
	return entry
}

func TestGoalProgress_SumsAndClamps(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)
	g := seedStudyHoursGoal(t, conn, "math", 10)

	pct, err := eng.GoalProgress(&g)
	if err != nil {
		t.Fatalf("GoalProgress failed: %v", err)
	}
	if pct != 0 {
		t.Errorf("no occurrences should yield 0, got %v", pct)
	}

	logHours(t, conn, &g, 2, 1)
	logHours(t, conn, &g, 3, 2)
	logHours(t, conn, &g, 4, 3)
	pct, err = eng.GoalProgress(&g)
	if err != nil {
		t.Fatalf("GoalProgress failed: %v", err)
	}
	if pct != 90 {
		t.Errorf("expected 90.0, got %v", pct)
	}

	logHours(t, conn, &g, 5, 4)
	pct, err = eng.GoalProgress(&g)
	if err != nil {
		t.Fatalf("GoalProgress failed: %v", err)
	}
	if pct != 100 {
		t.Errorf("expected clamp to 100.0, got %v", pct)
	}
}

func TestGoalProgress_UnregisteredTypeIsZero(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)

	d := tracker.Domain{Name: "misc"}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("failed to seed domain: %v", err)
	}
	g := tracker.Goal{DomainID: d.ID, Year: 2024, GoalType: "mystery_type", Description: "unknown"}
	if err := conn.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	pct, err := eng.GoalProgress(&g)
	if err != nil {
		t.Fatalf("GoalProgress failed: %v", err)
	}
	if pct != 0 {
		t.Errorf("unregistered goal type should yield 0, got %v", pct)
	}
}

func TestOccurrenceProgress(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)
	g := seedStudyHoursGoal(t, conn, "math", 10)

	// Standalone entry: no goal, no progress value at all.
	d := tracker.Domain{Name: "errands"}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("failed to seed domain: %v", err)
	}
	standalone := tracker.TrackerEntry{
		DomainID: d.ID,
		Date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := conn.Create(&standalone).Error; err != nil {
		t.Fatalf("failed to seed standalone entry: %v", err)
	}
	v, err := eng.OccurrenceProgress(&standalone)
	if err != nil {
		t.Fatalf("OccurrenceProgress failed: %v", err)
	}
	if v != nil {
		t.Errorf("standalone entry should have no progress value, got %v", v)
	}

	// Linked entry reports its logged amount.
	entry := logHours(t, conn, &g, 2.5, 5)
	v, err = eng.OccurrenceProgress(&entry)
	if err != nil {
		t.Fatalf("OccurrenceProgress failed: %v", err)
	}
	if v == nil || v.Amount != 2.5 {
		t.Errorf("expected progress 2.5, got %v", v)
	}
}

func TestRefreshGoalReview_PersistsAndStaysStale(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)
	g := seedStudyHoursGoal(t, conn, "math", 10)
	logHours(t, conn, &g, 2, 1)
	logHours(t, conn, &g, 3, 2)

	rv := tracker.GoalReview{GoalID: g.ID, Notes: "halfway check"}
	if err := eng.RefreshGoalReview(&rv); err != nil {
		t.Fatalf("RefreshGoalReview failed: %v", err)
	}
	if rv.OverallProgress != 50 {
		t.Errorf("expected 50.0, got %v", rv.OverallProgress)
	}

	// Later tracker edits leave the stored value alone until the next save.
	logHours(t, conn, &g, 5, 3)
	var stored tracker.GoalReview
	if err := conn.First(&stored, rv.ID).Error; err != nil {
		t.Fatalf("load review: %v", err)
	}
	if stored.OverallProgress != 50 {
		t.Errorf("stored progress should stay stale at 50, got %v", stored.OverallProgress)
	}

	if err := eng.RefreshGoalReview(&stored); err != nil {
		t.Fatalf("RefreshGoalReview failed: %v", err)
	}
	if stored.OverallProgress != 100 {
		t.Errorf("expected refresh to 100.0, got %v", stored.OverallProgress)
	}
}

func TestDomainProgress_MeanOfGoalReviews(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)

	d := tracker.Domain{Name: "school"}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("failed to seed domain: %v", err)
	}

	// No goals at all: 0, not an error.
	pct, err := eng.DomainProgress(d.ID, PeriodFilter{Year: 2024})
	if err != nil {
		t.Fatalf("DomainProgress failed: %v", err)
	}
	if pct != 0 {
		t.Errorf("expected 0 with no goals, got %v", pct)
	}

	goalData, _ := tracker.Blob(map[string]any{"hours": 10.0})
	monthA, monthB := 1, 2
	g1 := tracker.Goal{DomainID: d.ID, Year: 2024, Month: &monthA, GoalType: "study_hours", GoalData: goalData, Description: "jan"}
	g2 := tracker.Goal{DomainID: d.ID, Year: 2024, Month: &monthB, GoalType: "study_hours", GoalData: goalData, Description: "feb"}
	if err := conn.Create(&g1).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	if err := conn.Create(&g2).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	logHours(t, conn, &g1, 4, 10) // 40%
	logHours(t, conn, &g2, 8, 15) // 80%

	rv1 := tracker.GoalReview{GoalID: g1.ID}
	rv2 := tracker.GoalReview{GoalID: g2.ID}
	if err := eng.RefreshGoalReview(&rv1); err != nil {
		t.Fatalf("refresh review: %v", err)
	}
	if err := eng.RefreshGoalReview(&rv2); err != nil {
		t.Fatalf("refresh review: %v", err)
	}

	pct, err = eng.DomainProgress(d.ID, PeriodFilter{Year: 2024})
	if err != nil {
		t.Fatalf("DomainProgress failed: %v", err)
	}
	if pct != 60 {
		t.Errorf("expected mean 60.0, got %v", pct)
	}

	// Month filter narrows to one goal's review.
	pct, err = eng.DomainProgress(d.ID, PeriodFilter{Year: 2024, Month: 2})
	if err != nil {
		t.Fatalf("DomainProgress failed: %v", err)
	}
	if pct != 80 {
		t.Errorf("expected 80.0 for february, got %v", pct)
	}
}

func TestRefreshDomainReview_Persists(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)
	g := seedStudyHoursGoal(t, conn, "science", 10)
	logHours(t, conn, &g, 9, 1)

	grv := tracker.GoalReview{GoalID: g.ID}
	if err := eng.RefreshGoalReview(&grv); err != nil {
		t.Fatalf("refresh goal review: %v", err)
	}

	rv := tracker.DomainReview{DomainID: g.DomainID, Year: 2024}
	if err := eng.RefreshDomainReview(&rv); err != nil {
		t.Fatalf("RefreshDomainReview failed: %v", err)
	}
	if rv.SummaryProgress != 90 {
		t.Errorf("expected 90.0, got %v", rv.SummaryProgress)
	}
	if rv.ID == 0 {
		t.Errorf("expected review to be persisted")
	}
}

func TestDomainProgress_RejectsContradictoryFilter(t *testing.T) {
	conn := setupEngineDB(t)
	eng := NewEngine(conn)
	if _, err := eng.DomainProgress(1, PeriodFilter{Year: 2024, Month: 2, Quarter: 1}); err == nil {
		t.Errorf("expected error for month combined with quarter")
	}
}
