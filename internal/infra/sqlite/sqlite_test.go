package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wellspring-app/wellspring/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Join(dir, "state.db")); err != nil {
		t.Errorf("state.db not created: %v", err)
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	db := testDB(t)

	var mode string
	if err := db.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var fk int
	if err := db.db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var timeout int
	if err := db.db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatalf("busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestKV_SetGet(t *testing.T) {
	db := testDB(t)

	if err := db.Set("tracker_stats", `{"mood_count":3}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get("tracker_stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"mood_count":3}` {
		t.Errorf("got %q", got)
	}

	// Overwrite
	if err := db.Set("tracker_stats", `{"mood_count":4}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = db.Get("tracker_stats")
	if got != `{"mood_count":4}` {
		t.Errorf("after overwrite: %q", got)
	}
}

func TestKV_MissingKeyIsEmpty(t *testing.T) {
	db := testDB(t)

	got, err := db.Get("never_written")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "" {
		t.Errorf("missing key = %q, want empty", got)
	}
}

func TestJournal_InsertAndList(t *testing.T) {
	db := testDB(t)

	base := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	moods := []string{"okay", "good", "great"}
	for i, mood := range moods {
		_, err := db.InsertJournalEntry(domain.JournalEntry{
			Mood:      mood,
			Note:      "day " + mood,
			CreatedAt: base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	entries, err := db.ListJournalEntries(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2 (limit)", len(entries))
	}
	if entries[0].Mood != "great" || entries[1].Mood != "good" {
		t.Errorf("order wrong: %s, %s", entries[0].Mood, entries[1].Mood)
	}

	count, err := db.JournalEntryCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestNotifications_PendingAndShown(t *testing.T) {
	db := testDB(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	id1, err := db.InsertNotification(domain.Notification{
		Type: domain.NotifyMissionComplete, Title: "a", Body: "b", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = db.InsertNotification(domain.Notification{
		Type: domain.NotifyLevelUp, Title: "c", Body: "d", CreatedAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	pending, err := db.ListPendingNotifications(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	if pending[0].Title != "c" {
		t.Errorf("newest first: got %q", pending[0].Title)
	}

	if err := db.MarkNotificationShown(id1); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = db.ListPendingNotifications(10)
	if len(pending) != 1 || pending[0].Title != "c" {
		t.Errorf("after shown: %+v", pending)
	}

	if err := db.MarkNotificationShown(12345); err != domain.ErrNotificationNotFound {
		t.Errorf("err = %v, want ErrNotificationNotFound", err)
	}
}

func TestNotifications_CountSince(t *testing.T) {
	db := testDB(t)

	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		day.Add(-2 * time.Hour), // Yesterday
		day.Add(9 * time.Hour),
		day.Add(15 * time.Hour),
	}
	for _, ts := range times {
		if _, err := db.InsertNotification(domain.Notification{
			Type: domain.NotifyAchievement, Title: "x", Body: "y", CreatedAt: ts,
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	count, err := db.NotificationCountSince(day)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
