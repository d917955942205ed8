package sqlite

import (
	"database/sql"
	"time"

	"github.com/wellspring-app/wellspring/internal/domain"
)

// ─── Journal ────────────────────────────────────────────────────────────────

// InsertJournalEntry creates a mood journal entry and returns its id.
func (d *DB) InsertJournalEntry(e domain.JournalEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO journal (mood, note, created_at) VALUES (?, ?, ?)`,
		e.Mood, e.Note, e.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListJournalEntries returns the most recent entries, newest first.
func (d *DB) ListJournalEntries(limit int) ([]domain.JournalEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, mood, note, created_at
		 FROM journal ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		e, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// JournalEntryCount returns the total number of journal entries.
func (d *DB) JournalEntryCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM journal`).Scan(&count)
	return count, err
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification and returns its id.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince returns how many notifications were created at or
// after the given time.
func (d *DB) NotificationCountSince(since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, newest first.
func (d *DB) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		n, err := scanNotif(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, *n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id int64) error {
	result, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanJournal(s scanner) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var createdAt int64
	err := s.Scan(&e.ID, &e.Mood, &e.Note, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(createdAt, 0)
	return &e, nil
}

func scanNotif(s scanner) (*domain.Notification, error) {
	var n domain.Notification
	var createdAt int64
	err := s.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.CreatedAt = time.Unix(createdAt, 0)
	return &n, nil
}
