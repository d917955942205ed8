// Package notify manages celebratory notifications: mission completed,
// achievement unlocked, level up. Policy keeps them from becoming a
// nuisance — a daily cap plus quiet hours.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/sqlite"
)

// Service creates and lists notifications subject to policy.
type Service struct {
	db     *sqlite.DB
	clock  domain.Clock
	policy domain.NotificationPolicy
}

// NewService creates a notification service with the default policy.
func NewService(db *sqlite.DB, clock domain.Clock) *Service {
	return NewServiceWithPolicy(db, clock, domain.DefaultNotificationPolicy())
}

// NewServiceWithPolicy creates a notification service with a custom policy.
func NewServiceWithPolicy(db *sqlite.DB, clock domain.Clock, policy domain.NotificationPolicy) *Service {
	return &Service{db: db, clock: clock, policy: policy}
}

// Create stores a notification if policy allows it.
// Returns the notification id (0 if suppressed by policy) and any error.
func (s *Service) Create(n domain.Notification) (int64, error) {
	now := s.clock.Now()

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayCount, err := s.db.NotificationCountSince(startOfDay)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= s.policy.MaxPerDay {
		return 0, nil // Suppressed — daily limit reached
	}

	if s.isQuietHour(now) {
		return 0, nil // Suppressed — quiet hours
	}

	n.CreatedAt = now
	n.Shown = false

	id, err := s.db.InsertNotification(n)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// Pending returns unshown notifications.
func (s *Service) Pending(limit int) ([]domain.Notification, error) {
	return s.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkNotificationShown(id)
}

// Policy returns the current notification policy.
func (s *Service) Policy() domain.NotificationPolicy {
	return s.policy
}

// isQuietHour returns true if t falls within the policy's quiet window.
func (s *Service) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(s.policy.QuietStart)
	endHour, endMin := parseHHMM(s.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(v string) (int, int) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
