package tracker

import "github.com/wellspring-app/wellspring/internal/domain"

// Update describes one tracker state change, delivered synchronously to
// subscribers after the mutating operation has persisted. This replaces
// the old serialize-and-diff polling observers.
type Update struct {
	Event                domain.EventType
	Stats                domain.GamificationStats
	CompletedMissions    []domain.Mission
	UnlockedAchievements []domain.Achievement
}

// Subscriber receives tracker updates. Subscribers run on the caller's
// goroutine and should return quickly.
type Subscriber func(Update)

// Dispatcher fans tracker updates out to registered subscribers in
// subscription order.
type Dispatcher struct {
	subs []Subscriber
}

// Subscribe registers a subscriber. Not safe to call concurrently with
// event registration; wire subscribers at startup.
func (d *Dispatcher) Subscribe(fn Subscriber) {
	d.subs = append(d.subs, fn)
}

func (d *Dispatcher) publish(u Update) {
	for _, fn := range d.subs {
		fn(u)
	}
}
