package workflow

import (
	"sync"
	"time"

	"farewatch/pkg/models"
)

// DefaultNoticeTTL is how long a notice stays visible without an explicit
// acknowledgement.
const DefaultNoticeTTL = 3 * time.Second

// AlertChannel holds the single visible Notice. Posting replaces whatever
// is shown (last write wins); each notice dismisses itself after the TTL
// unless acknowledged first. A superseded notice's timer never dismisses
// its successor.
type AlertChannel struct {
	clock    Clock
	ttl      time.Duration
	onChange func(*models.Notice)

	mu      sync.Mutex
	gen     uint64
	current *models.Notice
	timer   Timer
}

// NewAlertChannel creates an alert channel. onChange is invoked with the new
// notice on every post and with nil on every dismissal; it may be nil.
func NewAlertChannel(clock Clock, onChange func(*models.Notice)) *AlertChannel {
	if clock == nil {
		clock = SystemClock()
	}
	return &AlertChannel{clock: clock, ttl: DefaultNoticeTTL, onChange: onChange}
}

func (a *AlertChannel) Notify(message string, severity models.Severity) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	n := &models.Notice{Message: message, Severity: severity}
	a.current = n
	a.timer = a.clock.AfterFunc(a.ttl, func() { a.expire(gen) })
	a.mu.Unlock()

	a.publish(n)
}

func (a *AlertChannel) Success(message string) { a.Notify(message, models.SeveritySuccess) }
func (a *AlertChannel) Error(message string)   { a.Notify(message, models.SeverityError) }

// Dismiss acknowledges the current notice.
func (a *AlertChannel) Dismiss() {
	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	a.current = nil
	a.timer = nil
	a.mu.Unlock()

	a.publish(nil)
}

// Current returns a copy of the visible notice, or nil.
func (a *AlertChannel) Current() *models.Notice {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	n := *a.current
	return &n
}

// expire clears the notice the timer was armed for. A non-matching
// generation means the notice was already replaced or dismissed.
func (a *AlertChannel) expire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.current == nil {
		a.mu.Unlock()
		return
	}
	a.current = nil
	a.timer = nil
	a.mu.Unlock()

	a.publish(nil)
}

func (a *AlertChannel) publish(n *models.Notice) {
	if a.onChange != nil {
		a.onChange(n)
	}
}
