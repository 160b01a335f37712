package workflow

import (
	"sync"

	"farewatch/pkg/models"
)

// RedirectPlan is the pending web fallback of a two-stage booking redirect.
// Cancel it when the app evidently took over (the view lost focus inside
// the grace window).
type RedirectPlan struct {
	mu        sync.Mutex
	timer     Timer
	cancelled bool
	fired     bool
}

// OpenEstimate starts a booking redirect for an estimate: the provider's
// app deep link opens immediately, and the web URL opens after the grace
// window unless the plan is cancelled first. There is no reliable signal
// that the deep link actually launched an app, so this stays a best-effort
// heuristic rather than a guaranteed sequence.
func (c *QuoteComparator) OpenEstimate(est models.PriceEstimate, open func(url string)) *RedirectPlan {
	open(est.AppURL)

	plan := &RedirectPlan{}
	plan.timer = c.clock.AfterFunc(c.graceWindow, func() {
		plan.mu.Lock()
		if plan.cancelled {
			plan.mu.Unlock()
			return
		}
		plan.fired = true
		plan.mu.Unlock()
		open(est.WebURL)
	})
	return plan
}

// Cancel stops the pending web fallback. It has no effect once the
// fallback has fired.
func (p *RedirectPlan) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fired {
		return
	}
	p.cancelled = true
	if p.timer != nil {
		p.timer.Stop()
	}
}

// Fired reports whether the web fallback has run.
func (p *RedirectPlan) Fired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}
