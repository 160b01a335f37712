// Package ui is the interactive terminal front end: a tabbed form over the
// comparison and route-tracking workflow.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"farewatch/pkg/models"
	"farewatch/pkg/workflow"
)

// Session carries everything the UI needs from the command layer.
type Session struct {
	Backend workflow.Backend
	Clock   workflow.Clock
	Logger  *zap.Logger
}

// Run starts the interactive interface and blocks until the user quits.
func Run(s Session) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Clock == nil {
		s.Clock = workflow.SystemClock()
	}

	// Workflow callbacks fire on their own goroutines; they feed the
	// program through this channel so all state changes happen in the
	// update loop.
	events := make(chan tea.Msg, 32)
	post := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}

	alerts := workflow.NewAlertChannel(s.Clock, func(n *models.Notice) {
		post(noticeMsg{notice: n})
	})

	m := newModel(modelDeps{
		events:     events,
		alerts:     alerts,
		comparator: workflow.NewQuoteComparator(s.Backend, alerts, s.Clock, s.Logger.Named("compare")),
		tracker:    workflow.NewRouteTracker(s.Backend, alerts, s.Logger.Named("track")),
		suggester: workflow.NewLocationSuggester(s.Backend, s.Clock, s.Logger.Named("suggest"), workflow.SuggesterConfig{
			MinQueryLen: workflow.DefaultMinQueryLen,
			Debounce:    workflow.DefaultDebounce,
		}),
		post: post,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
