package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"farewatch/pkg/models"
)

// Messages produced by workflow callbacks and command goroutines.

type noticeMsg struct {
	notice *models.Notice
}

type suggestionsMsg struct {
	field string
	items []string
}

type estimatesMsg struct {
	estimates []models.PriceEstimate
}

type flightsMsg struct {
	flights []models.FlightEstimate
}

type routesMsg struct {
	routes []models.TrackedRoute
}

type requestErrMsg struct {
	err error
}

// listen re-arms the external event pump after each delivered message.
func listen(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
