package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"farewatch/pkg/models"
	"farewatch/pkg/workflow"
)

type tab int

const (
	tabCab tab = iota
	tabFlights
	tabRoutes
	tabCount
)

// Cab form field order.
const (
	cabPickup = iota
	cabDropoff
	cabPassengers
	cabPhone
	cabFieldCount
)

// Flight form field order.
const (
	flightOrigin = iota
	flightDestination
	flightDepart
	flightReturn
	flightCabin
	flightPassengers
	flightFieldCount
)

type modelDeps struct {
	events     chan tea.Msg
	alerts     *workflow.AlertChannel
	comparator *workflow.QuoteComparator
	tracker    *workflow.RouteTracker
	suggester  *workflow.LocationSuggester
	post       func(tea.Msg)
}

type model struct {
	deps   modelDeps
	styles Styles

	width  int
	height int

	activeTab tab

	cabInputs    []textinput.Model
	flightInputs []textinput.Model
	focus        int

	suggestions  []string
	suggestField string

	estimates []models.PriceEstimate
	flights   []models.FlightEstimate
	selected  int

	routes   []models.TrackedRoute
	routeSel int

	notice    *models.Notice
	fieldErrs map[string]string

	spinner spinner.Model
	busy    bool
}

func newModel(deps modelDeps) model {
	mk := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Width = width
		ti.CharLimit = 64
		return ti
	}

	cab := make([]textinput.Model, cabFieldCount)
	cab[cabPickup] = mk("Pickup location", 32)
	cab[cabDropoff] = mk("Dropoff location", 32)
	cab[cabPassengers] = mk("Passengers (1-7)", 16)
	cab[cabPhone] = mk("+1XXXXXXXXXX (for tracking)", 20)
	cab[cabPickup].Focus()

	fl := make([]textinput.Model, flightFieldCount)
	fl[flightOrigin] = mk("Origin city", 32)
	fl[flightDestination] = mk("Destination city", 32)
	fl[flightDepart] = mk("Departure (YYYY-MM-DD)", 16)
	fl[flightReturn] = mk("Return (optional)", 16)
	fl[flightCabin] = mk("economy", 20)
	fl[flightPassengers] = mk("Passengers", 16)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		deps:         deps,
		styles:       DefaultStyles(),
		cabInputs:    cab,
		flightInputs: fl,
		spinner:      sp,
		fieldErrs:    map[string]string{},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, listen(m.deps.events))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case noticeMsg:
		m.notice = msg.notice
		return m, listen(m.deps.events)

	case suggestionsMsg:
		if msg.field == m.focusedLocationField() {
			m.suggestions = msg.items
			m.suggestField = msg.field
		}
		return m, listen(m.deps.events)

	case estimatesMsg:
		m.busy = false
		m.estimates = msg.estimates
		m.selected = 0
		return m, nil

	case flightsMsg:
		m.busy = false
		m.flights = msg.flights
		m.selected = 0
		return m, nil

	case routesMsg:
		m.routes = msg.routes
		if m.routeSel >= len(m.routes) {
			m.routeSel = 0
		}
		return m, nil

	case requestErrMsg:
		m.busy = false
		var verr *workflow.ValidationError
		if errors.As(msg.err, &verr) {
			m.fieldErrs = verr.Fields
		} else if errors.Is(msg.err, workflow.ErrInvalidPhoneNumber) {
			m.fieldErrs = map[string]string{"phone": workflow.ErrInvalidPhoneNumber.Error()}
		}
		// RequestFailed surfaces through the alert channel.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.notice != nil {
			m.deps.alerts.Dismiss()
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+t":
		m.activeTab = (m.activeTab + 1) % tabCount
		m.focus = 0
		m.suggestions = nil
		m.syncFocus()
		if m.activeTab == tabRoutes {
			// Auto-refresh: tracked-routes panel just became visible.
			return m, m.refreshRoutesCmd()
		}
		return m, nil

	case "tab", "shift+tab":
		n := m.fieldCount()
		if n == 0 {
			return m, nil
		}
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % n
		} else {
			m.focus = (m.focus - 1 + n) % n
		}
		m.suggestions = nil
		m.syncFocus()
		return m, nil

	case "up", "down":
		return m.moveSelection(msg.String() == "down"), nil

	case "enter":
		return m.submit()

	case "ctrl+y":
		if len(m.suggestions) > 0 {
			if ti := m.focusedInput(); ti != nil {
				ti.SetValue(m.suggestions[0])
				ti.CursorEnd()
			}
			m.suggestions = nil
		}
		return m, nil

	case "ctrl+o":
		if m.activeTab == tabCab && m.selected < len(m.estimates) {
			est := m.estimates[m.selected]
			m.deps.comparator.OpenEstimate(est, openURL)
		}
		return m, nil

	case "ctrl+r":
		if m.activeTab == tabCab && m.selected < len(m.estimates) {
			return m.trackSelected()
		}
		return m, nil

	case "ctrl+d":
		if m.activeTab == tabRoutes && m.routeSel < len(m.routes) {
			return m, m.removeRouteCmd(m.routes[m.routeSel].ID)
		}
		return m, nil

	case "ctrl+l":
		if m.activeTab == tabRoutes {
			return m, m.refreshRoutesCmd()
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards a key to the focused text input and kicks off
// an autocomplete lookup when a location field changed.
func (m model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ti := m.focusedInput()
	if ti == nil {
		return m, nil
	}
	before := ti.Value()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)

	if field := m.focusedLocationField(); field != "" && ti.Value() != before {
		query := ti.Value()
		deliver := func(items []string) {
			m.deps.post(suggestionsMsg{field: field, items: items})
		}
		m.deps.suggester.Suggest(context.Background(), field, query, deliver)
	}
	return m, cmd
}

func (m *model) syncFocus() {
	for i := range m.cabInputs {
		m.cabInputs[i].Blur()
	}
	for i := range m.flightInputs {
		m.flightInputs[i].Blur()
	}
	if ti := m.focusedInput(); ti != nil {
		ti.Focus()
	}
}

func (m *model) focusedInput() *textinput.Model {
	switch m.activeTab {
	case tabCab:
		return &m.cabInputs[m.focus]
	case tabFlights:
		return &m.flightInputs[m.focus]
	}
	return nil
}

func (m model) fieldCount() int {
	switch m.activeTab {
	case tabCab:
		return cabFieldCount
	case tabFlights:
		return flightFieldCount
	}
	return 0
}

// focusedLocationField names the focused field if it takes a place name.
func (m model) focusedLocationField() string {
	switch {
	case m.activeTab == tabCab && m.focus == cabPickup:
		return "pickup"
	case m.activeTab == tabCab && m.focus == cabDropoff:
		return "dropoff"
	case m.activeTab == tabFlights && m.focus == flightOrigin:
		return "origin"
	case m.activeTab == tabFlights && m.focus == flightDestination:
		return "destination"
	}
	return ""
}

func (m model) moveSelection(down bool) model {
	var max int
	switch m.activeTab {
	case tabCab:
		max = len(m.estimates)
	case tabFlights:
		max = len(m.flights)
	case tabRoutes:
		max = len(m.routes)
	}
	if max == 0 {
		return m
	}
	sel := &m.selected
	if m.activeTab == tabRoutes {
		sel = &m.routeSel
	}
	if down && *sel < max-1 {
		*sel++
	} else if !down && *sel > 0 {
		*sel--
	}
	return m
}

func (m model) submit() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case tabCab:
		return m.submitCab()
	case tabFlights:
		return m.submitFlights()
	}
	return m, nil
}

func (m model) submitCab() (tea.Model, tea.Cmd) {
	m.fieldErrs = map[string]string{}
	passengers, _ := strconv.Atoi(strings.TrimSpace(m.cabInputs[cabPassengers].Value()))
	req := models.TripRequest{
		Pickup:         strings.TrimSpace(m.cabInputs[cabPickup].Value()),
		Dropoff:        strings.TrimSpace(m.cabInputs[cabDropoff].Value()),
		PassengerCount: passengers,
	}

	m.busy = true
	cmd := func() tea.Msg {
		estimates, err := m.deps.comparator.Compare(context.Background(), req)
		if err != nil {
			return requestErrMsg{err: err}
		}
		return estimatesMsg{estimates: estimates}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m model) submitFlights() (tea.Model, tea.Cmd) {
	m.fieldErrs = map[string]string{}
	passengers, _ := strconv.Atoi(strings.TrimSpace(m.flightInputs[flightPassengers].Value()))
	if passengers == 0 {
		passengers = 1
	}
	cabin := strings.TrimSpace(m.flightInputs[flightCabin].Value())
	if cabin == "" {
		cabin = models.CabinEconomy
	}
	req := models.FlightRequest{
		Origin:        strings.TrimSpace(m.flightInputs[flightOrigin].Value()),
		Destination:   strings.TrimSpace(m.flightInputs[flightDestination].Value()),
		DepartureDate: strings.TrimSpace(m.flightInputs[flightDepart].Value()),
		ReturnDate:    strings.TrimSpace(m.flightInputs[flightReturn].Value()),
		Passengers:    passengers,
		CabinClass:    cabin,
	}

	m.busy = true
	cmd := func() tea.Msg {
		flights, err := m.deps.comparator.CompareFlights(context.Background(), req)
		if err != nil {
			return requestErrMsg{err: err}
		}
		return flightsMsg{flights: flights}
	}
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m model) trackSelected() (tea.Model, tea.Cmd) {
	m.fieldErrs = map[string]string{}
	est := m.estimates[m.selected]
	phone := strings.TrimSpace(m.cabInputs[cabPhone].Value())
	passengers, _ := strconv.Atoi(strings.TrimSpace(m.cabInputs[cabPassengers].Value()))
	if passengers == 0 {
		passengers = 1
	}

	cmd := func() tea.Msg {
		if _, err := m.deps.tracker.Create(context.Background(), est, phone, passengers); err != nil {
			return requestErrMsg{err: err}
		}
		return routesMsg{routes: m.deps.tracker.Routes()}
	}
	return m, cmd
}

func (m model) refreshRoutesCmd() tea.Cmd {
	phone := strings.TrimSpace(m.cabInputs[cabPhone].Value())
	return func() tea.Msg {
		m.deps.tracker.Refresh(context.Background(), phone, true)
		return routesMsg{routes: m.deps.tracker.Routes()}
	}
}

func (m model) removeRouteCmd(id int) tea.Cmd {
	phone := strings.TrimSpace(m.cabInputs[cabPhone].Value())
	return func() tea.Msg {
		m.deps.tracker.Remove(context.Background(), id, phone)
		return routesMsg{routes: m.deps.tracker.Routes()}
	}
}
