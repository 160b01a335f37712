package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"farewatch/pkg/models"
	"farewatch/pkg/utils"
)

var tabTitles = []string{"Cab prices", "Flights", "Tracked routes"}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("farewatch"))
	b.WriteString("  ")
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if tab(i) == m.activeTab {
			tabs[i] = m.styles.TabActive.Render(title)
		} else {
			tabs[i] = m.styles.TabInactive.Render(title)
		}
	}
	b.WriteString(strings.Join(tabs, " | "))
	b.WriteString("\n\n")

	switch m.activeTab {
	case tabCab:
		b.WriteString(m.viewCabForm())
		b.WriteString(m.viewEstimates())
	case tabFlights:
		b.WriteString(m.viewFlightForm())
		b.WriteString(m.viewFlights())
	case tabRoutes:
		b.WriteString(m.viewRoutes())
	}

	b.WriteString("\n")
	b.WriteString(m.viewNotice())
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m model) viewCabForm() string {
	labels := []string{"Pickup", "Dropoff", "Passengers", "Phone"}
	errKeys := []string{"pickup", "dropoff", "passengers", "phone"}
	return m.viewForm(labels, errKeys, m.cabInputs)
}

func (m model) viewFlightForm() string {
	labels := []string{"Origin", "Destination", "Depart", "Return", "Cabin", "Passengers"}
	errKeys := []string{"origin", "destination", "departure_date", "return_date", "cabin_class", "passengers"}
	return m.viewForm(labels, errKeys, m.flightInputs)
}

func (m model) viewForm(labels, errKeys []string, inputs []textinput.Model) string {
	var b strings.Builder
	for i, ti := range inputs {
		b.WriteString(fmt.Sprintf("%s %s", m.styles.Label.Render(fmt.Sprintf("%-12s", labels[i])), ti.View()))
		if msg, ok := m.fieldErrs[errKeys[i]]; ok {
			b.WriteString("  " + m.styles.FieldError.Render(msg))
		}
		b.WriteString("\n")
		if i == m.focus && len(m.suggestions) > 0 {
			b.WriteString(m.styles.Muted.Render("             ↳ "+strings.Join(m.suggestions, " · ")) + "\n")
		}
	}
	if m.busy {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" fetching estimates…") + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) viewEstimates() string {
	if len(m.estimates) == 0 {
		return m.styles.Muted.Render("No estimates yet. Fill the form and press enter.") + "\n"
	}
	cards := make([]string, 0, len(m.estimates))
	for i, est := range m.estimates {
		style := m.styles.Card
		if i == m.selected {
			style = m.styles.CardChosen
		}
		var c strings.Builder
		c.WriteString(fmt.Sprintf("%s  %s\n", est.Provider, est.PriceEstimate))
		c.WriteString(fmt.Sprintf("%s · %.1f mi · %s\n",
			utils.FormatDuration(est.Duration), est.Distance,
			utils.RatePerMile(est.PriceEstimate, est.Distance)))
		c.WriteString(est.Capacity)
		if est.Recommended {
			c.WriteString("\n" + m.styles.Recommended.Render("recommended"))
		}
		cards = append(cards, style.Render(c.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func (m model) viewFlights() string {
	if len(m.flights) == 0 {
		return m.styles.Muted.Render("No flights yet. Fill the form and press enter.") + "\n"
	}
	var b strings.Builder
	for i, f := range m.flights {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		stops := fmt.Sprintf("%d stops", f.Stops)
		switch f.Stops {
		case 0:
			stops = "nonstop"
		case 1:
			stops = "1 stop"
		}
		line := fmt.Sprintf("%s%-14s %10s  %-10s %-8s %s",
			cursor, f.Provider, f.PriceEstimate,
			utils.FormatDuration(f.Duration), stops, f.CabinClass)
		if f.Recommended {
			line += "  " + m.styles.Recommended.Render("recommended")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) viewRoutes() string {
	if len(m.routes) == 0 {
		return m.styles.Muted.Render("No tracked routes. Enter a phone number on the cab tab and track an estimate with ctrl+r.") + "\n"
	}
	var b strings.Builder
	for i, r := range m.routes {
		cursor := "  "
		if i == m.routeSel {
			cursor = "> "
		}
		status := m.styles.Success.Render("active")
		if !r.IsActive {
			status = m.styles.Muted.Render("notified")
		}
		b.WriteString(fmt.Sprintf("%s#%-4d %s → %s  target $%.2f  %d pax  %s\n",
			cursor, r.ID, r.Pickup, r.Dropoff, r.TargetPrice, r.PassengerCount, status))
	}
	return b.String()
}

func (m model) viewNotice() string {
	if m.notice == nil {
		return ""
	}
	style := m.styles.Success
	if m.notice.Severity == models.SeverityError {
		style = m.styles.Error
	}
	return style.Render(m.notice.Message) + "\n"
}

func (m model) viewHelp() string {
	help := "tab fields · ctrl+t switch view · enter search · ↑/↓ select · ctrl+y take suggestion · ctrl+o open · ctrl+r track · ctrl+d remove · esc quit"
	return m.styles.Help.Render(help)
}
