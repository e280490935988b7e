package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/discovery"
	"playbud-discovery/internal/geomap"
)

func (m appModel) View() string {
	header := m.headerView()
	switch m.state {
	case stateLoading, stateJoining:
		return header + "\n\n" + m.loadingView()
	case stateBrowse:
		return header + "\n\n" + m.spotList.View() + "\n" + m.mapPanel()
	case stateDetail:
		return header + "\n\n" + m.detailView()
	case stateJoined:
		return header + "\n\n" + m.joinedView()
	case stateError:
		return header + "\n\n" + m.errorView()
	default:
		return header
	}
}

func (m appModel) headerView() string {
	title := lipgloss.NewStyle().Bold(true).Render("PlayBud Finder")

	sub := []string{}
	if m.filters.City != "" {
		label := m.filters.City
		if resolved, ok := m.cfg.Service.Lookups().CityLabel(m.filters.City); ok {
			label = resolved
		}
		sub = append(sub, "City: "+label)
	}
	if m.filters.Sport != discovery.All {
		sub = append(sub, "Sport: "+m.filters.Sport)
	}
	if m.filters.Date != discovery.DateAny {
		sub = append(sub, "Date: "+string(m.filters.Date))
	}
	if m.filters.ShowFullGames {
		sub = append(sub, "Showing full games")
	}
	meta := strings.Join(sub, " • ")
	if meta != "" {
		meta = "\n" + lipgloss.NewStyle().Faint(true).Render(meta)
	}

	hints := "ctrl+c quit • esc back"
	switch m.state {
	case stateBrowse:
		hints = "ctrl+c quit • type to filter • enter details • ctrl+s sport • ctrl+t city • ctrl+d date • ctrl+f toggle full • ctrl+r reload"
	case stateDetail:
		hints = "ctrl+c quit • esc back • enter join this game • ctrl+r reload"
	case stateJoined:
		hints = "ctrl+c quit • enter/esc back to spots"
	case stateError:
		hints = "ctrl+c quit • esc back • enter retry"
	}

	filterLine := ""
	if listPtr := m.activeList(); listPtr != nil {
		if filter := listPtr.FilterValue(); filter != "" {
			filterLine = "\n" + hint("Filter: "+filter)
		}
	}
	return title + meta + filterLine + "\n" + hint(hints)
}

func (m appModel) loadingView() string {
	title := "Loading spots"
	if m.state == stateJoining {
		title = "Joining " + m.detail.Title
	}
	return fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), title, hint("Talking to PlayBud..."))
}

func (m appModel) detailView() string {
	spot := m.detail

	heading := lipgloss.NewStyle().Bold(true).Render(spot.Title)
	facts := []string{
		fmt.Sprintf("%s • %s", spot.StartTime.Format("Monday 02 Jan 15:04"), spot.PriceLabel()),
		fmt.Sprintf("%s, %s", spot.Address, spot.City),
		fmt.Sprintf("Hosted by %s • %s • %s", spot.HostName, spot.AbilityLevel, spot.Gender),
	}
	if spot.SlotsLeft <= 0 {
		facts = append(facts, "This game is full")
	} else {
		facts = append(facts, fmt.Sprintf("%d of %d spots left", spot.SlotsLeft, spot.Capacity))
	}

	sections := []string{heading, strings.Join(facts, "\n")}
	if len(spot.DescriptionPoints) > 0 {
		sections = append(sections, bulletSection("About", spot.DescriptionPoints))
	}
	if len(spot.Rules) > 0 {
		sections = append(sections, bulletSection("Rules", spot.Rules))
	}
	if len(spot.LocationNotes) > 0 {
		sections = append(sections, bulletSection("Getting there", spot.LocationNotes))
	}
	if len(spot.Players) > 0 {
		names := make([]string, 0, len(spot.Players))
		for _, p := range spot.Players {
			names = append(names, p.Name)
		}
		sections = append(sections, bulletSection(fmt.Sprintf("Players (%d)", len(names)), names))
	}
	if spot.CancellationPolicy != "" {
		sections = append(sections, hint("Cancellation: "+spot.CancellationPolicy))
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(strings.Join(sections, "\n\n"))
	return panel + "\n" + m.mapPanel()
}

func (m appModel) joinedView() string {
	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("42")).
		Padding(0, 2).
		Render("You're in!")

	lines := []string{
		chip,
		"",
		fmt.Sprintf("Joined %s on %s.", m.detail.Title, m.detail.StartTime.Format("Monday 02 Jan 15:04")),
	}
	if m.receipt.ID != "" {
		lines = append(lines, hint("Booking reference: "+m.receipt.ID))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) errorView() string {
	var authErr *booking.AuthRequiredError
	if errors.As(m.err, &authErr) {
		msg := lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true).
			Render("Sign in to join games.")
		return msg + "\n\n" + hint("Set PLAYBUD_ACCESS_TOKEN and restart, then press esc to go back.")
	}
	msg := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(m.err.Error())
	return msg + "\n\n" + hint("Press enter to retry, esc to go back or ctrl+c to quit.")
}

// mapPanel summarizes the map layer: camera and marker state when a token
// is configured, the placeholder otherwise.
func (m appModel) mapPanel() string {
	if !m.worldMap.Enabled() {
		return hint(geomap.PlaceholderMessage)
	}
	view := m.worldMap.View()
	line := fmt.Sprintf("Map: %d pins • center %.4f,%.4f • zoom %.1f",
		len(m.worldMap.Markers()), view.Center.Lat, view.Center.Lng, view.Zoom)
	if id := m.worldMap.SelectedID(); id != "" {
		line += " • focused " + id
	}
	return hint(line)
}

func bulletSection(title string, lines []string) string {
	out := []string{lipgloss.NewStyle().Bold(true).Render(title)}
	for _, line := range lines {
		out = append(out, "• "+line)
	}
	return strings.Join(out, "\n")
}

func hint(text string) string {
	return lipgloss.NewStyle().Faint(true).Render(text)
}
