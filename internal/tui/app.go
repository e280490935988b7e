// Package tui is the terminal discovery browser. It drives the same
// snapshot, normalization and filter pipeline as the HTTP surface, rendered
// as a bubbletea program: a filterable spot list, a detail pane, a map
// status panel and the join flow.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	appdiscovery "playbud-discovery/internal/app/discovery"
	"playbud-discovery/internal/async"
	"playbud-discovery/internal/booking"
	"playbud-discovery/internal/discovery"
	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
	"playbud-discovery/internal/domain/spots"
	"playbud-discovery/internal/geomap"
	"playbud-discovery/internal/providers"
	"playbud-discovery/internal/store"
)

type appState int

const (
	stateLoading appState = iota
	stateBrowse
	stateDetail
	stateJoining
	stateJoined
	stateError
)

const fetchTimeout = 15 * time.Second

// Config wires the browser to the shared discovery pipeline. All fields are
// required except Map.AccessToken, whose absence puts the map panel in
// degraded placeholder mode.
type Config struct {
	Provider  providers.DataProvider
	Store     *store.MemoryStore
	Service   *appdiscovery.Service
	Workflow  *booking.Workflow
	Map       geomap.Config
	ListLimit int
}

type snapshotMsg struct {
	token async.Token
	games []games.Record
	ref   refdata.Set
	err   error
}

type joinResultMsg struct {
	result booking.Result
	err    error
}

type appModel struct {
	cfg Config

	state     appState
	lastState appState
	err       error

	width  int
	height int

	spinner  spinner.Model
	spotList list.Model

	filters  discovery.State
	visible  []spots.Spot
	selected string

	detail  spots.Spot
	receipt games.Booking

	worldMap *geomap.Map
	gate     *async.Gate

	now func() time.Time
}

func New(cfg Config) tea.Model {
	m := appModel{
		cfg:      cfg,
		state:    stateLoading,
		filters:  discovery.DefaultState(),
		worldMap: geomap.New(cfg.Map),
		gate:     &async.Gate{},
		now:      time.Now,
	}

	m.spotList = newList("Spots near you")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshotCmd(), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if m.handleFilterInput(msg) {
			return m, nil
		}
		m, cmd, handled := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.isLoadingState() {
			return m, cmd
		}
		return m, nil

	case snapshotMsg:
		if !msg.token.Live() {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			m.lastState = recoverStateFrom(m.state)
			m.state = stateError
			return m, nil
		}
		m.cfg.Store.SetGames(msg.games)
		m.cfg.Store.SetReference(msg.ref, m.now())
		m.refreshVisible()
		if m.state == stateLoading || m.state == stateError {
			m.state = stateBrowse
		}
		return m, nil

	case joinResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.lastState = stateDetail
			m.state = stateError
			return m, nil
		}
		m.receipt = msg.result.Booking
		if msg.result.Refreshed {
			m.cfg.Store.UpsertGame(msg.result.Record)
		}
		m.detail = m.cfg.Service.SpotFor(msg.result.Record)
		m.refreshVisible()
		m.state = stateJoined
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == stateBrowse {
		m.spotList, cmd = m.spotList.Update(msg)
		m.syncSelectionFromList()
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "esc":
		if listPtr := m.activeList(); listPtr != nil {
			if listPtr.SettingFilter() || listPtr.IsFiltered() {
				listPtr.ResetFilter()
				return m, nil, true
			}
		}
		return m.goBack()
	case "enter":
		switch m.state {
		case stateBrowse:
			item, ok := m.spotList.SelectedItem().(spotItem)
			if !ok {
				return m, nil, true
			}
			m.detail = item.spot
			m.selected = item.spot.ID
			m.worldMap.Select(item.spot.ID)
			m.state = stateDetail
			return m, nil, true
		case stateDetail:
			return m.beginJoin()
		case stateJoined:
			m.state = stateBrowse
			return m, nil, true
		case stateError:
			m.err = nil
			m.state = stateLoading
			return m, tea.Batch(m.loadSnapshotCmd(), m.spinner.Tick), true
		}
	case "ctrl+r":
		if m.state == stateBrowse || m.state == stateDetail {
			m.state = stateLoading
			return m, tea.Batch(m.loadSnapshotCmd(), m.spinner.Tick), true
		}
	case "ctrl+s":
		if m.state == stateBrowse {
			m.filters.Sport = nextOption(sportOptions(m.referenceSet()), m.filters.Sport)
			m.refreshVisible()
			return m, nil, true
		}
	case "ctrl+t":
		if m.state == stateBrowse {
			m.filters.City = nextOption(citySlugs(m.referenceSet()), m.filters.City)
			m.refreshVisible()
			return m, nil, true
		}
	case "ctrl+d":
		if m.state == stateBrowse {
			m.filters.Date = nextDateBucket(m.filters.Date)
			m.refreshVisible()
			return m, nil, true
		}
	case "ctrl+f":
		if m.state == stateBrowse {
			m.filters.ShowFullGames = !m.filters.ShowFullGames
			m.refreshVisible()
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m appModel) goBack() (appModel, tea.Cmd, bool) {
	switch m.state {
	case stateDetail, stateJoined:
		m.state = stateBrowse
	case stateError:
		m.err = nil
		m.state = m.lastState
	case stateBrowse:
		return m, tea.Quit, true
	}
	return m, nil, true
}

func (m appModel) beginJoin() (appModel, tea.Cmd, bool) {
	rec, ok := m.cfg.Service.RecordByID(m.detail.ID)
	if !ok {
		m.err = errSpotGone
		m.lastState = stateBrowse
		m.state = stateError
		return m, nil, true
	}
	if _, err := m.cfg.Workflow.Begin(rec, "/spots/"+rec.ID); err != nil {
		m.err = err
		m.lastState = stateDetail
		m.state = stateError
		return m, nil, true
	}
	m.state = stateJoining
	return m, tea.Batch(m.joinCmd(rec), m.spinner.Tick), true
}

// handleFilterInput routes printable keys into the active list's filter so
// typing narrows the list without a separate filter mode.
func (m *appModel) handleFilterInput(msg tea.KeyMsg) bool {
	listPtr := m.activeList()
	if listPtr == nil {
		return false
	}
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return false
		}
		m.appendFilter(listPtr, string(msg.Runes))
		return true
	case tea.KeySpace:
		m.appendFilter(listPtr, " ")
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if listPtr.FilterValue() == "" {
			return false
		}
		m.popFilter(listPtr)
		return true
	default:
		return false
	}
}

func (m *appModel) appendFilter(listPtr *list.Model, value string) {
	if value == "" {
		return
	}
	listPtr.SetFilterText(listPtr.FilterValue() + value)
}

func (m *appModel) popFilter(listPtr *list.Model) {
	value := trimLastRune(listPtr.FilterValue())
	if value == "" {
		listPtr.ResetFilter()
		return
	}
	listPtr.SetFilterText(value)
}

func trimLastRune(value string) string {
	runes := []rune(value)
	if len(runes) <= 1 {
		return ""
	}
	return string(runes[:len(runes)-1])
}

func (m *appModel) activeList() *list.Model {
	if m.state == stateBrowse {
		return &m.spotList
	}
	return nil
}

// refreshVisible re-runs the filter pipeline over the current snapshot and
// reconciles the list, the selection pointer and the map markers with it.
func (m *appModel) refreshVisible() {
	visible, applied := m.cfg.Service.Visible(m.filters)
	m.filters = applied
	m.visible = visible
	m.selected = discovery.ReconcileSelection(visible, m.selected)

	m.spotList.SetItems(buildSpotItems(visible))
	for i, spot := range visible {
		if spot.ID == m.selected {
			m.spotList.Select(i)
			break
		}
	}

	m.worldMap.SyncSpots(visible)
	m.worldMap.Select(m.selected)
}

// syncSelectionFromList keeps the map emphasis following list navigation.
func (m *appModel) syncSelectionFromList() {
	item, ok := m.spotList.SelectedItem().(spotItem)
	if !ok || item.spot.ID == m.selected {
		return
	}
	m.selected = item.spot.ID
	m.worldMap.Select(m.selected)
}

func (m appModel) referenceSet() refdata.Set {
	set, _ := m.cfg.Service.Reference()
	return set
}

func (m appModel) isLoadingState() bool {
	return m.state == stateLoading || m.state == stateJoining
}

func recoverStateFrom(state appState) appState {
	switch state {
	case stateLoading:
		return stateBrowse
	case stateJoining:
		return stateDetail
	default:
		return state
	}
}

func (m appModel) loadSnapshotCmd() tea.Cmd {
	token := m.gate.Next()
	provider := m.cfg.Provider
	limit := m.cfg.ListLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		records, err := provider.ListGames(ctx, limit)
		if err != nil {
			return snapshotMsg{token: token, err: err}
		}
		ref, err := provider.FetchReferenceData(ctx)
		if err != nil {
			return snapshotMsg{token: token, err: err}
		}
		return snapshotMsg{token: token, games: records, ref: ref}
	}
}

func (m appModel) joinCmd(rec games.Record) tea.Cmd {
	workflow := m.cfg.Workflow
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result, err := workflow.Submit(ctx, rec, "")
		return joinResultMsg{result: result, err: err}
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	m.spotList.SetSize(m.width, h)
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.Filter = caseInsensitiveFilter
	l.SetFilteringEnabled(true)
	l.SetShowFilter(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}
