// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     sceneviewer
// Description: Main Bubbletea model for browsing parsed scene records
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package sceneviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	radast "github.com/msto63/radscene/foundation/rad/ast"
	"github.com/msto63/radscene/pkg/core/version"
)

// LoadFunc produces the records to display. It runs on start and on reload.
type LoadFunc func(ctx context.Context) (*Scene, error)

// Config holds SceneViewer configuration
type Config struct {
	Load        LoadFunc
	LoadTimeout time.Duration
}

// Model is the main Bubbletea model for the SceneViewer
type Model struct {
	// State
	width     int
	height    int
	ready     bool
	loading   bool
	searching bool
	detail    bool
	err       error

	// Components
	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model

	// Record state
	source   string
	all      []*radast.Primitive
	filtered []*radast.Primitive
	filter   KindFilter
	query    string
	cursor   int

	// Configuration
	load        LoadFunc
	loadTimeout time.Duration
}

// New creates a new SceneViewer model
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Name suchen"
	ti.CharLimit = 64

	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = 30 * time.Second
	}

	return Model{
		spinner:     sp,
		search:      ti,
		all:         []*radast.Primitive{},
		filtered:    []*radast.Primitive{},
		loading:     cfg.Load != nil,
		load:        cfg.Load,
		loadTimeout: cfg.LoadTimeout,
	}
}

// NewWithScene creates a model that shows a fixed record list
func NewWithScene(scene *Scene) Model {
	m := New(Config{})
	m.setScene(scene)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadScene)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // Title + filter bar
		footerHeight := 4 // Status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case sceneLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.setScene(msg.scene)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input in list and detail mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyTab:
		m.setFilter(m.filter.Next())
		return m, nil

	case tea.KeyEnter:
		if len(m.filtered) > 0 {
			m.detail = !m.detail
			m.updateViewportContent()
		}
		return m, nil

	case tea.KeyEsc:
		if m.detail {
			m.detail = false
			m.updateViewportContent()
		} else if m.query != "" {
			m.query = ""
			m.search.SetValue("")
			m.applyFilters()
		}
		return m, nil

	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil

	case tea.KeyDown:
		m.moveCursor(1)
		return m, nil

	case tea.KeyPgUp:
		if m.detail {
			m.viewport.ViewUp()
		} else {
			m.moveCursor(-m.viewport.Height)
		}
		return m, nil

	case tea.KeyPgDown:
		if m.detail {
			m.viewport.ViewDown()
		} else {
			m.moveCursor(m.viewport.Height)
		}
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Kind filters - number keys
		case "1":
			m.setFilter(FilterAll)
		case "2":
			m.setFilter(FilterPolygon)
		case "3":
			m.setFilter(FilterGeneric)

		// Search
		case "/":
			m.searching = true
			m.detail = false
			m.search.SetValue(m.query)
			m.search.CursorEnd()
			cmd := m.search.Focus()
			return m, cmd

		// Reload
		case "r":
			if m.load != nil && !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadScene)
			}

		// Go to top
		case "g":
			m.moveCursor(-len(m.filtered))

		// Go to bottom
		case "G":
			m.moveCursor(len(m.filtered))

		case "k":
			m.moveCursor(-1)
		case "j":
			m.moveCursor(1)
		}
	}

	return m, nil
}

// handleSearchKey edits the name search. The list follows every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil

	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.applyFilters()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.applyFilters()
	}
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade SceneViewer..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	b.WriteString(m.renderRecordArea())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")

	b.WriteString(m.renderHelpBar())

	return b.String()
}

// renderHeader renders the header with logo and source
func (m Model) renderHeader() string {
	logo := LogoStyle.Render(Logo)
	source := SubHeaderStyle.Render(truncateString(m.source, max(10, m.width-40)))

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		strings.Repeat(" ", 3),
		source,
	)

	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

// renderFilterBar renders the kind filter and search state
func (m Model) renderFilterBar() string {
	filters := []string{
		fmt.Sprintf("1:%s", RenderFilterStatus(FilterAll.String(), m.filter == FilterAll)),
		fmt.Sprintf("2:%s", RenderFilterStatus(FilterPolygon.String(), m.filter == FilterPolygon)),
		fmt.Sprintf("3:%s", RenderFilterStatus(FilterGeneric.String(), m.filter == FilterGeneric)),
	}

	countStr := HelpDescStyle.Render(fmt.Sprintf("[%d/%d Objekte]", len(m.filtered), len(m.all)))

	searchStr := ""
	if m.searching {
		searchStr = "  " + m.search.View()
	} else if m.query != "" {
		searchStr = "  " + FilterActiveStyle.Render("Suche: "+m.query)
	}

	content := strings.Join(filters, "  ") + "  " + countStr + searchStr

	return FilterBarStyle.Width(m.width - 2).Render(content)
}

// renderRecordArea renders the list or the detail viewport
func (m Model) renderRecordArea() string {
	style := RecordPanelStyle
	if m.detail {
		style = DetailPanelStyle
	}
	return style.Width(m.width - 2).Height(m.viewport.Height + 2).Render(m.viewport.View())
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	var leftPart string
	switch {
	case m.loading:
		leftPart = m.spinner.View() + " Lade..."
	case m.err != nil:
		leftPart = StatusErrorStyle.Render("Fehler: " + m.err.Error())
	default:
		leftPart = StatusOKStyle.Render(fmt.Sprintf("%d Objekte", len(m.all)))
	}

	rightPart := HelpDescStyle.Render("v" + version.Viewer)

	padding := m.width - lipgloss.Width(leftPart) - lipgloss.Width(rightPart) - 4
	if padding < 2 {
		padding = 2
	}

	return StatusBarStyle.Width(m.width - 2).Render(leftPart + strings.Repeat(" ", padding) + rightPart)
}

// renderHelpBar renders the help shortcuts bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("Tab/1-3", "Filter"),
		RenderKeyHint("/", "Suche"),
		RenderKeyHint("Enter", "Details"),
		RenderKeyHint("g/G", "Anfang/Ende"),
	}
	if m.load != nil {
		items = append(items, RenderKeyHint("r", "Neu laden"))
	}
	items = append(items, RenderKeyHint("q", "Beenden"))

	return HelpStyle.Render(strings.Join(items, "  "))
}

// updateViewportContent fills the viewport with rows or the selected record
func (m *Model) updateViewportContent() {
	if m.detail && m.cursor < len(m.filtered) {
		m.viewport.SetContent(DetailStyle.Render(recordDetail(m.filtered[m.cursor])))
		m.viewport.GotoTop()
		return
	}

	if len(m.filtered) == 0 {
		m.viewport.SetContent(HelpDescStyle.Render("Keine Objekte"))
		return
	}

	var content strings.Builder
	for i, p := range m.filtered {
		line := formatRow(p)
		if i == m.cursor {
			line = SelectedRowStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
	m.ensureCursorVisible()
}

// applyFilters filters records by kind and name search
func (m *Model) applyFilters() {
	m.filtered = make([]*radast.Primitive, 0, len(m.all))
	query := strings.ToLower(m.query)

	for _, p := range m.all {
		if !m.filter.Matches(p) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		m.filtered = append(m.filtered, p)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.filtered) == 0 {
		m.detail = false
	}
	m.updateViewportContent()
}

func (m *Model) setScene(scene *Scene) {
	if scene == nil {
		scene = &Scene{}
	}
	m.source = scene.Source
	m.all = scene.Primitives
	if m.all == nil {
		m.all = []*radast.Primitive{}
	}
	m.applyFilters()
}

func (m *Model) setFilter(f KindFilter) {
	m.filter = f
	m.cursor = 0
	m.detail = false
	m.applyFilters()
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	m.updateViewportContent()
}

func (m *Model) ensureCursorVisible() {
	if m.viewport.Height <= 0 {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// loadScene runs the configured loader
func (m Model) loadScene() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.loadTimeout)
	defer cancel()

	scene, err := m.load(ctx)
	return sceneLoadedMsg{scene: scene, err: err}
}

// Selected returns the record under the cursor, or nil
func (m Model) Selected() *radast.Primitive {
	if m.cursor < len(m.filtered) {
		return m.filtered[m.cursor]
	}
	return nil
}

// Visible returns the records that pass the current filters
func (m Model) Visible() []*radast.Primitive {
	return m.filtered
}

func formatRow(p *radast.Primitive) string {
	typeStyle := TypeStyle
	if p.Kind() == radast.KindPolygon {
		typeStyle = PolygonTypeStyle
	}
	return fmt.Sprintf("%s %s %s %s",
		ModifierStyle.Render(fmt.Sprintf("%-16s", truncateString(p.Modifier, 16))),
		typeStyle.Render(fmt.Sprintf("%-12s", truncateString(p.Type, 12))),
		NameStyle.Render(fmt.Sprintf("%-24s", truncateString(p.Name, 24))),
		ArgsStyle.Render(p.ArgumentSummary()),
	)
}

func recordDetail(p *radast.Primitive) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return p.String()
	}
	return p.String() + "\n\n" + string(data)
}

// truncateString truncates a string to n bytes
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}

// Run starts the SceneViewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
