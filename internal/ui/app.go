package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/mobileinfo/internal/config"
	"github.com/five82/mobileinfo/internal/logtail"
	"github.com/five82/mobileinfo/internal/prefs"
	"github.com/five82/mobileinfo/internal/rows"
	"github.com/five82/mobileinfo/internal/screens"
	"github.com/five82/mobileinfo/internal/state"
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	Builder       *screens.Builder
	Config        config.Config
	ConfigUpdates <-chan config.Config
	Screens       []screens.ID // empty shows every screen
	LogPath       string
	ThemeName     string
	Screen        string // initially active screen
	PrefsPath     string
	Refresh       func(context.Context) error
	Log           *zap.Logger
	PollTick      time.Duration
}

// screenState is one tab: its rows and their rendered view.
type screenState struct {
	id   screens.ID
	list *rows.List
	view *rows.View
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	builder   *screens.Builder
	cfg       config.Config
	updates   <-chan config.Config
	refresh   func(context.Context) error
	log       *zap.Logger
	logPath   string
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string

	screens  []*screenState
	active   int
	viewport viewport.Model

	// Data state
	snapshot state.Snapshot
	logLines []string

	// Filter state
	filter    textinput.Model
	filtering bool // the filter input has focus
	matches   []int
	match     int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter rows"
	filter.CharLimit = 64

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		builder:   opts.Builder,
		cfg:       opts.Config,
		updates:   opts.ConfigUpdates,
		refresh:   opts.Refresh,
		log:       log,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		viewport:  viewport.New(0, 0),
		filter:    filter,
	}

	ids := opts.Screens
	if len(ids) == 0 {
		ids = screens.All
	}
	m.setScreens(ids)
	if id, ok := screens.Parse(opts.Screen); ok {
		m.selectScreen(id)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.hasScreen(screens.Logs) {
		cmds = append(cmds, readLogsCmd(m.logPath, m.cfg.LogLines))
	}
	cmds = append(cmds, waitForConfigCmd(m.ctx, m.updates))
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.applyRenderer()
		m.syncViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.rebuild()
		m.syncViewport()
		return m, nil

	case logLinesMsg:
		if msg.err != nil {
			m.log.Debug("reading log file failed", zap.String("path", m.logPath), zap.Error(msg.err))
			return m, nil
		}
		m.logLines = msg.lines
		m.rebuild()
		m.syncViewport()
		return m, nil

	case configMsg:
		m.applyConfig(config.Config(msg))
		m.syncViewport()
		return m, waitForConfigCmd(m.ctx, m.updates)

	case refreshDoneMsg:
		if msg.err != nil {
			m.notice = "refresh failed: " + msg.err.Error()
		} else {
			m.notice = "refreshed"
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	m.notice = ""

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyRenderer()
		m.savePrefs()

	case key.Matches(msg, m.keys.Refresh):
		cmd = m.refreshCmd()

	case key.Matches(msg, m.keys.NextScreen):
		cmd = m.switchScreen(m.active + 1)

	case key.Matches(msg, m.keys.PrevScreen):
		cmd = m.switchScreen(m.active - 1)

	case key.Matches(msg, m.keys.Screen):
		if n := int(msg.String()[0] - '1'); n < len(m.screens) {
			cmd = m.switchScreen(n)
		}

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		cmd = m.filter.Focus()

	case key.Matches(msg, m.keys.Escape):
		m.clearFilter()

	default:
		m.handleNavKey(msg)
	}

	m.syncViewport()
	return m, cmd
}

// handleFilterKey processes input while the filter has focus.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.clearFilter()
		m.syncViewport()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		m.syncViewport()
		return m, nil
	case msg.Type == tea.KeyUp:
		m.moveSelection(-1)
		m.syncViewport()
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveSelection(1)
		m.syncViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	m.syncViewport()
	return m, cmd
}

// handleNavKey moves the selection.
func (m *Model) handleNavKey(msg tea.KeyMsg) {
	page := max(1, m.viewport.Height)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selectIndex(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectIndex(m.selectable() - 1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(page)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveSelection(-page / 2)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveSelection(page / 2)
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.current().id == screens.Logs {
		if cmd := readLogsCmd(m.logPath, m.cfg.LogLines); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m Model) current() *screenState {
	return m.screens[m.active]
}

func (m Model) hasScreen(id screens.ID) bool {
	for _, s := range m.screens {
		if s.id == id {
			return true
		}
	}
	return false
}

// setScreens replaces the tabs, keeping the rows of screens that stay.
func (m *Model) setScreens(ids []screens.ID) {
	if len(ids) == 0 {
		ids = []screens.ID{screens.Home}
	}
	var activeID screens.ID
	if len(m.screens) > 0 {
		activeID = m.current().id
	}

	existing := make(map[screens.ID]*screenState, len(m.screens))
	for _, s := range m.screens {
		existing[s.id] = s
	}
	next := make([]*screenState, 0, len(ids))
	for _, id := range ids {
		s, ok := existing[id]
		if !ok {
			list := rows.NewList()
			s = &screenState{id: id, list: list, view: rows.NewView(list, m.renderer())}
		}
		delete(existing, id)
		next = append(next, s)
	}
	for _, s := range existing {
		s.list.Close()
	}

	m.screens = next
	m.active = 0
	m.selectScreen(activeID)
}

func (m *Model) selectScreen(id screens.ID) {
	for i, s := range m.screens {
		if s.id == id {
			m.active = i
			return
		}
	}
}

// switchScreen activates tab i, wrapping around.
func (m *Model) switchScreen(i int) tea.Cmd {
	n := len(m.screens)
	i = ((i % n) + n) % n
	if i == m.active {
		return nil
	}
	m.active = i
	m.clearFilter()
	m.savePrefs()
	if m.current().id == screens.Logs {
		return readLogsCmd(m.logPath, m.cfg.LogLines)
	}
	return nil
}

// rebuild reconciles every screen with the latest snapshot and log lines.
func (m *Model) rebuild() {
	if m.builder == nil {
		return
	}
	input := screens.Input{
		Snapshot: m.snapshot.Data,
		LogPath:  m.logPath,
		LogLines: m.logLines,
	}
	for _, s := range m.screens {
		if s.id != screens.Logs && !m.snapshot.HasData {
			continue
		}
		s.list.Reconcile(m.builder.Build(s.id, input)...)
	}
	m.refilter()
}

func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	ids := make([]screens.ID, 0, len(screens.All))
	for _, id := range screens.All {
		if !cfg.Hidden(string(id)) {
			ids = append(ids, id)
		}
	}
	m.setScreens(ids)
	m.applyRenderer()
	m.rebuild()
	m.log.Debug("ui configuration applied", zap.Int("screens", len(m.screens)))
}

func (m Model) renderer() *rows.Renderer {
	r := rows.NewRenderer(m.theme.Palette(), m.cfg.KeyWidth)
	r.Width = m.width
	return r
}

// applyRenderer re-renders every screen after a theme, width or key width
// change.
func (m *Model) applyRenderer() {
	r := m.renderer()
	for _, s := range m.screens {
		s.view.SetRenderer(r)
	}
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Screen: string(m.current().id)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Debug("saving preferences failed", zap.Error(err))
	}
}

func (m Model) filterActive() bool {
	return strings.TrimSpace(m.filter.Value()) != ""
}

func (m *Model) refilter() {
	if !m.filterActive() {
		m.matches = nil
		m.match = 0
		return
	}
	m.matches = filterRows(m.current().list.Rows(), m.filter.Value())
	m.match = max(0, min(m.match, len(m.matches)-1))
	if len(m.matches) > 0 {
		m.current().view.SetCursor(m.matches[m.match])
	}
}

func (m *Model) clearFilter() {
	m.filter.Reset()
	m.filter.Blur()
	m.filtering = false
	m.matches = nil
	m.match = 0
}

// selectable is the number of rows the cursor can visit.
func (m Model) selectable() int {
	if m.filterActive() {
		return len(m.matches)
	}
	return m.current().view.Len()
}

func (m *Model) moveSelection(delta int) {
	if m.filterActive() {
		m.selectIndex(m.match + delta)
		return
	}
	m.current().view.MoveCursor(delta)
}

func (m *Model) selectIndex(i int) {
	if !m.filterActive() {
		m.current().view.SetCursor(i)
		return
	}
	if len(m.matches) == 0 {
		return
	}
	m.match = max(0, min(i, len(m.matches)-1))
	m.current().view.SetCursor(m.matches[m.match])
}

// content returns the viewport text with the first line and height of the
// selected block.
func (m Model) content() (string, int, int) {
	s := m.current()
	styles := m.theme.Styles()
	if !m.filterActive() {
		if s.view.Len() == 0 {
			if !m.snapshot.HasData && s.id != screens.Logs {
				return styles.MutedText.Render("Waiting for data..."), 0, 1
			}
			return styles.MutedText.Render("Nothing to show"), 0, 1
		}
		cursor := s.view.Cursor()
		return s.view.Content(true), s.view.CursorLine(), blockHeight(s.view.Block(cursor))
	}

	if len(m.matches) == 0 {
		return styles.MutedText.Render("No rows match"), 0, 1
	}
	selected := m.theme.Palette().Selected
	blocks := make([]string, len(m.matches))
	line, height := 0, 1
	for i, idx := range m.matches {
		block := s.view.Block(idx)
		if i < m.match {
			line += blockHeight(block)
		}
		if i == m.match {
			height = blockHeight(block)
			lines := strings.Split(block, "\n")
			for j, l := range lines {
				lines[j] = selected.Render(l)
			}
			block = strings.Join(lines, "\n")
		}
		blocks[i] = block
	}
	return strings.Join(blocks, "\n"), line, height
}

func blockHeight(block string) int {
	return strings.Count(block, "\n") + 1
}

// syncViewport lays out the viewport and scrolls the selection into view.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}
	chrome := headerHeight + statusHeight
	if m.filtering || m.filterActive() {
		chrome += filterHeight
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-chrome)

	content, line, height := m.content()
	m.viewport.SetContent(content)
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line+height > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line + min(height, m.viewport.Height) - m.viewport.Height)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	if m.filtering || m.filterActive() {
		b.WriteString("\n")
		b.WriteString(m.renderFilter())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderHeader renders the tab bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		label := s.id.Title()
		if m.width >= LayoutCompactWidth {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		style := styles.Tab
		if i == m.active {
			style = styles.ActiveTab
		}
		tabs[i] = style.Render(label)
	}
	right := bg.Render("mobileinfo", styles.AccentText.Bold(true)) + bg.Spaces(1)
	return bg.Spread(bg.Join(tabs, " "), right, m.width)
}

func (m Model) renderFilter() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	count := ""
	if m.filterActive() {
		count = bg.Render(fmt.Sprintf(" %d/%d", len(m.matches), m.current().list.Len()), styles.FaintText)
	}
	return bg.FillLine(m.filter.View()+count, m.width)
}

// renderStatus renders the bottom bar: collection state, last update and
// the most relevant detail.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	status, label := m.status()
	left := []string{styles.StatusStyle(status).Render(label)}
	if m.width >= LayoutCompactWidth && !m.snapshot.LastUpdated.IsZero() {
		left = append(left, bg.Render("updated "+m.snapshot.LastUpdated.Format(statusTimeFormat), styles.MutedText))
	}

	help := make([]string, 0, 2)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+strings.ToLower(h.Desc))
	}
	right := bg.Render(strings.Join(help, " · "), styles.FaintText) + bg.Spaces(1)

	leftText := bg.Join(left, " ")
	room := m.width - lipgloss.Width(leftText) - lipgloss.Width(right) - 2
	if detail := m.statusDetail(); detail != "" && room > 3 {
		leftText += bg.Spaces(1) + bg.Render(truncate(detail, room), styles.Text)
	}
	return bg.Spread(leftText, right, m.width)
}

// status classifies the latest snapshot.
func (m Model) status() (string, string) {
	switch {
	case m.snapshot.LastError != nil && m.snapshot.IsStale():
		return "stale", "STALE"
	case m.snapshot.LastError != nil:
		return "error", "ERROR"
	case !m.snapshot.HasData:
		return "waiting", "WAITING"
	default:
		return "live", "LIVE"
	}
}

func (m Model) statusDetail() string {
	if m.notice != "" {
		return m.notice
	}
	if m.snapshot.LastError != nil {
		return m.snapshot.LastError.Error()
	}
	if r, ok := m.current().view.Selected(); ok {
		if link := rowLink(r); link != "" {
			return truncateMiddle(link, max(10, m.width/2))
		}
	}
	return ""
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type configMsg config.Config

type logLinesMsg struct {
	lines []string
	err   error
}

type refreshDoneMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func readLogsCmd(path string, maxLines int) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, maxLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// waitForConfigCmd delivers the next reloaded configuration.
func waitForConfigCmd(ctx context.Context, updates <-chan config.Config) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg := <-updates:
			return configMsg(cfg)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	if m.refresh == nil {
		if m.store == nil {
			return nil
		}
		return fetchSnapshotCmd(m.store)
	}
	ctx, refresh := m.ctx, m.refresh
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RefreshTimeout)
		defer cancel()
		return refreshDoneMsg{err: refresh(ctx)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context ends.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
