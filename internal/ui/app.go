package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/logtail"
	"github.com/five82/pantry/internal/prefs"
	"github.com/five82/pantry/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Grocy     *grocy.Grocy // nil disables the mark-done action
	Store     *state.Store
	Logger    *zap.Logger
	LogFile   string
	PollTick  time.Duration
	ThemeName string
	ViewName  string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	grocy     *grocy.Grocy
	store     *state.Store
	logger    *zap.Logger
	logFile   string
	prefsPath string
	pollTick  time.Duration
	now       func() time.Time

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	status      string
	statusErr   bool

	// Data state
	snapshot state.Snapshot
	selected map[View]int

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	follow      bool
	minLevel    string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	view, _ := viewByName(opts.ViewName)

	return Model{
		ctx:         ctx,
		grocy:       opts.Grocy,
		store:       opts.Store,
		logger:      logger,
		logFile:     opts.LogFile,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		now:         time.Now,
		theme:       GetTheme(opts.ThemeName),
		keys:        defaultKeyMap(),
		help:        help.New(),
		currentView: view,
		selected:    make(map[View]int),
		follow:      true,
		minLevel:    "info",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, m.refreshLogs())
	}
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
		m.help.Width = msg.Width
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, m.bodyHeight())
		} else {
			m.logViewport.Width = msg.Width
			m.logViewport.Height = m.bodyHeight()
		}
		m.ready = true
		m.renderLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		return m, nil

	case logsMsg:
		if msg.err != nil {
			m.logger.Debug("read log file failed", zap.Error(msg.err))
			return m, nil
		}
		m.logEntries = msg.entries
		m.renderLogViewport()
		return m, nil

	case actionMsg:
		m.status = msg.text
		m.statusErr = msg.err != nil
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.text, msg.err)
			m.logger.Warn("dashboard action failed", zap.String("action", msg.text), zap.Error(msg.err))
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

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.renderLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		return m.setView(View((int(m.currentView) + 1) % len(viewNames)))
	case key.Matches(msg, m.keys.PrevView):
		return m.setView(View((int(m.currentView) + len(viewNames) - 1) % len(viewNames)))
	case key.Matches(msg, m.keys.ViewStock):
		return m.setView(ViewStock)
	case key.Matches(msg, m.keys.ViewChores):
		return m.setView(ViewChores)
	case key.Matches(msg, m.keys.ViewTasks):
		return m.setView(ViewTasks)
	case key.Matches(msg, m.keys.ViewBatteries):
		return m.setView(ViewBatteries)
	case key.Matches(msg, m.keys.ViewShopping):
		return m.setView(ViewShopping)
	case key.Matches(msg, m.keys.ViewLogs):
		return m.setView(ViewLogs)
	}

	if m.currentView == ViewLogs {
		return m.handleLogsKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) setView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.status = ""
	if v == ViewLogs {
		return m, m.refreshLogs()
	}
	return m, nil
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.rows())
	if count == 0 {
		return m, nil
	}
	sel := m.selected[m.currentView]

	switch {
	case key.Matches(msg, m.keys.Down):
		if sel < count-1 {
			sel++
		}
	case key.Matches(msg, m.keys.Up):
		if sel > 0 {
			sel--
		}
	case key.Matches(msg, m.keys.Top):
		sel = 0
	case key.Matches(msg, m.keys.Bottom):
		sel = count - 1
	case key.Matches(msg, m.keys.Act):
		return m, m.actOnSelection()
	}

	m.selected[m.currentView] = sel
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.follow {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// rows returns the table rows of the current view.
func (m Model) rows() []row {
	return rowsFor(m.currentView, m.snapshot.Overview, m.now())
}

func (m *Model) clampSelection() {
	for v, sel := range m.selected {
		n := len(rowsFor(v, m.snapshot.Overview, m.now()))
		switch {
		case n == 0:
			m.selected[v] = 0
		case sel >= n:
			m.selected[v] = n - 1
		}
	}
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, View: m.currentView.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Debug("save prefs failed", zap.Error(err))
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

type actionMsg struct {
	text string
	err  error
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

// Run starts the Bubble Tea program.
// Cancelling the options' context stops the program without an error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
