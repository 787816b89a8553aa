package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carlosbandelli/superlist/internal/api"
	"github.com/carlosbandelli/superlist/internal/cache"
	"github.com/carlosbandelli/superlist/internal/prefs"
	"github.com/carlosbandelli/superlist/internal/session"
)

// ErrLoggedOut reports that the user ended the TUI by logging out rather
// than quitting; the caller loops back to the auth flow.
var ErrLoggedOut = errors.New("logged out")

// View represents the current active screen.
type View int

const (
	ViewLists View = iota
	ViewDetail
)

// formMode says which input form, if any, is open.
type formMode int

const (
	formNone formMode = iota
	formNewList
	formEditList
	formNewProduct
	formEditProduct
)

// statusKind colors the transient status line.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *api.Client
	Session     *session.Session
	Collection  *cache.Collection
	Detail      *cache.Detail
	ThemeName   string
	PrefsPath   string
	RefreshTick time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	client     *api.Client
	sess       *session.Session
	collection *cache.Collection
	detail     *cache.Detail
	prefsPath  string
	tick       time.Duration

	theme  Theme
	styles Styles

	currentView View
	width       int
	height      int
	ready       bool

	listRow    int
	productRow int

	collectionSnap cache.CollectionSnapshot
	detailSnap     cache.DetailSnapshot

	status     string
	statusKind statusKind

	formMode  formMode
	inputs    []textinput.Model
	labels    []string
	focusIdx  int
	editingID int64

	loggedOut bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.RefreshTick
	if tick == 0 {
		tick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		sess:        opts.Session,
		collection:  opts.Collection,
		detail:      opts.Detail,
		prefsPath:   prefsPath,
		tick:        tick,
		theme:       theme,
		styles:      theme.Styles(),
		currentView: ViewLists,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.tick),
		m.refetchCollectionCmd(),
	)
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
		return m, nil

	case tickMsg:
		// The background refresher may have refetched the collection since
		// the last tick; pick up whatever the caches hold now.
		m.collectionSnap = m.collection.Snapshot()
		m.clampListRow()
		if m.currentView == ViewDetail {
			m.detailSnap = m.detail.Snapshot()
			m.clampProductRow()
		}
		return m, tickCmd(m.tick)

	case collectionMsg:
		m.collectionSnap = cache.CollectionSnapshot(msg)
		m.clampListRow()
		return m, nil

	case detailMsg:
		m.detailSnap = cache.DetailSnapshot(msg)
		m.clampProductRow()
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.setStatus(msg.label+" failed: "+msg.err.Error(), statusError)
		} else {
			m.setStatus(msg.label+" done", statusSuccess)
		}
		return m, tea.Batch(m.snapshotCmds()...)

	case loggedOutMsg:
		if msg.err != nil {
			m.setStatus("logout failed: "+msg.err.Error(), statusError)
			return m, nil
		}
		m.loggedOut = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.currentView {
	case ViewLists:
		b.WriteString(m.renderLists())
	case ViewDetail:
		b.WriteString(m.renderDetail())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("superlist")
	scope := ""
	if m.currentView == ViewDetail && m.detailSnap.HasDetail {
		scope = m.styles.Muted.Render(" › " + m.detailSnap.Detail.Name)
	}
	return m.styles.Header.Render(title + scope)
}

func (m Model) renderStatusLine() string {
	if m.formMode != formNone {
		return m.styles.Status.Render("tab: next field · enter: save · esc: cancel")
	}

	var line string
	switch m.statusKind {
	case statusSuccess:
		line = m.styles.Success.Render(m.status)
	case statusError:
		line = m.styles.Danger.Render(m.status)
	default:
		line = m.styles.Muted.Render(m.status)
	}
	help := m.helpLine()
	if m.status == "" {
		return m.styles.Status.Render(help)
	}
	return m.styles.Status.Render(line + "  " + help)
}

func (m Model) helpLine() string {
	switch m.currentView {
	case ViewDetail:
		return "j/k: move · a: add · e: edit · x: delete · r: refresh · esc: back · q: quit"
	default:
		return "j/k: move · enter: open · n: new · u: edit · x: delete · r: refresh · T: theme · L: logout · q: quit"
	}
}

func (m *Model) setStatus(text string, kind statusKind) {
	m.status = text
	m.statusKind = kind
}

func (m *Model) clampListRow() {
	if count := len(m.collectionSnap.Lists); m.listRow >= count {
		m.listRow = max(0, count-1)
	}
}

func (m *Model) clampProductRow() {
	if count := len(m.detailSnap.Detail.Products); m.productRow >= count {
		m.productRow = max(0, count-1)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.formMode != formNone {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "L":
		return m, m.logoutCmd()

	case "r":
		m.setStatus("refreshing...", statusInfo)
		if m.currentView == ViewDetail {
			return m, m.refetchDetailCmd()
		}
		return m, m.refetchCollectionCmd()

	case "esc":
		if m.currentView == ViewDetail {
			m.currentView = ViewLists
			m.status = ""
			return m, m.refetchCollectionCmd()
		}
		return m, nil
	}

	switch m.currentView {
	case ViewLists:
		return m.handleListsKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

// Messages

type tickMsg time.Time

type collectionMsg cache.CollectionSnapshot

type detailMsg cache.DetailSnapshot

type mutationMsg struct {
	label string
	err   error
}

type loggedOutMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refetchCollectionCmd() tea.Cmd {
	return func() tea.Msg {
		m.collection.Refetch(m.ctx)
		return collectionMsg(m.collection.Snapshot())
	}
}

func (m Model) refetchDetailCmd() tea.Cmd {
	return func() tea.Msg {
		m.detail.Refetch(m.ctx)
		return detailMsg(m.detail.Snapshot())
	}
}

func (m Model) snapshotCmds() []tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return collectionMsg(m.collection.Snapshot()) },
	}
	if m.currentView == ViewDetail {
		cmds = append(cmds, func() tea.Msg { return detailMsg(m.detail.Snapshot()) })
	}
	return cmds
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg{err: m.sess.Logout()}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or
// logs out.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.loggedOut {
		return ErrLoggedOut
	}
	return nil
}
