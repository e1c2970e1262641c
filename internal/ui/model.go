package ui

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/kyaoi/artex/internal/canvas"
	"github.com/kyaoi/artex/internal/listing"
	"github.com/kyaoi/artex/internal/preview"
)

const (
	footerHeight         = 2 // status line + key help
	windowTitle          = "Artex"
	defaultFrameInterval = time.Second / 60
	helpBoxMaxWidth      = 72
)

var (
	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	statusIndexStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7aa2f7")).
				Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
	searchBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
)

type frameMsg time.Time

// Model implements the Bubble Tea program for the browser.
type Model struct {
	loader          *listing.Loader
	cursor          *listing.Cursor
	preview         *preview.Preview
	canvas          *canvas.Canvas
	background      image.Image
	backgroundColor color.Color
	maxLabel        int
	interval        time.Duration
	clock           preview.Clock
	logger          *log.Logger

	keys     keyMap
	help     help.Model
	frame    string
	showHelp bool
	helpView string
	width    int
	height   int
	err      error

	searchInput  textinput.Model
	searchActive bool

	watchEnabled bool
	watcher      watcher
}

// NewModel constructs the browser model with the provided initial state.
// The preview is expected to show the selected entry already.
func NewModel(state State) *Model {
	m := &Model{
		loader:          state.Loader,
		cursor:          listing.NewCursor(state.Entries),
		preview:         state.Preview,
		canvas:          state.Canvas,
		background:      state.Background,
		backgroundColor: state.BackgroundColor,
		maxLabel:        state.MaxLabel,
		interval:        state.FrameInterval,
		clock:           state.Clock,
		logger:          state.Logger,
		keys:            newKeyMap(),
		help:            help.New(),
		watchEnabled:    state.Watch && state.Loader != nil,
	}
	if m.canvas == nil {
		m.canvas = canvas.New(0, 0)
	}
	if m.backgroundColor == nil {
		m.backgroundColor = color.Black
	}
	if m.interval <= 0 {
		m.interval = defaultFrameInterval
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "name"
	searchInput.Blur()
	m.searchInput = searchInput

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(windowTitle), m.tick()}
	if m.watchEnabled {
		cmds = append(cmds, m.startWatching())
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		overlay := helpBoxStyle.Render(m.helpView)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	footer := m.statusLine()
	if m.searchActive {
		footer = searchBarStyle.Width(m.width).Render(m.searchInput.View())
	}
	return strings.Join([]string{m.frame, footer, m.help.ShortHelpView(m.keys.ShortHelp())}, "\n")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.renderFrame(time.Time(msg))
		return m, m.tick()
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		m.err = msg.err
		m.logger.Warn("watch directory", "err", msg.err)
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(m.searchInput.Value())
			m.exitSearchMode()
			if query != "" {
				m.performSearch(query)
			}
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.exitSearchMode()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Quit) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatching()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = renderHelp(m.helpWidth())
	case key.Matches(msg, m.keys.Next):
		m.navigate(preview.Forward)
	case key.Matches(msg, m.keys.Prev):
		m.navigate(preview.Backward)
	case key.Matches(msg, m.keys.Search):
		return m, m.enterSearchMode()
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// renderFrame clears the surface, paints the background, lets the preview
// draw and keeps the encoded result for View.
func (m *Model) renderFrame(now time.Time) {
	m.canvas.Clear(m.backgroundColor)
	m.canvas.DrawBackground(m.background)
	if err := m.preview.RenderFrame(now); err != nil {
		m.err = err
		m.logger.Error("render frame", "err", err)
	}
	m.frame = m.canvas.HalfBlocks()
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	rows := max(height-footerHeight, 0)
	m.canvas.Resize(width, rows*2)
	m.help.Width = width
	m.searchInput.Width = max(width-4, 1)
	if m.showHelp {
		m.helpView = renderHelp(m.helpWidth())
	}
	m.renderFrame(m.clock())
}

func (m *Model) helpWidth() int {
	if m.width <= 0 {
		return helpBoxMaxWidth
	}
	return min(helpBoxMaxWidth, max(m.width-8, 20))
}

func (m *Model) navigate(dir preview.Direction) {
	if m.cursor.Len() == 0 {
		return
	}
	var entry listing.Entry
	if dir == preview.Backward {
		entry = m.cursor.Prev()
	} else {
		entry = m.cursor.Next()
	}
	m.showEntry(dir, entry)
}

func (m *Model) jump(index int) {
	from := m.cursor.Index()
	if index == from || !m.cursor.Jump(index) {
		return
	}
	dir := preview.Forward
	if index < from {
		dir = preview.Backward
	}
	entry, _ := m.cursor.Selected()
	m.showEntry(dir, entry)
}

func (m *Model) showEntry(dir preview.Direction, entry listing.Entry) {
	label := listing.Label(entry, m.maxLabel)
	if _, err := m.preview.OnNavigate(dir, label, m.clock()); err != nil {
		m.err = err
		m.logger.Error("navigate", "entry", entry.Name, "err", err)
		return
	}
	m.err = nil
	m.logger.Debug("navigate", "dir", dir, "index", m.cursor.Index(), "entry", entry.Name)
}

func (m *Model) statusLine() string {
	entry, ok := m.cursor.Selected()
	if !ok {
		return ""
	}

	var line string
	if m.err != nil {
		line = errStyle.Render(m.err.Error())
	} else {
		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		parts := []string{
			statusIndexStyle.Render(fmt.Sprintf("%d/%d", m.cursor.Index()+1, m.cursor.Len())),
			name,
		}
		if !entry.IsDir {
			parts = append(parts, humanize.Bytes(uint64(max(entry.Size, 0)))) //nolint:gosec // clamped above
		}
		line = strings.Join(parts, "  ")
	}

	if m.width > 2 {
		line = ansi.Truncate(line, m.width-2, "…")
	}
	return statusStyle.Width(m.width).Render(line)
}

func (m *Model) enterSearchMode() tea.Cmd {
	m.searchActive = true
	m.searchInput.SetValue("")
	return m.searchInput.Focus()
}

func (m *Model) exitSearchMode() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) performSearch(query string) {
	index, ok := m.cursor.Find(query)
	if !ok {
		m.err = fmt.Errorf("no entry matches %q", query)
		return
	}
	m.err = nil
	m.jump(index)
}
