// Package tui provides the Bubble Tea search interface.
package tui

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/wordpool/internal/logger"
	"github.com/verte-zerg/wordpool/internal/model"
	"github.com/verte-zerg/wordpool/internal/query"
	"github.com/verte-zerg/wordpool/internal/render"
	"github.com/verte-zerg/wordpool/internal/session"
	"github.com/verte-zerg/wordpool/internal/store"
)

const (
	fieldLetters = iota
	fieldPattern
)

// LoadFunc produces the dictionary. It runs once, off the update loop.
type LoadFunc func(ctx context.Context) ([]string, error)

type wordsLoadedMsg struct {
	words   []string
	elapsed time.Duration
}

type wordsFailedMsg struct {
	err error
}

type searchSavedMsg struct {
	letters string
}

type saveFailedMsg struct {
	err error
}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	matchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea search UI.
type Model struct {
	config model.Config
	store  *store.Store
	source string
	load   LoadFunc
	log    *log.Logger

	session *session.Session
	loading bool
	loadErr error
	loadDur time.Duration

	inputs  []textinput.Model
	focus   int
	results viewport.Model

	letters    string
	pattern    string
	re         *regexp.Regexp
	patternErr string
	filtered   []string
	status     string

	width  int
	height int
}

// NewModel constructs a search TUI model. st may be nil to disable history.
func NewModel(cfg model.Config, st *store.Store, source string, load LoadFunc) *Model {
	m := &Model{
		config:  cfg,
		store:   st,
		source:  source,
		load:    load,
		log:     logger.Discard(),
		loading: true,
		results: viewport.New(0, 0),
	}
	m.inputs = []textinput.Model{
		newInput("Letters: ", "letters, "+string(cfg.Wildcard)+" for a blank"),
		newInput("Pattern: ", "regular expression"),
	}
	m.inputs[fieldLetters].Focus()
	return m
}

// SetLogger replaces the model's logger. The default discards everything so
// nothing is written over the alt screen.
func (m *Model) SetLogger(lg *log.Logger) {
	if lg == nil {
		lg = logger.Discard()
	}
	m.log = lg
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return wordsFailedMsg{err: fmt.Errorf("no dictionary source configured")}
		}
		started := time.Now()
		words, err := load(context.Background())
		if err != nil {
			return wordsFailedMsg{err: err}
		}
		return wordsLoadedMsg{words: words, elapsed: time.Since(started)}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderResults()
		return m, nil
	case wordsLoadedMsg:
		m.loading = false
		m.loadDur = msg.elapsed
		m.log.Debug("dictionary loaded", "source", m.source, "words", len(msg.words), "elapsed", msg.elapsed)
		m.session = session.New(msg.words, m.config.Wildcard)
		m.runSearch()
		return m, nil
	case wordsFailedMsg:
		m.loading = false
		m.loadErr = msg.err
		m.log.Error("dictionary load failed", "source", m.source, "err", msg.err)
		return m, nil
	case searchSavedMsg:
		m.status = fmt.Sprintf("Saved %q to history", msg.letters)
		return m, nil
	case saveFailedMsg:
		m.log.Warn("failed to save search", "err", msg.err)
		m.status = "failed to save search: " + msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab:
			return m, m.setFocus(m.focus - 1)
		case tea.KeyEnter:
			return m, m.saveCmd()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.inputChanged()
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{m.renderHeader()}
	for _, input := range m.inputs {
		lines = append(lines, input.View())
	}
	if msg := m.errorLine(); msg != "" {
		lines = append(lines, errorStyle.Render(msg))
	} else {
		lines = append(lines, "")
	}
	header := strings.Join(lines, "\n")
	body := m.renderBody()
	footer := m.renderFooter()
	if m.width <= 0 || m.height <= 0 {
		return header + "\n" + body + "\n" + footer
	}
	return strings.Join([]string{
		fitLines(header, m.width, lipgloss.Height(header)),
		fitLines(body, m.width, m.bodyHeight()),
		fitLines(footer, m.width, 1),
	}, "\n")
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("wordpool")
	source := headerStyle.Render(truncateLine(m.source, maxInt(0, m.width-lipgloss.Width(title)-2)))
	return title + "  " + source
}

func (m *Model) renderBody() string {
	switch {
	case m.loading:
		return headerStyle.Render("Loading dictionary...")
	case m.loadErr != nil:
		return errorStyle.Render("Dictionary unavailable. Check --dict and try again.")
	case m.letters == "":
		return headerStyle.Render("Type some letters to search.")
	case len(m.filtered) == 0:
		return headerStyle.Render("No words found.")
	}
	if m.width <= 0 || m.height <= 0 {
		return layoutResults(m.shown(), m.re, 0, m.config.Columns)
	}
	return m.results.View()
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if m.session != nil {
		segments = append(segments,
			fmt.Sprintf("Matches %d", len(m.session.Last())),
			fmt.Sprintf("Shown %d", len(m.shown())),
			fmt.Sprintf("Dictionary %d words", m.session.Size()),
		)
	}
	if m.status != "" {
		segments = append(segments, m.status)
	} else {
		segments = append(segments, "tab: switch field  enter: save  esc: quit")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) errorLine() string {
	if m.loadErr != nil {
		return "failed to load dictionary: " + firstLine(m.loadErr.Error())
	}
	return m.patternErr
}

func (m *Model) bodyHeight() int {
	headerHeight := len(m.inputs) + 2
	h := m.height - headerHeight - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.results.Width = m.width
	m.results.Height = m.bodyHeight()
	for i := range m.inputs {
		promptWidth := lipgloss.Width(m.inputs[i].Prompt)
		m.inputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) setFocus(idx int) tea.Cmd {
	count := len(m.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// inputChanged re-runs the search when the letters change and only the
// filter when just the pattern changes.
func (m *Model) inputChanged() {
	q := query.Normalize(query.Query{
		Letters: m.inputs[fieldLetters].Value(),
		Pattern: m.inputs[fieldPattern].Value(),
	}, m.config.FoldCase)
	lettersChanged := q.Letters != m.letters
	patternChanged := q.Pattern != m.pattern
	m.letters = q.Letters
	m.pattern = q.Pattern
	if patternChanged {
		m.compilePattern()
	}
	m.status = ""
	if lettersChanged {
		m.runSearch()
		return
	}
	if patternChanged {
		m.applyFilter()
	}
}

func (m *Model) compilePattern() {
	re, err := query.CompilePattern(m.pattern, m.config.FoldCase)
	if err != nil {
		m.patternErr = err.Error()
		return
	}
	m.patternErr = ""
	m.re = re
}

func (m *Model) runSearch() {
	if m.session == nil {
		return
	}
	if m.letters == "" {
		m.session.Search("")
		m.filtered = nil
		m.renderResults()
		return
	}
	m.session.Search(m.letters)
	m.applyFilter()
}

func (m *Model) applyFilter() {
	if m.session == nil {
		return
	}
	m.filtered = m.session.Filter(m.re)
	m.renderResults()
}

func (m *Model) shown() []string {
	return render.Limit(m.filtered, m.config.Limit)
}

func (m *Model) renderResults() {
	m.results.SetContent(layoutResults(m.shown(), m.re, m.width, m.config.Columns))
	m.results.GotoTop()
}

func (m *Model) saveCmd() tea.Cmd {
	if m.store == nil || m.session == nil || m.letters == "" {
		return nil
	}
	if m.patternErr != "" {
		m.status = "fix the pattern before saving"
		return nil
	}
	st := m.store
	rec := model.SearchRecord{
		SearchedAt: time.Now(),
		Letters:    m.letters,
		Pattern:    m.pattern,
		Wildcard:   string(m.config.Wildcard),
		Source:     m.source,
		Matches:    len(m.filtered),
	}
	if len(m.filtered) > 0 {
		rec.Top = m.filtered[0]
	}
	return func() tea.Msg {
		if _, err := st.InsertSearch(context.Background(), rec); err != nil {
			return saveFailedMsg{err: err}
		}
		return searchSavedMsg{letters: rec.Letters}
	}
}

// LoadDuration reports how long the dictionary took to load.
func (m *Model) LoadDuration() time.Duration {
	return m.loadDur
}

// LoadErr returns the dictionary load error, if any.
func (m *Model) LoadErr() error {
	return m.loadErr
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
