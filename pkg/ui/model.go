package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/sentidash/internal/datasource"
	"github.com/vanderheijden86/sentidash/pkg/daterange"
	"github.com/vanderheijden86/sentidash/pkg/debug"
	"github.com/vanderheijden86/sentidash/pkg/focus"
	"github.com/vanderheijden86/sentidash/pkg/metrics"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/store"
	"github.com/vanderheijden86/sentidash/pkg/watcher"
)

const (
	defaultWidth  = 120
	defaultHeight = 40

	// WideLayoutThreshold is the width at which chart panels sit side by side.
	WideLayoutThreshold = 100

	carouselHeight = 9
	chartHeight    = 14
	cardsHeight    = 3
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAnalystSearch
	inputQuestionSearch
	inputStartDate
	inputEndDate
)

// FileChangedMsg carries one watcher event.
type FileChangedMsg struct {
	Event watcher.Event
}

// DataReloadedMsg is sent when a reload of the data source finishes.
type DataReloadedMsg struct {
	Dataset model.Dataset
	Err     error
}

// WatchFileCmd waits for the next watcher event.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return FileChangedMsg{Event: ev}
	}
}

// ReloadCmd loads p in the background.
func ReloadCmd(p datasource.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), datasource.DefaultLoadTimeout)
		defer cancel()
		ds, err := datasource.Load(ctx, p)
		return DataReloadedMsg{Dataset: ds, Err: err}
	}
}

// Options configures NewModel.
type Options struct {
	// Provider is used for reloads; nil disables reloading.
	Provider datasource.Provider
	// Watcher, when set and started, triggers reloads on change.
	Watcher   *watcher.Watcher
	ShowTable bool
	// Plain disables colors in charts and markdown.
	Plain bool
}

// Model is the dashboard's Bubble Tea model. All dashboard state lives in
// the store; Model only holds presentation state.
type Model struct {
	store    *store.Store
	theme    Theme
	provider datasource.Provider
	watcher  *watcher.Watcher

	width, height int
	ring          focus.Ring
	mode          inputMode
	input         textinput.Model
	viewport      viewport.Model
	showTable     bool
	plain         bool

	statusMsg     string
	statusIsError bool
}

// NewModel returns a dashboard over st.
func NewModel(st *store.Store, opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 120
	m := Model{
		store:     st,
		theme:     DefaultTheme(lipgloss.DefaultRenderer()),
		provider:  opts.Provider,
		watcher:   opts.Watcher,
		width:     defaultWidth,
		height:    defaultHeight,
		ring:      focus.NewRing(model.PanelOrder()),
		input:     ti,
		viewport:  viewport.New(defaultWidth, defaultHeight-4),
		showTable: opts.ShowTable,
		plain:     opts.Plain,
	}
	m.syncViewport()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil && m.watcher.IsStarted() {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncViewport()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport = viewport.New(msg.Width, m.bodyHeight())
		return m, nil

	case FileChangedMsg:
		var cmds []tea.Cmd
		if msg.Event.Err != nil {
			m.setStatus(fmt.Sprintf("watch %s: %v", msg.Event.Path, msg.Event.Err), true)
		} else if m.provider != nil {
			cmds = append(cmds, ReloadCmd(m.provider))
		}
		if m.watcher != nil && !errors.Is(msg.Event.Err, watcher.ErrFileRemoved) {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		return m, tea.Batch(cmds...)

	case DataReloadedMsg:
		if msg.Err != nil {
			m.setStatus("reload failed: "+msg.Err.Error(), true)
			return m, nil
		}
		diff := datasource.Diff(m.store.State().Dataset, msg.Dataset)
		m.store.Dispatch(store.ReplaceDataset{Dataset: msg.Dataset})
		m.setStatus("reloaded: "+diff.Summary(), false)
		return m, nil

	case tea.KeyMsg:
		if m.mode != inputNone {
			return m.handleInputKeys(msg)
		}
		return m.handleKeys(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.statusMsg = ""
	s := m.store
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.beginInput(inputAnalystSearch, "analyst › ", s.State().AnalystSearch)
	case "?":
		m.beginInput(inputQuestionSearch, "question › ", s.State().Carousel.Query())
	case "s":
		m.beginInput(inputStartDate, "start › ", s.State().Range.Start.String())
	case "e":
		m.beginInput(inputEndDate, "end › ", s.State().Range.End.String())
	case "a":
		m.cycleAnalyst(1)
	case "A":
		m.cycleAnalyst(-1)
	case "p":
		m.cyclePreset(1)
	case "P":
		m.cyclePreset(-1)
	case "l", "right":
		s.Dispatch(store.CarouselNext{})
	case "h", "left":
		s.Dispatch(store.CarouselPrev{})
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.Dispatch(store.CarouselJumpTo{Index: int(msg.String()[0] - '1')})
	case "tab":
		m.ring.Next()
	case "shift+tab":
		m.ring.Prev()
	case "m", "enter":
		s.Dispatch(store.ToggleMaximize{Panel: m.ring.Current()})
		m.viewport.GotoTop()
	case "esc":
		if id, ok := s.State().Focus.Maximized(); ok {
			s.Dispatch(store.ToggleMaximize{Panel: id})
		}
	case "f1":
		s.Dispatch(store.SelectTab{Tab: store.TabQuestions})
	case "f2":
		s.Dispatch(store.SelectTab{Tab: store.TabSpeakers})
	case "f3":
		s.Dispatch(store.SelectTab{Tab: store.TabComparison})
	case "f4":
		s.Dispatch(store.SelectTab{Tab: store.TabDefinitions})
	case "t":
		m.showTable = !m.showTable
	case "y":
		m.copyCurrent()
	case "r":
		if m.provider == nil {
			return m, nil
		}
		m.setStatus("reloading…", false)
		return m, ReloadCmd(m.provider)
	case "j", "down":
		m.viewport.SetYOffset(m.viewport.YOffset + 1)
	case "k", "up":
		m.viewport.SetYOffset(m.viewport.YOffset - 1)
	case "pgdown", "ctrl+d":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
	case "pgup", "ctrl+u":
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
	case "g", "home":
		m.viewport.GotoTop()
	}
	return m, nil
}

func (m *Model) beginInput(mode inputMode, prompt, value string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// handleInputKeys edits the active input. Searches apply on every
// keystroke; dates apply on enter.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.mode == inputStartDate || m.mode == inputEndDate {
			if !m.commitDate() {
				return m, nil
			}
		}
		m.endInput()
		return m, nil
	case tea.KeyEsc:
		switch m.mode {
		case inputAnalystSearch:
			m.store.Dispatch(store.SetAnalystSearch{Text: ""})
		case inputQuestionSearch:
			m.store.Dispatch(store.SetQuestionSearch{Text: ""})
		}
		m.endInput()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.mode {
	case inputAnalystSearch:
		m.store.Dispatch(store.SetAnalystSearch{Text: m.input.Value()})
	case inputQuestionSearch:
		m.store.Dispatch(store.SetQuestionSearch{Text: m.input.Value()})
	}
	return m, cmd
}

func (m *Model) commitDate() bool {
	d, err := daterange.Parse(m.input.Value())
	if err != nil {
		m.setStatus(err.Error(), true)
		return false
	}
	if m.mode == inputStartDate {
		m.store.Dispatch(store.SetDateStart{Date: d})
	} else {
		m.store.Dispatch(store.SetDateEnd{Date: d})
	}
	if r := m.store.State().Range; r.Inverted() {
		m.setStatus(fmt.Sprintf("start %s is after end %s", r.Start, r.End), true)
	}
	return true
}

func (m *Model) endInput() {
	m.mode = inputNone
	m.input.Blur()
}

// cycleAnalyst moves the selection through the analysts visible under the
// current search.
func (m *Model) cycleAnalyst(step int) {
	v := m.store.View()
	if len(v.Analysts) == 0 {
		return
	}
	idx := -1
	for i, a := range v.Analysts {
		if a.ID == v.SelectedAnalyst.ID {
			idx = i
			break
		}
	}
	n := len(v.Analysts)
	next := 0
	if idx >= 0 {
		next = ((idx+step)%n + n) % n
	}
	m.store.Dispatch(store.SelectAnalyst{ID: v.Analysts[next].ID})
}

func (m *Model) cyclePreset(step int) {
	presets := daterange.Presets()
	cur := m.store.State().Range.Preset
	idx := -1
	for i, p := range presets {
		if p == cur {
			idx = i
		}
	}
	n := len(presets)
	next := 0
	switch {
	case idx >= 0:
		next = ((idx+step)%n + n) % n
	case step < 0:
		next = n - 1
	}
	m.store.Dispatch(store.SelectPreset{Preset: presets[next]})
}

func (m *Model) copyCurrent() {
	q, ok := m.store.State().Carousel.Current()
	if !ok {
		m.setStatus("no question to copy", true)
		return
	}
	text := fmt.Sprintf("%s (%s): %s", q.Analyst, q.Period(), q.Question)
	if err := clipboard.WriteAll(text); err != nil {
		m.setStatus("clipboard: "+err.Error(), true)
		return
	}
	m.setStatus("copied question from "+q.Analyst, false)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
	debug.LogIf(isErr, "status: %s", msg)
}

func (m Model) bodyHeight() int {
	h := m.height - 3 // nav, filters, footer
	if m.mode != inputNone {
		h--
	}
	return max(h, 3)
}

func (m *Model) syncViewport() {
	m.viewport.Width = m.width
	m.viewport.Height = m.bodyHeight()
	m.viewport.SetContent(m.renderBody(m.store.View()))
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	v := m.store.View()
	parts := []string{m.renderNav(v), m.renderFilters(v)}
	if m.mode != inputNone {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.viewport.View(), m.renderFooter())
	return strings.Join(parts, "\n")
}

func (m Model) renderNav(v store.View) string {
	t := m.theme
	items := []string{t.Header.Render("sentidash")}
	for i, tab := range store.Tabs() {
		label := fmt.Sprintf("F%d %s", i+1, tab.Title())
		if tab == v.Tab {
			items = append(items, t.TabActive.Render(label))
		} else {
			items = append(items, t.TabInactive.Render(label))
		}
	}
	return truncateStyled(strings.Join(items, "  "), m.width)
}

func (m Model) renderFilters(v store.View) string {
	t := m.theme
	analyst := v.SelectedAnalyst.Name
	if v.AnalystSearch != "" {
		analyst += t.MutedText.Render(fmt.Sprintf(" [/%s: %d]", v.AnalystSearch, len(v.Analysts)))
	}
	rangeLabel := v.Range.String()
	if v.Range.Inverted() {
		rangeLabel = t.NegativeText.Render(rangeLabel)
	}
	line := fmt.Sprintf("Analyst: %s   Range: %s", analyst, rangeLabel)
	if v.QuestionQuery != "" {
		line += fmt.Sprintf("   Questions: %q (%d)", v.QuestionQuery, len(v.Questions))
	}
	return truncateStyled(line, m.width)
}

func (m Model) renderBody(v store.View) string {
	switch v.Tab {
	case store.TabDefinitions:
		return renderDefinitions(m.width, m.plain)
	case store.TabQuestions:
		return m.renderQuestionsTab(v)
	default:
		return m.theme.PanelTitle.Render(v.TabTitle) + "\n\n" +
			m.theme.MutedText.Render("No data is available for this section yet.")
	}
}

func (m Model) renderQuestionsTab(v store.View) string {
	w := m.width
	if v.Maximized != "" {
		return m.renderPanel(v, v.Maximized, w, max(m.bodyHeight(), chartHeight))
	}

	rows := []string{m.renderPanel(v, model.PanelQuestions, w, m.questionsHeight(v))}

	var charts []string
	colW := w
	wide := w >= WideLayoutThreshold
	if wide {
		colW = w / 2
	}
	for _, p := range v.Panels {
		h := chartHeight
		if p.ID == model.PanelPositivity || p.ID == model.PanelNegativity {
			h += cardsHeight
		}
		charts = append(charts, m.renderPanel(v, p.ID, colW, h))
	}
	for i := 0; i < len(charts); i++ {
		if wide && i+1 < len(charts) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, charts[i], charts[i+1]))
			i++
			continue
		}
		rows = append(rows, charts[i])
	}
	return strings.Join(rows, "\n")
}

func (m Model) questionsHeight(v store.View) int {
	if m.showTable {
		return min(len(v.Questions), 10) + 4
	}
	return carouselHeight
}

// renderPanel draws a panel of outer size width x height.
func (m Model) renderPanel(v store.View, id model.PanelID, width, height int) string {
	t := m.theme
	focused := m.ring.Current() == id
	innerW, innerH := max(width-2, 1), max(height-3, 1)

	if id == model.PanelQuestions {
		title := "Analyst Questions"
		var body string
		if m.showTable {
			body = renderTable(v, innerW, innerH, t)
		} else {
			body = renderCarousel(v, innerW, t)
		}
		return panelBox(title, body, width, height, focused, t)
	}

	for _, p := range v.Panels {
		if p.ID != id {
			continue
		}
		var body string
		switch id {
		case model.PanelPositivity:
			body = renderCards(v.Positive, innerW, t) + "\n"
			innerH -= lipgloss.Height(body) - 1
		case model.PanelNegativity:
			body = renderCards(v.Negative, innerW, t) + "\n"
			innerH -= lipgloss.Height(body) - 1
		}
		body += renderChart(p, v.Trends, innerW, max(innerH, 3), m.plain, t)
		title := p.Title
		if p.Maximized {
			title += " (m/esc to restore)"
		}
		return panelBox(title, body, width, height, focused, t)
	}
	return ""
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := lipgloss.NewStyle().Background(ColorSuccessBg).Foreground(ColorSuccess).Bold(true).Padding(0, 2)
		prefix := "✓ "
		if m.statusIsError {
			style = lipgloss.NewStyle().Background(ColorDangerBg).Foreground(ColorDanger).Bold(true).Padding(0, 2)
			prefix = "✗ "
		}
		return truncateStyled(style.Render(prefix+m.statusMsg), m.width)
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	labelStyle := lipgloss.NewStyle().Foreground(ColorText)
	hints := [][2]string{
		{"/", "analyst"}, {"a/A", "select"}, {"p/P", "preset"}, {"s/e", "dates"},
		{"?", "questions"}, {"h/l", "prev/next"}, {"tab", "focus"}, {"m", "maximize"},
		{"t", "table"}, {"y", "copy"}, {"q", "quit"},
	}
	if m.mode != inputNone {
		hints = [][2]string{{"enter", "apply"}, {"esc", "cancel"}}
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h[0]) + " " + labelStyle.Render(h[1])
	}
	footer := strings.Join(parts, "  ")
	if m.watcher != nil && m.watcher.IsStarted() {
		footer += keyStyle.Render("  · watching (" + m.watcher.Mode() + ")")
	}
	if debug.Enabled() {
		footer += keyStyle.Render("  · " + metrics.Summary())
	}
	return truncateStyled(footer, m.width)
}

// truncateStyled cuts an ANSI-styled line to width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// FocusedPanel returns the panel that tab focus is on.
func (m Model) FocusedPanel() model.PanelID { return m.ring.Current() }

// ShowTable reports whether the question table replaces the carousel.
func (m Model) ShowTable() bool { return m.showTable }

// StatusMessage returns the footer status text and whether it is an error.
func (m Model) StatusMessage() (string, bool) { return m.statusMsg, m.statusIsError }

// Store returns the store the model dispatches to.
func (m Model) Store() *store.Store { return m.store }
