package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catfeed/internal/feed"
	tuiactions "github.com/glabrego/catfeed/internal/tui/actions"
	"github.com/glabrego/catfeed/internal/tui/platform"
	tuistate "github.com/glabrego/catfeed/internal/tui/state"
	tuitheme "github.com/glabrego/catfeed/internal/tui/theme"
	tuiview "github.com/glabrego/catfeed/internal/tui/view"
)

const (
	chromeLines   = 9
	abstractLines = 2
	statusTTL     = 4 * time.Second
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPageSize
	promptPage
)

type clearStatusMsg struct {
	id int
}

type Options struct {
	SiteURL  string
	Logger   *slog.Logger
	Location *time.Location
}

type Model struct {
	controller *feed.Controller
	fetcher    feed.PageFetcher
	initial    *feed.Cycle
	siteURL    string
	logger     *slog.Logger
	location   *time.Location
	theme      tuitheme.Theme

	snapshot  feed.RenderModel
	cursor    int
	width     int
	height    int
	showHelp  bool
	prompt    promptKind
	input     textinput.Model
	promptErr string
	status    string
	statusID  int
	lastFetch time.Duration

	openURLFn func(string) error
	copyURLFn func(string) error
}

// NewModel wraps an initialized controller. initial is the cycle returned by
// Controller.Initialize and is started by Init.
func NewModel(controller *feed.Controller, fetcher feed.PageFetcher, initial *feed.Cycle, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	input := textinput.New()
	input.CharLimit = 6
	input.Width = 8

	return Model{
		controller: controller,
		fetcher:    fetcher,
		initial:    initial,
		siteURL:    opts.SiteURL,
		logger:     logger,
		location:   loc,
		theme:      tuitheme.Default(),
		snapshot:   controller.Model(),
		input:      input,
		openURLFn:  platform.OpenURLInBrowser,
		copyURLFn:  platform.CopyURLToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	return tuiactions.FetchCmd(m.fetcher, m.initial)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tuiactions.FetchDoneMsg:
		return m.completeFetch(msg)
	case tuiactions.OpenURLSuccessMsg:
		return m.setStatus(msg.Status)
	case tuiactions.OpenURLErrorMsg:
		return m.setStatus(msg.Err.Error())
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "esc":
		m.showHelp = false
		return m, nil
	}
	if m.showHelp {
		return m, nil
	}

	switch msg.String() {
	case "down", "j":
		m.cursor = tuistate.ClampCursor(m.cursor+1, len(m.snapshot.Items))
		return m, nil
	case "up", "k":
		m.cursor = tuistate.ClampCursor(m.cursor-1, len(m.snapshot.Items))
		return m, nil
	case "right", "n":
		return m.stepPage(1)
	case "left", "p":
		return m.stepPage(-1)
	case "g":
		return m.openPrompt(promptPage, m.snapshot.StagedPage)
	case "z":
		return m.openPrompt(promptPageSize, m.snapshot.StagedPageSize)
	case "s":
		return m.run(m.controller.SetSortColumn(feed.NextColumn(m.snapshot.SortColumn)))
	case "d":
		return m.run(m.controller.ToggleSortDirection())
	case "r":
		return m.run(m.controller.Refresh())
	case "1":
		if !m.snapshot.HasPinned {
			return m.setStatus("This category has no pinned post")
		}
		m.controller.TogglePinVisible()
		m.snapshot = m.controller.Model()
		return m, nil
	case "2":
		m.controller.ToggleCoverVisible()
		m.snapshot = m.controller.Model()
		return m, nil
	case "3":
		m.controller.ToggleAbstractVisible()
		m.snapshot = m.controller.Model()
		return m, nil
	case "enter", "o":
		return m.openCurrent()
	case "y":
		return m.copyCurrent()
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.closePrompt(), nil
	case "enter":
		var (
			cycle *feed.Cycle
			err   error
		)
		if m.prompt == promptPageSize {
			m.controller.StagePageSize(m.input.Value())
			cycle, err = m.controller.ApplyPageSize()
		} else {
			m.controller.StagePage(m.input.Value())
			cycle, err = m.controller.ApplyPage()
		}
		if err != nil {
			var verr *feed.ValidationError
			if !errors.As(err, &verr) {
				m.logger.Error("apply input", "error", err)
			}
			m.promptErr = err.Error()
			return m, nil
		}
		m = m.closePrompt()
		if cycle != nil {
			m.cursor = 0
		}
		return m.run(cycle)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.promptErr = ""
	if m.prompt == promptPageSize {
		m.controller.StagePageSize(m.input.Value())
	} else {
		m.controller.StagePage(m.input.Value())
	}
	m.snapshot = m.controller.Model()
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	if kind == promptPage && m.snapshot.TotalPages == 0 {
		return m.setStatus("No post in this category.")
	}
	m.prompt = kind
	m.promptErr = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	if kind == promptPageSize {
		m.input.Prompt = fmt.Sprintf("Posts per page (%d-%d): ", feed.MinPageSize, feed.MaxPageSize)
	} else {
		m.input.Prompt = fmt.Sprintf("Go to page (1-%d): ", m.snapshot.TotalPages)
	}
	return m, m.input.Focus()
}

func (m Model) closePrompt() Model {
	m.prompt = promptNone
	m.promptErr = ""
	m.input.Blur()
	m.snapshot = m.controller.Model()
	return m
}

func (m Model) stepPage(delta int) (tea.Model, tea.Cmd) {
	page, ok := tuistate.AdjacentPage(m.snapshot.CurrentPage, m.snapshot.TotalPages, delta)
	if !ok {
		return m, nil
	}
	cycle, err := m.controller.SetPage(page)
	if err != nil {
		return m.setStatus(err.Error())
	}
	m.cursor = 0
	return m.run(cycle)
}

// run refreshes the snapshot and starts cycle, if any.
func (m Model) run(cycle *feed.Cycle) (tea.Model, tea.Cmd) {
	m.snapshot = m.controller.Model()
	return m, tuiactions.FetchCmd(m.fetcher, cycle)
}

func (m Model) completeFetch(msg tuiactions.FetchDoneMsg) (tea.Model, tea.Cmd) {
	var selectedID int64
	if len(m.snapshot.Items) > 0 {
		selectedID = m.snapshot.Items[tuistate.ClampCursor(m.cursor, len(m.snapshot.Items))].ID
	}
	outcome, next := m.controller.Complete(msg.Completion)
	if outcome == feed.OutcomeStale {
		return m, nil
	}
	m.snapshot = m.controller.Model()
	if outcome == feed.OutcomePublished {
		m.lastFetch = msg.Duration
		// A refresh of the same page keeps the selection on the same post.
		if idx := tuistate.CardIndexByID(m.snapshot.Items, selectedID); idx >= 0 {
			m.cursor = idx
		}
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.snapshot.Items))
	}
	return m, tuiactions.FetchCmd(m.fetcher, next)
}

func (m Model) currentLink() (string, int64, error) {
	if len(m.snapshot.Items) == 0 {
		return "", 0, fmt.Errorf("no post selected")
	}
	card := m.snapshot.Items[tuistate.ClampCursor(m.cursor, len(m.snapshot.Items))]
	link, err := platform.PostURL(m.siteURL, card.Link)
	return link, card.ID, err
}

func (m Model) openCurrent() (tea.Model, tea.Cmd) {
	link, postID, err := m.currentLink()
	if err != nil {
		return m.setStatus(err.Error())
	}
	return m, tuiactions.OpenURLCmd(postID, link, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrent() (tea.Model, tea.Cmd) {
	link, _, err := m.currentLink()
	if err != nil {
		return m.setStatus(err.Error())
	}
	return m, tuiactions.CopyURLCmd(link, m.copyURLFn)
}

func (m Model) setStatus(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, clearStatusCmd(m.statusID, statusTTL)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(tuiview.Header(m.snapshot.Category.Title, m.theme))
	b.WriteString("\n")
	if intro := tuiview.Intro(m.snapshot.Category, m.contentWidth(), m.theme); intro != "" {
		b.WriteString(intro)
		b.WriteString("\n")
	}
	b.WriteString(tuiview.Toolbar(m.prompt != promptNone))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.helpView())
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		return b.String()
	}

	if m.snapshot.Pinned != nil {
		for _, line := range tuiview.RenderPinned(*m.snapshot.Pinned, m.contentWidth(), m.location, m.theme) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch {
	case !m.snapshot.Loaded && m.snapshot.Loading:
		b.WriteString("Loading posts...\n")
	case len(m.snapshot.Items) == 0 && m.snapshot.Loaded:
		b.WriteString("No post in this category.\n")
	default:
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	if m.prompt != promptNone {
		b.WriteString(m.input.View())
		if m.promptErr != "" {
			b.WriteString("  ")
			b.WriteString(m.theme.PromptError.Render(m.promptErr))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) listView() string {
	items := m.snapshot.Items
	if len(items) == 0 {
		return ""
	}
	perCard := 2
	if m.snapshot.CoverVisible {
		perCard++
	}
	if m.snapshot.AbstractVisible {
		perCard += abstractLines
	}
	extra := 0
	if m.snapshot.Pinned != nil {
		extra = 3
	}
	if strings.TrimSpace(m.snapshot.Category.Description) != "" {
		extra++
	}
	visible := tuistate.CardsPerScreen(m.height, chromeLines+extra, perCard)
	start, end := tuistate.CenteredWindow(len(items), m.cursor, visible)

	offset := (m.snapshot.CurrentPage - 1) * m.snapshot.PageSize
	var b strings.Builder
	for i := start; i < end; i++ {
		lines := tuiview.RenderCard(tuiview.CardParams{
			Card:          items[i],
			Number:        offset + i + 1,
			Active:        i == m.cursor,
			Width:         m.contentWidth(),
			AbstractLines: abstractLines,
			Location:      m.location,
		}, m.theme)
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) footer() string {
	var b strings.Builder
	b.WriteString(tuiview.Pagination(m.snapshot, m.theme))
	b.WriteString("\n")
	b.WriteString(tuiview.Settings(m.snapshot, m.theme))
	b.WriteString("\n")
	b.WriteString(tuiview.Message(m.snapshot.Loading, m.snapshot.Notice, m.status, m.theme))
	if m.lastFetch > 0 {
		b.WriteString(fmt.Sprintf(" | last fetch %dms", m.lastFetch.Milliseconds()))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) helpView() string {
	lines := []string{
		"Navigation:",
		"  j/k or arrows move, n/p or left/right change page, g go to page",
		"Sorting:",
		"  s cycle sort column, d flip sort direction",
		"Display:",
		"  z posts per page, 1 pinned post, 2 covers, 3 abstracts",
		"Actions:",
		"  enter/o open post, y copy link, r refresh, q quit",
	}
	return strings.Join(lines, "\n")
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 100
	}
	return m.width
}
