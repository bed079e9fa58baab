// Package ui renders the vaultview terminal interface with Bubble Tea. All
// filter decisions flow through the filter controller and all remote reads
// through the cache coordinator; the UI itself only reacts to published
// states and cache updates.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/karandattani71/vaultview/internal/cache"
	"github.com/karandattani71/vaultview/internal/catalog"
	"github.com/karandattani71/vaultview/internal/filter"
)

// View represents the current active view.
type View int

// Views.
const (
	ViewFiles View = iota
	ViewStats
)

// FilterChangedMsg delivers a newly published filter state.
type FilterChangedMsg struct {
	State filter.State
}

// CacheUpdatedMsg delivers a committed cache entry.
type CacheUpdatedMsg struct {
	Entry cache.Entry
}

type mutationDoneMsg struct {
	kind    cache.Mutation
	listKey cache.Key
	message string
	err     error
}

type savingsMsg struct {
	savings *catalog.Savings
	err     error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptUpload
	promptTag
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *catalog.Client
	Controller  *filter.Controller
	Coordinator *cache.Coordinator
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx         context.Context
	client      *catalog.Client
	controller  *filter.Controller
	coordinator *cache.Coordinator

	theme  Theme
	styles Styles

	view   View
	width  int
	height int
	ready  bool

	search        textinput.Model
	searchFocused bool

	panel filterPanel

	filesTable table.Model
	spin       spinner.Model

	state      filter.State
	listKey    cache.Key
	cancelList func()

	cancelStats func()

	files     cache.Entry
	stats     cache.Entry
	fileTypes []string
	savings   *catalog.Savings

	prompt     textinput.Model
	promptMode promptKind
	promptFile catalog.File

	statusMsg string
	statusErr bool
}

// New creates a new Bubble Tea model and subscribes the file list.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	theme := DefaultTheme()

	search := textinput.New()
	search.Placeholder = "search filename"
	search.Prompt = "/ "
	search.CharLimit = 128
	search.Width = 36

	prompt := textinput.New()
	prompt.CharLimit = 256
	prompt.Width = 48

	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))

	m := &Model{
		ctx:         ctx,
		client:      opts.Client,
		controller:  opts.Controller,
		coordinator: opts.Coordinator,
		theme:       theme,
		styles:      theme.Styles(),
		search:      search,
		prompt:      prompt,
		panel:       newFilterPanel(),
		filesTable:  newFilesTable(theme),
		spin:        spin,
	}

	m.state = m.controller.Current()
	m.listKey = cache.FileListKey(filter.EncodedQuery(m.state))
	m.cancelList = m.coordinator.Subscribe(m.listKey)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.files = m.coordinator.Read(m.listKey)
	m.coordinator.Read(cache.KeyFileTypes)
	return m.spin.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeTable()
		return m, nil

	case tea.FocusMsg:
		// Coming back to the terminal is the external refresh signal: the
		// statistics must reflect any mutation that happened meanwhile.
		m.coordinator.BumpRefreshSignal()
		if m.view == ViewStats {
			m.stats = m.coordinator.Read(cache.KeyStats)
		}
		return m, nil

	case FilterChangedMsg:
		return m.handleFilterChanged(msg.State)

	case CacheUpdatedMsg:
		return m.handleCacheUpdated(msg.Entry)

	case mutationDoneMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.coordinator.OnMutation(msg.kind, msg.listKey)
		m.refreshVisible()
		m.setStatus(msg.message, false)
		return m, nil

	case savingsMsg:
		if msg.err == nil {
			m.savings = msg.savings
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleFilterChanged(state filter.State) (tea.Model, tea.Cmd) {
	m.state = state
	key := cache.FileListKey(filter.EncodedQuery(state))
	if key == m.listKey {
		return m, nil
	}
	// Swap the subscription to the new key. The old entry stays cached;
	// only its background revalidation stops.
	if m.cancelList != nil {
		m.cancelList()
	}
	m.listKey = key
	m.cancelList = m.coordinator.Subscribe(key)
	m.files = m.coordinator.Read(key)
	m.updateFilesRows()
	return m, nil
}

func (m *Model) handleCacheUpdated(entry cache.Entry) (tea.Model, tea.Cmd) {
	switch {
	case entry.Key == m.listKey:
		m.files = entry
		m.updateFilesRows()
	case entry.Key == cache.KeyStats:
		m.stats = entry
	case entry.Key == cache.KeyFileTypes:
		if types, ok := entry.Payload.([]string); ok {
			m.fileTypes = types
		}
	}
	return m, nil
}

// refreshVisible re-reads the keys the current view depends on so that
// invalidated entries start revalidating right away.
func (m *Model) refreshVisible() {
	m.files = m.coordinator.Read(m.listKey)
	m.updateFilesRows()
	if m.view == ViewStats {
		m.stats = m.coordinator.Read(cache.KeyStats)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.promptMode != promptNone {
		return m.handlePromptKey(msg)
	}
	if m.panel.open {
		return m.handlePanelKey(msg)
	}
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searchFocused = true
		m.search.Focus()
		return m, nil

	case "f":
		m.panel.open = true
		m.panel.load(m.state)
		return m, nil

	case "s":
		if m.view == ViewStats {
			return m.leaveStats()
		}
		return m.enterStats()

	case "esc":
		if m.view == ViewStats {
			return m.leaveStats()
		}
		return m, nil

	case "r":
		m.coordinator.BumpRefreshSignal()
		m.refreshVisible()
		m.setStatus("refreshing", false)
		return m, nil

	case "R":
		m.controller.Reset()
		m.setStatus("filters reset", false)
		return m, nil

	case "u":
		m.promptMode = promptUpload
		m.prompt.Prompt = "upload path: "
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, nil
	}

	if m.view == ViewFiles {
		return m.handleFilesKey(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searchFocused = false
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		// Live search: every keystroke notifies the debounce gate; only the
		// last value of a burst is committed.
		m.controller.SetSearch(after)
	}
	return m, cmd
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.panel.open = false
		m.controller.Apply(m.panel.form())
		return m, nil
	case "esc":
		m.panel.open = false
		return m, nil
	case "tab", "down":
		m.panel.setFocus(m.panel.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.panel.setFocus(m.panel.focus - 1)
		return m, nil
	}
	return m, m.panel.update(msg)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptMode = promptNone
		m.prompt.Blur()
		return m, nil
	case "enter":
		mode := m.promptMode
		value := strings.TrimSpace(m.prompt.Value())
		m.promptMode = promptNone
		m.prompt.Blur()
		if value == "" {
			return m, nil
		}
		switch mode {
		case promptUpload:
			return m, m.uploadCmd(value)
		case promptTag:
			return m, m.tagCmd(m.promptFile, value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) enterStats() (tea.Model, tea.Cmd) {
	m.view = ViewStats
	if m.cancelStats == nil {
		m.cancelStats = m.coordinator.Subscribe(cache.KeyStats)
	}
	m.stats = m.coordinator.Read(cache.KeyStats)
	return m, m.savingsCmd()
}

func (m *Model) leaveStats() (tea.Model, tea.Cmd) {
	m.view = ViewFiles
	// Stop revalidating stats in the background; the payload stays cached
	// for the next visit.
	if m.cancelStats != nil {
		m.cancelStats()
		m.cancelStats = nil
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.panel.open {
		return m.panel.view(m.styles) + "\n" + m.knownTypesLine()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	switch m.view {
	case ViewStats:
		b.WriteString(m.renderStats())
	default:
		b.WriteString(m.renderFiles())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	if m.promptMode != promptNone {
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
	}
	return b.String()
}

func (m *Model) knownTypesLine() string {
	if len(m.fileTypes) == 0 {
		return ""
	}
	return m.styles.Faint.Render("known types: " + truncate(strings.Join(m.fileTypes, ", "), 72))
}

func (m *Model) uploadCmd(path string) tea.Cmd {
	client, ctx, key := m.client, m.ctx, m.listKey
	return func() tea.Msg {
		res, err := client.Upload(ctx, path)
		msg := mutationDoneMsg{kind: cache.MutationUpload, listKey: key, err: err}
		if err != nil {
			return msg
		}
		if res.Message != "" {
			msg.message = "already stored; reference added to " + res.OriginalFilename
		} else {
			msg.message = "uploaded " + res.OriginalFilename
		}
		return msg
	}
}

func (m *Model) deleteCmd(file catalog.File) tea.Cmd {
	client, ctx, key := m.client, m.ctx, m.listKey
	return func() tea.Msg {
		err := client.Delete(ctx, file.ID)
		return mutationDoneMsg{
			kind:    cache.MutationDelete,
			listKey: key,
			message: "deleted " + file.OriginalFilename,
			err:     err,
		}
	}
}

func (m *Model) tagCmd(file catalog.File, raw string) tea.Cmd {
	client, ctx, key := m.client, m.ctx, m.listKey
	tags := splitTags(raw)
	return func() tea.Msg {
		_, err := client.UpdateTags(ctx, file.ID, tags)
		return mutationDoneMsg{
			kind:    cache.MutationTagEdit,
			listKey: key,
			message: "tagged " + file.OriginalFilename,
			err:     err,
		}
	}
}

func (m *Model) savingsCmd() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		savings, err := client.FetchSavings(ctx)
		return savingsMsg{savings: savings, err: err}
	}
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
