package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dag10/cshdj-youtube/internal/sources"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResultListView ViewState = iota
	ConfirmView
	DownloadView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	source      sources.SongSource
	query       string
	maxResults  int
	downloadDir string
	width       int
	height      int
	resultList  list.Model
	results     []sources.SearchResult
	selected    *sources.SearchResult
	path        string
	err         error
	help        help.Model
	keys        keyMap
}

// resultItem wraps [sources.SearchResult] to implement list.Item.
type resultItem struct {
	result sources.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	desc := i.result.Artist
	if desc == "" {
		desc = i.result.ID
	}
	return desc
}

type resultsFetchedMsg struct {
	results []sources.SearchResult
	err     error
}

type downloadFinishedMsg struct {
	path string
	err  error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, source sources.SongSource, query, downloadDir string, maxResults int) *Model {
	return &Model{
		ctx:         ctx,
		view:        ResultListView,
		source:      source,
		query:       query,
		maxResults:  maxResults,
		downloadDir: downloadDir,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by searching the catalog for the query.
func (m *Model) Init() tea.Cmd {
	return m.fetchResults()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResultListView:
			return m.handleResultListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case resultsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.results = msg.results
		items := make([]list.Item, len(msg.results))
		for i, r := range msg.results {
			items[i] = resultItem{result: r}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for '%s'", m.query)
		m.resultList.SetSize(m.width-4, m.height-8)
		return m, nil

	case downloadFinishedMsg:
		m.path = msg.path
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ResultListView:
		return m.renderResultList()
	case ConfirmView:
		return m.renderConfirm()
	case DownloadView:
		return m.renderDownload()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.resultList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(resultItem); ok {
				m.selected = &item.result
				m.view = ConfirmView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ResultListView
		m.selected = nil
		return m, nil
	case "y":
		m.view = DownloadView
		return m, m.startDownload()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		m.view = ResultListView
		m.selected = nil
		m.path = ""
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == ResultListView {
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchResults() tea.Cmd {
	return func() tea.Msg {
		results, err := m.source.Search(m.ctx, m.maxResults, m.query)
		return resultsFetchedMsg{results: results, err: err}
	}
}

func (m *Model) startDownload() tea.Cmd {
	selected := *m.selected
	return func() tea.Msg {
		path, err := m.source.Fetch(m.ctx, selected.ID, m.downloadDir)
		return downloadFinishedMsg{path: path, err: err}
	}
}

func (m *Model) renderResultList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.resultList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Download '%s'?", m.selected.Title))
	info := fmt.Sprintf("\nTrack: %s\nChannel: %s\nDestination: %s\n",
		m.selected.ID, m.selected.Artist, m.downloadDir)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderDownload() string {
	title := styles.title.Render("Downloading")
	return fmt.Sprintf("%s\n\nStreaming '%s' to %s...", title, m.selected.Title, m.downloadDir)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Download failed: %v\n\nPress r to pick another, q to quit", m.err))
	}

	title := styles.ok.Render("✓ Download Complete!")
	info := fmt.Sprintf("\nSaved to: %s", m.path)

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
