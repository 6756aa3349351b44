package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HuLaxx/Shiftify-sub000/internal/actions"
	"github.com/HuLaxx/Shiftify-sub000/internal/models"
	"github.com/HuLaxx/Shiftify-sub000/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	CollectingView
	TrackListView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	library      *actions.Library
	width        int
	height       int
	playlistList list.Model
	trackList    list.Model
	run          *collection
	progress     tasks.ProgressUpdate
	result       *models.CollectResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model backed by library.
func NewModel(ctx context.Context, library *actions.Library) *Model {
	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		library:      library,
		playlistList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		trackList:    list.New(nil, list.NewDefaultDelegate(), 0, 0),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init fetches the playlist listing.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// ViewState returns the active view.
func (m *Model) ViewState() ViewState { return m.view }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-6)
		m.trackList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case CollectingView:
			return m.handleCollectingKeys(msg)
		case TrackListView:
			return m.handleTrackListKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.playlistList = list.New(playlistItems(msg.playlists), list.NewDefaultDelegate(), m.width-4, m.height-6)
		m.playlistList.Title = fmt.Sprintf("Playlists (account %s)", m.library.AuthUser())
		return m, nil

	case progressMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.progress = msg.update
		return m, waitForCollection(msg.run)

	case collectedMsg:
		if msg.run != m.run {
			return m, nil
		}
		msg.run.cancel()
		m.run = nil
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.err = nil
		m.result = msg.result
		m.trackList = list.New(trackItems(msg.result.Tracks), list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.trackList.Title = msg.run.playlist.Title
		m.view = TrackListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder
	switch m.view {
	case PlaylistListView:
		b.WriteString(m.playlistList.View())
		if m.err != nil {
			b.WriteString("\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		}
		b.WriteString("\n\n" + m.help.ShortHelpView(m.keys.helpFor(m.view)))
	case CollectingView:
		b.WriteString(m.renderCollecting())
	case TrackListView:
		b.WriteString(m.trackList.View())
		b.WriteString("\n" + styles.footer.Render(footer(m.result)))
		b.WriteString("\n" + m.help.ShortHelpView(m.keys.helpFor(m.view)))
	}
	return b.String()
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.collect):
		if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.collect(pl.playlist)
		}
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) handleCollectingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.stop()
		m.view = PlaylistListView
	}
	return m, nil
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.trackList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.recollect):
		if pl, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			return m, m.collect(pl.playlist)
		}
		return m, nil
	}
	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case TrackListView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.library.Playlists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

// collect starts a run for playlist and switches to the progress view.
func (m *Model) collect(playlist models.Playlist) tea.Cmd {
	m.stop()

	ctx, cancel := context.WithCancel(m.ctx)
	run := &collection{
		playlist: playlist,
		progress: make(chan tasks.ProgressUpdate, 50),
		done:     make(chan collectedMsg, 1),
		cancel:   cancel,
	}
	m.run = run
	m.progress = tasks.ProgressUpdate{Message: fmt.Sprintf("Collecting %s...", playlist.Title)}
	m.view = CollectingView

	go func() {
		result, err := m.library.Tracks(ctx, run.progress, playlist.ID, 0)
		run.done <- collectedMsg{run: run, result: result, err: err}
		close(run.progress)
	}()

	return waitForCollection(run)
}

// stop cancels the in-flight run, if any. Its remaining messages are ignored.
func (m *Model) stop() {
	if m.run != nil {
		m.run.cancel()
		m.run = nil
	}
}

func waitForCollection(run *collection) tea.Cmd {
	return func() tea.Msg {
		if update, ok := <-run.progress; ok {
			return progressMsg{run: run, update: update}
		}
		return <-run.done
	}
}

func (m *Model) renderCollecting() string {
	title := "Collecting"
	if m.run != nil {
		title = fmt.Sprintf("Collecting '%s'", m.run.playlist.Title)
	}

	var phase string
	switch m.progress.Phase {
	case tasks.FetchPage:
		phase = fmt.Sprintf("Page %d of at most %d", m.progress.Step, m.progress.Total)
	case tasks.RetryAlternate:
		phase = styles.warn.Render("Retrying with alternate browse id")
	default:
		phase = styles.help.Render("Fetching first page")
	}

	helpView := m.help.ShortHelpView(m.keys.helpFor(m.view))
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", styles.title.Render(title), phase, m.progress.Message, helpView)
}

// footer summarizes the diagnostics of result.
func footer(result *models.CollectResult) string {
	if result == nil {
		return ""
	}

	reported := "unknown"
	if result.Diagnostics.ReportedTotal != nil {
		reported = fmt.Sprint(*result.Diagnostics.ReportedTotal)
	}

	lines := []string{
		styles.ok.Render(fmt.Sprintf("%d tracks", len(result.Tracks))) +
			fmt.Sprintf(" • %d pages • stop: %s • reported: %s", result.Pages, result.Diagnostics.StopReason, reported),
		fmt.Sprintf("browse id: %s • missing title: %d • missing video id: %d",
			result.Diagnostics.BrowseID, result.MissingTitle(), result.MissingVideoID()),
	}
	if result.Diagnostics.AlternateBrowseID != "" {
		lines = append(lines, fmt.Sprintf("alternate browse id: %s", result.Diagnostics.AlternateBrowseID))
	}
	if result.Diagnostics.AlternateError != "" {
		lines = append(lines, styles.warn.Render("alternate failed: "+result.Diagnostics.AlternateError))
	}
	if result.Truncated {
		lines = append(lines, styles.warn.Render("truncated at the track limit"))
	}
	return strings.Join(lines, "\n")
}
