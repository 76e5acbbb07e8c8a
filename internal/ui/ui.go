package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/niprobin/digging/internal/filters"
	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/player"
	"github.com/niprobin/digging/internal/shared"
)

// ViewState identifies which view the model is rendering.
type ViewState int

const (
	InboxView ViewState = iota
	DetailView
	QueueView
)

// TrackSource fetches the track inbox rows. Fetch failures degrade to an
// empty slice, matching the sheets client.
type TrackSource interface {
	TrackEntries(ctx context.Context) []models.TrackEntry
}

// TrackRelay forwards a dismissal to the webhook service.
type TrackRelay interface {
	MarkTrackChecked(ctx context.Context, spotifyID string) error
}

// LikeStore records like toggles against the local history.
type LikeStore interface {
	IsLiked(id string, base bool) bool
	Like(item models.LikeableItem, base bool) error
	Unlike(id string, base bool) error
}

// DismissedSet tracks locally dismissed entry ids.
type DismissedSet interface {
	Has(id string) bool
	Add(id string)
	Snapshot() map[string]bool
}

// FilterSource supplies the saved inbox filter state.
type FilterSource interface {
	State() filters.State
}

// Deps wires the inbox model to the rest of the application.
type Deps struct {
	Sheets    TrackSource
	Relay     TrackRelay
	Likes     LikeStore
	Dismissed DismissedSet
	Filters   FilterSource
	Player    *player.Player
	Logger    *log.Logger
}

type tracksMsg struct {
	entries []models.TrackEntry
}

type actionMsg struct {
	kind  string
	entry models.TrackEntry
	err   error
}

// Model is the bubbletea model for the terminal inbox.
type Model struct {
	ctx      context.Context
	deps     Deps
	view     ViewState
	keys     keyMap
	help     help.Model
	inbox    list.Model
	queuing  list.Model
	queue    []models.PreviewTrack
	selected models.TrackEntry
	status   string
	failed   bool
	loading  bool
	now      func() time.Time
	width    int
	height   int
}

// NewModel builds the inbox model. Track entries load in Init.
func NewModel(ctx context.Context, deps Deps) Model {
	delegate := list.NewDefaultDelegate()

	inbox := list.New(nil, delegate, 0, 0)
	inbox.Title = "Track inbox"
	inbox.SetShowHelp(false)
	inbox.SetShowStatusBar(false)

	queuing := list.New(nil, delegate, 0, 0)
	queuing.Title = "Preview queue"
	queuing.SetShowHelp(false)
	queuing.SetShowStatusBar(false)

	return Model{
		ctx:     ctx,
		deps:    deps,
		view:    InboxView,
		keys:    newKeyMap(),
		help:    help.New(),
		inbox:   inbox,
		queuing: queuing,
		loading: true,
		now:     time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchTracks()
}

// fetchTracks loads the sheet and applies the saved filters plus the local
// dismissed set, the same pipeline the web inbox uses.
func (m Model) fetchTracks() tea.Cmd {
	return func() tea.Msg {
		entries := m.deps.Sheets.TrackEntries(m.ctx)
		dismissed := m.deps.Dismissed.Snapshot()
		filtered := filters.FilterTracks(entries, filters.TrackQuery{
			State:          m.deps.Filters.State(),
			Dismissed:      dismissed,
			LocallyChecked: dismissed,
			IsLiked:        m.likedFunc(),
			Now:            m.now(),
		})
		return tracksMsg{entries: filtered}
	}
}

func (m Model) likedFunc() filters.LikedFunc {
	return func(id string, fallback bool) bool {
		return m.deps.Likes.IsLiked(id, fallback)
	}
}

func (m Model) likeTrack(entry models.TrackEntry) tea.Cmd {
	return func() tea.Msg {
		var err error
		if m.deps.Likes.IsLiked(entry.ID, entry.Liked) {
			err = m.deps.Likes.Unlike(entry.ID, entry.Liked)
		} else {
			err = m.deps.Likes.Like(likeableTrack(entry), entry.Liked)
		}
		return actionMsg{kind: "like", entry: entry, err: err}
	}
}

// dismissTrack relays the dismissal first. The entry only leaves the inbox
// once the webhook round trip succeeds.
func (m Model) dismissTrack(entry models.TrackEntry) tea.Cmd {
	return func() tea.Msg {
		if entry.SpotifyID != "" {
			if err := m.deps.Relay.MarkTrackChecked(m.ctx, entry.SpotifyID); err != nil {
				return actionMsg{kind: "dismiss", entry: entry, err: err}
			}
		}
		m.deps.Dismissed.Add(entry.ID)
		return actionMsg{kind: "dismiss", entry: entry}
	}
}

func likeableTrack(entry models.TrackEntry) models.LikeableItem {
	return models.LikeableItem{
		ID:       entry.ID,
		Type:     models.LikeableTrack,
		Title:    entry.Title,
		Subtitle: entry.Artist,
		URL:      entry.SpotifyURL,
	}
}

// Each list row renders two text lines plus the delegate's spacing gap; the
// lines outside the list hold the status line and help.
const (
	listRowHeight   = 3
	listChromeLines = 4
	minListRows     = 3
	maxListRows     = 12
)

// listHeight snaps the list viewport to a whole number of rows so a page
// never shows a clipped entry, whatever the terminal size.
func listHeight(terminalHeight int) int {
	rows := filters.ComputePageSize(terminalHeight-listChromeLines, listRowHeight, minListRows, maxListRows)
	return rows * listRowHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		height := listHeight(msg.Height)
		m.inbox.SetSize(msg.Width, height)
		m.queuing.SetSize(msg.Width, height)
		return m, nil
	case tracksMsg:
		m.loading = false
		m.inbox.SetItems(m.inboxItems(msg.entries))
		m.setStatus(fmt.Sprintf("%d tracks in the inbox", len(msg.entries)), false)
		return m, nil
	case actionMsg:
		return m.handleAction(msg)
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return m.updateActiveList(msg)
}

func (m Model) inboxItems(entries []models.TrackEntry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	now := m.now()
	for _, entry := range entries {
		items = append(items, inboxItem{
			entry: entry,
			liked: m.deps.Likes.IsLiked(entry.ID, entry.Liked),
			now:   now,
		})
	}
	return items
}

func (m Model) queueItems() []list.Item {
	items := make([]list.Item, 0, len(m.queue))
	for _, track := range m.queue {
		items = append(items, queueItem{track: track})
	}
	return items
}

func (m Model) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	label := fmt.Sprintf("%s - %s", msg.entry.Artist, msg.entry.Title)
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s failed for %s: %v", msg.kind, label, msg.err), true)
		return m, nil
	}
	switch msg.kind {
	case "dismiss":
		m.setStatus("dismissed "+label, false)
		if m.view == DetailView {
			m.view = InboxView
		}
		return m, m.fetchTracks()
	case "like":
		m.setStatus("updated like for "+label, false)
		m.inbox.SetItems(m.refreshLikes())
		return m, nil
	}
	return m, nil
}

// refreshLikes recomputes the liked marker on the current items without a
// sheet round trip.
func (m Model) refreshLikes() []list.Item {
	items := m.inbox.Items()
	refreshed := make([]list.Item, 0, len(items))
	for _, item := range items {
		entry, ok := item.(inboxItem)
		if !ok {
			continue
		}
		entry.liked = m.deps.Likes.IsLiked(entry.entry.ID, entry.entry.Liked)
		refreshed = append(refreshed, entry)
	}
	return refreshed
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	switch m.view {
	case InboxView:
		return m.handleInboxKeys(msg)
	case DetailView:
		return m.handleDetailKeys(msg)
	case QueueView:
		return m.handleQueueKeys(msg)
	}
	return m, nil
}

func (m Model) handleInboxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if entry, ok := m.currentEntry(); ok {
			m.selected = entry
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.like):
		if entry, ok := m.currentEntry(); ok {
			return m, m.likeTrack(entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.dismiss):
		if entry, ok := m.currentEntry(); ok {
			return m, m.dismissTrack(entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.queue):
		if entry, ok := m.currentEntry(); ok {
			return m.queueEntry(entry), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.view):
		m.view = QueueView
		m.queuing.SetItems(m.queueItems())
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		m.setStatus("refreshing", false)
		return m, m.fetchTracks()
	}
	return m.updateActiveList(msg)
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = InboxView
		return m, nil
	case key.Matches(msg, m.keys.like):
		return m, m.likeTrack(m.selected)
	case key.Matches(msg, m.keys.dismiss):
		return m, m.dismissTrack(m.selected)
	case key.Matches(msg, m.keys.queue):
		return m.queueEntry(m.selected), nil
	}
	return m, nil
}

func (m Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) || key.Matches(msg, m.keys.view) {
		m.view = InboxView
		return m, nil
	}
	return m.updateActiveList(msg)
}

func (m Model) currentEntry() (models.TrackEntry, bool) {
	item, ok := m.inbox.SelectedItem().(inboxItem)
	if !ok {
		return models.TrackEntry{}, false
	}
	return item.entry, true
}

// queueEntry appends the entry to the preview queue and reloads the player.
// Queueing is local and never touches the webhook service.
func (m Model) queueEntry(entry models.TrackEntry) Model {
	m.queue = append(m.queue, models.PreviewTrack{
		Title:  entry.Title,
		Artist: entry.Artist,
	})
	if m.deps.Player != nil {
		m.deps.Player.LoadQueue(m.queue)
	}
	m.setStatus(fmt.Sprintf("queued %s - %s (%d in queue)", entry.Artist, entry.Title, len(m.queue)), false)
	return m
}

func (m *Model) setStatus(message string, failed bool) {
	m.status = message
	m.failed = failed
}

func (m Model) updateActiveList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case QueueView:
		m.queuing, cmd = m.queuing.Update(msg)
	default:
		m.inbox, cmd = m.inbox.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	case QueueView:
		return m.renderQueue()
	default:
		return m.renderInbox()
	}
}

func (m Model) renderInbox() string {
	if m.loading {
		return styles.title.Render("Track inbox") + "\n\nLoading tracks...\n"
	}
	return m.inbox.View() + "\n" + m.renderStatus() + "\n" + m.help.View(m.keys)
}

func (m Model) renderDetail() string {
	entry := m.selected
	liked := "no"
	if m.deps.Likes.IsLiked(entry.ID, entry.Liked) {
		liked = "yes"
	}
	out := styles.title.Render(fmt.Sprintf("%s - %s", entry.Artist, entry.Title)) + "\n\n"
	out += fmt.Sprintf("Curator:  %s\n", entry.Curator)
	out += fmt.Sprintf("Added:    %s\n", shared.FormatOrdinalDate(entry.AddedAt))
	out += fmt.Sprintf("Liked:    %s\n", liked)
	if entry.SpotifyURL != "" {
		out += fmt.Sprintf("Spotify:  %s\n", entry.SpotifyURL)
	}
	return out + "\n" + m.renderStatus() + "\n" + m.help.View(m.keys)
}

func (m Model) renderQueue() string {
	if len(m.queue) == 0 {
		return styles.title.Render("Preview queue") + "\n\nNothing queued yet. Press p on a track to queue it.\n"
	}
	return m.queuing.View() + "\n" + m.renderStatus() + "\n" + m.help.View(m.keys)
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return styles.err.Render("✗ " + m.status)
	}
	return styles.ok.Render("✓ " + m.status)
}
