// Package chatui implements the interactive chat terminal UI: a
// transcript pane of user turns, assistant responses, and image cards,
// over a single-line query input. The model owns one query pipeline at
// a time; responses from an abandoned submission are dropped by a
// generation counter, so only the latest submission ever renders.
package chatui

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pitchside/cricpix/internal/domain"
	"github.com/pitchside/cricpix/internal/imagecard"
	"github.com/pitchside/cricpix/internal/query"
	"github.com/pitchside/cricpix/internal/session"
)

// Backend is the slice of the API client the chat UI needs. Satisfied
// by *client.APIClient; tests substitute a fake.
type Backend interface {
	Query(req domain.QueryRequest) (*domain.QueryResponse, error)
	SubmitFeedback(req domain.FeedbackRequest) error
	UserQueries() ([]domain.QueryHistoryEntry, error)
}

// thresholdStep is how much one keypress moves the similarity cutoff.
const thresholdStep = 0.05

// manifestFileName is where the URL manifest export is written,
// relative to the working directory.
const manifestFileName = "cricpix-urls.txt"

// noticeFadeDelay is how long status bar notices stay visible before
// the help line returns. Package variable so tests can collapse it.
var noticeFadeDelay = 4 * time.Second

// focusRegion identifies where keyboard input routes.
type focusRegion int

const (
	// focusInput means keystrokes go to the query input line.
	focusInput focusRegion = iota
	// focusResults means navigation keys scroll the transcript and
	// the card/threshold/feedback bindings are active.
	focusResults
	// focusHistory means the query history overlay is open.
	focusHistory
)

// primaryResponseMsg delivers the primary query response. Generation
// identifies the submission; stale generations are dropped.
type primaryResponseMsg struct {
	generation int
	resp       *domain.QueryResponse
	err        error
}

// fallbackResponseMsg delivers the similarity fallback response.
type fallbackResponseMsg struct {
	generation int
	resp       *domain.QueryResponse
	err        error
}

// feedbackResultMsg is sent when an asynchronous feedback submission
// completes. The UI already marked the pair optimistically; an error
// here only surfaces a notice.
type feedbackResultMsg struct {
	err error
}

// historyLoadedMsg delivers the account's query history for the
// overlay.
type historyLoadedMsg struct {
	entries []domain.QueryHistoryEntry
	err     error
}

// manifestSavedMsg is sent when the URL manifest export completes.
type manifestSavedMsg struct {
	path string
	err  error
}

// noticeFadeMsg clears the status bar notice.
type noticeFadeMsg struct{}

// entryKind classifies a transcript entry.
type entryKind int

const (
	entryUser entryKind = iota
	entryAssistant
	entryBanner
)

// entry is one transcript item. Assistant entries with images carry a
// ResultView so threshold changes can re-filter from the original set.
type entry struct {
	kind entryKind

	text       string
	bannerKind query.BannerKind

	view *query.ResultView
}

// Model is the bubbletea model for the chat UI.
type Model struct {
	backend Backend
	state   *session.State
	logger  *slog.Logger
	theme   Theme
	keys    KeyMap

	width  int
	height int
	ready  bool

	input    textinput.Model
	viewport viewport.Model

	focus   focusRegion
	entries []entry

	// pipeline sequences the in-flight submission; generation stamps
	// its responses so a newer submission invalidates older replies.
	pipeline   *query.Pipeline
	generation int
	pending    bool

	// selectedCard indexes into the latest result set's displayed
	// cards for feedback targeting.
	selectedCard int

	historyEntries []domain.QueryHistoryEntry
	historyCursor  int

	notice    string
	noticeErr bool
}

// New creates a chat model bound to the backend and session state.
// The logger receives background errors; it must not write to the
// terminal while the program runs.
func New(backend Backend, state *session.State, logger *slog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "Ask about cricket images..."
	input.Focus()
	input.CharLimit = 500

	return Model{
		backend: backend,
		state:   state,
		logger:  logger,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		input:   input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.focus {
		case focusInput:
			return m.updateInput(msg)
		case focusResults:
			return m.updateResults(msg)
		case focusHistory:
			return m.updateHistory(msg)
		}

	case primaryResponseMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		step := m.pipeline.HandlePrimary(msg.resp, msg.err)
		cmd := m.applyStep(step, msg.generation)
		if !step.IssueFallback {
			m.pending = false
		}
		return m, cmd

	case fallbackResponseMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		step := m.pipeline.HandleFallback(msg.resp, msg.err)
		m.pending = false
		return m, m.applyStep(step, msg.generation)

	case feedbackResultMsg:
		if msg.err != nil {
			m.logger.Error("feedback submission failed", "error", msg.err)
			return m.showNotice("Feedback could not be submitted", true)
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.Error("history load failed", "error", msg.err)
			return m.showNotice("Could not load query history (are you logged in?)", true)
		}
		m.historyEntries = msg.entries
		m.historyCursor = 0
		m.focus = focusHistory
		return m, nil

	case manifestSavedMsg:
		if msg.err != nil {
			m.logger.Error("manifest export failed", "error", msg.err)
			return m.showNotice("Could not save URL manifest", true)
		}
		return m.showNotice("Saved URLs to "+msg.path, false)

	case noticeFadeMsg:
		m.notice = ""
		m.noticeErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// One header line, one input line, one status line.
	contentHeight := msg.Height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(msg.Width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = contentHeight
	}
	m.input.Width = msg.Width - 4

	m.refreshViewport(true)
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.FocusToggle):
		m.focus = focusResults
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusToggle):
		m.focus = focusInput
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.NextCard):
		return m.moveCard(1)
	case key.Matches(msg, m.keys.PrevCard):
		return m.moveCard(-1)

	case key.Matches(msg, m.keys.ThresholdUp):
		return m.adjustThreshold(thresholdStep)
	case key.Matches(msg, m.keys.ThresholdDown):
		return m.adjustThreshold(-thresholdStep)

	case key.Matches(msg, m.keys.RateUp):
		return m.rateSelected(domain.RatingPositive)
	case key.Matches(msg, m.keys.RateDown):
		return m.rateSelected(domain.RatingNegative)

	case key.Matches(msg, m.keys.SaveURLs):
		return m.saveManifest()

	case key.Matches(msg, m.keys.History):
		return m, m.loadHistoryCmd()
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.focus = focusResults
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.historyEntries)-1 {
			m.historyCursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(m.historyEntries) == 0 {
			return m, nil
		}
		replay := m.historyEntries[m.historyCursor].Query
		m.focus = focusInput
		m.input.SetValue(replay)
		return m, m.input.Focus()
	}
	return m, nil
}

// submit starts a new pipeline for the input line's text. Empty input
// is a silent no-op. A submission while another is pending abandons
// the pending one: its responses carry a stale generation.
func (m Model) submit() (tea.Model, tea.Cmd) {
	pipeline := query.NewPipeline(m.state)
	if !pipeline.Start(m.input.Value()) {
		return m, nil
	}

	m.generation++
	m.pipeline = pipeline
	m.pending = true
	m.selectedCard = 0
	m.entries = append(m.entries, entry{kind: entryUser, text: pipeline.Query()})
	m.input.SetValue("")
	m.refreshViewport(true)

	return m, m.queryCmd(m.generation, false)
}

// queryCmd issues one backend request off the UI goroutine.
func (m Model) queryCmd(generation int, force bool) tea.Cmd {
	backend := m.backend
	queryText := m.pipeline.Query()
	return func() tea.Msg {
		resp, err := backend.Query(domain.QueryRequest{Query: queryText, ForceSimilarity: force})
		if force {
			return fallbackResponseMsg{generation: generation, resp: resp, err: err}
		}
		return primaryResponseMsg{generation: generation, resp: resp, err: err}
	}
}

// applyStep folds a pipeline step into the transcript and returns the
// fallback command when one is due.
func (m *Model) applyStep(step query.Step, generation int) tea.Cmd {
	for _, banner := range step.Banners {
		m.entries = append(m.entries, entry{
			kind:       entryBanner,
			text:       banner.Text,
			bannerKind: banner.Kind,
		})
	}

	if step.Message != nil {
		e := entry{kind: entryAssistant, text: step.Message.Text}
		if len(step.Message.Images) > 0 {
			view := query.NewResultView(m.pipeline.Query(), *step.Message, m.state.Threshold())
			if view.UsedSimilarity {
				view = view.WithThreshold(m.state.Threshold())
			}
			e.view = &view
			m.selectedCard = 0
		}
		m.entries = append(m.entries, e)
	}

	m.refreshViewport(true)

	if step.IssueFallback {
		return m.queryCmd(generation, true)
	}
	return nil
}

// latestView returns the most recent assistant entry that carries
// images, or nil.
func (m *Model) latestView() *entry {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].kind == entryAssistant && m.entries[i].view != nil {
			return &m.entries[i]
		}
	}
	return nil
}

func (m Model) moveCard(delta int) (tea.Model, tea.Cmd) {
	e := m.latestView()
	if e == nil || len(e.view.Display) == 0 {
		return m, nil
	}
	m.selectedCard += delta
	if m.selectedCard < 0 {
		m.selectedCard = len(e.view.Display) - 1
	}
	if m.selectedCard >= len(e.view.Display) {
		m.selectedCard = 0
	}
	m.refreshViewport(false)
	return m, nil
}

// adjustThreshold moves the similarity cutoff and re-filters every
// similarity result set in the transcript from its original base.
func (m Model) adjustThreshold(delta float64) (tea.Model, tea.Cmd) {
	m.state.SetThreshold(m.state.Threshold() + delta)
	threshold := m.state.Threshold()

	for i := range m.entries {
		e := &m.entries[i]
		if e.kind != entryAssistant || e.view == nil || !e.view.UsedSimilarity {
			continue
		}
		next := e.view.WithThreshold(threshold)
		e.view = &next
	}

	m.selectedCard = 0
	m.refreshViewport(false)
	return m, nil
}

// rateSelected submits feedback for the selected card. The pair is
// marked immediately so the control flips to the thanks note without
// waiting on the server; a failure later only logs and notices.
func (m Model) rateSelected(rating int) (tea.Model, tea.Cmd) {
	e := m.latestView()
	if e == nil || m.selectedCard >= len(e.view.Display) {
		return m, nil
	}

	card := imagecard.Build(e.view.Display[m.selectedCard], m.selectedCard, m.state)
	if card.Feedback == imagecard.FeedbackUnavailable {
		return m.showNotice("This image cannot take feedback", true)
	}
	if card.Feedback == imagecard.FeedbackRecorded {
		return m.showNotice("Already rated this image for this query", false)
	}

	queryText := e.view.Query
	m.state.MarkFeedbackGiven(queryText, card.URL)
	m.refreshViewport(false)

	req := domain.FeedbackRequest{
		DocID:    card.DocID,
		ImageURL: card.URL,
		Rating:   rating,
		Query:    queryText,
	}
	backend := m.backend

	model, noticeCmd := m.showNotice("Thanks for your feedback!", false)
	return model, tea.Batch(noticeCmd, func() tea.Msg {
		return feedbackResultMsg{err: backend.SubmitFeedback(req)}
	})
}

func (m Model) saveManifest() (tea.Model, tea.Cmd) {
	e := m.latestView()
	if e == nil {
		return m, nil
	}
	manifest := imagecard.Manifest(e.view.Images())
	return m, func() tea.Msg {
		err := os.WriteFile(manifestFileName, []byte(manifest), 0644)
		return manifestSavedMsg{path: manifestFileName, err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		entries, err := backend.UserQueries()
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// showNotice sets the status bar notice and schedules its fade.
func (m Model) showNotice(text string, isErr bool) (Model, tea.Cmd) {
	m.notice = text
	m.noticeErr = isErr
	return m, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport(gotoBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

// thresholdLabel is the header's threshold display.
func (m Model) thresholdLabel() string {
	return fmt.Sprintf("threshold %d%%", int(m.state.Threshold()*100+0.5))
}
