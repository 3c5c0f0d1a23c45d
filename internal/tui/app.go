// Package tui is the interactive artwork table.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/artbrowse/internal/browse"
	"github.com/jask/artbrowse/internal/database/repository"
	"github.com/jask/artbrowse/internal/service"
)

// Options configures a new App.
type Options struct {
	Fetcher   browse.PageFetcher
	Snapshots *service.SnapshotService // nil disables ctrl+s
	PageSize  int
	PageSizes []int
	RowClick  bool
	Logger    zerolog.Logger
}

// App is the bubbletea model for the artwork browser.
type App struct {
	ctx       context.Context
	cancel    context.CancelFunc
	fetcher   browse.PageFetcher
	loader    *browse.Loader
	snapshots *service.SnapshotService
	logger    zerolog.Logger

	state     browse.State
	pageSizes []int

	keys       keyMap
	promptKeys promptKeyMap
	table      table.Model
	pager      paginator.Model
	spinner    spinner.Model
	input      textinput.Model
	help       help.Model

	prompt    promptMode
	status    string
	statusErr bool
	target    int // N of the in-flight select-first-N run
	width     int
	height    int
	quitting  bool
}

type promptMode string

const (
	promptNone    promptMode = ""
	promptSelectN promptMode = "selectN"
	promptFind    promptMode = "find"
)

type pageEventMsg struct{ ev browse.Event }

type accumulateMsg struct{ ev browse.Event }

type snapshotSavedMsg struct{ snap repository.Snapshot }

type statusMsg string

type errMsg struct{ error }

// New builds the model. ctx bounds every request the App issues; quitting
// cancels it.
func New(ctx context.Context, opts Options) *App {
	ctx, cancel := context.WithCancel(ctx)

	rows := opts.PageSize
	if rows < 1 {
		rows = browse.DefaultPageSize
	}
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = []int{rows}
	}

	state := browse.NewState(rows)
	state.RowClick = opts.RowClick

	km := table.DefaultKeyMap()
	// space, g and G belong to the browser
	km.PageDown = key.NewBinding(key.WithKeys("f", "pgdown"))
	km.GotoTop = key.NewBinding(key.WithKeys("home"))
	km.GotoBottom = key.NewBinding(key.WithKeys("end"))
	t := table.New(
		table.WithColumns(columnsFor(0)),
		table.WithFocused(true),
		table.WithHeight(rows),
		table.WithKeyMap(km),
		table.WithStyles(tableStyles()),
	)

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = rows

	in := textinput.New()
	in.CharLimit = 12
	in.Width = 20

	return &App{
		ctx:        ctx,
		cancel:     cancel,
		fetcher:    opts.Fetcher,
		loader:     browse.NewLoader(opts.Fetcher, opts.Logger),
		snapshots:  opts.Snapshots,
		logger:     opts.Logger,
		state:      state,
		pageSizes:  sizes,
		keys:       newKeyMap(),
		promptKeys: newPromptKeyMap(),
		table:      t,
		pager:      p,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		input:      in,
		help:       help.New(),
	}
}

// State returns the current view state.
func (a *App) State() browse.State { return a.state }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.apply(browse.Started{}), a.spinner.Tick)
}

// apply reduces ev into the state and returns the fetch command it implies.
func (a *App) apply(ev browse.Event) tea.Cmd {
	next, req := browse.Reduce(a.state, ev)
	a.state = next
	a.syncWidgets()
	if req == nil {
		return nil
	}
	return a.loadCmd(*req)
}

func (a *App) loadCmd(req browse.LoadRequest) tea.Cmd {
	return func() tea.Msg {
		return pageEventMsg{ev: a.loader.Load(a.ctx, req)}
	}
}

func (a *App) accumulateCmd(token uint64, n, rows int) tea.Cmd {
	ctx := a.ctx
	fetcher := a.fetcher
	logger := a.logger
	return func() tea.Msg {
		res, err := browse.Accumulate(ctx, fetcher, n, rows)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Uint64("token", token).Int("target", n).Msg("Select first N failed")
			}
			return accumulateMsg{ev: browse.AccumulateFailed{Token: token, Err: err}}
		}
		logger.Info().
			Uint64("token", token).
			Int("target", n).
			Int("selected", len(res.Items)).
			Int("pages", res.Pages).
			Msg("Select first N finished")
		return accumulateMsg{ev: browse.AccumulateDone{Token: token, Items: res.Items, Pages: res.Pages}}
	}
}

func (a *App) saveCmd() tea.Cmd {
	if a.snapshots == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("snapshot store not configured")} }
	}
	items := a.state.Selection.Items()
	rows := a.state.Rows
	svc := a.snapshots
	ctx := a.ctx
	return func() tea.Msg {
		snap, err := svc.Save(ctx, "", rows, items)
		if err != nil {
			return errMsg{err}
		}
		return snapshotSavedMsg{snap: snap}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.layout()
		return a, nil

	case tea.KeyMsg:
		if a.prompt != promptNone {
			return a.handlePromptKey(m)
		}
		return a.handleKey(m)

	case pageEventMsg:
		loaded, ok := m.ev.(browse.PageLoaded)
		fresh := ok && loaded.Token == a.state.LoadToken
		cmd := a.apply(m.ev)
		if fresh {
			a.table.SetCursor(0)
		}
		return a, cmd

	case accumulateMsg:
		current := a.state.AccumulateToken
		cmd := a.apply(m.ev)
		switch ev := m.ev.(type) {
		case browse.AccumulateDone:
			if ev.Token == current {
				a.setStatus(fmt.Sprintf("selected %d of first %d (%d pages fetched)", len(ev.Items), a.target, ev.Pages))
			}
		case browse.AccumulateFailed:
			if ev.Token == current {
				a.setError(fmt.Errorf("select first %d: %w", a.target, ev.Err))
			}
		}
		return a, cmd

	case snapshotSavedMsg:
		a.setStatus(fmt.Sprintf("saved %d artworks as %q (%s)", m.snap.Count, m.snap.Name, shortID(m.snap.ID)))
		return a, nil

	case statusMsg:
		a.setStatus(string(m))
		return a, nil

	case errMsg:
		a.logger.Error().Err(m.error).Msg("TUI error")
		a.setError(m.error)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}

	if a.prompt != promptNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.state
	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		a.loader.Close()
		a.cancel()
		return a, tea.Quit

	case key.Matches(m, a.keys.PrevPage):
		if s.Page > 0 {
			return a, a.apply(browse.PageChanged{Page: s.Page - 1, Rows: s.Rows})
		}
		return a, nil

	case key.Matches(m, a.keys.NextPage):
		if s.Page+1 < s.PageCount() {
			return a, a.apply(browse.PageChanged{Page: s.Page + 1, Rows: s.Rows})
		}
		return a, nil

	case key.Matches(m, a.keys.FirstPage):
		return a, a.apply(browse.PageChanged{Page: 0, Rows: s.Rows})

	case key.Matches(m, a.keys.LastPage):
		if n := s.PageCount(); n > 0 {
			return a, a.apply(browse.PageChanged{Page: n - 1, Rows: s.Rows})
		}
		return a, nil

	case key.Matches(m, a.keys.Rows):
		return a, a.changeRows(1)

	case key.Matches(m, a.keys.RowsDown):
		return a, a.changeRows(-1)

	case key.Matches(m, a.keys.Toggle):
		return a, a.toggleCursorRow()

	case key.Matches(m, a.keys.Click):
		if s.RowClick {
			return a, a.toggleCursorRow()
		}
		return a, nil

	case key.Matches(m, a.keys.TogglePage):
		return a, a.apply(browse.PageSelectionToggled{})

	case key.Matches(m, a.keys.Clear):
		a.setStatus("selection cleared")
		return a, a.apply(browse.SelectionCleared{})

	case key.Matches(m, a.keys.RowClick):
		cmd := a.apply(browse.RowClickToggled{})
		if a.state.RowClick {
			a.setStatus("row-click selection on")
		} else {
			a.setStatus("checkbox selection on")
		}
		return a, cmd

	case key.Matches(m, a.keys.SelectN):
		return a, a.openPrompt(promptSelectN, a.state.SearchValue, "number of rows")

	case key.Matches(m, a.keys.Find):
		return a, a.openPrompt(promptFind, "", "title")

	case key.Matches(m, a.keys.Save):
		if a.state.Selection.Len() == 0 {
			a.setError(service.ErrEmptySelection)
			return a, nil
		}
		return a, a.saveCmd()

	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.layout()
		return a, nil
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(m)
	return a, cmd
}

func (a *App) handlePromptKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.promptKeys.Cancel):
		a.closePrompt()
		return a, nil

	case key.Matches(m, a.promptKeys.Submit):
		mode, value := a.prompt, a.input.Value()
		a.closePrompt()
		if mode == promptFind {
			a.find(value)
			return a, nil
		}
		return a, a.submitTarget(value)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if a.prompt == promptSelectN {
		return a, tea.Batch(cmd, a.apply(browse.SearchEdited{Text: a.input.Value()}))
	}
	return a, cmd
}

// submitTarget starts a select-first-N run. Text that does not parse to a
// positive count closes the prompt without touching the selection.
func (a *App) submitTarget(text string) tea.Cmd {
	n, ok := browse.ParseTarget(text)
	if !ok {
		return nil
	}
	a.apply(browse.AccumulateStarted{})
	a.target = n
	a.status, a.statusErr = "", false
	return tea.Batch(a.accumulateCmd(a.state.AccumulateToken, n, a.state.Rows), a.spinner.Tick)
}

func (a *App) find(query string) {
	idx, ok := service.FindByTitle(query, a.state.Artworks)
	if !ok {
		a.setStatus("no match on this page")
		return
	}
	a.table.SetCursor(idx)
	a.setStatus(fmt.Sprintf("found %q", a.state.Artworks[idx].Title))
}

func (a *App) openPrompt(mode promptMode, value, placeholder string) tea.Cmd {
	a.prompt = mode
	a.input.Reset()
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Placeholder = placeholder
	return a.input.Focus()
}

func (a *App) closePrompt() {
	a.prompt = promptNone
	a.input.Blur()
}

// changeRows moves to the next or previous configured page size, keeping
// the first visible record on screen.
func (a *App) changeRows(step int) tea.Cmd {
	idx := 0
	for i, s := range a.pageSizes {
		if s == a.state.Rows {
			idx = i
			break
		}
		if s < a.state.Rows {
			idx = i
		}
	}
	next := idx + step
	if next < 0 || next >= len(a.pageSizes) {
		return nil
	}
	rows := a.pageSizes[next]
	if rows == a.state.Rows {
		return nil
	}
	a.pager.PerPage = rows
	a.layout()
	return a.apply(browse.PageChanged{Page: a.state.First / rows, Rows: rows})
}

func (a *App) toggleCursorRow() tea.Cmd {
	i := a.table.Cursor()
	if i < 0 || i >= len(a.state.Artworks) {
		return nil
	}
	return a.apply(browse.SelectionToggled{Artwork: a.state.Artworks[i]})
}

func (a *App) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *App) setError(err error) {
	a.status, a.statusErr = err.Error(), true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
