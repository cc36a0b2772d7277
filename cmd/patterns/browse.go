package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vango-dev/patterns/pkg/binding"
	"github.com/vango-dev/patterns/pkg/catalog"
	"github.com/vango-dev/patterns/pkg/loadable"
	"github.com/vango-dev/patterns/pkg/views"
)

func browseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse patterns in the terminal",
		Long: `Open an interactive terminal browser.

Keys:
  up/k, down/j   move
  enter          open pattern
  esc            back to the list
  r              reload
  q              quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.catalog()
			if err != nil {
				return err
			}

			m := newBrowser(cmd.Context(), views.Env{Catalog: svc, Logger: a.logger})
			defer m.close()

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// dispatchMsg carries a loadable continuation into Update.
type dispatchMsg func()

// refreshMsg reports that a bound model changed.
type refreshMsg struct{}

// teaDispatcher hands continuations to the bubbletea event loop, so every
// settle runs on the same goroutine as Update.
type teaDispatcher struct {
	ch   chan func()
	done chan struct{}
}

func newTeaDispatcher() *teaDispatcher {
	return &teaDispatcher{
		ch:   make(chan func(), 16),
		done: make(chan struct{}),
	}
}

// Dispatch implements loop.Dispatcher.
func (d *teaDispatcher) Dispatch(fn func()) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.ch <- fn:
		return true
	case <-d.done:
		return false
	}
}

// next waits for one continuation.
func (d *teaDispatcher) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-d.ch:
			return dispatchMsg(fn)
		case <-d.done:
			return nil
		}
	}
}

// browser is the bubbletea model.
type browser struct {
	ctx  context.Context
	env  views.Env
	disp *teaDispatcher

	// refresh is signalled by the scopes; waitRefresh turns it into a
	// refreshMsg.
	refresh chan struct{}

	list   *binding.Scope
	detail *binding.Scope

	selected string
	cursor   int
	renders  int

	width, height int
	closed        bool
}

func newBrowser(ctx context.Context, env views.Env) *browser {
	m := &browser{
		ctx:     ctx,
		disp:    newTeaDispatcher(),
		refresh: make(chan struct{}, 1),
	}
	env.Dispatcher = m.disp
	m.env = env
	m.list = m.newScope()
	return m
}

func (m *browser) newScope() *binding.Scope {
	return binding.NewScope(func() {
		select {
		case m.refresh <- struct{}{}:
		default:
		}
	}, binding.WithLogger(m.env.Logger))
}

func (m *browser) waitRefresh() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.refresh:
			return refreshMsg{}
		case <-m.disp.done:
			return nil
		}
	}
}

// Init implements tea.Model.
func (m *browser) Init() tea.Cmd {
	m.bind()
	return tea.Batch(m.disp.next(), m.waitRefresh())
}

// bind runs one render pass over the scopes, creating loadables on first
// use or when the selection changes.
func (m *browser) bind() {
	m.groups()
	if m.detail != nil {
		m.pattern()
	}
}

// groups reads the list loadable.
func (m *browser) groups() loadable.Result[catalog.Groups] {
	m.list.Begin()
	return views.UseGroups(m.ctx, m.list, m.env).Read()
}

// pattern reads the detail loadables.
func (m *browser) pattern() (loadable.Result[catalog.Pattern], []catalog.Pattern) {
	m.detail.Begin()
	r := views.UsePattern(m.ctx, m.detail, m.env, m.selected).Read()
	all := views.UsePatterns(m.ctx, m.detail, m.env).Read()
	return r, all.Value
}

// Update implements tea.Model.
func (m *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		return m, m.disp.next()

	case refreshMsg:
		m.renders++
		m.bind()
		return m, m.waitRefresh()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *browser) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.close()
		return m, tea.Quit

	case "up", "k":
		if m.detail == nil && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.detail == nil && m.cursor < len(m.flat())-1 {
			m.cursor++
		}

	case "enter":
		if m.detail == nil {
			flat := m.flat()
			if m.cursor < len(flat) {
				m.open(flat[m.cursor].ID)
			}
		}

	case "esc", "backspace":
		m.back()

	case "r":
		m.reload()
	}
	return m, nil
}

// open shows the detail of id in a fresh scope.
func (m *browser) open(id string) {
	m.selected = id
	m.detail = m.newScope()
	m.bind()
}

// back disposes the detail scope and returns to the list.
func (m *browser) back() {
	if m.detail == nil {
		return
	}
	m.detail.Dispose()
	m.detail = nil
	m.selected = ""
}

// reload discards every loadable and queries again.
func (m *browser) reload() {
	m.list.Dispose()
	m.list = m.newScope()
	if m.detail != nil {
		m.detail.Dispose()
		m.detail = m.newScope()
	}
	m.bind()
}

// close disposes both scopes and stops the dispatcher. Safe to call
// repeatedly.
func (m *browser) close() {
	if m.closed {
		return
	}
	m.closed = true
	if m.detail != nil {
		m.detail.Dispose()
	}
	m.list.Dispose()
	close(m.disp.done)
}

// flat is the list order the cursor moves through.
func (m *browser) flat() []catalog.Pattern {
	var out []catalog.Pattern
	for _, g := range m.groups().Value {
		out = append(out, g.Patterns...)
	}
	return out
}

// View implements tea.Model.
func (m *browser) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("interactive-patterns"))
	b.WriteString(mutedStyle.Render("  // design patterns, visualized"))
	b.WriteString("\n\n")

	if m.detail != nil {
		b.WriteString(m.viewDetail())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("esc back • r reload • q quit"))
	} else {
		b.WriteString(m.viewList())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("↑/↓ move • enter open • r reload • q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *browser) viewList() string {
	r := m.groups()
	switch {
	case r.IsPending():
		return mutedStyle.Render("_ Loading patterns...") + "\n"
	case r.IsErrored():
		return errorStyle.Render("Failed to load patterns") + "\n" +
			mutedStyle.Render(r.Err.Error()) + "\n"
	}

	cursor := ""
	if flat := m.flat(); m.cursor < len(flat) {
		cursor = flat[m.cursor].ID
	}
	return renderGroups(r.Value, cursor)
}

func (m *browser) viewDetail() string {
	r, all := m.pattern()
	switch {
	case r.IsPending():
		return mutedStyle.Render("_ Loading pattern...") + "\n"
	case r.IsErrored():
		if missing, ok := catalog.IsNotFound(r.Err); ok {
			return errorStyle.Render("Pattern not found") + "\n" +
				mutedStyle.Render(fmt.Sprintf("No pattern matches %q", missing)) + "\n"
		}
		return errorStyle.Render("Failed to load pattern") + "\n" +
			mutedStyle.Render(r.Err.Error()) + "\n"
	}
	return renderPattern(r.Value, catalog.Siblings(all, r.Value))
}
