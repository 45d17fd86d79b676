package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/editor"
)

type formKind int

const (
	formEdit formKind = iota
	formConnect
	formDisconnect
)

// editSubmittedMsg carries the result of the edit form.
type editSubmittedMsg struct {
	ID       string
	Name     string
	Duration int
}

// linkSubmittedMsg carries the result of the connect or disconnect form.
type linkSubmittedMsg struct {
	Remove bool
	Edge   editor.Edge
}

// formCancelledMsg is sent when a form is aborted with Esc.
type formCancelledMsg struct{}

// taskForm wraps a huh form. It must stay on the heap because the form's
// fields are bound to pointers into it.
type taskForm struct {
	kind formKind
	form *huh.Form
	done bool

	id       string
	name     string
	duration string
	source   string
	target   string
	edge     editor.Edge
}

func newEditForm(theme Theme, n editor.Node, width int) *taskForm {
	f := &taskForm{
		kind:     formEdit,
		id:       n.ID,
		name:     n.Name,
		duration: strconv.Itoa(n.Duration),
	}
	f.form = newHuhForm(theme, width, huh.NewGroup(
		huh.NewNote().
			Title("Edit "+n.ID),
		huh.NewInput().
			Title("Name").
			Value(&f.name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name must not be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("Duration").
			Description("Whole time units, 0 for a milestone.").
			Value(&f.duration).
			Validate(validateDuration),
	))
	return f
}

func newConnectForm(theme Theme, nodes []editor.Node, width int) *taskForm {
	f := &taskForm{kind: formConnect}
	opts := make([]huh.Option[string], len(nodes))
	for i, n := range nodes {
		opts[i] = huh.NewOption(n.ID+"  "+n.Name, n.ID)
	}
	f.source = nodes[0].ID
	f.target = nodes[len(nodes)-1].ID

	f.form = newHuhForm(theme, width, huh.NewGroup(
		huh.NewSelect[string]().
			Title("Predecessor").
			Description("Must finish first.").
			Options(opts...).
			Value(&f.source),
		huh.NewSelect[string]().
			Title("Successor").
			Description("Starts after the predecessor.").
			Options(opts...).
			Value(&f.target),
	))
	return f
}

func newDisconnectForm(theme Theme, edges []editor.Edge, width int) *taskForm {
	f := &taskForm{kind: formDisconnect, edge: edges[0]}
	opts := make([]huh.Option[editor.Edge], len(edges))
	for i, e := range edges {
		opts[i] = huh.NewOption(e.Source+" -> "+e.Target, e)
	}

	f.form = newHuhForm(theme, width, huh.NewGroup(
		huh.NewSelect[editor.Edge]().
			Title("Remove dependency").
			Options(opts...).
			Value(&f.edge),
	))
	return f
}

func newHuhForm(theme Theme, width int, groups ...*huh.Group) *huh.Form {
	if width <= 0 || width > 72 {
		width = 72
	}
	return huh.NewForm(groups...).
		WithTheme(buildHuhTheme(theme)).
		WithWidth(width).
		WithShowHelp(true)
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// Init starts the form.
func (f *taskForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards msg to the form and, once it completes or is aborted,
// returns a command producing the matching result message.
func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	if f.done {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		f.done = true
		return func() tea.Msg { return formCancelledMsg{} }
	}

	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}

	switch f.form.State {
	case huh.StateCompleted:
		f.done = true
		result := f.result()
		return func() tea.Msg { return result }
	case huh.StateAborted:
		f.done = true
		return func() tea.Msg { return formCancelledMsg{} }
	default:
		return cmd
	}
}

func (f *taskForm) result() tea.Msg {
	switch f.kind {
	case formEdit:
		d, _ := strconv.Atoi(strings.TrimSpace(f.duration))
		return editSubmittedMsg{ID: f.id, Name: f.name, Duration: d}
	case formConnect:
		return linkSubmittedMsg{Edge: editor.Edge{Source: f.source, Target: f.target}}
	case formDisconnect:
		return linkSubmittedMsg{Remove: true, Edge: f.edge}
	default:
		panic(fmt.Sprintf("tui: unknown form kind %d", f.kind))
	}
}

// View renders the form centered in width x height.
func (f *taskForm) View(theme Theme, width, height int) string {
	boxed := theme.FormBox.Render(f.form.View())
	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxed)
	}
	return boxed
}

// buildHuhTheme derives a huh theme from the editor theme.
func buildHuhTheme(theme Theme) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)
	t.Focused.Title = theme.HelpKey
	t.Focused.NoteTitle = theme.HelpKey.MarginBottom(1)
	t.Focused.Description = theme.HelpDesc
	t.Focused.ErrorMessage = theme.ErrorText
	t.Focused.ErrorIndicator = theme.ErrorText
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(ColorAccent).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorAccent)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorSubtle)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorAccent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderForeground(ColorSubtle)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")

	t.Help.ShortKey = theme.HelpKey
	t.Help.ShortDesc = theme.HelpDesc
	return t
}
