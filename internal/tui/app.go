// Package tui is the terminal project editor behind `pertpath edit`: a
// task table with a live CPM schedule, huh forms for editing tasks and
// dependencies, and CSV save.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/editor"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/task"
)

// AppConfig configures the editor.
type AppConfig struct {
	// ProjectName is shown in the title bar.
	ProjectName string
	// TimeUnit labels durations in the status bar.
	TimeUnit string
	// Path is where the project is saved as CSV.
	Path string
	// Tasks seed the editor, usually loaded from Path.
	Tasks []schedule.Task
	// Editor sets generated IDs and default durations. The zero value
	// means editor.DefaultOptions.
	Editor editor.Options
}

// savedMsg reports the outcome of a save of the project at Rev.
type savedMsg struct {
	Path string
	Rev  int
	Err  error
}

// pendingAction is a destructive action waiting for its key to be pressed
// a second time.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingQuit
	pendingClear
)

var columns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Name", Width: 22},
	{Title: "Dur", Width: 5},
	{Title: "Preds", Width: 14},
	{Title: "ES", Width: 5},
	{Title: "EF", Width: 5},
	{Title: "LS", Width: 5},
	{Title: "LF", Width: 5},
	{Title: "Slack", Width: 6},
	{Title: "Crit", Width: 4},
}

// App is the Bubble Tea model of the editor.
type App struct {
	config  AppConfig
	project *editor.Project
	theme   Theme
	keys    KeyMap
	help    help.Model
	table   table.Model
	form    *taskForm

	data     *schedule.ProjectData
	schedErr error
	message  string
	msgErr   bool
	pending  pendingAction

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewApp builds the editor around cfg.Tasks. Dependencies that would make
// the graph cyclic are dropped and reported in the status bar.
func NewApp(cfg AppConfig) App {
	if cfg.Path == "" {
		cfg.Path = task.TemplateFileName(task.FormatCSV)
	}
	if cfg.Editor == (editor.Options{}) {
		cfg.Editor = editor.DefaultOptions()
	}
	theme := DefaultTheme()

	a := App{
		config:  cfg,
		project: editor.NewProject(cfg.Editor),
		theme:   theme,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		table: table.New(
			table.WithColumns(columns),
			table.WithFocused(true),
			table.WithHeight(10),
			table.WithStyles(theme.tableStyles()),
		),
	}
	a.help.Styles.ShortKey = theme.HelpKey
	a.help.Styles.ShortDesc = theme.HelpDesc
	a.help.Styles.FullKey = theme.HelpKey
	a.help.Styles.FullDesc = theme.HelpDesc

	if err := a.project.Import(cfg.Tasks); err != nil {
		a.setError(err)
	}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.ready = true
		a.help.Width = m.Width
		a.table.SetWidth(m.Width)
		a.table.SetHeight(max(3, m.Height-5))
		return a, nil

	case editSubmittedMsg:
		a.form = nil
		if err := a.project.UpdateTask(m.ID, m.Name, m.Duration); err != nil {
			a.setError(err)
		} else {
			a.setMessage("updated " + m.ID)
		}
		a.refresh()
		return a, nil

	case linkSubmittedMsg:
		a.form = nil
		a.applyLink(m)
		a.refresh()
		return a, nil

	case formCancelledMsg:
		a.form = nil
		a.setMessage("cancelled")
		return a, nil

	case savedMsg:
		if m.Err != nil {
			a.setError(m.Err)
		} else {
			a.project.MarkSaved(m.Rev)
			a.setMessage("saved " + m.Path)
		}
		return a, nil
	}

	if a.form != nil {
		return a, a.form.Update(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(k)
	}
	return a, nil
}

// handleKey dispatches a key press. Quitting with unsaved changes and
// clearing the project must be confirmed by pressing the key again; any
// other key cancels the confirmation.
func (a App) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := a.pending
	a.pending = pendingNone

	switch {
	case key.Matches(k, a.keys.Quit):
		if a.project.Modified() && pending != pendingQuit {
			a.pending = pendingQuit
			a.setError(errors.New("unsaved changes: press q again to quit without saving, s to save"))
			return a, nil
		}
		a.quitting = true
		return a, tea.Quit

	case key.Matches(k, a.keys.Clear):
		if pending != pendingClear {
			a.pending = pendingClear
			a.setError(errors.New("press X again to remove every task"))
			return a, nil
		}
		a.project.Clear()
		a.setMessage("project cleared")
		a.refresh()
		return a, nil

	case key.Matches(k, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(k, a.keys.Add):
		n := a.project.AddTask()
		a.setMessage("added " + n.ID)
		a.refresh()
		a.table.SetCursor(len(a.project.Nodes()) - 1)
		return a, nil

	case key.Matches(k, a.keys.Edit):
		n, ok := a.selected()
		if !ok {
			a.setError(errors.New("no task selected"))
			return a, nil
		}
		a.form = newEditForm(a.theme, n, a.width)
		return a, a.form.Init()

	case key.Matches(k, a.keys.Delete):
		n, ok := a.selected()
		if !ok {
			a.setError(errors.New("no task selected"))
			return a, nil
		}
		if err := a.project.DeleteTask(n.ID); err != nil {
			a.setError(err)
		} else {
			a.setMessage("deleted " + n.ID)
		}
		a.refresh()
		return a, nil

	case key.Matches(k, a.keys.Connect):
		nodes := a.project.Nodes()
		if len(nodes) < 2 {
			a.setError(errors.New("need at least two tasks to connect"))
			return a, nil
		}
		a.form = newConnectForm(a.theme, nodes, a.width)
		return a, a.form.Init()

	case key.Matches(k, a.keys.Disconnect):
		edges := a.project.Edges()
		if len(edges) == 0 {
			a.setError(errors.New("no dependencies to remove"))
			return a, nil
		}
		a.form = newDisconnectForm(a.theme, edges, a.width)
		return a, a.form.Init()

	case key.Matches(k, a.keys.Save):
		return a, saveCmd(a.config.Path, a.project.Revision(), a.project.Tasks())
	}

	var cmd tea.Cmd
	a.table, cmd = a.table.Update(k)
	return a, cmd
}

func (a *App) applyLink(m linkSubmittedMsg) {
	var err error
	if m.Remove {
		err = a.project.Disconnect(m.Edge.Source, m.Edge.Target)
	} else {
		err = a.project.Connect(m.Edge.Source, m.Edge.Target)
	}
	if err != nil {
		a.setError(err)
		return
	}
	verb := "connected"
	if m.Remove {
		verb = "disconnected"
	}
	a.setMessage(fmt.Sprintf("%s %s -> %s", verb, m.Edge.Source, m.Edge.Target))
}

func (a *App) selected() (editor.Node, bool) {
	nodes := a.project.Nodes()
	i := a.table.Cursor()
	if i < 0 || i >= len(nodes) {
		return editor.Node{}, false
	}
	return nodes[i], true
}

func (a *App) setMessage(s string) {
	a.message, a.msgErr = s, false
}

func (a *App) setError(err error) {
	a.message, a.msgErr = err.Error(), true
}

// refresh recomputes the schedule and rebuilds the table rows.
func (a *App) refresh() {
	a.keys.Clear.SetEnabled(a.project.Dirty())
	tasks := a.project.Tasks()
	a.data, a.schedErr = schedule.Compute(tasks)

	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		row := table.Row{t.ID, t.Name, strconv.Itoa(t.Duration), strings.Join(t.Predecessors, ","), "-", "-", "-", "-", "-", ""}
		if a.data != nil {
			st := a.data.Tasks[i]
			row[4] = strconv.Itoa(st.EarlyStart)
			row[5] = strconv.Itoa(st.EarlyFinish)
			row[6] = strconv.Itoa(st.LateStart)
			row[7] = strconv.Itoa(st.LateFinish)
			row[8] = strconv.Itoa(st.Slack)
			if st.IsCritical {
				row[9] = "●"
			}
		}
		rows[i] = row
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		a.table.SetCursor(len(rows) - 1)
	}
}

// View implements tea.Model.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Loading editor..."
	}
	if a.form != nil {
		return a.form.View(a.theme, a.width, a.height)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.titleBar(),
		a.table.View(),
		a.statusBar(),
		a.help.View(a.keys),
	)
}

func (a App) titleBar() string {
	title := "pertpath editor"
	if a.config.ProjectName != "" {
		title += "  |  " + a.config.ProjectName
	}
	hint := filepath.Base(a.config.Path)
	if a.project.Modified() {
		hint += " [modified]"
	}
	title += "  " + a.theme.TitleHint.Render(hint)
	return a.theme.TitleBar.Width(max(a.width, 1)).Render(title)
}

func (a App) statusBar() string {
	sep := a.theme.StatusSeparator.Render(" | ")
	unit := a.config.TimeUnit
	if unit == "" {
		unit = "days"
	}

	var line string
	if a.schedErr != nil {
		line = a.theme.ErrorText.Render(a.schedErr.Error())
	} else {
		s := a.data.Summary()
		line = a.theme.StatusKey.Render("Duration ") + a.theme.StatusValue.Render(fmt.Sprintf("%d %s", s.ProjectDuration, unit)) +
			sep + a.theme.StatusKey.Render("Critical ") + a.theme.StatusCritical.Render(fmt.Sprintf("%d/%d", s.CriticalCount, s.TaskCount)) +
			sep + a.theme.StatusKey.Render("Slack ") + a.theme.StatusValue.Render(strconv.Itoa(s.TotalSlack))
	}
	if a.message != "" {
		style := a.theme.StatusMessage
		if a.msgErr {
			style = a.theme.ErrorText
		}
		line += sep + style.Render(a.message)
	}
	return a.theme.StatusBar.Width(max(a.width, 1)).Render(line)
}

// saveCmd writes tasks, the project at revision rev, to path as CSV.
func saveCmd(path string, rev int, tasks []schedule.Task) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{Path: path, Rev: rev, Err: writeCSVFile(path, tasks)}
	}
}

func writeCSVFile(path string, tasks []schedule.Task) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("saving %s: %w", path, cerr)
		}
	}()
	if err := task.WriteCSV(f, tasks); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// RunEditor runs the editor full screen until the user quits.
func RunEditor(cfg AppConfig) error {
	logger := logging.New("tui")
	logger.Debug("starting editor", "path", cfg.Path, "tasks", len(cfg.Tasks))

	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
