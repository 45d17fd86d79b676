package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

func newTestProject(t *testing.T, n int) *Project {
	t.Helper()
	p := NewProject(DefaultOptions())
	for i := 0; i < n; i++ {
		p.AddTask()
	}
	return p
}

func TestAddTask_GeneratesSequentialIDs(t *testing.T) {
	t.Parallel()

	p := NewProject(Options{IDPrefix: "n", DefaultDuration: 3})
	assert.False(t, p.Dirty())

	first := p.AddTask()
	second := p.AddTask()

	assert.Equal(t, Node{ID: "n1", Name: "Task 1", Duration: 3}, first)
	assert.Equal(t, Node{ID: "n2", Name: "Task 2", Duration: 3}, second)
	assert.True(t, p.Dirty())
}

func TestNewProject_Defaults(t *testing.T) {
	t.Parallel()

	p := NewProject(Options{DefaultDuration: -4})
	n := p.AddTask()
	assert.Equal(t, "task-1", n.ID)
	assert.Equal(t, 0, n.Duration)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	p := newTestProject(t, 1)
	require.NoError(t, p.UpdateTask("task-1", "  Design  ", 8))

	n, ok := p.Node("task-1")
	require.True(t, ok)
	assert.Equal(t, "Design", n.Name)
	assert.Equal(t, 8, n.Duration)

	assert.ErrorIs(t, p.UpdateTask("nope", "x", 1), ErrTaskNotFound)
	assert.Error(t, p.UpdateTask("task-1", "x", -1))
	assert.Error(t, p.UpdateTask("task-1", " ", 1))
}

func TestDeleteTask_RemovesIncidentEdges(t *testing.T) {
	t.Parallel()

	p := newTestProject(t, 3)
	require.NoError(t, p.Connect("task-1", "task-2"))
	require.NoError(t, p.Connect("task-2", "task-3"))
	require.NoError(t, p.Connect("task-1", "task-3"))

	require.NoError(t, p.DeleteTask("task-2"))

	assert.Len(t, p.Nodes(), 2)
	assert.Equal(t, []Edge{{Source: "task-1", Target: "task-3"}}, p.Edges())
	assert.ErrorIs(t, p.DeleteTask("task-2"), ErrTaskNotFound)
}

func TestConnect_Rejections(t *testing.T) {
	t.Parallel()

	p := newTestProject(t, 3)
	require.NoError(t, p.Connect("task-1", "task-2"))
	require.NoError(t, p.Connect("task-2", "task-3"))

	tests := []struct {
		name           string
		source, target string
		want           error
	}{
		{name: "unknown source", source: "x", target: "task-1", want: ErrTaskNotFound},
		{name: "unknown target", source: "task-1", target: "x", want: ErrTaskNotFound},
		{name: "duplicate", source: "task-1", target: "task-2", want: ErrDuplicateEdge},
		{name: "self loop", source: "task-1", target: "task-1", want: ErrCircularDependency},
		{name: "direct back edge", source: "task-2", target: "task-1", want: ErrCircularDependency},
		{name: "transitive back edge", source: "task-3", target: "task-1", want: ErrCircularDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, p.Connect(tt.source, tt.target), tt.want)
		})
	}
	assert.Len(t, p.Edges(), 2, "rejected edges are not added")

	// A forward shortcut does not close a cycle.
	assert.NoError(t, p.Connect("task-1", "task-3"))
}

func TestDisconnect(t *testing.T) {
	t.Parallel()

	p := newTestProject(t, 2)
	require.NoError(t, p.Connect("task-1", "task-2"))
	require.NoError(t, p.Disconnect("task-1", "task-2"))
	assert.Empty(t, p.Edges())
	assert.ErrorIs(t, p.Disconnect("task-1", "task-2"), ErrEdgeNotFound)

	// Once removed, the reverse edge is allowed.
	assert.NoError(t, p.Connect("task-2", "task-1"))
}

func TestClear(t *testing.T) {
	t.Parallel()

	p := newTestProject(t, 2)
	require.NoError(t, p.Connect("task-1", "task-2"))
	p.Clear()

	assert.False(t, p.Dirty())
	assert.Equal(t, "task-1", p.AddTask().ID, "counter restarts")
}

func TestImport_AndExportTasks(t *testing.T) {
	t.Parallel()

	in := []schedule.Task{
		{ID: "A", Name: "Task A", Duration: 5, Predecessors: []string{}},
		{ID: "B", Name: "Task B", Duration: 3, Predecessors: []string{"A"}},
		{ID: "C", Name: "Task C", Duration: 4, Predecessors: []string{"A", "ghost"}},
		{ID: "D", Name: "Task D", Duration: 2, Predecessors: []string{"B", "C", "B"}},
	}

	p := NewProject(DefaultOptions())
	require.NoError(t, p.Import(in))

	assert.Equal(t, []schedule.Task{
		{ID: "A", Name: "Task A", Duration: 5, Predecessors: []string{}},
		{ID: "B", Name: "Task B", Duration: 3, Predecessors: []string{"A"}},
		{ID: "C", Name: "Task C", Duration: 4, Predecessors: []string{"A"}},
		{ID: "D", Name: "Task D", Duration: 2, Predecessors: []string{"B", "C"}},
	}, p.Tasks(), "unknown and repeated predecessors produce no edges")

	assert.Equal(t, "task-5", p.AddTask().ID)

	data, err := p.Schedule()
	require.NoError(t, err)
	assert.Equal(t, 11, data.ProjectDuration)
}

func TestImport_DropsCyclicEdges(t *testing.T) {
	t.Parallel()

	p := NewProject(DefaultOptions())
	err := p.Import([]schedule.Task{
		{ID: "A", Duration: 1, Predecessors: []string{"B"}},
		{ID: "B", Duration: 1, Predecessors: []string{"A"}},
	})
	require.ErrorIs(t, err, ErrCircularDependency)

	assert.Len(t, p.Nodes(), 2)
	assert.Equal(t, []Edge{{Source: "B", Target: "A"}}, p.Edges())

	_, err = p.Schedule()
	assert.NoError(t, err, "the kept graph stays schedulable")
}

func TestSchedule_EmptyProject(t *testing.T) {
	t.Parallel()

	_, err := NewProject(DefaultOptions()).Schedule()
	assert.ErrorIs(t, err, schedule.ErrEmptyProject)
}

func TestModified_TracksChangesSinceSave(t *testing.T) {
	t.Parallel()

	p := NewProject(DefaultOptions())
	require.NoError(t, p.Import([]schedule.Task{{ID: "A", Name: "Alpha", Duration: 1}}))
	assert.False(t, p.Modified(), "imported state counts as saved")

	require.NoError(t, p.UpdateTask("A", "Alpha", 1))
	assert.False(t, p.Modified(), "no-op update")

	n := p.AddTask()
	assert.True(t, p.Modified())

	rev := p.Revision()
	p.MarkSaved(rev)
	assert.False(t, p.Modified())

	require.NoError(t, p.Connect("A", n.ID))
	assert.True(t, p.Modified())
	p.MarkSaved(p.Revision())

	p.Clear()
	assert.True(t, p.Modified())
	p.MarkSaved(p.Revision())
	p.Clear()
	assert.False(t, p.Modified(), "clearing an empty project changes nothing")
}
