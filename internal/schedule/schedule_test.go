package schedule

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// templateTasks is the four-task example shipped as the import template.
func templateTasks() []Task {
	return []Task{
		{ID: "A", Name: "Task A", Duration: 5},
		{ID: "B", Name: "Task B", Duration: 3, Predecessors: []string{"A"}},
		{ID: "C", Name: "Task C", Duration: 4, Predecessors: []string{"A"}},
		{ID: "D", Name: "Task D", Duration: 2, Predecessors: []string{"B", "C"}},
	}
}

func assertTimes(t *testing.T, data *ProjectData, id string, want Times) {
	t.Helper()
	got, ok := data.Times(id)
	require.True(t, ok, "task %s missing from result", id)
	assert.Equal(t, want, got, "task %s", id)
}

func TestCompute_TemplateExample(t *testing.T) {
	t.Parallel()

	data, err := Compute(templateTasks())
	require.NoError(t, err)

	assert.Equal(t, 11, data.ProjectDuration)
	assert.Equal(t, []string{"A", "C", "D"}, data.CriticalPath)

	assertTimes(t, data, "A", Times{EarlyStart: 0, EarlyFinish: 5, LateStart: 0, LateFinish: 5, Slack: 0, IsCritical: true})
	assertTimes(t, data, "B", Times{EarlyStart: 5, EarlyFinish: 8, LateStart: 6, LateFinish: 9, Slack: 1})
	assertTimes(t, data, "C", Times{EarlyStart: 5, EarlyFinish: 9, LateStart: 5, LateFinish: 9, Slack: 0, IsCritical: true})
	assertTimes(t, data, "D", Times{EarlyStart: 9, EarlyFinish: 11, LateStart: 9, LateFinish: 11, Slack: 0, IsCritical: true})
}

func TestCompute_SingleTask(t *testing.T) {
	t.Parallel()

	data, err := Compute([]Task{{ID: "solo", Name: "Solo", Duration: 7}})
	require.NoError(t, err)

	assert.Equal(t, 7, data.ProjectDuration)
	assert.Equal(t, []string{"solo"}, data.CriticalPath)
	assertTimes(t, data, "solo", Times{EarlyStart: 0, EarlyFinish: 7, LateStart: 0, LateFinish: 7, Slack: 0, IsCritical: true})
}

func TestCompute_Diamond(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		durB      int
		durC      int
		critical  []string
		slackID   string
		wantSlack int
	}{
		{name: "B longer", durB: 10, durC: 1, critical: []string{"A", "B", "D"}, slackID: "C", wantSlack: 9},
		{name: "C longer", durB: 2, durC: 6, critical: []string{"A", "C", "D"}, slackID: "B", wantSlack: 4},
		{name: "equal", durB: 3, durC: 3, critical: []string{"A", "B", "C", "D"}, slackID: "B", wantSlack: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tasks := []Task{
				{ID: "A", Duration: 5},
				{ID: "B", Duration: tt.durB, Predecessors: []string{"A"}},
				{ID: "C", Duration: tt.durC, Predecessors: []string{"A"}},
				{ID: "D", Duration: 1, Predecessors: []string{"B", "C"}},
			}
			data, err := Compute(tasks)
			require.NoError(t, err)

			assert.Equal(t, tt.critical, data.CriticalPath)
			got, ok := data.Times(tt.slackID)
			require.True(t, ok)
			assert.Equal(t, tt.wantSlack, got.Slack)
		})
	}
}

func TestCompute_UnresolvedPredecessor(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "A", Duration: 4},
		{ID: "B", Duration: 2, Predecessors: []string{"ghost"}},
		{ID: "C", Duration: 1, Predecessors: []string{"A", "ghost"}},
	}
	data, err := Compute(tasks)
	require.NoError(t, err)

	b, _ := data.Times("B")
	assert.Equal(t, 0, b.EarlyStart, "unknown predecessor contributes a finish of 0")
	assert.Equal(t, 2, b.EarlyFinish)

	c, _ := data.Times("C")
	assert.Equal(t, 4, c.EarlyStart)
	assert.Equal(t, 5, data.ProjectDuration)
}

func TestCompute_EmptyProject(t *testing.T) {
	t.Parallel()

	for _, tasks := range [][]Task{nil, {}} {
		data, err := Compute(tasks)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, ErrEmptyProject)
	}
}

func TestCompute_InvalidTasks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tasks []Task
		want  string
	}{
		{
			name:  "empty id",
			tasks: []Task{{ID: "A", Duration: 1}, {ID: "", Duration: 1}},
			want:  "position 2",
		},
		{
			name:  "duplicate id",
			tasks: []Task{{ID: "A", Duration: 1}, {ID: "A", Duration: 2}},
			want:  "duplicate",
		},
		{
			name:  "negative duration",
			tasks: []Task{{ID: "A", Duration: -3}},
			want:  "negative duration -3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compute(tt.tasks)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTask)

			var te *TaskError
			require.True(t, errors.As(err, &te))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompute_CycleDetected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tasks []Task
		path  []string
	}{
		{
			name:  "self reference",
			tasks: []Task{{ID: "A", Duration: 1, Predecessors: []string{"A"}}},
			path:  []string{"A", "A"},
		},
		{
			name: "two-node cycle",
			tasks: []Task{
				{ID: "A", Duration: 1, Predecessors: []string{"B"}},
				{ID: "B", Duration: 1, Predecessors: []string{"A"}},
			},
			path: []string{"A", "B", "A"},
		},
		{
			name: "three-node cycle behind a root",
			tasks: []Task{
				{ID: "start", Duration: 1},
				{ID: "A", Duration: 1, Predecessors: []string{"start", "C"}},
				{ID: "B", Duration: 1, Predecessors: []string{"A"}},
				{ID: "C", Duration: 1, Predecessors: []string{"B"}},
			},
			path: []string{"A", "B", "C", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := Compute(tt.tasks)
			assert.Nil(t, data)
			require.ErrorIs(t, err, ErrCyclicDependency)

			var ce *CycleError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.path, ce.Path)
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := Compute(templateTasks())
	require.NoError(t, err)

	again := make([]Task, len(first.Tasks))
	for i, st := range first.Tasks {
		again[i] = st.Task
	}
	second, err := Compute(again)
	require.NoError(t, err)

	assert.Equal(t, first.Tasks, second.Tasks)
	assert.Equal(t, first.CriticalPath, second.CriticalPath)
	assert.Equal(t, first.ProjectDuration, second.ProjectDuration)
}

func TestCompute_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	tasks := templateTasks()
	data, err := Compute(tasks)
	require.NoError(t, err)

	assert.Equal(t, templateTasks(), tasks)

	data.Tasks[3].Predecessors[0] = "changed"
	assert.Equal(t, "B", tasks[3].Predecessors[0], "result must not alias input slices")
}

func TestCompute_OrderIndependentTimes(t *testing.T) {
	t.Parallel()

	forward := templateTasks()
	reversed := make([]Task, len(forward))
	for i, tk := range forward {
		reversed[len(forward)-1-i] = tk
	}

	a, err := Compute(forward)
	require.NoError(t, err)
	b, err := Compute(reversed)
	require.NoError(t, err)

	for _, tk := range forward {
		ta, _ := a.Times(tk.ID)
		tb, _ := b.Times(tk.ID)
		assert.Equal(t, ta, tb, "task %s", tk.ID)
	}
	assert.Equal(t, []string{"D", "C", "A"}, b.CriticalPath, "critical path follows input order")
}

func TestCompute_DuplicatePredecessors(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "A", Duration: 2},
		{ID: "B", Duration: 3, Predecessors: []string{"A", "A"}},
	}
	data, err := Compute(tasks)
	require.NoError(t, err)
	assertTimes(t, data, "A", Times{EarlyStart: 0, EarlyFinish: 2, LateStart: 0, LateFinish: 2, IsCritical: true})
	assertTimes(t, data, "B", Times{EarlyStart: 2, EarlyFinish: 5, LateStart: 2, LateFinish: 5, IsCritical: true})
}

func TestCompute_ZeroDurationMilestone(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "kickoff", Duration: 0},
		{ID: "build", Duration: 4, Predecessors: []string{"kickoff"}},
		{ID: "docs", Duration: 1, Predecessors: []string{"kickoff"}},
		{ID: "release", Duration: 0, Predecessors: []string{"build", "docs"}},
	}
	data, err := Compute(tasks)
	require.NoError(t, err)

	assert.Equal(t, 4, data.ProjectDuration)
	assert.Equal(t, []string{"kickoff", "build", "release"}, data.CriticalPath)
	docs, _ := data.Times("docs")
	assert.Equal(t, 3, docs.Slack)
}

func TestCompute_SlackNeverNegative(t *testing.T) {
	t.Parallel()

	data, err := Compute(layeredTasks(6, 5))
	require.NoError(t, err)
	for _, st := range data.Tasks {
		assert.GreaterOrEqual(t, st.Slack, 0, "task %s", st.ID)
		assert.Equal(t, st.EarlyStart+st.Duration, st.EarlyFinish)
		assert.Equal(t, st.LateFinish-st.Duration, st.LateStart)
	}
}

func TestCompute_DeepChainDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const n = 100000
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = Task{ID: fmt.Sprintf("t%d", i), Duration: 1}
		if i > 0 {
			tasks[i].Predecessors = []string{tasks[i-1].ID}
		}
	}

	data, err := Compute(tasks)
	require.NoError(t, err)
	assert.Equal(t, n, data.ProjectDuration)
	assert.Len(t, data.CriticalPath, n)
}

func TestProjectData_TaskLookup(t *testing.T) {
	t.Parallel()

	data, err := Compute(templateTasks())
	require.NoError(t, err)

	st, ok := data.Task("C")
	require.True(t, ok)
	assert.Equal(t, "Task C", st.Name)

	_, ok = data.Task("missing")
	assert.False(t, ok)

	// A result rebuilt outside Compute still supports lookups.
	rebuilt := &ProjectData{Tasks: data.Tasks}
	_, ok = rebuilt.Times("D")
	assert.True(t, ok)
}

func TestProjectData_ConcurrentLookups(t *testing.T) {
	t.Parallel()

	data, err := Compute(templateTasks())
	require.NoError(t, err)
	rebuilt := &ProjectData{Tasks: data.Tasks}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range []string{"A", "B", "C", "D"} {
				_, ok := rebuilt.Task(id)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

// layeredTasks builds a graph of width-wide layers where every task
// depends on every task in the previous layer. Durations vary so that
// some tasks carry slack.
func layeredTasks(layers, width int) []Task {
	var tasks []Task
	for l := 0; l < layers; l++ {
		for w := 0; w < width; w++ {
			tk := Task{ID: fmt.Sprintf("L%dW%d", l, w), Duration: (l*7+w*3)%5 + 1}
			if l > 0 {
				for p := 0; p < width; p++ {
					tk.Predecessors = append(tk.Predecessors, fmt.Sprintf("L%dW%d", l-1, p))
				}
			}
			tasks = append(tasks, tk)
		}
	}
	return tasks
}
