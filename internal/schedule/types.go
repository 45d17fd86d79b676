package schedule

import "sync"

// Task is a single project activity as supplied by a task source. The
// engine never modifies a Task; computed values are returned separately
// in Times.
type Task struct {
	// ID is unique within a project and keys the dependency graph.
	ID string `json:"id"`
	// Name is a display label with no uniqueness constraint.
	Name string `json:"name"`
	// Duration is the non-negative length of the task in time units.
	Duration int `json:"duration"`
	// Predecessors lists the IDs of tasks that must finish first.
	Predecessors []string `json:"predecessors"`
}

// Times holds the CPM schedule values computed for one task.
type Times struct {
	EarlyStart  int  `json:"early_start"`
	EarlyFinish int  `json:"early_finish"`
	LateStart   int  `json:"late_start"`
	LateFinish  int  `json:"late_finish"`
	Slack       int  `json:"slack"`
	IsCritical  bool `json:"is_critical"`
}

// ScheduledTask is an input Task composed with its computed Times.
type ScheduledTask struct {
	Task
	Times
}

// ProjectData is the result of a schedule computation.
type ProjectData struct {
	// Tasks holds one entry per input task, in input order.
	Tasks []ScheduledTask `json:"tasks"`
	// CriticalPath lists the IDs of zero-slack tasks in input order. It is
	// not a topologically sorted path; see CriticalChains for sequences.
	CriticalPath []string `json:"critical_path"`
	// ProjectDuration is the maximum early finish over all tasks.
	ProjectDuration int `json:"project_duration"`

	indexOnce sync.Once
	index     map[string]int
}

// Times returns the computed times for the task with the given ID.
func (p *ProjectData) Times(id string) (Times, bool) {
	i, ok := p.lookup(id)
	if !ok {
		return Times{}, false
	}
	return p.Tasks[i].Times, true
}

// Task returns the scheduled task with the given ID.
func (p *ProjectData) Task(id string) (ScheduledTask, bool) {
	i, ok := p.lookup(id)
	if !ok {
		return ScheduledTask{}, false
	}
	return p.Tasks[i], true
}

func (p *ProjectData) lookup(id string) (int, bool) {
	p.indexOnce.Do(func() {
		if p.index != nil {
			return
		}
		p.index = make(map[string]int, len(p.Tasks))
		for i, t := range p.Tasks {
			p.index[t.ID] = i
		}
	})
	i, ok := p.index[id]
	return i, ok
}

// Summary aggregates the headline numbers of a computed schedule.
type Summary struct {
	ProjectDuration  int      `json:"project_duration"`
	TaskCount        int      `json:"task_count"`
	CriticalCount    int      `json:"critical_count"`
	NonCriticalCount int      `json:"non_critical_count"`
	TotalSlack       int      `json:"total_slack"`
	CriticalNames    []string `json:"critical_names"`
}

// Wave is a group of tasks sharing the same early start time.
type Wave struct {
	Index      int      `json:"index"`
	Start      int      `json:"start"`
	TaskIDs    []string `json:"task_ids"`
	IsCritical bool     `json:"is_critical"` // contains at least one critical task
}
