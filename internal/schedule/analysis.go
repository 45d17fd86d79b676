package schedule

import (
	"errors"
	"fmt"
	"sort"
)

// Summary returns the headline figures for p. TotalSlack sums the slack
// of non-critical tasks.
func (p *ProjectData) Summary() Summary {
	s := Summary{
		ProjectDuration: p.ProjectDuration,
		TaskCount:       len(p.Tasks),
		CriticalNames:   []string{},
	}
	for _, t := range p.Tasks {
		if t.IsCritical {
			s.CriticalCount++
			s.CriticalNames = append(s.CriticalNames, t.Name)
			continue
		}
		s.NonCriticalCount++
		s.TotalSlack += t.Slack
	}
	return s
}

// Waves groups tasks by early start, in ascending start order. Task IDs
// within a wave keep input order, with critical tasks first.
func (p *ProjectData) Waves() []Wave {
	groups := make(map[int][]ScheduledTask)
	for _, t := range p.Tasks {
		groups[t.EarlyStart] = append(groups[t.EarlyStart], t)
	}

	starts := make([]int, 0, len(groups))
	for es := range groups {
		starts = append(starts, es)
	}
	sort.Ints(starts)

	waves := make([]Wave, len(starts))
	for i, es := range starts {
		members := groups[es]
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].IsCritical && !members[b].IsCritical
		})

		w := Wave{Index: i, Start: es, TaskIDs: make([]string, len(members))}
		for j, t := range members {
			w.TaskIDs[j] = t.ID
			if t.IsCritical {
				w.IsCritical = true
			}
		}
		waves[i] = w
	}
	return waves
}

// CriticalChains returns chains of critical tasks from the project start
// to the project finish, each in precedence order. Consecutive tasks in a
// chain are joined by a dependency with no gap between the first task's
// early finish and the second task's early start, so the durations along
// each chain add up to ProjectDuration.
//
// The chains cover every critical task but do not enumerate every
// critical path: a new chain is started only for a critical task no
// earlier chain passed through. There are at most CriticalCount chains.
func (p *ProjectData) CriticalChains() [][]string {
	tightPreds := make(map[string][]string)
	tightSuccs := make(map[string][]string)
	for _, t := range p.Tasks {
		if !t.IsCritical {
			continue
		}
		seen := make(map[string]bool, len(t.Predecessors))
		for _, predID := range t.Predecessors {
			if seen[predID] {
				continue
			}
			seen[predID] = true
			pred, ok := p.Task(predID)
			if !ok || !pred.IsCritical || pred.EarlyFinish != t.EarlyStart {
				continue
			}
			tightPreds[t.ID] = append(tightPreds[t.ID], predID)
			tightSuccs[predID] = append(tightSuccs[predID], t.ID)
		}
	}

	covered := make(map[string]bool)
	var chains [][]string
	for _, t := range p.Tasks {
		if !t.IsCritical || covered[t.ID] {
			continue
		}

		var back []string
		for id := t.ID; len(tightPreds[id]) > 0; {
			id = tightPreds[id][0]
			back = append(back, id)
		}
		chain := make([]string, 0, len(back)+1)
		for i := len(back) - 1; i >= 0; i-- {
			chain = append(chain, back[i])
		}
		chain = append(chain, t.ID)

		for id := t.ID; len(tightSuccs[id]) > 0; {
			id = pickSuccessor(tightSuccs[id], covered)
			chain = append(chain, id)
		}

		for _, id := range chain {
			covered[id] = true
		}
		chains = append(chains, chain)
	}
	return chains
}

// pickSuccessor prefers the first successor not yet on a chain.
func pickSuccessor(succs []string, covered map[string]bool) string {
	for _, id := range succs {
		if !covered[id] {
			return id
		}
	}
	return succs[0]
}

// TopoOrder returns the task IDs in an order where every task follows all
// of its predecessors. Ties are broken by input order. Unknown predecessor
// IDs are ignored.
func TopoOrder(tasks []Task) ([]string, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyProject
	}
	reg, err := newRegistry(tasks)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0, len(tasks))
	err = reg.walk(reg.predecessors, true, func(i int) {
		order = append(order, reg.id(i))
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Severity grades a validation issue.
type Severity string

const (
	// SeverityError marks an issue that makes Compute fail.
	SeverityError Severity = "error"
	// SeverityWarning marks an issue Compute tolerates silently.
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	TaskID   string   `json:"task_id,omitempty"`
	Message  string   `json:"message"`
}

// Validate lints tasks without scheduling them. It reports every problem
// that would make Compute fail as an error, and the references Compute
// silently tolerates (unknown or repeated predecessor IDs) as warnings.
func Validate(tasks []Task) []Issue {
	var issues []Issue
	add := func(sev Severity, id, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, TaskID: id, Message: fmt.Sprintf(format, args...)})
	}

	if len(tasks) == 0 {
		add(SeverityError, "", "project has no tasks")
		return issues
	}

	ids := make(map[string]bool, len(tasks))
	structural := false
	for i, t := range tasks {
		switch {
		case t.ID == "":
			add(SeverityError, "", "task at position %d has an empty id", i+1)
			structural = true
		case ids[t.ID]:
			add(SeverityError, t.ID, "duplicate task id")
			structural = true
		}
		ids[t.ID] = true
		if t.Duration < 0 {
			add(SeverityError, t.ID, "negative duration %d", t.Duration)
			structural = true
		}
	}

	for _, t := range tasks {
		seen := make(map[string]bool, len(t.Predecessors))
		for _, predID := range t.Predecessors {
			if seen[predID] {
				add(SeverityWarning, t.ID, "predecessor %q listed more than once", predID)
				continue
			}
			seen[predID] = true
			if !ids[predID] {
				add(SeverityWarning, t.ID, "unknown predecessor %q is treated as finishing at 0", predID)
			}
		}
	}

	if structural {
		return issues
	}

	if _, err := TopoOrder(tasks); err != nil {
		var cycle *CycleError
		if errors.As(err, &cycle) && len(cycle.Path) == 2 {
			add(SeverityError, cycle.Path[0], "task depends on itself")
		} else if cycle != nil {
			add(SeverityError, cycle.Path[0], "%v", err)
		} else {
			add(SeverityError, "", "%v", err)
		}
	}
	return issues
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}
