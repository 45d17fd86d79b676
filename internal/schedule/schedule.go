// Package schedule implements the Critical Path Method over a task
// dependency graph.
//
// Compute runs a fixed pipeline: build the registry, run the forward pass
// for early times, take the project duration as the horizon, run the
// backward pass for late times, then derive slack and the critical path.
// Each stage receives the previous stage's output explicitly; nothing is
// shared between calls and the input tasks are never modified.
package schedule

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Compute schedules tasks and returns the composed result. It returns
// ErrEmptyProject for an empty input, a *TaskError for malformed tasks and
// a *CycleError when the predecessor graph is not acyclic. Predecessor IDs
// that name no task are treated as finishing at time 0.
func Compute(tasks []Task) (*ProjectData, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyProject
	}

	reg, err := newRegistry(tasks)
	if err != nil {
		return nil, fmt.Errorf("building task registry: %w", err)
	}

	early, err := forwardPass(reg)
	if err != nil {
		return nil, fmt.Errorf("forward pass: %w", err)
	}

	duration := projectDuration(early)

	late, err := backwardPass(reg, duration)
	if err != nil {
		return nil, fmt.Errorf("backward pass: %w", err)
	}

	data := assemble(reg, early, late, duration)
	log.Debug("schedule computed",
		"tasks", len(tasks),
		"duration", duration,
		"critical", len(data.CriticalPath))
	return data, nil
}

// span is an interval [start, finish] for one task.
type span struct {
	start, finish int
}

// forwardPass computes earliest start and finish for every task.
func forwardPass(reg *registry) ([]span, error) {
	early := make([]span, len(reg.tasks))
	err := reg.walk(reg.predecessors, true, func(i int) {
		es := 0
		for _, p := range reg.predecessors(i) {
			if early[p].finish > es {
				es = early[p].finish
			}
		}
		early[i] = span{start: es, finish: es + reg.tasks[i].Duration}
	})
	if err != nil {
		return nil, err
	}
	return early, nil
}

// projectDuration is the maximum early finish. early is never empty.
func projectDuration(early []span) int {
	longest := early[0].finish
	for _, s := range early[1:] {
		if s.finish > longest {
			longest = s.finish
		}
	}
	return longest
}

// backwardPass computes latest start and finish for every task relative to
// the fixed horizon.
func backwardPass(reg *registry, horizon int) ([]span, error) {
	late := make([]span, len(reg.tasks))
	err := reg.walk(reg.successors, false, func(i int) {
		succs := reg.successors(i)
		lf := horizon
		if len(succs) > 0 {
			lf = late[succs[0]].start
			for _, s := range succs[1:] {
				if late[s].start < lf {
					lf = late[s].start
				}
			}
		}
		late[i] = span{start: lf - reg.tasks[i].Duration, finish: lf}
	})
	if err != nil {
		return nil, err
	}
	return late, nil
}

// assemble derives slack and criticality and composes the result with
// copies of the input tasks.
func assemble(reg *registry, early, late []span, duration int) *ProjectData {
	data := &ProjectData{
		Tasks:           make([]ScheduledTask, len(reg.tasks)),
		CriticalPath:    []string{},
		ProjectDuration: duration,
		index:           reg.index,
	}

	for i, t := range reg.tasks {
		slack := late[i].start - early[i].start
		data.Tasks[i] = ScheduledTask{
			Task: copyTask(t),
			Times: Times{
				EarlyStart:  early[i].start,
				EarlyFinish: early[i].finish,
				LateStart:   late[i].start,
				LateFinish:  late[i].finish,
				Slack:       slack,
				IsCritical:  slack == 0,
			},
		}
		if slack == 0 {
			data.CriticalPath = append(data.CriticalPath, t.ID)
		}
	}
	return data
}

func copyTask(t Task) Task {
	preds := make([]string, len(t.Predecessors))
	copy(preds, t.Predecessors)
	t.Predecessors = preds
	return t
}
