package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyProject is returned when no tasks are supplied.
	ErrEmptyProject = errors.New("project has no tasks")
	// ErrInvalidTask is the kind of every per-task input error.
	ErrInvalidTask = errors.New("invalid task")
	// ErrCyclicDependency is the kind of every CycleError.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// TaskError reports an input task the engine refuses to schedule.
type TaskError struct {
	ID  string
	Msg string
}

func (e *TaskError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidTask, e.Msg)
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidTask, e.ID, e.Msg)
}

func (e *TaskError) Unwrap() error { return ErrInvalidTask }

// CycleError reports a dependency cycle. Path lists the task IDs in
// precedence order and repeats the first ID at the end, so
// ["a", "b", "a"] means a precedes b precedes a.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCyclicDependency.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCyclicDependency, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }

func invalidTask(id, format string, args ...any) error {
	return &TaskError{ID: id, Msg: fmt.Sprintf(format, args...)}
}
