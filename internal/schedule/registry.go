package schedule

import "github.com/charmbracelet/log"

// registry is the per-call view of the task graph. Tasks are addressed by
// their input position; index maps IDs to positions.
type registry struct {
	tasks []Task
	index map[string]int

	// preds holds resolved predecessor positions per task, deduplicated and
	// in first-seen order. Unknown IDs are dropped here.
	preds [][]int
	// succs is the reverse adjacency of preds.
	succs [][]int
}

// newRegistry builds the lookup tables for tasks. It fails on an empty
// task ID, a duplicate ID or a negative duration; unknown predecessor IDs
// are tolerated and contribute nothing to the graph.
func newRegistry(tasks []Task) (*registry, error) {
	r := &registry{
		tasks: tasks,
		index: make(map[string]int, len(tasks)),
		preds: make([][]int, len(tasks)),
		succs: make([][]int, len(tasks)),
	}

	for i, t := range tasks {
		if t.ID == "" {
			return nil, invalidTask("", "task at position %d has an empty id", i+1)
		}
		if _, dup := r.index[t.ID]; dup {
			return nil, invalidTask(t.ID, "duplicate task id")
		}
		if t.Duration < 0 {
			return nil, invalidTask(t.ID, "negative duration %d", t.Duration)
		}
		r.index[t.ID] = i
	}

	for i, t := range tasks {
		seen := make(map[int]bool, len(t.Predecessors))
		for _, predID := range t.Predecessors {
			p, ok := r.index[predID]
			if !ok {
				log.Debug("unresolved predecessor treated as finishing at 0", "task", t.ID, "predecessor", predID)
				continue
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			r.preds[i] = append(r.preds[i], p)
			r.succs[p] = append(r.succs[p], i)
		}
	}

	return r, nil
}

func (r *registry) id(i int) string { return r.tasks[i].ID }

func (r *registry) predecessors(i int) []int { return r.preds[i] }

func (r *registry) successors(i int) []int { return r.succs[i] }

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// walk visits every node exactly once in dependency post-order: visit(n)
// runs only after visit has run for every node in edges(n). Roots are
// taken in input order. Traversal uses an explicit stack; reaching a node
// that is still in progress aborts with a CycleError.
//
// edgesPrecede tells walk whether edges(n) point at nodes that come
// before n in precedence order (predecessors) or after it (successors),
// so the reported cycle always reads in precedence order.
func (r *registry) walk(edges func(int) []int, edgesPrecede bool, visit func(int)) error {
	state := make([]visitState, len(r.tasks))

	type frame struct {
		node int
		next int
	}

	for root := range r.tasks {
		if state[root] != unvisited {
			continue
		}
		state[root] = inProgress
		stack := []frame{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := edges(top.node)
			if top.next < len(out) {
				child := out[top.next]
				top.next++
				switch state[child] {
				case done:
					continue
				case inProgress:
					nodes := make([]int, len(stack))
					for i, f := range stack {
						nodes[i] = f.node
					}
					return r.cycle(nodes, child, edgesPrecede)
				}
				state[child] = inProgress
				stack = append(stack, frame{node: child})
				continue
			}
			visit(top.node)
			state[top.node] = done
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// cycle extracts the cycle closed by the back edge from the top of stack
// to target.
func (r *registry) cycle(stack []int, target int, edgesPrecede bool) error {
	start := 0
	for i, n := range stack {
		if n == target {
			start = i
			break
		}
	}

	path := make([]string, 0, len(stack)-start+1)
	for _, n := range stack[start:] {
		path = append(path, r.id(n))
	}
	path = append(path, r.id(target))

	if edgesPrecede {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	}
	return &CycleError{Path: path}
}
