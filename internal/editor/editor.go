// Package editor holds the state behind the interactive project editor:
// an ordered set of task nodes and the dependency edges between them.
//
// Unlike the scheduling engine, which tolerates anything it is given, the
// editor keeps its graph well formed at all times. Every edge must join
// two existing nodes and no edge may close a cycle, so Tasks always yields
// a list the engine can schedule.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

var (
	// ErrCircularDependency is returned when a new edge would close a cycle.
	ErrCircularDependency = errors.New("connection would create a circular dependency")
	// ErrTaskNotFound is returned for an unknown node ID.
	ErrTaskNotFound = errors.New("task not found")
	// ErrDuplicateEdge is returned when connecting two nodes twice.
	ErrDuplicateEdge = errors.New("tasks are already connected")
	// ErrEdgeNotFound is returned when removing a missing edge.
	ErrEdgeNotFound = errors.New("tasks are not connected")
)

// Node is one task in the editor.
type Node struct {
	ID       string
	Name     string
	Duration int
}

// Edge is a dependency: Source must finish before Target starts.
type Edge struct {
	Source string
	Target string
}

// Options configures a Project.
type Options struct {
	// IDPrefix is prepended to the counter for generated node IDs.
	IDPrefix string
	// DefaultDuration is the duration given to new nodes.
	DefaultDuration int
}

// DefaultOptions returns the editor defaults: IDs "task-1", "task-2", ...
// and a duration of 1.
func DefaultOptions() Options {
	return Options{IDPrefix: "task-", DefaultDuration: 1}
}

// Project is the editable task graph. The zero value is not usable; call
// NewProject.
type Project struct {
	opts    Options
	nodes   []Node
	edges   []Edge
	counter int

	// rev counts mutations; savedRev is the revision last written out.
	rev      int
	savedRev int
}

// NewProject returns an empty project.
func NewProject(opts Options) *Project {
	if opts.IDPrefix == "" {
		opts.IDPrefix = DefaultOptions().IDPrefix
	}
	if opts.DefaultDuration < 0 {
		opts.DefaultDuration = 0
	}
	return &Project{opts: opts, counter: 1}
}

// Nodes returns a copy of the nodes in creation order.
func (p *Project) Nodes() []Node {
	out := make([]Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Edges returns a copy of the edges in creation order.
func (p *Project) Edges() []Edge {
	out := make([]Edge, len(p.edges))
	copy(out, p.edges)
	return out
}

// Node returns the node with the given ID.
func (p *Project) Node(id string) (Node, bool) {
	i := p.find(id)
	if i < 0 {
		return Node{}, false
	}
	return p.nodes[i], true
}

// Dirty reports whether the project has any content.
func (p *Project) Dirty() bool {
	return len(p.nodes) > 0 || len(p.edges) > 0
}

// Revision identifies the current state. It changes on every mutation.
func (p *Project) Revision() int {
	return p.rev
}

// MarkSaved records that the state at rev has been written out.
func (p *Project) MarkSaved(rev int) {
	p.savedRev = rev
}

// Modified reports whether the project changed since it was imported or
// last marked saved.
func (p *Project) Modified() bool {
	return p.rev != p.savedRev
}

// AddTask appends a node with a generated ID, the name "Task N" and the
// default duration. Generated IDs skip any that are already taken.
func (p *Project) AddTask() Node {
	for p.find(p.nextID()) >= 0 {
		p.counter++
	}
	n := Node{
		ID:       p.nextID(),
		Name:     fmt.Sprintf("Task %d", p.counter),
		Duration: p.opts.DefaultDuration,
	}
	p.nodes = append(p.nodes, n)
	p.counter++
	p.rev++
	return n
}

func (p *Project) nextID() string {
	return fmt.Sprintf("%s%d", p.opts.IDPrefix, p.counter)
}

// UpdateTask changes a node's name and duration.
func (p *Project) UpdateTask(id, name string, duration int) error {
	i := p.find(id)
	if i < 0 {
		return fmt.Errorf("updating %q: %w", id, ErrTaskNotFound)
	}
	if duration < 0 {
		return fmt.Errorf("updating %q: duration must not be negative", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("updating %q: name must not be empty", id)
	}
	if p.nodes[i].Name != name || p.nodes[i].Duration != duration {
		p.nodes[i].Name = name
		p.nodes[i].Duration = duration
		p.rev++
	}
	return nil
}

// DeleteTask removes a node and every edge touching it.
func (p *Project) DeleteTask(id string) error {
	i := p.find(id)
	if i < 0 {
		return fmt.Errorf("deleting %q: %w", id, ErrTaskNotFound)
	}
	p.nodes = append(p.nodes[:i], p.nodes[i+1:]...)

	kept := p.edges[:0]
	for _, e := range p.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	p.edges = kept
	p.rev++
	return nil
}

// Connect adds the dependency source -> target. It fails for unknown
// nodes, for an edge that already exists, and for any edge that would
// make the graph cyclic, including a node connected to itself.
func (p *Project) Connect(source, target string) error {
	if p.find(source) < 0 {
		return fmt.Errorf("connecting %q -> %q: source %w", source, target, ErrTaskNotFound)
	}
	if p.find(target) < 0 {
		return fmt.Errorf("connecting %q -> %q: target %w", source, target, ErrTaskNotFound)
	}
	if p.hasEdge(source, target) {
		return fmt.Errorf("connecting %q -> %q: %w", source, target, ErrDuplicateEdge)
	}

	candidate := Edge{Source: source, Target: target}
	if p.hasCycleWith(candidate) {
		return fmt.Errorf("connecting %q -> %q: %w", source, target, ErrCircularDependency)
	}
	p.edges = append(p.edges, candidate)
	p.rev++
	return nil
}

// Disconnect removes the dependency source -> target.
func (p *Project) Disconnect(source, target string) error {
	for i, e := range p.edges {
		if e.Source == source && e.Target == target {
			p.edges = append(p.edges[:i], p.edges[i+1:]...)
			p.rev++
			return nil
		}
	}
	return fmt.Errorf("disconnecting %q -> %q: %w", source, target, ErrEdgeNotFound)
}

// Clear removes all nodes and edges and resets the ID counter.
func (p *Project) Clear() {
	if p.Dirty() {
		p.rev++
	}
	p.nodes = nil
	p.edges = nil
	p.counter = 1
}

// Import replaces the project with tasks. Predecessor IDs that name no
// task in the list produce no edge. Edges that would close a cycle are
// dropped and returned as an error joined from every rejection, while the
// rest of the import is kept. The imported state counts as saved.
func (p *Project) Import(tasks []schedule.Task) error {
	p.Clear()

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if known[t.ID] {
			continue
		}
		known[t.ID] = true
		p.nodes = append(p.nodes, Node{ID: t.ID, Name: t.Name, Duration: t.Duration})
	}

	var errs []error
	for _, t := range tasks {
		for _, pred := range t.Predecessors {
			if !known[pred] {
				continue
			}
			err := p.Connect(pred, t.ID)
			if err != nil && !errors.Is(err, ErrDuplicateEdge) {
				errs = append(errs, err)
			}
		}
	}
	p.counter = len(p.nodes) + 1
	p.rev++
	p.savedRev = p.rev
	return errors.Join(errs...)
}

// Tasks exports the project as schedulable tasks in node order, with
// predecessors taken from incoming edges in edge order.
func (p *Project) Tasks() []schedule.Task {
	incoming := make(map[string][]string, len(p.nodes))
	for _, e := range p.edges {
		incoming[e.Target] = append(incoming[e.Target], e.Source)
	}

	tasks := make([]schedule.Task, len(p.nodes))
	for i, n := range p.nodes {
		preds := incoming[n.ID]
		if preds == nil {
			preds = []string{}
		}
		tasks[i] = schedule.Task{ID: n.ID, Name: n.Name, Duration: n.Duration, Predecessors: preds}
	}
	return tasks
}

// Schedule computes the CPM schedule of the current project.
func (p *Project) Schedule() (*schedule.ProjectData, error) {
	return schedule.Compute(p.Tasks())
}

func (p *Project) find(id string) int {
	for i, n := range p.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) hasEdge(source, target string) bool {
	for _, e := range p.edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// hasCycleWith reports whether adding candidate to the current edges
// would create a cycle, by a depth-first search from candidate.Source
// that tracks the nodes on the current path.
func (p *Project) hasCycleWith(candidate Edge) bool {
	out := make(map[string][]string, len(p.nodes))
	for _, e := range p.edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}
	out[candidate.Source] = append(out[candidate.Source], candidate.Target)

	visited := make(map[string]bool)
	onPath := make(map[string]bool)

	var visit func(id string) bool
	visit = func(id string) bool {
		if onPath[id] {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		onPath[id] = true
		for _, next := range out[id] {
			if visit(next) {
				return true
			}
		}
		onPath[id] = false
		return false
	}
	return visit(candidate.Source)
}
