package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emicklei/dot"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

const (
	criticalFill   = "#fee2e2"
	criticalStroke = "#dc2626"
	normalFill     = "#f3f4f6"
	normalStroke   = "#d1d5db"
)

type diagramEdge struct {
	from, to int
	critical bool
}

// diagram is the node and edge set shared by the Mermaid and DOT writers.
// Edges to predecessors outside the visible set are omitted.
type diagram struct {
	tasks []schedule.ScheduledTask
	edges []diagramEdge
}

func newDiagram(data *schedule.ProjectData, opts Options) diagram {
	tasks := visibleTasks(data, opts)
	pos := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if _, dup := pos[t.ID]; !dup {
			pos[t.ID] = i
		}
	}

	d := diagram{tasks: tasks}
	for i, t := range tasks {
		seen := make(map[string]bool, len(t.Predecessors))
		for _, p := range t.Predecessors {
			j, ok := pos[p]
			if !ok || seen[p] {
				continue
			}
			seen[p] = true
			pred := tasks[j]
			d.edges = append(d.edges, diagramEdge{
				from:     j,
				to:       i,
				critical: pred.IsCritical && t.IsCritical && pred.EarlyFinish == t.EarlyStart,
			})
		}
	}
	return d
}

func nodeLines(t schedule.ScheduledTask) []string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	return []string{
		name,
		fmt.Sprintf("duration %d", t.Duration),
		fmt.Sprintf("ES %d | EF %d", t.EarlyStart, t.EarlyFinish),
		fmt.Sprintf("LS %d | LF %d", t.LateStart, t.LateFinish),
		fmt.Sprintf("slack %d", t.Slack),
	}
}

// Mermaid writes a left-to-right flowchart.
func Mermaid(w io.Writer, data *schedule.ProjectData, opts Options) error {
	d := newDiagram(data, opts)

	var b strings.Builder
	if opts.ProjectName != "" {
		fmt.Fprintf(&b, "---\ntitle: %s\n---\n", mermaidEscape(opts.ProjectName))
	}
	b.WriteString("flowchart LR\n")

	var critical, normal []string
	for i, t := range d.tasks {
		lines := nodeLines(t)
		for k := range lines {
			lines[k] = mermaidEscape(lines[k])
		}
		fmt.Fprintf(&b, "    n%d[\"%s\"]\n", i, strings.Join(lines, "<br/>"))
		if t.IsCritical {
			critical = append(critical, fmt.Sprintf("n%d", i))
		} else {
			normal = append(normal, fmt.Sprintf("n%d", i))
		}
	}

	var criticalLinks []string
	for k, e := range d.edges {
		arrow := "-->"
		if e.critical {
			arrow = "==>"
			criticalLinks = append(criticalLinks, fmt.Sprint(k))
		}
		fmt.Fprintf(&b, "    n%d %s n%d\n", e.from, arrow, e.to)
	}

	fmt.Fprintf(&b, "    classDef critical fill:%s,stroke:%s,stroke-width:2px\n", criticalFill, criticalStroke)
	fmt.Fprintf(&b, "    classDef task fill:%s,stroke:%s\n", normalFill, normalStroke)
	if len(critical) > 0 {
		fmt.Fprintf(&b, "    class %s critical\n", strings.Join(critical, ","))
	}
	if len(normal) > 0 {
		fmt.Fprintf(&b, "    class %s task\n", strings.Join(normal, ","))
	}
	if len(criticalLinks) > 0 {
		fmt.Fprintf(&b, "    linkStyle %s stroke:%s,stroke-width:2px\n", strings.Join(criticalLinks, ","), criticalStroke)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// mermaidEscape replaces characters that end a quoted Mermaid label.
func mermaidEscape(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "\n", " ").Replace(s)
}

// DOT writes a Graphviz digraph. Critical tasks and the tight edges
// between them are drawn in the critical stroke color.
func DOT(w io.Writer, data *schedule.ProjectData, opts Options) error {
	d := newDiagram(data, opts)

	g := dot.NewGraph(dot.Directed).ID("pert")
	g.Attr("rankdir", "LR")
	if opts.ProjectName != "" {
		g.Attr("label", opts.ProjectName)
		g.Attr("labelloc", "t")
	}

	nodes := make([]dot.Node, len(d.tasks))
	for i, t := range d.tasks {
		fill, stroke, width := normalFill, normalStroke, 1
		if t.IsCritical {
			fill, stroke, width = criticalFill, criticalStroke, 2
		}
		nodes[i] = g.Node(t.ID).
			Label(strings.Join(nodeLines(t), "\n")).
			Attr("shape", "box").
			Attr("style", "rounded,filled").
			Attr("fontsize", "10").
			Attr("fillcolor", fill).
			Attr("color", stroke).
			Attr("penwidth", strconv.Itoa(width))
	}

	for _, e := range d.edges {
		edge := g.Edge(nodes[e.from], nodes[e.to])
		if e.critical {
			edge.Attr("color", criticalStroke).Attr("penwidth", "2")
		}
	}

	_, err := io.WriteString(w, g.String())
	return err
}
