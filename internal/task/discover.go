package task

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/logging"
	"github.com/GuilhermmeDev/pert-path-visualizer/internal/schedule"
)

// maxParallelParse bounds the number of files parsed concurrently.
const maxParallelParse = 8

// ExpandPatterns resolves each pattern to file paths. Patterns may use
// doublestar syntax ("plans/**/*.csv"). A pattern without glob
// metacharacters is kept as a literal path even if it does not exist, so
// a missing file is reported when it is read. The result is sorted and
// deduplicated; a glob that matches nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				paths = append(paths, pattern)
			}
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// LoadFiles expands patterns and parses every matched file concurrently,
// returning the tasks of all files concatenated in sorted path order. A
// task ID defined in two different files is an error naming both.
func LoadFiles(ctx context.Context, patterns []string) ([]schedule.Task, error) {
	paths, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no task files given")
	}

	logger := logging.New("task")
	results := make([][]schedule.Task, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelParse)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tasks, err := ParseFile(path)
			if err != nil {
				return err
			}
			logger.Debug("parsed task file", "path", path, "tasks", len(tasks))
			results[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	owner := make(map[string]string)
	var merged []schedule.Task
	for i, tasks := range results {
		for _, t := range tasks {
			// Duplicates inside one file are left for schedule.Validate.
			if first, dup := owner[t.ID]; dup && first != paths[i] {
				return nil, fmt.Errorf("duplicate task ID %q found in %q and %q", t.ID, first, paths[i])
			}
			owner[t.ID] = paths[i]
			merged = append(merged, t)
		}
	}
	return merged, nil
}
