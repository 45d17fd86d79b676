// Command gen-manpages writes reference pages for the pertpath command
// tree: roff man pages by default, or Markdown with --markdown for the
// documentation site.
//
// Usage:
//
//	go run ./scripts/gen-manpages [--markdown] [output-dir]
//
// The default output directory is "man/man1", or "docs/cli" with
// --markdown.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/cli"
)

func main() {
	markdown := pflag.Bool("markdown", false, "Write Markdown instead of man pages")
	pflag.Parse()

	outDir := "man/man1"
	if *markdown {
		outDir = "docs/cli"
	}
	if pflag.NArg() > 0 {
		outDir = pflag.Arg(0)
	}

	n, err := run(outDir, *markdown)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("%d pages written to %s/\n", n, outDir)
}

// run generates one page per command into outDir and returns how many
// files it wrote.
func run(outDir string, markdown bool) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir %q: %w", outDir, err)
	}

	root := cli.NewRootCmd()
	root.DisableAutoGenTag = true

	if markdown {
		if err := doc.GenMarkdownTree(root, outDir); err != nil {
			return 0, fmt.Errorf("generating markdown: %w", err)
		}
	} else {
		header := &doc.GenManHeader{
			Title:   "PERTPATH",
			Section: "1",
			Source:  "pertpath",
			Manual:  "pertpath Manual",
		}
		if err := doc.GenManTree(root, header, outDir); err != nil {
			return 0, fmt.Errorf("generating man pages: %w", err)
		}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return 0, fmt.Errorf("listing %q: %w", outDir, err)
	}
	return len(entries), nil
}
