// Command pertpath computes critical path schedules for task lists.
package main

import (
	"os"

	"github.com/GuilhermmeDev/pert-path-visualizer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
