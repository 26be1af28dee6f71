package main

import (
	"fmt"
	"os"

	"workbench.dev/cli/internal/interfaces/cli"
)

func main() {
	configPath, debug := globalFlags(os.Args[1:])

	container, err := cli.NewContainer(configPath, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli.Execute(container)
}

// globalFlags pre-parses the persistent flags the container needs before
// cobra runs; cobra parses them again for help output.
func globalFlags(args []string) (configPath string, debug bool) {
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--debug":
			debug = true
		case args[i] == "--config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case len(args[i]) > len("--config=") && args[i][:len("--config=")] == "--config=":
			configPath = args[i][len("--config="):]
		}
	}
	return configPath, debug
}
