package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

const (
	Version = "1.0.0"
	Build   = "headless"
)

func main() {
	var (
		help    = flag.Bool("help", false, "Show help information")
		version = flag.Bool("version", false, "Show version information")
		dbFlag  = flag.String("db", "", "postgres:// save store endpoint (or set TACTICA_DB)")
	)
	flag.Parse()

	if *version {
		fmt.Printf("tactica-repl v%s (build %s) - headless area walkthrough\n", Version, Build)
		return
	}

	if *help || len(flag.Args()) == 0 {
		showHelp()
		return
	}

	slot := flag.Args()[0]

	dbEndpoint := *dbFlag
	if dbEndpoint == "" {
		dbEndpoint = os.Getenv("TACTICA_DB")
	}

	cli, err := NewCLI(slot, dbEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize REPL: %v", err)
	}
	defer cli.Close()

	fmt.Printf("tactica-repl - slot %s loaded\n", slot)
	fmt.Println("Type 'help' for available commands, 'quit' to exit")
	fmt.Println("Use up/down arrow keys to navigate command history")

	if len(flag.Args()) > 1 {
		for _, cmd := range flag.Args()[1:] {
			fmt.Printf("> %s\n", cmd)
			result := cli.ExecuteCommand(cmd)
			if result == "quit" {
				return
			}
			fmt.Println(result)
		}
	}

	startREPL(cli)
}

func showHelp() {
	fmt.Printf("tactica-repl v%s - headless area walkthrough\n\n", Version)

	fmt.Println("USAGE:")
	fmt.Println("  tactica-repl <slot> [commands...]")
	fmt.Println()

	fmt.Println("ARGUMENTS:")
	fmt.Println("  slot                 Save slot id to load, or a fresh id to start a new area")
	fmt.Println("  commands             Optional commands to execute before entering the REPL")
	fmt.Println()

	fmt.Println("OPTIONS:")
	fmt.Println("  -help                Show this help")
	fmt.Println("  -version             Show version information")
	fmt.Println("  -db                  postgres:// save store endpoint (or set TACTICA_DB)")
	fmt.Println()

	fmt.Println("COMMANDS:")
	fmt.Println("  move <entity> <x>,<y>   Path an entity to a tile")
	fmt.Println("  target <entity> <x>,<y> Resolve a shape's affected entities at a point")
	fmt.Println("  select <entity>         Select an entity and show its turn state")
	fmt.Println("  end                     Advance the turn queue")
	fmt.Println("  status                  Show area and turn status")
	fmt.Println("  units                   List every entity on the area")
	fmt.Println("  party                   Show party stash contents")
	fmt.Println("  save                    Persist the current state to the slot")
	fmt.Println("  load                    Reload the slot, discarding unsaved changes")
	fmt.Println("  help                    Show command help")
	fmt.Println("  quit                    Exit the REPL")
}

func startREPL(cli *CLI) {
	for {
		line, err := cli.readline.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("error reading input: %v", err)
			break
		}

		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}

		result := cli.ExecuteCommand(command)
		if result == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Println(result)
		fmt.Println()
	}
}
