package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/peregrine-lang/peregrine/internal"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	traceFlag   = flag.Bool("trace", false, "log one line per statement/scope event")
	noColorFlag = flag.Bool("no-color", false, "disable colorized diagnostics")
	astFlag     = flag.Bool("ast", false, "print the parsed statement tree to stderr after the run")
)

func main() {
	flag.Parse()
	args := flag.Args()

	switch {
	case len(args) == 0:
		runPrompt()
	case len(args) == 1:
		os.Exit(runFile(args[0]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: peregrine [script]")
		os.Exit(64)
	}
}

func colorEnabled() bool {
	if *noColorFlag {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func logger() *logrus.Logger {
	log := logrus.New()
	if *traceFlag {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.PanicLevel)
	}
	return log
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result := internal.RunSource(string(source), internal.RunOptions{
		Logger:       logger(),
		ColorEnabled: colorEnabled(),
	})

	if *astFlag {
		fmt.Fprint(os.Stderr, internal.PrintTreeFor(result))
	}

	switch {
	case result.HadError:
		return 65
	case result.HadRuntimeError:
		return 70
	default:
		return 0
	}
}

// replPrinter writes each printed line in cyan when color is enabled,
// per SPEC_FULL.md §10.2 ("the REPL's echoed value prints in cyan").
type replPrinter struct {
	enabled bool
}

func (p replPrinter) Println(a ...interface{}) (int, error) {
	if p.enabled {
		return fmt.Println(color.Cyan(fmt.Sprint(a...)))
	}
	return fmt.Println(a...)
}

// runPrompt is the REPL (spec.md §6's zero-argument mode): errors
// never exit, and a bare expression statement echoes its value, the
// jlox-book convenience described in SPEC_FULL.md §12.
func runPrompt() {
	scanner := bufio.NewScanner(os.Stdin)
	enabled := colorEnabled()
	printer := replPrinter{enabled: enabled}

	for {
		if enabled {
			fmt.Print(color.Green("> "))
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		result := internal.RunSource(line, internal.RunOptions{
			Printer:      printer,
			Logger:       logger(),
			ColorEnabled: enabled,
			REPL:         true,
		})

		if *astFlag {
			fmt.Fprint(os.Stderr, internal.PrintTreeFor(result))
		}
	}
}
