// Command igordump loads a packed experiment file and prints its tree.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-igor/igor"
)

var (
	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	waveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Faint(true)
)

func main() {
	var (
		verbose = flag.Bool("v", false, "Log each record while decoding")
		unknown = flag.Bool("unknown", false, "Keep records with unknown type codes")
		plain   = flag.Bool("plain", false, "Unstyled output")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: igordump [-v] [-unknown] [-plain] <experiment.pxp>")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		igor.SetLogger(log)
	}

	if err := run(flag.Arg(0), *unknown, *plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, keepUnknown, plain bool) error {
	var opts []igor.Option
	if keepUnknown {
		opts = append(opts, igor.WithUnknownRecords())
	}

	root, err := igor.Load(path, opts...)
	if err != nil {
		return err
	}

	if plain {
		fmt.Println(root.Format(0))
		return nil
	}

	printFolder(root, 0)
	return nil
}

func printFolder(f *igor.Folder, indent int) {
	fmt.Println(strings.Repeat(" ", indent) + folderStyle.Render(f.Name()))
	for _, rec := range f.Children {
		switch r := rec.(type) {
		case *igor.Folder:
			printFolder(r, indent+2)
		case *igor.Wave:
			line := strings.TrimLeft(r.Format(0), " ")
			fmt.Println(strings.Repeat(" ", indent+2) + waveStyle.Render(line))
		default:
			line := strings.TrimLeft(rec.Format(0), " ")
			fmt.Println(strings.Repeat(" ", indent+2) + dimStyle.Render(line))
		}
	}
}
