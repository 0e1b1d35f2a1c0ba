// Command fuzzysync-demo runs Fuzzy Sync's end-to-end scenarios and
// records their outcomes to a CSV file.
//
// Usage:
//
//	fuzzysync-demo --scenario aligned -f out.csv
//	fuzzysync-demo --scenario all
//	fuzzysync-demo --list
//
// Each scenario drives a Pair through its configured windows (or, for the
// "winner" scenario, a genuinely racy shared variable) and records one CSV
// row per iteration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	_ "go.uber.org/automaxprocs/maxprocs"
)

const version = "0.1.0"

func main() {
	var (
		csvPath      = pflag.StringP("csv", "f", "", "CSV output path (default: generated fuzzysync-<uuid>.csv)")
		scenarioName = pflag.String("scenario", "aligned", "scenario to run, or \"all\"")
		scenarioFile = pflag.String("scenario-file", "", "YAML file overriding the built-in scenario table")
		list         = pflag.Bool("list", false, "list available scenarios and exit")
		showVersion  = pflag.BoolP("version", "v", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Printf("fuzzysync-demo version %s\n", version)
		return
	}

	scenarios, err := loadScenarios(*scenarioFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	if *list {
		for _, s := range scenarios {
			fmt.Println(s.Name)
		}
		return
	}

	var toRun []scenario
	if *scenarioName == "all" {
		toRun = scenarios
	} else {
		s, ok := byName(scenarios, *scenarioName)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q (use --list to see available scenarios)\n", *scenarioName)
			os.Exit(1)
		}
		toRun = []scenario{s}
	}

	path := *csvPath
	if path == "" {
		path = defaultCSVPath()
	}
	rec, err := newRecorder(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer rec.close()

	pr := newProgress()
	for _, s := range toRun {
		if err := runScenario(s, rec, pr); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scenario %q: %v\n", s.Name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("wrote %s\n", path)
}
