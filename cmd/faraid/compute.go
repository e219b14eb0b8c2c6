package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
)

// caseFile is the YAML shape of one offline estate case.
type caseFile struct {
	EstateValue float64 `yaml:"estate_value"`
	Heirs       []struct {
		Name  string `yaml:"name"`
		Count int    `yaml:"count"`
	} `yaml:"heirs"`
}

// computeCmd runs estate computations offline against case files,
// without NATS or a running service.
func computeCmd() *cobra.Command {
	var (
		catalogPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "compute <case.yaml>...",
		Short: "Compute estate distributions from case files",
		Long: `Compute runs the inheritance engine against one or more YAML case
files and prints the resulting distribution. Arguments may be glob
patterns ('**' is supported), so whole directories of cases can be
batch-computed:

  faraid compute cases/basic.yaml
  faraid compute 'cases/**/*.yaml' --json

A case file has the shape:

  estate_value: 120000
  heirs:
    - name: wife
      count: 1
    - name: son
      count: 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(args, catalogPath, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML rule catalog (default: built-in catalog)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit reports as JSON")

	return cmd
}

func runCompute(patterns []string, catalogPath string, jsonOutput bool) error {
	snap, err := resolveCatalog(catalogPath)
	if err != nil {
		return err
	}

	paths, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no case files match %v", patterns)
	}

	failures := 0
	for _, path := range paths {
		if err := computeCase(path, snap, jsonOutput); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d case(s) failed", failures, len(paths))
	}
	return nil
}

// resolveCatalog loads the catalog file when given, otherwise the
// built-in default.
func resolveCatalog(path string) (*engine.Snapshot, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	snap, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return snap, nil
}

// expandPatterns resolves glob patterns to a sorted, deduplicated file list.
// Non-glob arguments pass through so missing files are reported per case.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if matches == nil {
			matches = []string{pattern}
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

func computeCase(path string, snap *engine.Snapshot, jsonOutput bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parse case: %w", err)
	}

	input := engine.Input{EstateValue: cf.EstateValue}
	for _, h := range cf.Heirs {
		input.Heirs = append(input.Heirs, engine.Heir{Name: h.Name, Count: h.Count})
	}

	report, err := engine.Compute(input, snap)
	if err != nil {
		return err
	}

	if jsonOutput {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	printReport(path, report)
	return nil
}

func printReport(path string, report *engine.Report) {
	fmt.Printf("%s (estate %.2f, status %s)\n", path, report.EstateValue, report.Status)
	for _, share := range report.Shares {
		fmt.Printf("  %-22s x%-3d %-14s %8s  %12.2f\n",
			share.Name,
			share.Count,
			share.Status,
			share.Fraction.String(),
			share.Amount)
	}
	fmt.Printf("  %-22s %22s %8s\n", "total", "", report.TotalFraction.String())
}
