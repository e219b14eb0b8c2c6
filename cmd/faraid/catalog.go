package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
)

// catalogCmd groups rule catalog inspection subcommands.
func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate rule catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <catalog.yaml>",
		Short: "Validate a YAML rule catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: ok (%d heir types, %d rules)\n",
				args[0], snap.TypeCount(), len(snap.Rules()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [catalog.yaml]",
		Short: "Print the heir types and rules of a catalog",
		Long: `Show prints the resolved heir types and conditional rules of the
given catalog file, or of the built-in default catalog when no file is
given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				snap *engine.Snapshot
				err  error
			)
			if len(args) == 1 {
				snap, err = catalog.LoadFile(args[0])
				if err != nil {
					return err
				}
			} else {
				snap = catalog.Default()
			}
			printCatalog(snap)
			return nil
		},
	})

	return cmd
}

func printCatalog(snap *engine.Snapshot) {
	fmt.Println("Heir types:")
	for _, t := range snap.HeirTypes() {
		if t.DefaultShare != nil {
			fmt.Printf("  %-22s %-12s %s\n", t.Name, t.Classification, t.DefaultShare.String())
		} else {
			fmt.Printf("  %-22s %-12s\n", t.Name, t.Classification)
		}
	}

	fmt.Println("Rules:")
	for _, r := range snap.Rules() {
		switch r.Kind {
		case engine.RuleExclusion:
			fmt.Printf("  %-22s excluded by %s\n", r.Primary, r.Condition)
		case engine.RuleReduction:
			fmt.Printf("  %-22s reduced to %s by %s\n", r.Primary, r.ReducedShare.String(), r.Condition)
		}
	}
}
