package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ownlint/internal/decl"
	"ownlint/internal/diag"
	"ownlint/internal/diagfmt"
	"ownlint/internal/ownership"
)

var graphCmd = &cobra.Command{
	Use:   "graph [flags] <doc>",
	Short: "Dump the ownership graph of a declaration document",
	Long: `Build the ownership graph for one declaration document and print its
nodes, edges and declared mutual-ownership clusters. Useful for debugging
annotations before reading the diagnostics.`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().String("format", "text", "output format (text|json)")
}

func runGraph(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be text or json)", format)
	}

	decls, err := decl.Load(args[0])
	if err != nil {
		return err
	}
	res, err := ownership.Check(decls, ownership.Options{Reporter: diag.NopReporter{}})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.GraphJSON(out, &res)
	}

	colorMode, _ := cmd.Flags().GetString("color")
	diagfmt.GraphText(out, &res, diagfmt.GraphOpts{Color: colorEnabled(colorMode, os.Stdout)})
	return nil
}
