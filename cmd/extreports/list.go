package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/extreports/internal/report"
)

type listOptions struct {
	jsonOutput bool
}

type listJSONReport struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the report kinds that can be requested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, report.Builtin(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, registry *report.Registry, opts *listOptions) error {
	descriptors := registry.Descriptors()

	if opts.jsonOutput {
		payload := make([]listJSONReport, len(descriptors))
		for i, d := range descriptors {
			payload[i] = listJSONReport{Kind: string(d.Kind), Description: d.Description}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	if len(descriptors) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No report kinds registered.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "KIND\tDESCRIPTION")
	for _, d := range descriptors {
		fmt.Fprintf(writer, "%s\t%s\n", d.Kind, d.Description)
	}
	return writer.Flush()
}
