package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/fieldbench/internal/workload"
)

// workloadsCmd lists the catalog
var workloadsCmd = &cobra.Command{
	Use:   "workloads",
	Short: "List the available workloads",
	Long:  `Lists every field access variant in catalog order. Names can be passed to --workloads.`,
	RunE:  runWorkloads,
}

func init() {
	rootCmd.AddCommand(workloadsCmd)
}

func runWorkloads(cmd *cobra.Command, args []string) error {
	depth := v.GetInt("max_alias_depth")
	catalog := workload.Catalog(depth)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Name", "Description", "Returns")
	for _, variant := range catalog {
		if err := table.Append([]string{variant.Name, variant.Description, fmt.Sprintf("%q", variant.Fn())}); err != nil {
			return err
		}
	}
	return table.Render()
}
