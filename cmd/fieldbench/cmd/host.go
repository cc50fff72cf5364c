package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/fieldbench/internal/hostinfo"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Show the host fingerprint attached to reports",
	Long:  `Detects CPU, memory and Go runtime details. Timings are only comparable between runs on the same fingerprint.`,
	RunE:  runHost,
}

func init() {
	rootCmd.AddCommand(hostCmd)
}

func runHost(cmd *cobra.Command, args []string) error {
	info, err := hostinfo.Detect()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	out := cmd.OutOrStdout()
	if v.GetString("output") == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	table := tablewriter.NewWriter(out)
	table.Header("Property", "Value")
	table.Append([]string{"CPU", info.CPUModel})
	table.Append([]string{"Cores", fmt.Sprintf("%d", info.CPUCores)})
	table.Append([]string{"Threads", fmt.Sprintf("%d", info.CPUThreads)})
	table.Append([]string{"RAM", hostinfo.FormatRAM(info.RAMBytes)})
	table.Append([]string{"OS", fmt.Sprintf("%s/%s", info.OS, info.Architecture)})
	table.Append([]string{"Go", info.GoVersion})
	table.Append([]string{"GOMAXPROCS", fmt.Sprintf("%d", info.GOMAXPROCS)})
	return table.Render()
}
