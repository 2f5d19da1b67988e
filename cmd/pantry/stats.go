// Statistics commands report aggregate inventory and waste figures.
package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var wasteStats bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	Long: `Stats reports aggregate inventory figures: total value, entity counts,
low stock and expiry counts. With --waste, expiry-focused waste figures
are shown instead.`,
	RunE: runStats,
}

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Show the total inventory value",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%.2f\n", repo.TotalInventoryValue())
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&wasteStats, "waste", false, "show waste statistics")
}

func runStats(cmd *cobra.Command, args []string) error {
	stats := repo.InventoryStatistics()
	if wasteStats {
		stats = repo.WasteStatistics()
	}

	if jsonOutput {
		return printJSON(stats)
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%g\n", key, stats[key])
	}
	w.Flush()
	return nil
}
