package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every registered variant with its board size and target tile.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "ID", "Title", "Rules")
	fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-18s  %s\n", maxIDLen, g.ID, g.Title, rulesOf(g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'tui2048 play <id>' to play a variant.")
}

// rulesOf describes a variant's board and target.
func rulesOf(id string) string {
	v := t2048.GetVariant(id)
	if v == nil {
		return "from config (custom section)"
	}
	rules := fmt.Sprintf("%dx%d, target %d", v.Size, v.Size, v.Target)
	if !v.StopOnWin {
		rules += ", keeps going after the target"
	}
	return rules
}

func unknownVariant(id string) error {
	ids := append(t2048.VariantIDs(), t2048.CustomVariantID)
	return fmt.Errorf("unknown variant %q (choose from: %s)", id, strings.Join(ids, ", "))
}
