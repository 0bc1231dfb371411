package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagLimit int
	flagCSV   bool
	flagStats bool
	flagAll   bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Show the high score table for a variant (classic 2048 when omitted).

Examples:
  tui2048 scores
  tui2048 scores 2048_mini --limit 20
  tui2048 scores --stats
  tui2048 scores --all
  tui2048 scores --csv > scores.csv
  tui2048 scores 2048_big --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write every run of the variant as CSV to stdout")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show score statistics for the variant")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Summarize every variant")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the variant's scores and saved runs")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := t2048.Variants[0].ID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !flagAll && !registry.Exists(gameID) {
		return unknownVariant(gameID)
	}

	store := openStore()
	if store == nil {
		return errors.New("scores database unavailable")
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		if err := store.DeleteSaves(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", gameID)
		return nil
	case flagAll:
		return printAllStats(store)
	case flagCSV:
		entries, err := store.AllScores(gameID)
		if err != nil {
			return err
		}
		return storage.ExportCSV(os.Stdout, entries)
	case flagStats:
		return printStats(store, gameID)
	}
	return printTop(store, gameID)
}

func printTop(store *storage.Store, gameID string) error {
	entries, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No scores for %s yet.\n", gameID)
		return nil
	}

	fmt.Printf("High scores for %s:\n\n", gameID)
	fmt.Printf("  %4s  %10s  %6s  %6s  %-9s  %s\n", "Rank", "Score", "Tile", "Moves", "Status", "When")
	fmt.Printf("  %4s  %10s  %6s  %6s  %-9s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, e := range entries {
		fmt.Printf("  %4d  %10s  %6d  %6d  %-9s  %s\n",
			i+1, humanize.Comma(int64(e.Score)), e.MaxTile, e.Moves, e.Status, humanize.Time(e.CreatedAt))
	}
	return nil
}

func printStats(store *storage.Store, gameID string) error {
	entries, err := store.AllScores(gameID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No scores for %s yet.\n", gameID)
		return nil
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	sum := storage.Summarize(entries)

	fmt.Printf("Statistics for %s:\n\n", gameID)
	fmt.Printf("  Runs:         %d\n", stats.GamesCount)
	fmt.Printf("  High score:   %s\n", humanize.Comma(int64(stats.HighScore)))
	fmt.Printf("  Total score:  %s\n", humanize.Comma(int64(stats.TotalScore)))
	fmt.Printf("  Mean:         %.1f\n", sum.Mean)
	fmt.Printf("  Median:       %.1f\n", sum.Median)
	fmt.Printf("  Std dev:      %.1f\n", sum.StdDev)
	fmt.Printf("  Best tile:    %d\n", stats.BestTile)
	fmt.Printf("  Last played:  %s\n", humanize.Time(stats.LastPlayed))

	var tiles []string
	for _, tile := range sum.Tiles() {
		tiles = append(tiles, fmt.Sprintf("%d x%d", tile, sum.TileCounts[tile]))
	}
	fmt.Printf("  Max tiles:    %s\n", strings.Join(tiles, ", "))
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %6s  %10s  %6s  %10s  %s\n", "Variant", "Runs", "Best", "Tile", "Average", "Last played")
	fmt.Printf("  %-14s  %6s  %10s  %6s  %10s  %s\n", "-------", "----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %6d  %10s  %6d  %10.1f  %s\n",
			id, st.GamesCount, humanize.Comma(int64(st.HighScore)), st.BestTile, st.AvgScore, humanize.Time(st.LastPlayed))
	}
	return nil
}
