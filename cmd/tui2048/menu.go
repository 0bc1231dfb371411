package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a board, Left/Right to change difficulty and
Enter to play. C continues a saved run. Esc during a game returns here.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  Enter/Space   - Play
  C             - Continue saved run
  Tab           - Scoreboard
  Q             - Quit

Examples:
  tui2048 menu
  tui2048 menu --fps 60
  tui2048 menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		// Fresh seed for each game unless one was fixed on the command line
		if flagSeed == 0 {
			menuResult.Config.Seed = time.Now().UnixNano()
		}

		m, err := tui.NewModelFromMenu(store, menuResult)
		if err != nil {
			logger.Error("cannot start game", "variant", menuResult.GameID, "error", err)
			continue
		}

		final, err := tui.RunModel(m.WithBackToMenu().WithLogger(logger))
		if err != nil {
			return err
		}
		if !final.BackToMenu() {
			return nil
		}
	}
}
