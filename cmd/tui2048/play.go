package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var (
	flagDifficulty  string
	flagSpawnScript string
	flagResume      bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (classic 2048 when omitted).

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U/Z              - Undo
  Y/Ctrl+R         - Redo
  P                - Pause
  R                - Restart
  Ctrl+S           - Save the run for --resume
  ?                - Toggle full help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer 4s, progression from the lowest level
  normal - Progression starts at 30%
  hard   - More 4s, three starting tiles, progression from 70%
  fixed  - No progression, config's initial level

A spawn script is a YAML list of {row, col, value} entries placed in order
before normal spawning takes over; it makes a run fully reproducible.

Examples:
  tui2048 play
  tui2048 play 2048_mini --difficulty easy
  tui2048 play 2048_custom --config ./my-2048.yaml
  tui2048 play --spawn-script ./opening.yaml
  tui2048 play --resume`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSpawnScript, "spawn-script", "", "YAML file of scripted spawns")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the last saved run of this variant")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := t2048.Variants[0].ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return unknownVariant(gameID)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}

	if flagConfig != "" {
		if _, err := config.LoadT2048(flagConfig); err != nil {
			return err
		}
	}

	if flagSpawnScript != "" {
		script, err := t2048.LoadSpawnScript(flagSpawnScript)
		if err != nil {
			return err
		}
		t2048.SetSpawnScript(script)
		logger.Debug("loaded spawn script", "path", flagSpawnScript, "entries", len(script))
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	if flagResume && store == nil {
		return errors.New("--resume needs the scores database")
	}

	m, err := tui.NewModelFromMenu(store, tui.MenuResult{
		GameID:     gameID,
		Difficulty: flagDifficulty,
		Resume:     flagResume,
		Config:     runtimeConfig(),
	})
	if err != nil {
		return err
	}

	logger.Debug("starting game", "variant", gameID, "run", m.RunID())
	if _, err := tui.RunModel(m.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
