package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	flagSimVariant string
	flagSimScript  string
	flagSimJSON    bool
)

var simCmd = &cobra.Command{
	Use:   "sim <moves>",
	Short: "Replay a move sequence without a terminal UI",
	Long: `Apply a sequence of moves to a fresh board and print the result.

Moves are letters (L, R, U, D) or comma separated names
(left,right,up,down). Spawns come from a random spawner seeded with --seed,
or from --spawn-script; once the script runs out no tile is spawned.
Moves that change nothing are reported and skipped.

Examples:
  tui2048 sim LLURD --seed 42
  tui2048 sim left,up,up --variant 2048_mini
  tui2048 sim LR --spawn-script ./opening.yaml --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimVariant, "variant", "2048", "Variant rules to play by")
	simCmd.Flags().StringVar(&flagSimScript, "spawn-script", "", "YAML file of scripted spawns")
	simCmd.Flags().BoolVar(&flagSimJSON, "json", false, "Print the final state as JSON")
}

// parseMoves accepts "LRUD" or "left,right,..." forms.
func parseMoves(s string) ([]t2048.Direction, error) {
	var tokens []string
	if strings.ContainsAny(s, ", ") {
		tokens = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		tokens = strings.Split(s, "")
	}

	dirs := make([]t2048.Direction, 0, len(tokens))
	for _, tok := range tokens {
		d, ok := t2048.ParseDirection(tok)
		if !ok {
			return nil, fmt.Errorf("unknown move %q", tok)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func runSim(_ *cobra.Command, args []string) error {
	dirs, err := parseMoves(args[0])
	if err != nil {
		return err
	}

	v := t2048.GetVariant(flagSimVariant)
	if v == nil {
		return unknownVariant(flagSimVariant)
	}

	var spawner t2048.Spawner
	if flagSimScript != "" {
		script, err := t2048.LoadSpawnScript(flagSimScript)
		if err != nil {
			return err
		}
		spawner = t2048.NewHarnessQueue(script...)
	} else {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Debug("sim seed", "seed", seed)
		spawner = t2048.NewRandomSpawner(rand.New(rand.NewSource(seed)), v.Spawn4)
	}

	state, err := t2048.New(spawner, t2048.WithOptions(v.Options(t2048.DefaultInitialSpawns)))
	if err != nil {
		return err
	}

	for i, d := range dirs {
		next, err := t2048.Move(state, d)
		if err != nil {
			return fmt.Errorf("move %d (%s): %w", i+1, d, err)
		}
		if next.Equal(state) {
			logger.Info("move changed nothing", "n", i+1, "dir", d)
		}
		state = next
		if state.IsOver() {
			break
		}
	}

	if flagSimJSON {
		data, err := t2048.Serialize(state)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	fmt.Println(state.Board())
	fmt.Printf("Score: %d  Status: %s  Max tile: %d\n", state.Score(), state.Status(), state.Board().MaxTile())

	legal := t2048.LegalMoves(state)
	names := make([]string, len(legal))
	for i, d := range legal {
		names[i] = d.String()
	}
	fmt.Printf("Legal moves: %s\n", strings.Join(names, " "))
	return nil
}
