package acceptance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Result is the outcome of replaying one fixture.
type Result struct {
	Fixture  Fixture
	Passed   bool
	Failures []string
	Err      error // Engine error, expected or not

	Board      t2048.Grid
	ScoreDelta int
	Status     t2048.Status
}

// String returns a one-line summary, followed by failure details.
func (r Result) String() string {
	var sb strings.Builder
	verdict := "PASS"
	if !r.Passed {
		verdict = "FAIL"
	}
	fmt.Fprintf(&sb, "%s %s %s", verdict, r.Fixture.ID, r.Fixture.Description)
	for _, f := range r.Failures {
		sb.WriteString("\n    ")
		sb.WriteString(strings.ReplaceAll(f, "\n", "\n    "))
	}
	return sb.String()
}

// Run seeds a state with the fixture board, applies the move with the
// scripted spawner and compares the outcome.
func Run(fx Fixture) Result {
	res := Result{Fixture: fx}

	given, err := t2048.GridFromRows(fx.GivenBoard)
	if err != nil {
		return res.fail("given_board: %v", err)
	}
	dir, ok := t2048.ParseDirection(fx.Move)
	if !ok {
		return res.fail("unknown move %q", fx.Move)
	}

	opts := t2048.DefaultOptions()
	opts.Size = given.Size()
	opts.InitialSpawns = 0
	if fx.Rules.WinValue != 0 {
		opts.WinValue = fx.Rules.WinValue
	}
	if fx.Rules.StopOnWin != nil {
		opts.StopOnWin = *fx.Rules.StopOnWin
	}

	start, err := t2048.New(t2048.NoSpawner, t2048.WithOptions(opts))
	if err != nil {
		return res.fail("setup: %v", err)
	}
	start, err = start.WithBoard(given)
	if err != nil {
		return res.fail("setup: %v", err)
	}
	start = start.WithSpawner(t2048.NewScriptSpawner(fx.SpawnScript...))

	next, err := t2048.Move(start, dir)
	res.Err = err

	if !start.Board().Equal(given) || start.Score() != 0 || start.CanUndo() {
		res.Failures = append(res.Failures, "move modified its input state")
	}

	if fx.ExpectError {
		switch {
		case err == nil:
			res.Failures = append(res.Failures, "expected the move to be rejected, got no error")
		case !errors.Is(err, t2048.ErrInvalidPlacement):
			res.Failures = append(res.Failures, fmt.Sprintf("expected an invalid placement error, got %v", err))
		}
		res.Passed = len(res.Failures) == 0
		return res
	}
	if err != nil {
		return res.fail("unexpected error: %v", err)
	}

	res.Board = next.Board()
	res.ScoreDelta = next.Score() - start.Score()
	res.Status = next.Status()

	expect, _ := t2048.GridFromRows(fx.ExpectBoard)
	if !res.Board.Equal(expect) {
		res.Failures = append(res.Failures,
			fmt.Sprintf("board mismatch\ngot:\n%v\nwant:\n%v", res.Board, expect))
	}
	if res.ScoreDelta != fx.ScoreDelta {
		res.Failures = append(res.Failures,
			fmt.Sprintf("score delta = %d, want %d", res.ScoreDelta, fx.ScoreDelta))
	}
	if res.Status.String() != fx.Status {
		res.Failures = append(res.Failures,
			fmt.Sprintf("status = %q, want %q", res.Status, fx.Status))
	}

	res.Passed = len(res.Failures) == 0
	return res
}

// RunAll replays fixtures in order.
func RunAll(fixtures []Fixture) []Result {
	results := make([]Result, len(fixtures))
	for i, fx := range fixtures {
		results[i] = Run(fx)
	}
	return results
}

// Summary counts passed and failed results.
func Summary(results []Result) (passed, failed int) {
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

func (r Result) fail(format string, args ...any) Result {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	r.Passed = false
	return r
}
