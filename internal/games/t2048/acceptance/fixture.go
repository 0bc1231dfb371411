// Package acceptance replays the 2048 engine acceptance fixtures: a seeded
// board, one move and a spawn script, checked against the expected board,
// score delta and status.
package acceptance

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

//go:embed fixtures/*.yaml
var builtinFS embed.FS

// Rules overrides the engine defaults for one fixture.
type Rules struct {
	Size      int   `yaml:"size,omitempty"`
	WinValue  int   `yaml:"win_value,omitempty"`
	StopOnWin *bool `yaml:"stop_on_win,omitempty"`
}

// Fixture is one acceptance case.
type Fixture struct {
	ID          string            `yaml:"id"`
	Description string            `yaml:"description"`
	Rules       Rules             `yaml:"rules,omitempty"`
	GivenBoard  [][]int           `yaml:"given_board"`
	Move        string            `yaml:"move"`
	SpawnScript []t2048.Placement `yaml:"spawn_script"`
	ExpectBoard [][]int           `yaml:"expect_board,omitempty"`
	ScoreDelta  int               `yaml:"score_delta"`
	Status      string            `yaml:"status,omitempty"`
	ExpectError bool              `yaml:"expect_error,omitempty"`
	FilePath    string            `yaml:"-"`
}

// Parse decodes and validates a single YAML fixture.
func Parse(data []byte) (Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixture{}, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return Fixture{}, err
	}
	return fx, nil
}

// Validate checks that the fixture is self-consistent.
func (fx Fixture) Validate() error {
	if fx.ID == "" {
		return fmt.Errorf("fixture: missing id")
	}
	if _, ok := t2048.ParseDirection(fx.Move); !ok {
		return fmt.Errorf("fixture %s: unknown move %q", fx.ID, fx.Move)
	}
	given, err := t2048.GridFromRows(fx.GivenBoard)
	if err != nil {
		return fmt.Errorf("fixture %s: given_board: %w", fx.ID, err)
	}
	if fx.Rules.Size != 0 && fx.Rules.Size != given.Size() {
		return fmt.Errorf("fixture %s: rules.size %d does not match a %dx%d board",
			fx.ID, fx.Rules.Size, given.Size(), given.Size())
	}
	if fx.ExpectError {
		return nil
	}
	expect, err := t2048.GridFromRows(fx.ExpectBoard)
	if err != nil {
		return fmt.Errorf("fixture %s: expect_board: %w", fx.ID, err)
	}
	if expect.Size() != given.Size() {
		return fmt.Errorf("fixture %s: expect_board is %dx%d, given_board is %dx%d",
			fx.ID, expect.Size(), expect.Size(), given.Size(), given.Size())
	}
	if _, ok := t2048.ParseStatus(fx.Status); !ok {
		return fmt.Errorf("fixture %s: unknown status %q", fx.ID, fx.Status)
	}
	return nil
}

// LoadFile loads a single fixture file.
func LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	fx, err := Parse(data)
	if err != nil {
		return Fixture{}, fmt.Errorf("%s: %w", path, err)
	}
	fx.FilePath = path
	return fx, nil
}

// LoadDir loads every .yaml/.yml fixture under dir, sorted by ID.
// Unlike the built-in set, a malformed file is an error.
func LoadDir(dir string) ([]Fixture, error) {
	return loadFS(os.DirFS(dir), dir)
}

// Builtin returns the fixtures compiled into the binary.
func Builtin() ([]Fixture, error) {
	sub, err := fs.Sub(builtinFS, "fixtures")
	if err != nil {
		return nil, err
	}
	return loadFS(sub, "fixtures")
}

func loadFS(fsys fs.FS, root string) ([]Fixture, error) {
	var fixtures []Fixture

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		fx, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Join(root, path), err)
		}
		fx.FilePath = filepath.Join(root, path)
		fixtures = append(fixtures, fx)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading fixtures from %s: %w", root, err)
	}

	// Sort by ID for determinism
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].ID < fixtures[j].ID
	})
	return fixtures, nil
}
