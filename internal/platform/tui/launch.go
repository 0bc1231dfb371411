package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// NewModelFromMenu builds the game model for a menu selection: it creates
// the variant, applies the chosen difficulty and attaches the latest save
// when the user asked to continue.
func NewModelFromMenu(store *storage.Store, res MenuResult) (Model, error) {
	game, err := registry.Create(res.GameID)
	if err != nil {
		return Model{}, err
	}

	if res.Difficulty != "" {
		d, ok := game.(difficultySetter)
		if !ok {
			return Model{}, fmt.Errorf("tui: %s has no difficulty presets", res.GameID)
		}
		if err := d.SetDifficulty(res.Difficulty); err != nil {
			return Model{}, err
		}
	}

	m := NewModel(game, store, res.Config)
	if !res.Resume || store == nil {
		return m, nil
	}

	save, err := store.LatestSave(res.GameID)
	if err != nil {
		return Model{}, err
	}
	if save != nil {
		m = m.WithResume(save)
	}
	return m, nil
}
