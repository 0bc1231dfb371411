package t2048

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// spawnScriptFile is the mapping form of a spawn script file. Acceptance
// fixtures use the same key, so a fixture can be replayed as a script.
type spawnScriptFile struct {
	Spawns []Placement `yaml:"spawn_script"`
}

// ParseSpawnScript decodes a YAML spawn script. Both a bare list of
// {row, col, value} entries and a mapping with a spawn_script key are
// accepted. Values are checked later, when the engine places the tile.
func ParseSpawnScript(data []byte) ([]Placement, error) {
	var list []Placement
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var file spawnScriptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing spawn script: %w", err)
	}
	return file.Spawns, nil
}

// LoadSpawnScript reads a spawn script from path.
func LoadSpawnScript(path string) ([]Placement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spawn script %s: %w", path, err)
	}
	entries, err := ParseSpawnScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
