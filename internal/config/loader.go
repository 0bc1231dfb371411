package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory under $HOME holding configs, the
// scores database and the SSH host key.
const AppDirName = ".tui2048"

// LoadT2048 loads the 2048 configuration.
// Search order: customPath -> ~/.tui2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	cfg := DefaultT2048Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("t2048.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			fileCfg := DefaultT2048Config()
			if err := yaml.Unmarshal(data, &fileCfg); err == nil {
				return fileCfg, fileCfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/t2048.yaml"); err == nil {
		fileCfg := DefaultT2048Config()
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			return fileCfg, fileCfg.Validate()
		}
	}

	// Use embedded default YAML
	embedded := DefaultT2048Config()
	if err := yaml.Unmarshal(GetDefaultYAML("t2048"), &embedded); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// Validate rejects values the engine or spawner cannot work with.
func (c T2048Config) Validate() error {
	if c.Custom.Size < 2 {
		return fmt.Errorf("config: custom.size must be at least 2, got %d", c.Custom.Size)
	}
	if c.Custom.WinValue < 4 || c.Custom.WinValue&(c.Custom.WinValue-1) != 0 {
		return fmt.Errorf("config: custom.win_value must be a power of two >= 4, got %d", c.Custom.WinValue)
	}
	if c.Spawn.Initial < 0 {
		return fmt.Errorf("config: spawn.initial must not be negative, got %d", c.Spawn.Initial)
	}
	if c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1 {
		return fmt.Errorf("config: spawn.four_probability must be within [0, 1], got %g", c.Spawn.FourProbability)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "moves", "none":
	default:
		return fmt.Errorf("config: unknown difficulty.progression.type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName, "configs", filename)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust spawning based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.FourProbability = 0.05
		cfg.Spawn.Initial = 2
	case DifficultyHard:
		cfg.Spawn.FourProbability = 0.20
		cfg.Spawn.Initial = 3
	}
}
