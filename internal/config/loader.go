package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search path.
const FileName = "battlefield.yaml"

// Load reads the battlefield configuration.
// Priority: customPath > ~/.battlefield/configs/battlefield.yaml >
// configs/battlefield.yaml > embedded default.
func Load(customPath string) (File, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return File{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return Parse(data, customPath)
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if f, err := Parse(data, userCfgPath); err == nil {
				return f, nil
			}
		}
	}

	local := filepath.Join("configs", FileName)
	if data, err := os.ReadFile(local); err == nil {
		if f, err := Parse(data, local); err == nil {
			return f, nil
		}
	}

	f, err := Parse(defaultYAML, "embedded default")
	if err != nil {
		return DefaultFile(), nil // Fallback to hardcoded if embed fails
	}
	return f, nil
}

// Parse decodes a configuration file. name is only used in errors.
// Fields absent from data keep the DefaultFile values, except the tank
// list, which is replaced whenever the file has one.
func Parse(data []byte, name string) (File, error) {
	f := DefaultFile()
	f.Tanks = nil
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	if f.Tanks == nil {
		f.Tanks = DefaultFile().Tanks
	}
	return f, nil
}

// Write saves f as YAML at path, creating parent directories.
func Write(path string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to a user config file in ~/.battlefield/configs/.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".battlefield", "configs", filename)
}
