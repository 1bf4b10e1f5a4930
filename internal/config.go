package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig holds defaults loaded from a YAML file. Command line flags win
// over anything set here.
type FileConfig struct {
	Pattern    string   `yaml:"pattern"`
	Dir        string   `yaml:"dir"`
	Regex      bool     `yaml:"regex"`
	Extensions []string `yaml:"extensions"`
	Threads    int      `yaml:"threads"`
	Depth      int      `yaml:"depth"`
	Archives   bool     `yaml:"archives"`
	Encoding   string   `yaml:"encoding"`
	LogLevel   string   `yaml:"log_level"`
	LogFile    string   `yaml:"log_file"`
	Color      string   `yaml:"color"`
}

// LoadConfig reads a YAML defaults file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
