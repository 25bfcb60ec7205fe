package settings

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger    Logger    `mapstructure:"logger" yaml:"logger"`
	Allocator Allocator `mapstructure:"allocator" yaml:"allocator"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	FileLogName string `mapstructure:"file_log_name" yaml:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Allocator selects the memory backend for blob containers
type Allocator struct {
	Kind        string `mapstructure:"kind" yaml:"kind"`                 // heap, pooled or mmap
	MemoryLimit int64  `mapstructure:"memory_limit" yaml:"memory_limit"` // Bytes, 0 means unlimited
	CountCalls  bool   `mapstructure:"count_calls" yaml:"count_calls"`
}

// Load reads a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "settings: read %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "settings: decode")
	}
	return &cfg, nil
}
