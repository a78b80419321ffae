package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger   Logger   `yaml:"logger"`
	Resolver Resolver `yaml:"resolver"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Resolver holds the defaults fed into every constructed rebaser: candidate
// root directories for artifact base substitution, an optional override of
// the platform case policy and the stat cache size.
type Resolver struct {
	URIBases        []string `yaml:"uri_bases"`
	CaseInsensitive *bool    `yaml:"case_insensitive"`
	StatCacheSize   int      `yaml:"stat_cache_size"`
}

func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the YAML config at the given path. A missing file is not
// an error: the zero config with defaults applies.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}
	if err := LoadYAML(configPath, &config); err != nil {
		return nil, err
	}

	return config, nil
}
