// Package config loads YAML configuration files for the command-line
// tools.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-bessel2/projection"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path into v after substituting ${VAR} and
// ${VAR:-default} with environment values.
func Load(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), v); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Save writes v to path as YAML.
func Save(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Tabulation is the file layout read by the jtab tool.
type Tabulation struct {
	Projection projection.Config `yaml:"projection"`
	Log        Log               `yaml:"log"`
}

// Log selects the tool logger.
type Log struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths,omitempty"`
}

// Default returns the defaults that a file overrides.
func Default() Tabulation {
	return Tabulation{
		Projection: projection.DefaultConfig(),
		Log:        Log{Level: "info", Encoding: "console"},
	}
}

// LoadTabulation reads path on top of Default. An empty path returns the
// defaults unchanged. The projection settings are not validated here.
func LoadTabulation(path string) (Tabulation, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	if err := Load(path, &t); err != nil {
		return Tabulation{}, err
	}
	return t, nil
}

// substituteEnvVars replaces ${NAME} with the value of NAME and
// ${NAME:-fallback} with fallback when NAME is unset or empty.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		name, fallback, hasFallback := strings.Cut(content[start+2:end], ":-")
		value := os.Getenv(name)
		if value == "" && hasFallback {
			value = fallback
		}
		b.WriteString(content[:start])
		b.WriteString(value)
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
