package sat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ConfigFile is the name of the configuration file looked up next to the executables
const ConfigFile = "config.json"

// Executables used when the configuration does not name one, they are resolved through PATH
var defaultExecutables = map[string]string{
	"cadical":       "cadical",
	"kissat":        "kissat",
	"cryptominisat": "cryptominisat5",
}

type Config struct {
	DefaultSolver string            `mapstructure:"defaultSolver"`
	Executables   map[string]string `mapstructure:"executables"`
}

func DefaultConfig() Config {
	return Config{
		DefaultSolver: DefaultSolver,
		Executables:   map[string]string{},
	}
}

// LoadConfig reads a JSON configuration file. A missing file yields the default configuration
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return Config{}, fmt.Errorf("cannot read config file %v: %w", path, err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	if err := mapstructure.Decode(inputJson, &config); err != nil {
		return Config{}, fmt.Errorf("invalid config file %v: %w", path, err)
	}
	if config.DefaultSolver == "" {
		config.DefaultSolver = DefaultSolver
	}
	if config.Executables == nil {
		config.Executables = map[string]string{}
	}

	return config, nil
}

// Executable returns the path of the executable backing a solver
func (config Config) Executable(solver string) string {
	if path, ok := config.Executables[solver]; ok && path != "" {
		return path
	}
	return defaultExecutables[solver]
}
