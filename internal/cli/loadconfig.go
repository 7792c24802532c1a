package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/torcrun/torc/internal/config"
)

// LoadConfig reads a FullConfigInternal from a plain JSON fixture at
// path. It reads an already-structured value onto the package's
// defaults, never a `.ts`/`.js`/`.yaml` configuration language.
func LoadConfig(path string) (config.FullConfigInternal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.FullConfigInternal{}, fmt.Errorf("cli: read config %s: %w", path, err)
	}
	cfg := config.Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return config.FullConfigInternal{}, fmt.Errorf("cli: parse config %s: %w", path, err)
	}
	return cfg, nil
}
