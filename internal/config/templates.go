package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Spread Trader Configuration

[orders]
# Default order duration: DAY, GOOD_TILL_CANCEL
default_duration = "DAY"
# Default trading session: NORMAL, EXTENDED
default_session = "NORMAL"

[broker]
# Submission mode: "paper"
mode = "paper"
# Attempts for transient submission failures
max_attempts = 3
initial_delay = "500ms"
max_delay = "5s"
backoff_factor = 2.0
# Pause submissions after this many consecutive transient failures (0 disables)
breaker_threshold = 5
breaker_cooldown = "30s"

[store]
# SQLite order journal (defaults to journal.db in the config directory)
# path = ""

[logging]
# Level: debug, info, warn, error
level = "info"
# Log file (defaults to logs/trader.log in the config directory)
# file = ""

[ui]
# Enable colored output
color_enabled = true
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}

// TemplatePath returns where the config file lives for configDir.
func TemplatePath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "config.toml")
}
