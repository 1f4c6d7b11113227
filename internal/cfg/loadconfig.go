package cfg

import (
	"fmt"
	"os"

	"harvester/internal/utils/logging"

	"github.com/spf13/viper"
)

// loadConfigFile merges a config file into Viper. Flags set on the command line still win.
func loadConfigFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed check for config file path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory, should be a file", path)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed loading config file %q: %w", path, err)
	}
	logging.D(1, "Loaded config file %q", path)
	return nil
}
