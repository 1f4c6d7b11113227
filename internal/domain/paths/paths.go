// Package paths initializes Harvester's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"harvester/internal/domain/consts"
)

const (
	hDir            = ".harvester"
	listsDir        = "lists"
	hDBFile         = "harvester.db"
	harvesterLog    = "harvester.log"
	runLogFile      = "runs.log"
	cookieFile      = "cookies.txt"
	archiveFile     = "archive.txt"
	homeEnvOverride = "HARVESTER_HOME"
)

// File and directory path strings.
var (
	HomeHarvesterDir string
	ListsDir         string
	DBFilePath       string
	LogFilePath      string
	RunLogFilePath   string
	CookieFilePath   string
	ArchiveFilePath  string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
//
// HARVESTER_HOME replaces ~/.harvester when set.
func InitProgFilesDirs() error {
	HomeHarvesterDir = os.Getenv(homeEnvOverride)
	if HomeHarvesterDir == "" {
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.New("failed to get home directory")
		}
		HomeHarvesterDir = filepath.Join(userHomeDir, hDir)
	}
	return initUnder(HomeHarvesterDir)
}

// initUnder lays out all program files beneath root.
func initUnder(root string) error {
	HomeHarvesterDir = root
	if err := os.MkdirAll(HomeHarvesterDir, consts.PermsHomeProgDir); err != nil {
		return fmt.Errorf("failed to make directories: %w", err)
	}

	ListsDir = filepath.Join(HomeHarvesterDir, listsDir)
	if err := os.MkdirAll(ListsDir, consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to make lists directory: %w", err)
	}

	// Main files
	DBFilePath = filepath.Join(HomeHarvesterDir, hDBFile)
	LogFilePath = filepath.Join(HomeHarvesterDir, harvesterLog)
	RunLogFilePath = filepath.Join(HomeHarvesterDir, runLogFile)
	CookieFilePath = filepath.Join(HomeHarvesterDir, cookieFile)
	ArchiveFilePath = filepath.Join(HomeHarvesterDir, archiveFile)
	return nil
}
