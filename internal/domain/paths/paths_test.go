package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitUnderLaysOutFiles(t *testing.T) {
	root := filepath.Join(t.TempDir(), "state")
	if err := initUnder(root); err != nil {
		t.Fatalf("initUnder: %v", err)
	}

	info, err := os.Stat(ListsDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("lists dir not created: %v", err)
	}

	for name, got := range map[string]string{
		"db":      DBFilePath,
		"log":     LogFilePath,
		"runs":    RunLogFilePath,
		"cookies": CookieFilePath,
		"archive": ArchiveFilePath,
	} {
		if filepath.Dir(got) != root {
			t.Errorf("%s path %q not under %q", name, got, root)
		}
	}
}

func TestInitProgFilesDirsHonoursOverride(t *testing.T) {
	root := filepath.Join(t.TempDir(), "custom")
	t.Setenv("HARVESTER_HOME", root)

	if err := InitProgFilesDirs(); err != nil {
		t.Fatalf("InitProgFilesDirs: %v", err)
	}
	if HomeHarvesterDir != root {
		t.Fatalf("home = %q, want %q", HomeHarvesterDir, root)
	}
}
