// Package file contains list file, run log and other on-disk helpers.
package file

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"harvester/internal/domain/consts"
	"harvester/internal/utils/logging"
)

// ReadFileLines loads lines from a file, skipping blank and '#' comment lines.
func ReadFileLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.E("failed to close file %v due to error: %v", path, err)
		}
	}()

	lines := []string{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, consts.CommentPrefix) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading %q: %w", path, err)
	}
	return lines, nil
}
