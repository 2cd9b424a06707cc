package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Tail returns at most maxLines from the end of the file at path, oldest
// first. A missing file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return lines, nil
}

// Level returns the level label of a console-format line ("DEBUG", "INFO",
// "WARN" or "ERROR"), or "" when the line has none.
func Level(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	switch fields[1] {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return fields[1]
	default:
		return ""
	}
}
