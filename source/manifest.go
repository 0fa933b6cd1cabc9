package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var manifestLineRegexp = regexp.MustCompile(`^(\d+)\s*:\s*(.+)$`)

// ParseManifest reads a declared source list, one file per line.
// A line may carry an explicit source number ("17: pkg.tar"); a bare
// path is assigned the smallest number above everything declared so
// far, starting from 0. Blank lines and #-comments are skipped.
func ParseManifest(reader io.Reader) (*List, error) {
	var files []File

	next := 0
	lineNo := 0

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		path := line
		number := next

		if matches := manifestLineRegexp.FindStringSubmatch(line); matches != nil {
			parsed, err := strconv.Atoi(matches[1])
			if err != nil {
				return nil, fmt.Errorf("malformed source number on line %d: %s", lineNo, line)
			}
			number, path = parsed, strings.TrimSpace(matches[2])
		}

		files = append(files, File{Path: path, Number: number})
		if number >= next {
			next = number + 1
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewList(files)
}

// LoadManifest parses the declared source list from a file
func LoadManifest(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return ParseManifest(f)
}
