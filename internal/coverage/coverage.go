// Package coverage scans per-file annotated coverage output for lines the
// test run left uninstrumented, and reports each with its file and line
// number.
package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Report scans every file matching the annotations glob (relative to dir)
// and writes one `file:line: text` line to w for each line beginning with
// marker. It returns the number of flagged lines.
func Report(w io.Writer, dir, annotations, marker string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, annotations))
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, path := range matches {
		n, err := reportFile(w, path, marker)
		if err != nil {
			return flagged, err
		}
		flagged += n
	}
	return flagged, nil
}

func reportFile(w io.Writer, path, marker string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	flagged := 0
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.HasPrefix(line, marker) {
			fmt.Fprintf(w, "%s:%d: %s\n", path, lineNo, line)
			flagged++
		}
	}
	if err := scanner.Err(); err != nil {
		return flagged, fmt.Errorf("scanning %s: %w", path, err)
	}
	return flagged, nil
}
