// Package clones reads and writes blob configuration files: a count line
// followed by one "x y z" line per blob. The format matches the clone
// snapshots the surrounding tooling exchanges.
package clones

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a configuration from r and returns the flat N x 3 positions.
func Read(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return nil, fmt.Errorf("clones: missing count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || n < 0 {
		return nil, fmt.Errorf("clones: bad count line %q", scanner.Text())
	}

	positions := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("clones: expected %d blobs, file ends at %d", n, i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("clones: line %d has %d fields, want 3", i+2, len(fields))
		}
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, fmt.Errorf("clones: line %d field %d: %w", i+2, k+1, err)
			}
			positions = append(positions, v)
		}
	}
	return positions, scanner.Err()
}

// Write emits the configuration to w in the same format Read accepts.
func Write(w io.Writer, positions []float64) error {
	n := len(positions) / 3
	if _, err := fmt.Fprintf(w, "%d\n", n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		_, err := fmt.Fprintf(w, "%.17g %.17g %.17g\n",
			positions[i*3+0], positions[i*3+1], positions[i*3+2])
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadFile loads a configuration from path.
func ReadFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile stores a configuration at path.
func WriteFile(path string, positions []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, positions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
