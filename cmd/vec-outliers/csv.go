package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/viant/vec-outliers/vector"
)

// readCSVMatrix parses a CSV file where every record is one embedding row of
// float values. A non-numeric first record is treated as a header and
// skipped.
func readCSVMatrix(path string) (vector.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var m vector.Matrix
	for i, record := range records {
		row := make([]float32, len(record))
		ok := true
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				if i == 0 {
					ok = false // header row
					break
				}
				return nil, fmt.Errorf("parse %s: record %d field %d: %w", path, i+1, j+1, err)
			}
			row[j] = float32(v)
		}
		if ok {
			m = append(m, row)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

func sortedKeys(sets map[string]int) []string {
	keys := make([]string, 0, len(sets))
	for name := range sets {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
