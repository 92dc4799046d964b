package main

import (
	"fmt"
	"strconv"
	"strings"
)

// labeledInt extracts the numeric value of the unique report line starting
// with label. Zero or multiple matching lines, or a non-numeric value, are
// parse errors.
func labeledInt(report string, label string) (int, error) {
	value, matches := "", 0
	for _, line := range strings.Split(report, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), label)
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return 0, fmt.Errorf("%w: label %q has no value", ErrParse, label)
		}
		value = fields[0]
		matches++
	}
	if matches == 0 {
		return 0, fmt.Errorf("%w: label %q not found", ErrParse, label)
	}
	if matches > 1 {
		return 0, fmt.Errorf("%w: label %q matched %v lines", ErrParse, label, matches)
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: label %q has non-numeric value %q", ErrParse, label, value)
	}
	return parsed, nil
}

// parseDescribe pulls the published document and split counts out of the
// index describe report.
func parseDescribe(report string) (numDocs int, numSplits int, err error) {
	numDocs, err = labeledInt(report, "Number of published documents:")
	if err != nil {
		return 0, 0, err
	}
	numSplits, err = labeledInt(report, "Number of published splits:")
	if err != nil {
		return 0, 0, err
	}
	return numDocs, numSplits, nil
}

func splitCells(line string) []string {
	raw := strings.Split(line, "|")
	cells := make([]string, 0, len(raw))
	for _, cell := range raw {
		cells = append(cells, strings.TrimSpace(cell))
	}
	// pipe-bordered rows produce empty leading/trailing cells
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

func findColumn(header []string, name string) (int, error) {
	for i, cell := range header {
		if strings.EqualFold(cell, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: column %q not found in split table", ErrParse, name)
}

// parseSplitList selects the unique Published row of the split table and
// returns its split id and size. Zero or multiple Published rows are
// errors, never a silent pick.
func parseSplitList(table string) (splitId string, splitSize int64, err error) {
	var header []string
	var published [][]string
	idCol, sizeCol, statusCol := 0, 0, 0
	for _, line := range strings.Split(table, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := splitCells(line)
		if header == nil {
			header = cells
			if idCol, err = findColumn(header, "Split ID"); err != nil {
				return "", 0, err
			}
			if sizeCol, err = findColumn(header, "Size"); err != nil {
				return "", 0, err
			}
			if statusCol, err = findColumn(header, "Status"); err != nil {
				return "", 0, err
			}
			continue
		}
		if len(cells) != len(header) {
			return "", 0, fmt.Errorf("%w: split row %q does not match header", ErrParse, line)
		}
		if cells[statusCol] == "Published" {
			published = append(published, cells)
		}
	}
	if header == nil {
		return "", 0, fmt.Errorf("%w: split table has no header row", ErrParse)
	}
	if len(published) != 1 {
		return "", 0, fmt.Errorf("%w: expected exactly one Published split, found %v", ErrParse, len(published))
	}
	splitId = published[0][idCol]
	sizeFields := strings.Fields(published[0][sizeCol])
	if len(sizeFields) == 0 {
		return "", 0, fmt.Errorf("%w: Published split %v has empty size", ErrParse, splitId)
	}
	splitSize, err = strconv.ParseInt(sizeFields[0], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad split size %q: %v", ErrParse, published[0][sizeCol], err)
	}
	return splitId, splitSize, nil
}

// parseSplitDescribe pulls the on-disk store file size out of the split
// describe report: the trailing numeric token of the unique line naming
// the .store file.
func parseSplitDescribe(report string) (int64, error) {
	storeLine, matches := "", 0
	for _, line := range strings.Split(report, "\n") {
		if strings.Contains(line, ".store") {
			storeLine = line
			matches++
		}
	}
	if matches == 0 {
		return 0, fmt.Errorf("%w: no store file line in split report", ErrParse)
	}
	if matches > 1 {
		return 0, fmt.Errorf("%w: %v store file lines in split report", ErrParse, matches)
	}
	fields := strings.Fields(storeLine)
	for i := len(fields) - 1; i >= 0; i-- {
		if size, err := strconv.ParseInt(fields[i], 10, 64); err == nil {
			return size, nil
		}
	}
	return 0, fmt.Errorf("%w: store file line %q has no numeric size", ErrParse, strings.TrimSpace(storeLine))
}
