package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// RunRecord is one completed grid point: the parameters plus the measured
// metrics. Rows are immutable once written.
type RunRecord struct {
	Dataset        string
	TotalSize      int64
	NumDocs        int
	NumSplits      int
	Algorithm      string
	BlockSizeKB    int
	StoreSize      int64
	RuntimeSeconds float64
}

// Ledger is the append-only flat file of completed runs. Rows are
// comma-separated with no header, fields in the fixed order: dataset,
// totalSize, numDocs, numSplits, algorithm, blockSizeKB, storeSize,
// runtimeSeconds. Lookups re-scan the whole file.
type Ledger struct {
	Path string
}

func (l *Ledger) rows() ([]RunRecord, error) {
	file, err := os.Open(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedger, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 8
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %v", ErrLedger, l.Path, err)
	}
	records := make([]RunRecord, 0, len(raw))
	for _, fields := range raw {
		record, err := parseRow(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrLedger, l.Path, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(fields []string) (RunRecord, error) {
	totalSize, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad totalSize %q: %v", fields[1], err)
	}
	numDocs, err := strconv.Atoi(fields[2])
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad numDocs %q: %v", fields[2], err)
	}
	numSplits, err := strconv.Atoi(fields[3])
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad numSplits %q: %v", fields[3], err)
	}
	blockSizeKB, err := strconv.Atoi(fields[5])
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad blockSizeKB %q: %v", fields[5], err)
	}
	storeSize, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad storeSize %q: %v", fields[6], err)
	}
	runtimeSeconds, err := strconv.ParseFloat(fields[7], 64)
	if err != nil {
		return RunRecord{}, fmt.Errorf("bad runtimeSeconds %q: %v", fields[7], err)
	}
	return RunRecord{
		Dataset:        fields[0],
		TotalSize:      totalSize,
		NumDocs:        numDocs,
		NumSplits:      numSplits,
		Algorithm:      fields[4],
		BlockSizeKB:    blockSizeKB,
		StoreSize:      storeSize,
		RuntimeSeconds: runtimeSeconds,
	}, nil
}

// HasRun reports whether the ledger already holds a row for the point.
// Rows are parsed and compared field by field; a stored block size of 160
// never matches a requested 16.
func (l *Ledger) HasRun(point GridPoint) (bool, error) {
	records, err := l.rows()
	if err != nil {
		return false, err
	}
	for _, record := range records {
		if record.Dataset == point.Dataset &&
			record.Algorithm == point.Algorithm &&
			record.BlockSizeKB == point.BlockSizeKB {
			return true, nil
		}
	}
	return false, nil
}

// Record appends one row and syncs the file before returning, so a crash
// right after a successful return leaves the row durable and prior rows
// intact.
func (l *Ledger) Record(record RunRecord) error {
	file, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	err = writer.Write([]string{
		record.Dataset,
		strconv.FormatInt(record.TotalSize, 10),
		strconv.Itoa(record.NumDocs),
		strconv.Itoa(record.NumSplits),
		record.Algorithm,
		strconv.Itoa(record.BlockSizeKB),
		strconv.FormatInt(record.StoreSize, 10),
		strconv.FormatFloat(record.RuntimeSeconds, 'f', 3, 64),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	return nil
}
