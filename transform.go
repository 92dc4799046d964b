package main

import (
	"encoding/json"
	"fmt"
	"time"
)

// recordTransform normalizes one raw NDJSON record into its ingestible
// form. The set of transforms is closed: each dataset binds exactly one.
type recordTransform func(line []byte) ([]byte, error)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/Jan/2006:15:04:05 -0700",
}

func epochSeconds(value any) (int64, error) {
	switch v := value.(type) {
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed.Unix(), nil
			}
		}
		return 0, fmt.Errorf("unrecognized timestamp %q", v)
	case float64:
		return int64(v), nil
	}
	return 0, fmt.Errorf("unrecognized timestamp type %T", value)
}

// normalizeTimestamp rewrites a string timestamp field to numeric epoch
// seconds. Already-numeric values pass through unchanged.
func normalizeTimestamp(field string) recordTransform {
	return func(line []byte) ([]byte, error) {
		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("bad record: %v", err)
		}
		value, ok := record[field]
		if !ok {
			return nil, fmt.Errorf("record has no %q field", field)
		}
		epoch, err := epochSeconds(value)
		if err != nil {
			return nil, err
		}
		record[field] = epoch
		return json.Marshal(record)
	}
}

// normalizeBool rewrites a boolean field to 0/1. Already-numeric values
// pass through unchanged.
func normalizeBool(field string) recordTransform {
	return func(line []byte) ([]byte, error) {
		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("bad record: %v", err)
		}
		switch value := record[field].(type) {
		case bool:
			if value {
				record[field] = 1
			} else {
				record[field] = 0
			}
		case float64:
		case nil:
			return nil, fmt.Errorf("record has no %q field", field)
		default:
			return nil, fmt.Errorf("unrecognized %q type %T", field, value)
		}
		return json.Marshal(record)
	}
}
