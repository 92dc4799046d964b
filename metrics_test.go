package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDescribe(t *testing.T) {
	numDocs, numSplits, err := parseDescribe("Number of published documents: 1280000\nNumber of published splits: 3")
	require.Nil(t, err)
	require.Equal(t, 1280000, numDocs)
	require.Equal(t, 3, numSplits)
}

func TestParseDescribeFullReport(t *testing.T) {
	report := `
1. General information
===============================================================================
Index ID:                           bench-wikipedia-zstd-64
Index URI:                          file:///indexes/bench-wikipedia-zstd-64
Number of published splits:         1
Number of published documents:      14000000
Size of published splits:           8219 MB
`
	numDocs, numSplits, err := parseDescribe(report)
	require.Nil(t, err)
	require.Equal(t, 14000000, numDocs)
	require.Equal(t, 1, numSplits)
}

func TestParseDescribeMissingLabel(t *testing.T) {
	_, _, err := parseDescribe("Number of published splits: 3")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseDescribeNonNumeric(t *testing.T) {
	_, _, err := parseDescribe("Number of published documents: many\nNumber of published splits: 3")
	require.ErrorIs(t, err, ErrParse)
}

const splitTable = `
| Split ID | Num docs | Size    | Status    |
| aaa      | 1000     | 1048576 | Staged    |
| bbb      | 1280000  | 8388608 | Published |
`

func TestParseSplitList(t *testing.T) {
	splitId, splitSize, err := parseSplitList(splitTable)
	require.Nil(t, err)
	require.Equal(t, "bbb", splitId)
	require.Equal(t, int64(8388608), splitSize)
}

func TestParseSplitListAmbiguous(t *testing.T) {
	table := `
| Split ID | Num docs | Size | Status    |
| aaa      | 1        | 10   | Staged    |
| bbb      | 2        | 20   | Published |
| ccc      | 3        | 30   | Published |
`
	_, _, err := parseSplitList(table)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseSplitListNonePublished(t *testing.T) {
	table := `
| Split ID | Num docs | Size | Status |
| aaa      | 1        | 10   | Staged |
`
	_, _, err := parseSplitList(table)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseSplitListNoHeader(t *testing.T) {
	_, _, err := parseSplitList("no table here")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseSplitDescribe(t *testing.T) {
	report := `
Split file sizes:
bbb.hotcache        1024
bbb.fieldnorm       2048
bbb.store           123456789
bbb.term            4096
`
	size, err := parseSplitDescribe(report)
	require.Nil(t, err)
	require.Equal(t, int64(123456789), size)
}

func TestParseSplitDescribeMissing(t *testing.T) {
	_, err := parseSplitDescribe("bbb.term 4096")
	require.ErrorIs(t, err, ErrParse)
}

func TestParseSplitDescribeAmbiguous(t *testing.T) {
	_, err := parseSplitDescribe("a.store 1\nb.store 2")
	require.ErrorIs(t, err, ErrParse)
}
