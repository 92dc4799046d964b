package main

import (
	"context"
	_ "embed"
	"io"
	"path"
)

//go:embed mappings/hdfs-logs.yaml
var docMappingHdfsLogs string

// DatasetHdfsLogs is the HDFS log corpus: a single gzip NDJSON archive
// whose string timestamps are rewritten to numeric epoch seconds.
type DatasetHdfsLogs struct {
	Dir     string
	BaseURL string
}

func (d *DatasetHdfsLogs) Name() string       { return "hdfs-logs" }
func (d *DatasetHdfsLogs) DocMapping() string { return docMappingHdfsLogs }

func (d *DatasetHdfsLogs) base() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return "https://quickwit-datasets-public.s3.amazonaws.com"
}

func (d *DatasetHdfsLogs) archive() string {
	return path.Join(d.Dir, "hdfs-logs.json.gz")
}

func (d *DatasetHdfsLogs) EnsureLocal(ctx context.Context) (int64, error) {
	return ensureShards(ctx, d.Name(), []string{d.base() + "/hdfs-logs.json.gz"}, []string{d.archive()})
}

func (d *DatasetHdfsLogs) Records() (io.ReadCloser, error) {
	raw, err := openGzip(d.archive())
	if err != nil {
		return nil, err
	}
	return transformStream(raw, normalizeTimestamp("timestamp")), nil
}
