package main

import (
	"context"
	_ "embed"
	"io"
	"path"
)

//go:embed mappings/nginx-logs.yaml
var docMappingNginxLogs string

// DatasetNginxLogs is the nginx access-log corpus: a gzip tarball of daily
// NDJSON files, string timestamps rewritten to numeric epoch seconds.
type DatasetNginxLogs struct {
	Dir     string
	BaseURL string
}

func (d *DatasetNginxLogs) Name() string       { return "nginx-logs" }
func (d *DatasetNginxLogs) DocMapping() string { return docMappingNginxLogs }

func (d *DatasetNginxLogs) base() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return "https://quickwit-datasets-public.s3.amazonaws.com"
}

func (d *DatasetNginxLogs) archive() string {
	return path.Join(d.Dir, "nginx-logs.tar.gz")
}

func (d *DatasetNginxLogs) EnsureLocal(ctx context.Context) (int64, error) {
	return ensureShards(ctx, d.Name(), []string{d.base() + "/nginx-logs.tar.gz"}, []string{d.archive()})
}

func (d *DatasetNginxLogs) Records() (io.ReadCloser, error) {
	raw, err := openTarball(d.archive())
	if err != nil {
		return nil, err
	}
	return transformStream(raw, normalizeTimestamp("timestamp")), nil
}
