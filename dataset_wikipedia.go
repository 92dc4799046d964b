package main

import (
	"context"
	_ "embed"
	"io"
	"path"
)

//go:embed mappings/wikipedia.yaml
var docMappingWikipedia string

// DatasetWikipedia is the wikipedia article corpus: a single gzip NDJSON
// archive ingested as-is, no per-record rewriting.
type DatasetWikipedia struct {
	Dir     string
	BaseURL string
}

func (d *DatasetWikipedia) Name() string       { return "wikipedia" }
func (d *DatasetWikipedia) DocMapping() string { return docMappingWikipedia }

func (d *DatasetWikipedia) base() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return "https://quickwit-datasets-public.s3.amazonaws.com"
}

func (d *DatasetWikipedia) archive() string {
	return path.Join(d.Dir, "wiki-articles.json.gz")
}

func (d *DatasetWikipedia) EnsureLocal(ctx context.Context) (int64, error) {
	return ensureShards(ctx, d.Name(), []string{d.base() + "/wiki-articles.json.gz"}, []string{d.archive()})
}

func (d *DatasetWikipedia) Records() (io.ReadCloser, error) {
	return openGzip(d.archive())
}
