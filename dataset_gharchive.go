package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"path"
)

//go:embed mappings/gh-archive.yaml
var docMappingGhArchive string

// DatasetGhArchive is one day of the GitHub event archive: 24 hourly gzip
// NDJSON shards, with the `public` boolean remapped to 0/1.
type DatasetGhArchive struct {
	Dir     string
	BaseURL string
	Day     string
}

func (d *DatasetGhArchive) Name() string       { return "gh-archive" }
func (d *DatasetGhArchive) DocMapping() string { return docMappingGhArchive }

func (d *DatasetGhArchive) base() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	return "https://data.gharchive.org"
}

func (d *DatasetGhArchive) day() string {
	if d.Day != "" {
		return d.Day
	}
	return "2015-01-01"
}

func (d *DatasetGhArchive) shards() ([]string, []string) {
	urls := make([]string, 0, 24)
	files := make([]string, 0, 24)
	for hour := 0; hour < 24; hour++ {
		name := fmt.Sprintf("%v-%v.json.gz", d.day(), hour)
		urls = append(urls, d.base()+"/"+name)
		files = append(files, path.Join(d.Dir, name))
	}
	return urls, files
}

func (d *DatasetGhArchive) EnsureLocal(ctx context.Context) (int64, error) {
	urls, files := d.shards()
	return ensureShards(ctx, d.Name(), urls, files)
}

func (d *DatasetGhArchive) Records() (io.ReadCloser, error) {
	_, files := d.shards()
	return transformStream(&shardStream{paths: files}, normalizeBool("public")), nil
}
