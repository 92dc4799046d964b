package main

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrProvision = errors.New("dataset provisioning failed")
	ErrIngest    = errors.New("index configuration or ingestion rejected")
	ErrParse     = errors.New("status report parse failed")
	ErrLedger    = errors.New("ledger unreadable or unwritable")
)

// Dataset is one benchmark corpus: it materializes its raw archives in the
// local cache and streams normalized newline-delimited JSON records.
type Dataset interface {
	Name() string
	// EnsureLocal fetches any missing archive shards and returns the total
	// on-disk size of the cached archives. Idempotent: existing files are
	// never re-fetched.
	EnsureLocal(ctx context.Context) (int64, error)
	// Records streams the normalized NDJSON form of the corpus. The stream
	// is single-pass; every call re-materializes it from the cache.
	Records() (io.ReadCloser, error)
	DocMapping() string
}

// IndexService is the administrative surface of the indexing engine. The
// sweep talks only to this interface so it can run against a fake.
type IndexService interface {
	Create(ctx context.Context, indexId string, config IndexConfig) error
	Ingest(ctx context.Context, indexId string, records io.Reader) (time.Duration, error)
	Describe(ctx context.Context, indexId string) (string, error)
	ListSplits(ctx context.Context, indexId string) (string, error)
	DescribeSplit(ctx context.Context, indexId string, splitId string) (string, error)
	Delete(ctx context.Context, indexId string) error
}
