package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"gopkg.in/yaml.v3"
)

// IndexConfig is the per-grid-point tuning of the index: the docstore
// compression algorithm, the docstore block size and the dataset's fixed
// doc-mapping fragment. It lives for one grid point's evaluation.
type IndexConfig struct {
	Algorithm   string
	BlockSizeKB int
	DocMapping  string
}

func renderIndexConfig(indexId string, config IndexConfig) ([]byte, error) {
	var docMapping map[string]any
	if err := yaml.Unmarshal([]byte(config.DocMapping), &docMapping); err != nil {
		return nil, fmt.Errorf("bad doc mapping for %v: %v", indexId, err)
	}
	return yaml.Marshal(map[string]any{
		"version":     0,
		"index_id":    indexId,
		"doc_mapping": docMapping,
		"indexing_settings": map[string]any{
			"docstore_compression": config.Algorithm,
			"docstore_blocksize":   config.BlockSizeKB * 1024,
		},
	})
}

// ServiceCLI drives the indexing service through its administrative
// binary. Command output rides along on errors so failures stay
// diagnosable from the log alone.
type ServiceCLI struct {
	Bin    string
	Config string
}

func (s *ServiceCLI) run(ctx context.Context, stdin io.Reader, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, s.Bin, args...)
	cmd.Stdin = stdin
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("err=%w, out=%v", err, string(output))
	}
	return string(output), nil
}

func (s *ServiceCLI) Create(ctx context.Context, indexId string, config IndexConfig) error {
	rendered, err := renderIndexConfig(indexId, config)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIngest, err)
	}
	file, err := os.CreateTemp("", "index-config-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIngest, err)
	}
	defer os.Remove(file.Name())
	if _, err := file.Write(rendered); err != nil {
		file.Close()
		return fmt.Errorf("%w: %v", ErrIngest, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIngest, err)
	}
	Logger.Infof("create index %v (%v, %v KB blocks)", indexId, config.Algorithm, config.BlockSizeKB)
	_, err = s.run(ctx, nil, "index", "create", "--index-config", file.Name(), "--config", s.Config)
	if err != nil {
		return fmt.Errorf("%w: create %v: %v", ErrIngest, indexId, err)
	}
	return nil
}

func (s *ServiceCLI) Ingest(ctx context.Context, indexId string, records io.Reader) (time.Duration, error) {
	Logger.Infof("ingest into index %v", indexId)
	start := time.Now()
	_, err := s.run(ctx, records, "index", "ingest", "--index", indexId, "--config", s.Config)
	elapsed := time.Since(start)
	if err != nil {
		return 0, fmt.Errorf("%w: ingest %v: %v", ErrIngest, indexId, err)
	}
	Logger.Infof("ingested into index %v in %v", indexId, elapsed)
	return elapsed, nil
}

func (s *ServiceCLI) Describe(ctx context.Context, indexId string) (string, error) {
	return s.run(ctx, nil, "index", "describe", "--index", indexId, "--config", s.Config)
}

func (s *ServiceCLI) ListSplits(ctx context.Context, indexId string) (string, error) {
	return s.run(ctx, nil, "split", "list", "--index", indexId, "--config", s.Config)
}

func (s *ServiceCLI) DescribeSplit(ctx context.Context, indexId string, splitId string) (string, error) {
	return s.run(ctx, nil, "split", "describe", "--index", indexId, "--split", splitId, "--config", s.Config)
}

func (s *ServiceCLI) Delete(ctx context.Context, indexId string) error {
	Logger.Infof("delete index %v", indexId)
	_, err := s.run(ctx, nil, "index", "delete", "--index", indexId, "--config", s.Config)
	return err
}
