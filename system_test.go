package main

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeDataset struct {
	name string
}

func (d *fakeDataset) Name() string { return d.name }
func (d *fakeDataset) EnsureLocal(ctx context.Context) (int64, error) {
	return 4096, nil
}
func (d *fakeDataset) Records() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(`{"body":"x"}` + "\n")), nil
}
func (d *fakeDataset) DocMapping() string {
	return "field_mappings:\n  - name: body\n    type: text\nstore_source: true"
}

type fakeService struct {
	calls      []string
	live       map[string]bool
	failCreate bool
	failIngest bool
}

func newFakeService() *fakeService {
	return &fakeService{live: map[string]bool{}}
}

func (f *fakeService) Create(ctx context.Context, indexId string, config IndexConfig) error {
	f.calls = append(f.calls, "create "+indexId)
	if f.failCreate {
		return fmt.Errorf("%w: create %v: bad config", ErrIngest, indexId)
	}
	f.live[indexId] = true
	return nil
}

func (f *fakeService) Ingest(ctx context.Context, indexId string, records io.Reader) (time.Duration, error) {
	f.calls = append(f.calls, "ingest "+indexId)
	if _, err := io.ReadAll(records); err != nil {
		return 0, err
	}
	if f.failIngest {
		return 0, fmt.Errorf("%w: ingest %v: rejected", ErrIngest, indexId)
	}
	return 1500 * time.Millisecond, nil
}

func (f *fakeService) Describe(ctx context.Context, indexId string) (string, error) {
	f.calls = append(f.calls, "describe "+indexId)
	return "Number of published documents: 1280000\nNumber of published splits: 3", nil
}

func (f *fakeService) ListSplits(ctx context.Context, indexId string) (string, error) {
	f.calls = append(f.calls, "list-splits "+indexId)
	return "| Split ID | Size | Status |\n| abc | 2048 | Published |", nil
}

func (f *fakeService) DescribeSplit(ctx context.Context, indexId string, splitId string) (string, error) {
	f.calls = append(f.calls, "describe-split "+indexId+" "+splitId)
	return splitId + ".store 123456", nil
}

func (f *fakeService) Delete(ctx context.Context, indexId string) error {
	f.calls = append(f.calls, "delete "+indexId)
	delete(f.live, indexId)
	return nil
}

func testSystem(t *testing.T, service IndexService) *System {
	return &System{
		datasets:     []Dataset{&fakeDataset{name: "nginx-logs"}},
		algorithms:   []string{"zstd"},
		blockSizesKB: []int{64, 128},
		service:      service,
		ledger:       &Ledger{Path: path.Join(t.TempDir(), "results.csv")},
	}
}

func TestSweepRecordsEveryPoint(t *testing.T) {
	service := newFakeService()
	system := testSystem(t, service)

	require.Nil(t, system.Run(context.Background()))

	rows, err := system.ledger.rows()
	require.Nil(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, RunRecord{
		Dataset:        "nginx-logs",
		TotalSize:      4096,
		NumDocs:        1280000,
		NumSplits:      3,
		Algorithm:      "zstd",
		BlockSizeKB:    64,
		StoreSize:      123456,
		RuntimeSeconds: 1.5,
	}, rows[0])
	require.Equal(t, 128, rows[1].BlockSizeKB)

	// no index left behind
	require.Empty(t, service.live)
	require.Contains(t, service.calls, "delete bench-nginx-logs-zstd-64")
	require.Contains(t, service.calls, "delete bench-nginx-logs-zstd-128")
}

func TestSweepResumeIsIdempotent(t *testing.T) {
	service := newFakeService()
	system := testSystem(t, service)
	require.Nil(t, system.Run(context.Background()))

	rerun := newFakeService()
	system.service = rerun
	require.Nil(t, system.Run(context.Background()))

	// every point already recorded: no service traffic at all
	require.Empty(t, rerun.calls)

	rows, err := system.ledger.rows()
	require.Nil(t, err)
	require.Len(t, rows, 2)
}

func TestSweepDeletesIndexOnIngestFailure(t *testing.T) {
	service := newFakeService()
	service.failIngest = true
	system := testSystem(t, service)

	err := system.Run(context.Background())
	require.ErrorIs(t, err, ErrIngest)

	// cleanup ran on the failure path and nothing was recorded
	require.Empty(t, service.live)
	require.Contains(t, service.calls, "delete bench-nginx-logs-zstd-64")
	require.Contains(t, service.calls, "delete bench-nginx-logs-zstd-128")

	rows, lerr := system.ledger.rows()
	require.Nil(t, lerr)
	require.Empty(t, rows)
}

func TestSweepCreateFailureLeavesNothing(t *testing.T) {
	service := newFakeService()
	service.failCreate = true
	system := testSystem(t, service)

	err := system.Run(context.Background())
	require.ErrorIs(t, err, ErrIngest)

	// nothing was created, so nothing gets deleted
	require.NotContains(t, service.calls, "delete bench-nginx-logs-zstd-64")

	rows, lerr := system.ledger.rows()
	require.Nil(t, lerr)
	require.Empty(t, rows)
}

func TestSweepContinuesPastFailedPoint(t *testing.T) {
	service := newFakeService()
	system := testSystem(t, service)

	service.failIngest = true
	require.NotNil(t, system.Run(context.Background()))
	// the first point's failure did not stop the second from being attempted
	require.Contains(t, service.calls, "create bench-nginx-logs-zstd-64")
	require.Contains(t, service.calls, "create bench-nginx-logs-zstd-128")

	service.failIngest = false
	require.Nil(t, system.Run(context.Background()))

	rows, err := system.ledger.rows()
	require.Nil(t, err)
	require.Len(t, rows, 2)
}
