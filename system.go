package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// System drives the sweep: enumerate the grid, skip points already in the
// ledger, evaluate the rest one at a time in strict sequence.
type System struct {
	datasets     []Dataset
	algorithms   []string
	blockSizesKB []int
	service      IndexService
	ledger       *Ledger
}

type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUCount int
	CPUFreq  float64
	RAM      float64
}

func HostStat() SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	totalFreq := 0.0
	for _, cpu := range cpuStat {
		totalFreq += cpu.Mhz
	}
	info := SysInfo{
		Arch:     runtime.GOARCH,
		Hostname: hostStat.Hostname,
		Platform: hostStat.Platform,
		CPUCount: len(cpuStat),
		RAM:      float64(vmStat.Total) / 1024 / 1024 / 1024,
	}
	if len(cpuStat) > 0 {
		info.CPUFreq = totalFreq / float64(len(cpuStat)) * 1000
	}
	return info
}

// Run walks the whole grid. A failed point is logged and left unrecorded
// so the next invocation retries it; later points still run. The returned
// error is the last failure, nil when every point succeeded or was already
// recorded.
func (s *System) Run(ctx context.Context) error {
	Logger.Infof("start benchmark sweep")
	info := HostStat()
	Logger.Infof("host stat: %+v", info)

	names := make([]string, 0, len(s.datasets))
	byName := make(map[string]Dataset, len(s.datasets))
	for _, dataset := range s.datasets {
		names = append(names, dataset.Name())
		byName[dataset.Name()] = dataset
	}

	points := EnumerateGrid(names, s.algorithms, s.blockSizesKB)
	Logger.Infof("enumerated %v grid points", len(points))

	var lastErr error
	for _, point := range points {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		recorded, err := s.ledger.HasRun(point)
		if err != nil {
			return fmt.Errorf("failed to check ledger for %+v: %w", point, err)
		}
		if recorded {
			Logger.Debugf("skip already recorded grid point %+v", point)
			continue
		}
		if err := s.evaluate(ctx, point, byName[point.Dataset]); err != nil {
			Logger.Errorf("grid point %+v failed: %v", point, err)
			lastErr = err
		}
	}
	return lastErr
}

// evaluate runs one grid point end to end. Once the index exists its
// deletion is deferred, so cleanup runs on every exit path.
func (s *System) evaluate(ctx context.Context, point GridPoint, dataset Dataset) (err error) {
	Logger.Infof("evaluating grid point %+v", point)

	totalSize, err := dataset.EnsureLocal(ctx)
	if err != nil {
		return err
	}

	indexId := point.IndexId()
	err = s.service.Create(ctx, indexId, IndexConfig{
		Algorithm:   point.Algorithm,
		BlockSizeKB: point.BlockSizeKB,
		DocMapping:  dataset.DocMapping(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if deleteErr := s.service.Delete(ctx, indexId); deleteErr != nil {
			Logger.Errorf("failed to delete index %v: %v", indexId, deleteErr)
			if err == nil {
				err = deleteErr
			}
		}
	}()

	records, err := dataset.Records()
	if err != nil {
		return fmt.Errorf("%w: dataset %v: %v", ErrProvision, dataset.Name(), err)
	}
	elapsed, err := s.service.Ingest(ctx, indexId, records)
	records.Close()
	if err != nil {
		return err
	}

	report, err := s.service.Describe(ctx, indexId)
	if err != nil {
		return fmt.Errorf("failed to describe index %v: %w", indexId, err)
	}
	numDocs, numSplits, err := parseDescribe(report)
	if err != nil {
		return err
	}

	table, err := s.service.ListSplits(ctx, indexId)
	if err != nil {
		return fmt.Errorf("failed to list splits of index %v: %w", indexId, err)
	}
	splitId, _, err := parseSplitList(table)
	if err != nil {
		return err
	}

	splitReport, err := s.service.DescribeSplit(ctx, indexId, splitId)
	if err != nil {
		return fmt.Errorf("failed to describe split %v of index %v: %w", splitId, indexId, err)
	}
	storeSize, err := parseSplitDescribe(splitReport)
	if err != nil {
		return err
	}

	err = s.ledger.Record(RunRecord{
		Dataset:        point.Dataset,
		TotalSize:      totalSize,
		NumDocs:        numDocs,
		NumSplits:      numSplits,
		Algorithm:      point.Algorithm,
		BlockSizeKB:    point.BlockSizeKB,
		StoreSize:      storeSize,
		RuntimeSeconds: elapsed.Seconds(),
	})
	if err != nil {
		return fmt.Errorf("failed to record %+v: %w", point, err)
	}
	Logger.Infof("recorded %v: %v docs, %v splits, store %v, %.1fs",
		indexId, numDocs, numSplits, humanize.Bytes(uint64(storeSize)), elapsed.Seconds())
	return nil
}
