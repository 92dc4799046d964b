package main

import "fmt"

// GridPoint is one (dataset, algorithm, block size) combination under
// benchmark. Identity is the triple.
type GridPoint struct {
	Dataset     string
	Algorithm   string
	BlockSizeKB int
}

// IndexId derives the stable resource name used on the indexing service.
func (p GridPoint) IndexId() string {
	return fmt.Sprintf("bench-%v-%v-%v", p.Dataset, p.Algorithm, p.BlockSizeKB)
}

// EnumerateGrid produces the full ordered parameter grid: dataset
// outermost, algorithm next, block size innermost. The order is
// deterministic; ledger lookups depend on re-runs producing the same
// sequence.
func EnumerateGrid(datasets []string, algorithms []string, blockSizesKB []int) []GridPoint {
	points := make([]GridPoint, 0, len(datasets)*len(algorithms)*len(blockSizesKB))
	for _, dataset := range datasets {
		for _, algorithm := range algorithms {
			for _, blockSizeKB := range blockSizesKB {
				points = append(points, GridPoint{
					Dataset:     dataset,
					Algorithm:   algorithm,
					BlockSizeKB: blockSizeKB,
				})
			}
		}
	}
	return points
}
