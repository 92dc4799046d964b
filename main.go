package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

var (
	algorithms   = []string{"none", "lz4", "snappy", "zstd"}
	blockSizesKB = []int{16, 32, 64, 128, 256, 512, 1024}
)

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func main() {
	if err := godotenv.Load(); err == nil {
		Logger.Infof("loaded environment from .env")
	}
	defer Logger.Sync()

	dataDir := StringEnv("BENCH_DATA_DIR", "data")
	ledgerPath := StringEnv("BENCH_LEDGER", "benchmark-results.csv")
	bin := StringEnv("QW_BIN", "./quickwit")
	config := StringEnv("QW_CONFIG", "quickwit.yaml")

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		Logger.Fatalf("failed to create data dir %v: %v", dataDir, err)
	}

	system := &System{
		datasets: []Dataset{
			&DatasetHdfsLogs{Dir: dataDir},
			&DatasetNginxLogs{Dir: dataDir},
			&DatasetGhArchive{Dir: dataDir},
			&DatasetWikipedia{Dir: dataDir},
		},
		algorithms:   algorithms,
		blockSizesKB: blockSizesKB,
		service:      &ServiceCLI{Bin: bin, Config: config},
		ledger:       &Ledger{Path: ledgerPath},
	}
	if err := system.Run(context.Background()); err != nil {
		Logger.Fatalf("benchmark sweep failed: %v", err)
	}
}
