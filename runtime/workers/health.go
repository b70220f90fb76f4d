package workers

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthWorker samples the relay's own CPU and memory usage on a fixed
// interval. The latest sample is exposed through Snapshot for the debug
// server's stats panel.
type HealthWorker struct {
	mu             sync.Mutex
	log            *slog.Logger
	metricInterval time.Duration
	lastSample     map[string]any
}

func NewHealthWorker(log *slog.Logger, metricInterval time.Duration) *HealthWorker {
	return &HealthWorker{
		log:            log,
		metricInterval: metricInterval,
		lastSample:     make(map[string]any),
	}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.C:
			cpu, err := self.CPUPercent()
			if err != nil {
				w.log.Error("Error while reading cpu usage", "err", err)
				continue
			}
			ram, err := self.MemoryPercent()
			if err != nil {
				w.log.Error("Error while reading ram usage", "err", err)
				continue
			}
			w.mu.Lock()
			w.lastSample = map[string]any{
				"cpu_percent": cpu,
				"ram_percent": ram,
				"sampled_at":  time.Now().UTC().Format(time.RFC3339),
			}
			w.mu.Unlock()
		}
	}
}

// Snapshot returns the most recent sample. Safe for concurrent use.
func (w *HealthWorker) Snapshot() map[string]any {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]any, len(w.lastSample))
	for k, v := range w.lastSample {
		out[k] = v
	}
	return out
}
