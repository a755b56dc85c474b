package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"roulette-lab/runtime"

	"github.com/shirou/gopsutil/process"
)

// TelemetryWorker periodically logs process health (CPU, RSS, status)
// alongside game occupancy so operators can correlate load with traffic.
type TelemetryWorker struct {
	log       *slog.Logger
	directory *runtime.Directory
	interval  time.Duration
}

func NewTelemetryWorker(log *slog.Logger, directory *runtime.Directory, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, directory: directory, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	w.log.Info("Starting telemetry worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			solo, tables, seated := w.directory.Counts()
			w.log.Info("Telemetry",
				"pid", os.Getpid(),
				"status", status,
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"solo_sessions", solo,
				"tables", tables,
				"seated_players", seated,
			)
		}
	}
}

// selfStats retrieves technical metrics (Memory, CPU, and OS Status) for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
