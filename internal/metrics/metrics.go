package metrics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

const (
	StatusSuccess     = "success"
	StatusRecoverable = "recoverable_error"
	StatusFatal       = "fatal"
)

const (
	runsTotalName = "iotfwd_command_runs_total"
	durationName  = "iotfwd_command_duration_seconds"
	lastRunName   = "iotfwd_command_last_run_timestamp_seconds"
)

// Recorder holds the collectors for one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	runsTotal *prometheus.CounterVec
	duration  *prometheus.GaugeVec
	lastRun   *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: runsTotalName,
				Help: "Number of command invocations by outcome",
			},
			[]string{"command", "status"},
		),
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: durationName,
				Help: "Wall time of the last command invocation in seconds",
			},
			[]string{"command"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: lastRunName,
				Help: "Unix time the command last finished",
			},
			[]string{"command", "status"},
		),
	}
	r.registry.MustRegister(r.runsTotal, r.duration, r.lastRun)
	return r
}

// TextfilePath returns the file command's metrics are written to in dir.
func TextfilePath(dir, command string) string {
	return filepath.Join(dir, "iotfwd_"+command+".prom")
}

// Restore seeds a fresh recorder's run counters and per-status timestamps of
// command from a textfile written by an earlier run. A missing file is not an error.
// Series for other commands are ignored.
func (r *Recorder) Restore(path, command string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open metrics textfile: %w", err)
	}
	defer file.Close()

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(file)
	if err != nil {
		return fmt.Errorf("parse metrics textfile %s: %w", path, err)
	}

	if mf, ok := families[runsTotalName]; ok {
		for _, m := range mf.GetMetric() {
			labels := labelMap(m.GetLabel())
			if labels["command"] != command || labels["status"] == "" {
				continue
			}
			r.runsTotal.WithLabelValues(command, labels["status"]).Add(m.GetCounter().GetValue())
		}
	}
	if mf, ok := families[lastRunName]; ok {
		for _, m := range mf.GetMetric() {
			labels := labelMap(m.GetLabel())
			if labels["command"] != command || labels["status"] == "" {
				continue
			}
			r.lastRun.WithLabelValues(command, labels["status"]).Set(m.GetGauge().GetValue())
		}
	}
	return nil
}

type labelPair interface {
	GetName() string
	GetValue() string
}

func labelMap[P labelPair](pairs []P) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		out[pair.GetName()] = pair.GetValue()
	}
	return out
}

// Observe records one finished invocation.
func (r *Recorder) Observe(command, status string, elapsed time.Duration, finished time.Time) {
	r.runsTotal.WithLabelValues(command, status).Inc()
	r.duration.WithLabelValues(command).Set(elapsed.Seconds())
	r.lastRun.WithLabelValues(command, status).Set(float64(finished.Unix()))
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every collected metric to path, creating the parent
// directory. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory %q: %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
