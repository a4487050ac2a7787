// Package telemetry exports playback engine activity as Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/algotrace/internal/playback"
)

// Recorder is a playback.Observer that counts engine events.
type Recorder struct {
	commands *prometheus.CounterVec
	ticks    prometheus.Counter
	stale    prometheus.Counter
	progress prometheus.Gauge
}

var _ playback.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "algotrace_engine_commands_total",
				Help: "Playback commands accepted by the engine",
			},
			[]string{"command"},
		),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "algotrace_engine_ticks_total",
			Help: "Auto-advance ticks that moved the cursor",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "algotrace_engine_stale_ticks_total",
			Help: "Ticks dropped because the engine changed after scheduling them",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "algotrace_engine_progress_percent",
			Help: "Cursor position within the bound trace",
		}),
	}
	for _, c := range []prometheus.Collector{r.commands, r.ticks, r.stale, r.progress} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) OnCommand(cmd playback.Command) {
	r.commands.WithLabelValues(string(cmd)).Inc()
}

func (r *Recorder) OnTick(playback.Snapshot) { r.ticks.Inc() }

func (r *Recorder) OnStaleTick() { r.stale.Inc() }

func (r *Recorder) OnChange(s playback.Snapshot) { r.progress.Set(s.Progress) }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
