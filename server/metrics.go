package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zond/grue/game"
)

type metrics struct {
	registry *prometheus.Registry
	playing  prometheus.Gauge
	sessions prometheus.Counter
	commands *prometheus.CounterVec
	finished prometheus.Counter
	resumed  prometheus.Counter
}

// newMetrics registers the server metrics. suspended reports the number of games waiting to be resumed.
func newMetrics(suspended func() float64) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "grue_players_playing",
			Help: "Number of players currently connected.",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grue_sessions_total",
			Help: "Total sessions since server start.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grue_commands_total",
			Help: "Total game commands processed, by outcome.",
		}, []string{"outcome"}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grue_games_finished_total",
			Help: "Total games that ended.",
		}),
		resumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grue_games_resumed_total",
			Help: "Total suspended games resumed.",
		}),
	}
	m.registry.MustRegister(
		m.playing,
		m.sessions,
		m.commands,
		m.finished,
		m.resumed,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "grue_games_suspended",
			Help: "Number of games waiting for their players to come back.",
		}, suspended),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) command(o game.Outcome) {
	m.commands.WithLabelValues(o.String()).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
