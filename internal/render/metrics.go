package render

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var chartsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leaderboard_charts_rendered_total",
	Help: "Total number of chart images rendered by kind",
}, []string{"kind"})
