package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the two accepted operations and for rejections by reason.
var (
	ClockIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_clock_ins_total",
		Help: "Accepted clock-in submissions.",
	})
	ClockOuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_clock_outs_total",
		Help: "Accepted clock-out submissions.",
	})
	Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_rejections_total",
		Help: "Rejected submissions by reason.",
	}, []string{"reason"})
)
