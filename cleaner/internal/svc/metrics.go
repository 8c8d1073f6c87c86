package svc

import "github.com/zeromicro/go-zero/core/metric"

const (
	metricsNamespace = "torrent_cleaner"
	metricsSubsystem = "cleaner"
)

var (
	metricTorrentCounter metric.CounterVec
	metricFileCounter    metric.CounterVec
	metricBytesCounter   metric.CounterVec
)

func init() {
	metricTorrentCounter = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "torrent",
		Labels:    []string{"result"},
	})
	metricFileCounter = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "file",
		Labels:    []string{"type"},
	})
	metricBytesCounter = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      "bytes",
		Labels:    []string{"type"},
	})
}
