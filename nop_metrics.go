package rowhook

import "time"

var _ MetricsClient = NopMetrics{}

// NopMetrics is the default MetricsClient: every call is a no-op. Init
// installs it when a Config doesn't wire a real backend.
type NopMetrics struct{}

func (NopMetrics) Gauge(name string, value float64)                                 {}
func (NopMetrics) GaugeWithTags(name string, value float64, tags []string)          {}
func (NopMetrics) RawCount(name string, value int64)                                {}
func (NopMetrics) RawCountWithTags(name string, value int64, tags []string)         {}
func (NopMetrics) DeltaCount(name string, delta int64)                              {}
func (NopMetrics) DeltaCountWithTags(name string, delta int64, tags []string)       {}
func (NopMetrics) Histogram(name string, value float64)                             {}
func (NopMetrics) HistogramWithTags(name string, value float64, tags []string)      {}
func (NopMetrics) Duration(name string, value time.Duration)                        {}
func (NopMetrics) DurationWithTags(name string, value time.Duration, tags []string) {}
func (NopMetrics) Close() error                                                     { return nil }
