package rowhooktest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AdRoll/rowhook"
)

var _ rowhook.MetricsClient = (*MockMetrics)(nil)

// MockMetrics is a rowhook.MetricsClient for tests: it records every call
// made against it as a line of text, so assertions can compare sorted
// string slices instead of poking at counters directly.
type MockMetrics struct {
	buf bytes.Buffer
}

// NewMockMetrics returns a ready-to-use MockMetrics.
func NewMockMetrics() *MockMetrics { return &MockMetrics{} }

// PublishedMetrics returns a list of strings, each of which represent
// arguments and method of one call made against the client. Prefix can be
// used to select a subset of calls, or all of them (with "").
func (m *MockMetrics) PublishedMetrics(prefix string) []string {
	keep := make([]string, 0)
	for _, s := range strings.Split(m.buf.String(), "\n") {
		if len(strings.TrimSpace(s)) != 0 {
			if len(prefix) == 0 || strings.HasPrefix(s, prefix) {
				keep = append(keep, s)
			}
		}
	}

	sort.Strings(keep)
	return keep
}

func (m *MockMetrics) Gauge(name string, value float64) {
	fmt.Fprintf(&m.buf, "gauge|name=%s|value=%v\n", name, value)
}
func (m *MockMetrics) RawCount(name string, value int64) {
	fmt.Fprintf(&m.buf, "rawcount|name=%s|value=%v\n", name, value)
}
func (m *MockMetrics) DeltaCount(name string, delta int64) {
	fmt.Fprintf(&m.buf, "delta|name=%s|value=%v\n", name, delta)
}
func (m *MockMetrics) Histogram(name string, value float64) {
	fmt.Fprintf(&m.buf, "hist|name=%s|value=%v\n", name, value)
}
func (m *MockMetrics) Duration(name string, value time.Duration) {
	fmt.Fprintf(&m.buf, "duration|name=%s|value=%v\n", name, value)
}

func (m *MockMetrics) GaugeWithTags(name string, value float64, tags []string) {
	for _, t := range tags {
		fmt.Fprintf(&m.buf, "gauge|name=%s|value=%v|tag=%s\n", name, value, t)
	}
}
func (m *MockMetrics) RawCountWithTags(name string, value int64, tags []string) {
	for _, t := range tags {
		fmt.Fprintf(&m.buf, "rawcount|name=%s|value=%v|tag=%s\n", name, value, t)
	}
}
func (m *MockMetrics) DeltaCountWithTags(name string, delta int64, tags []string) {
	for _, t := range tags {
		fmt.Fprintf(&m.buf, "delta|name=%s|value=%v|tag=%s\n", name, delta, t)
	}
}
func (m *MockMetrics) HistogramWithTags(name string, value float64, tags []string) {
	for _, t := range tags {
		fmt.Fprintf(&m.buf, "hist|name=%s|value=%v|tag=%s\n", name, value, t)
	}
}
func (m *MockMetrics) DurationWithTags(name string, value time.Duration, tags []string) {
	for _, t := range tags {
		fmt.Fprintf(&m.buf, "duration|name=%s|value=%v|tag=%s\n", name, value, t)
	}
}
func (m *MockMetrics) Close() error { return nil }
