// Package datadog provides a rowhook.MetricsClient backed by a dogstatsd
// client, for hooks that want to report their processed/dropped counts and
// handle latency to a datadog-agent.
package datadog

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/AdRoll/rowhook"
)

var _ rowhook.MetricsClient = (*Client)(nil)

// Config configures the Datadog metrics client.
type Config struct {
	Prefix string   // Prefix is prepended to every metric name. Defaults to "rowhook.".
	Host   string   // Host is the statsd agent address (UDP). Defaults to 127.0.0.1:8125.
	Tags   []string // Tags is attached to every metric.
}

// Client reports metrics to a dogstatsd agent.
type Client struct {
	dog      *statsd.Client
	basetags []string

	mu       sync.Mutex
	counters map[string]int64
}

// New creates a Client that pushes to the datadog-agent listening at
// cfg.Host using the dogstatsd protocol. Every metric name is prefixed
// with cfg.Prefix and tagged with cfg.Tags.
func New(cfg Config) (*Client, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "rowhook."
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1:8125"
	}

	dog, err := statsd.New(cfg.Host, statsd.WithNamespace(cfg.Prefix), statsd.WithTags(cfg.Tags))
	if err != nil {
		return nil, fmt.Errorf("can't create datadog metrics client: %s", err)
	}

	return &Client{
		dog:      dog,
		basetags: cfg.Tags,
		counters: make(map[string]int64),
	}, nil
}

// Gauge sets the value of a metric of type gauge. A Gauge represents a
// single numerical data point that can arbitrarily go up and down.
func (c *Client) Gauge(name string, value float64) {
	if c.dog != nil {
		c.dog.Gauge(name, value, c.basetags, 1)
	}
}

// DeltaCount increments the value of a metric of type counter by delta.
// delta must be positive.
func (c *Client) DeltaCount(name string, delta int64) {
	if c.dog != nil {
		c.dog.Count(name, delta, c.basetags, 1)
	}
}

// RawCount sets the value of a metric of type counter. A counter is a
// cumulative metrics that can only increase. RawCount sets the current
// value of the counter.
func (c *Client) RawCount(name string, value int64) {
	if c.dog != nil {
		c.mu.Lock()
		delta := value - c.counters[name]
		if delta < 0 {
			delta = 0
		}
		c.counters[name] = value
		c.mu.Unlock()

		c.dog.Count(name, delta, c.basetags, 1)
	}
}

// Histogram adds a sample to a metric of type histogram. A histogram
// samples observations and counts them in different 'buckets' in order
// to track and show the statistical distribution of a set of values.
func (c *Client) Histogram(name string, value float64) {
	if c.dog != nil {
		c.dog.Histogram(name, value, c.basetags, 1)
	}
}

// Duration adds a duration to a metric of type histogram, expressed in
// milliseconds since Datadog timers work in that unit.
func (c *Client) Duration(name string, value time.Duration) {
	if c.dog != nil {
		c.dog.TimeInMilliseconds(name, float64(value/time.Millisecond), c.basetags, 1)
	}
}

// GaugeWithTags sets the value of a metric of type gauge and associates
// that value with a set of tags.
func (c *Client) GaugeWithTags(name string, value float64, tags []string) {
	if c.dog != nil {
		c.dog.Gauge(name, value, append(c.basetags, tags...), 1)
	}
}

// DeltaCountWithTags increments the value of a metric or type counter and
// associates that value with a set of tags.
func (c *Client) DeltaCountWithTags(name string, delta int64, tags []string) {
	if c.dog != nil {
		c.dog.Count(name, delta, append(c.basetags, tags...), 1)
	}
}

// RawCountWithTags sets the value of a metric or type counter and
// associates that value with a set of tags.
func (c *Client) RawCountWithTags(name string, value int64, tags []string) {
	if c.dog != nil {
		c.mu.Lock()
		delta := value - c.counters[name]
		if delta < 0 {
			delta = 0
		}
		c.counters[name] = value
		c.mu.Unlock()
		c.dog.Count(name, delta, append(c.basetags, tags...), 1)
	}
}

// HistogramWithTags adds a sample to a histogram and associates that
// sample with a set of tags.
func (c *Client) HistogramWithTags(name string, value float64, tags []string) {
	if c.dog != nil {
		c.dog.Histogram(name, value, append(c.basetags, tags...), 1)
	}
}

// DurationWithTags adds a duration to a histogram and associates that
// duration with a set of tags.
func (c *Client) DurationWithTags(name string, value time.Duration, tags []string) {
	if c.dog != nil {
		c.dog.TimeInMilliseconds(name, float64(value/time.Millisecond), append(c.basetags, tags...), 1)
	}
}

// Close flushes and closes the underlying statsd client.
func (c *Client) Close() error {
	if c.dog == nil {
		return nil
	}
	return c.dog.Close()
}
