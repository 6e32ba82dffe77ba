package datadog

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestClientMetrics(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("can't listen on udp: %v", err)
	}
	defer conn.Close()

	quit := make(chan struct{})
	done := make(chan struct{})

	var packets []string

	go func() {
		defer close(done)
		const maxsize = 32 * 1024
		p := make([]byte, maxsize)
		for {
			select {
			case <-quit:
				return
			default:
				conn.SetDeadline(time.Now().Add(100 * time.Millisecond))
				n, _, err := conn.ReadFrom(p)
				if err != nil {
					continue
				}
				packets = append(packets, string(p[:n]))
			}
		}
	}()

	c, err := New(Config{
		Host:   conn.LocalAddr().String(),
		Prefix: "prefix.",
		Tags:   []string{"basetag1:abc", "basetag2:xyz"},
	})
	if err != nil {
		t.Fatalf("can't create datadog metrics client: %v", err)
	}

	c.DeltaCount("delta", 1)
	c.DeltaCountWithTags("delta-with-tags", 2, []string{"tag1:1"})
	c.Gauge("gauge", 5)
	c.Histogram("histogram", 7)
	c.Duration("duration", 3*time.Millisecond)

	if err := c.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	close(quit)
	<-done

	all := strings.Join(packets, "\n")
	want := []string{"prefix.delta", "prefix.gauge", "prefix.histogram", "prefix.duration", "basetag1:abc"}
	for _, w := range want {
		if !strings.Contains(all, w) {
			t.Errorf("want packets to contain %q, got %q", w, all)
		}
	}
}
