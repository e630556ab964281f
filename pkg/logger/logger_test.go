package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("rendered",
		String("page", "risk"),
		Int("features", 3),
		Float64("value", 2.5),
		Bool("ok", true),
		Duration("took", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "rendered", line["message"])
	assert.Equal(t, "risk", line["page"])
	assert.Equal(t, 3.0, line["features"])
	assert.Equal(t, 2.5, line["value"])
	assert.Equal(t, true, line["ok"])
	assert.Equal(t, 1500.0, line["took"])
	assert.Equal(t, "boom", line["error"])
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf).With(String("render_id", "abc"))
	log.Debug("x")
	assert.Contains(t, buf.String(), `"render_id":"abc"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud", Output: "stdout"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error("ignored", Error(nil)) })
}

type capturePublisher struct {
	mu      sync.Mutex
	batches [][]CollectedEntry
	done    chan struct{}
}

func (c *capturePublisher) PublishMessage(_ context.Context, _ string, payload interface{}) error {
	c.mu.Lock()
	c.batches = append(c.batches, payload.([]CollectedEntry))
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func TestCollectorAggregatesErrors(t *testing.T) {
	pub := &capturePublisher{done: make(chan struct{}, 1)}
	log := NewWithWriter(&bytes.Buffer{})
	c := log.AddCollector(&CollectionConfig{FlushEvery: time.Hour, MaxDistinct: 10, Publisher: pub, Topic: "logs", Retain: 5})
	defer log.RemoveCollector()

	for i := 0; i < 3; i++ {
		log.Error("draw failed", String("chart", "tradingChart"))
	}
	log.Warn("slow render")

	pending := c.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "draw failed", pending[0].Message)
	assert.Equal(t, 3, pending[0].Count)
	assert.Equal(t, "error", pending[0].Level)
	assert.Equal(t, "tradingChart", pending[0].Fields["chart"])
	assert.Contains(t, pending[0].Caller, "logger_test.go:")

	c.Flush()
	select {
	case <-pub.done:
	case <-time.After(time.Second):
		t.Fatal("batch was not published")
	}
	assert.Empty(t, c.Pending())
	assert.Len(t, c.Recent(), 2)
}
