package logger

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Publisher ships collected batches somewhere outside the process.
type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type CollectionConfig struct {
	FlushEvery  time.Duration // default 30s
	MaxDistinct int           // pending distinct entries that force a flush, default 100
	Topic       string
	Publisher   Publisher // nil keeps batches in memory only
	Retain      int       // flushed entries kept for Recent
}

// CollectedEntry is one distinct warning or error with its occurrence count.
type CollectedEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogCollector folds repeated warnings and errors into counted entries and
// flushes them on a timer or once too many distinct entries are pending.
type LogCollector struct {
	cfg CollectionConfig

	mu      sync.Mutex
	pending map[string]*CollectedEntry
	recent  []CollectedEntry

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	cfg := *config
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 30 * time.Second
	}
	if cfg.MaxDistinct <= 0 {
		cfg.MaxDistinct = 100
	}
	c := &LogCollector{
		cfg:     cfg,
		pending: make(map[string]*CollectedEntry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := entryKey(level, message, fields, caller)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.pending[key]
	if !ok {
		e = &CollectedEntry{Level: level, Message: message, Fields: fields, Caller: caller, FirstSeen: now}
		c.pending[key] = e
	}
	e.Count++
	e.LastSeen = now

	if len(c.pending) >= c.cfg.MaxDistinct {
		c.flushLocked()
	}
}

// Pending returns the entries not yet flushed, most frequent first.
func (c *LogCollector) Pending() []CollectedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Recent returns the last flushed entries.
func (c *LogCollector) Recent() []CollectedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CollectedEntry(nil), c.recent...)
}

// Flush forces pending entries out.
func (c *LogCollector) Flush() {
	c.mu.Lock()
	c.flushLocked()
	c.mu.Unlock()
}

// Close stops the timer after a final flush.
func (c *LogCollector) Close() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

func (c *LogCollector) loop() {
	defer close(c.done)
	t := time.NewTicker(c.cfg.FlushEvery)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.Flush()
		case <-c.stop:
			c.Flush()
			return
		}
	}
}

func (c *LogCollector) snapshotLocked() []CollectedEntry {
	out := make([]CollectedEntry, 0, len(c.pending))
	for _, e := range c.pending {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func (c *LogCollector) flushLocked() {
	if len(c.pending) == 0 {
		return
	}
	batch := c.snapshotLocked()
	c.pending = make(map[string]*CollectedEntry)

	c.recent = append(c.recent, batch...)
	if n := c.cfg.Retain; n >= 0 && len(c.recent) > n {
		c.recent = c.recent[len(c.recent)-n:]
	}

	if c.cfg.Publisher == nil {
		return
	}
	pub, topic := c.cfg.Publisher, c.cfg.Topic
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pub.PublishMessage(ctx, topic, batch); err != nil {
			// not through Logger: it would feed the error back in here
			fmt.Fprintf(os.Stderr, "log collector: publish %d entries to %q: %v\n", len(batch), topic, err)
		}
	}()
}

// entryKey identifies an entry by level, caller, message and its fields in
// key order.
func entryKey(level, message string, fields map[string]interface{}, caller string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(level)
	b.WriteByte('|')
	b.WriteString(caller)
	b.WriteByte('|')
	b.WriteString(message)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, fields[k])
	}
	return b.String()
}
