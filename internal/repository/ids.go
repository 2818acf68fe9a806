package repository

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

// MillisGenerator issues wall-clock millisecond ids. Two calls within the same
// millisecond get consecutive values, so ids from one process never repeat.
type MillisGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMillisGenerator(now func() time.Time) *MillisGenerator {
	if now == nil {
		now = time.Now
	}
	return &MillisGenerator{now: now}
}

func (g *MillisGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// NewIDGenerator picks a generator by strategy name ("uuid" or "millis").
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == "uuid" {
		return UUIDGenerator{}
	}
	return NewMillisGenerator(nil)
}
