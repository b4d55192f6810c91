package notifications

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces notification ids.
// Implementations must never return the same id twice during the process
// lifetime and must be safe for concurrent use.
type IDGenerator interface {
	NewID(severity Severity, createdAt time.Time) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(severity Severity, createdAt time.Time) string

func (f IDGeneratorFunc) NewID(severity Severity, createdAt time.Time) string {
	return f(severity, createdAt)
}

// SequenceGenerator builds ids from the severity, the creation time in
// milliseconds and a monotonically increasing counter, e.g. "info-1718000000000-7".
// The counter keeps ids distinct when several notifications share a millisecond.
type SequenceGenerator struct {
	seq atomic.Uint64
}

// NewSequenceGenerator creates a generator whose counter starts at 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) NewID(severity Severity, createdAt time.Time) string {
	n := g.seq.Add(1)
	return string(severity) + "-" + strconv.FormatInt(createdAt.UnixMilli(), 10) + "-" + strconv.FormatUint(n, 10)
}

// UUIDGenerator returns random UUIDv4 ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(Severity, time.Time) string {
	return uuid.NewString()
}
