package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"teddy/internal/storage"
)

// monday is 2026-03-02, a Monday.
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Set(t time.Time) { c.now = t }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fixedRand always picks index n (mod the bound) and returns f for floats.
type fixedRand struct {
	n int
	f float64
}

func (r fixedRand) IntN(bound int) int { return r.n % bound }

func (r fixedRand) Float64() float64 { return r.f }

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	var out []EventKind
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestService(t *testing.T, clock Clock, opts ...Option) *Service {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	opts = append([]Option{WithClock(clock), WithRand(fixedRand{})}, opts...)
	return NewService(db, opts...)
}
