package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeQuerier struct {
	mu     sync.Mutex
	points [][2]int
	calls  int
	fail   bool
}

func (f *fakeQuerier) QueryPointer() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return 0, 0, errors.New("no display")
	}
	if len(f.points) == 0 {
		return 0, 0, nil
	}
	p := f.points[0]
	if len(f.points) > 1 {
		f.points = f.points[1:]
	}
	return p[0], p[1], nil
}

func (f *fakeQuerier) ScreenSize() (int, int) {
	return 200, 100
}

func (f *fakeQuerier) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPoller_PublishesOnlyOnMovement(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := &fakeQuerier{points: [][2]int{{100, 50}, {100, 50}, {0, 0}, {0, 0}}}
	p := NewPoller(q, 1000)

	samples := make(chan Sample, 16)
	p.Subscribe(func(s Sample) { samples <- s })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return q.Calls() >= 6 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	close(samples)

	var got []Sample
	for s := range samples {
		got = append(got, s)
	}
	assert.Equal(t, []Sample{{X: 0, Y: 0}, {X: -1, Y: 1}}, got)
	assert.Equal(t, Sample{X: -1, Y: 1}, p.Latest())
}

func TestPoller_SkipsQueryErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := &fakeQuerier{fail: true}
	p := NewPoller(q, 1000)

	published := 0
	p.Subscribe(func(Sample) { published++ })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.Positive(t, q.Calls())
	assert.Zero(t, published)
}

func TestPoller_StopsOnCancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPoller(&fakeQuerier{}, 0)
	assert.NoError(t, p.Run(ctx))
}
