package input

import (
	"sync"
)

// Sample is a pointer position in normalized device coordinates, with
// (-1,-1) at the bottom-left of the viewport and (1,1) at the top-right.
type Sample struct {
	X, Y float64
}

func (s Sample) Clamp() Sample {
	return Sample{X: clampUnit(s.X), Y: clampUnit(s.Y)}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// FromScreen converts a window-space pixel position (origin top-left, y down)
// into normalized device coordinates.
func FromScreen(px, py, width, height float64) Sample {
	if width <= 0 || height <= 0 {
		return Sample{}
	}
	return Sample{
		X: (px/width)*2 - 1,
		Y: -(py/height)*2 + 1,
	}
}

// Source delivers pointer samples to registered listeners. The returned
// function removes the listener and is safe to call more than once.
type Source interface {
	Subscribe(listener func(Sample)) (unsubscribe func())
}

// Broadcaster is an in-process Source. Hosts call Publish from their input
// plumbing; the last published sample is kept for frame-time queries.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[uint64]func(Sample)
	nextID    uint64
	latest    Sample
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[uint64]func(Sample))}
}

func (b *Broadcaster) Subscribe(listener func(Sample)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Publish stores s as the latest sample and hands it to every listener.
// Listeners run on the caller's goroutine.
func (b *Broadcaster) Publish(s Sample) {
	b.mu.Lock()
	b.latest = s
	listeners := make([]func(Sample), 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

func (b *Broadcaster) Latest() Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

func (b *Broadcaster) ListenerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
