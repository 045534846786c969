package trace

import (
	"math"

	"cursor-escape/internal/input"
)

// Player is a pointer Source driven by recorded frames. Each Advance
// publishes the next frame's sample.
type Player struct {
	*input.Broadcaster
	frames []Frame
	next   int
	loop   bool
}

func NewPlayer(frames []Frame, loop bool) *Player {
	return &Player{Broadcaster: input.NewBroadcaster(), frames: frames, loop: loop}
}

// Advance publishes the next sample and reports false once a non-looping
// player is exhausted.
func (p *Player) Advance() bool {
	if len(p.frames) == 0 {
		return false
	}
	if p.next >= len(p.frames) {
		if !p.loop {
			return false
		}
		p.next = 0
	}

	p.Publish(p.frames[p.next].Sample)
	p.next++
	return true
}

func (p *Player) Len() int {
	return len(p.frames)
}

// Orbit generates a synthetic trace where the pointer circles the viewport
// centre once every period frames.
func Orbit(n, period int, radius float64) []Frame {
	if period <= 0 {
		period = 1
	}
	frames := make([]Frame, n)
	for i := range frames {
		angle := 2 * math.Pi * float64(i) / float64(period)
		frames[i] = Frame{
			Index:  uint64(i + 1),
			Sample: input.Sample{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}.Clamp(),
		}
	}
	return frames
}
