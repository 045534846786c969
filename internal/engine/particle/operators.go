package particle

import (
	"math"

	"cursor-escape/internal/scene"
)

// Step advances every particle in st by one frame against the pointer's
// world position. It mutates st in place and allocates nothing.
//
// Particles inside the avoidance radius ease toward the ring around the
// pointer; all others drift by their velocity. Either way the resulting
// position is then reflected off the bounds.
func Step(st State, pointer scene.Vec2, params StepParams) Stats {
	stats := Stats{Count: st.Count()}
	positions, velocities := st.Positions, st.Velocities
	halfW, halfH := params.Bounds.HalfExtents()

	for i := 0; i+2 < len(positions); i += ItemSize {
		x := float64(positions[i])
		y := float64(positions[i+1])
		vx := float64(velocities[i])
		vy := float64(velocities[i+1])

		if nx, ny, ok := avoid(x, y, pointer, params.AvoidRadius); ok {
			x, y = nx, ny
			stats.Avoiding++
		} else {
			x += vx
			y += vy
		}

		var hitX, hitY bool
		x, vx, hitX = reflect(x, vx, halfW)
		y, vy, hitY = reflect(y, vy, halfH)
		if hitX || hitY {
			stats.Reflected++
		}

		positions[i] = float32(x)
		positions[i+1] = float32(y)
		velocities[i] = float32(vx)
		velocities[i+1] = float32(vy)
	}

	return stats
}

// avoid reports whether (x, y) lies strictly inside radius of the pointer
// and, if so, returns the position moved AvoidLerp of the way toward the
// ring point in the same direction. A particle exactly on the pointer uses
// atan2(0, 0) = 0 and heads for the ring's +x point.
func avoid(x, y float64, pointer scene.Vec2, radius float64) (float64, float64, bool) {
	if (scene.Vec2{X: x, Y: y}).Distance(pointer) >= radius {
		return x, y, false
	}

	angle := math.Atan2(y-pointer.Y, x-pointer.X)
	avoidX := pointer.X + math.Cos(angle)*radius
	avoidY := pointer.Y + math.Sin(angle)*radius

	return scene.Lerp(x, avoidX, AvoidLerp), scene.Lerp(y, avoidY, AvoidLerp), true
}

// reflect bounces a coordinate off [-half, half], negating the velocity and
// pulling the coordinate BoundaryInset back inside. The inset never exceeds
// half so tiny bounds still satisfy |pos| <= half.
func reflect(pos, vel, half float64) (float64, float64, bool) {
	inset := math.Min(BoundaryInset, half)
	switch {
	case pos > half:
		return half - inset, -vel, true
	case pos < -half:
		return -half + inset, -vel, true
	}
	return pos, vel, false
}
