package particle

// randomize places every particle uniformly inside the bounds on the z=0
// plane and gives it a small random drift in x and y.
func (f *Field) randomize() {
	positions := f.buffer.Data()
	width, height := f.config.Bounds.Width, f.config.Bounds.Height

	for i := 0; i < len(positions); i += ItemSize {
		positions[i] = float32((f.rng.Float64() - 0.5) * width)
		positions[i+1] = float32((f.rng.Float64() - 0.5) * height)
		positions[i+2] = 0

		f.velocities[i] = float32((f.rng.Float64() - 0.5) * 2 * MaxInitialSpeed)
		f.velocities[i+1] = float32((f.rng.Float64() - 0.5) * 2 * MaxInitialSpeed)
		f.velocities[i+2] = 0
	}
}
