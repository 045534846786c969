package particle

// PositionBuffer is the flat xyz position array shared with the renderer.
// The backing slice is reused across frames; NeedsUpdate reports whether
// it changed since the renderer last called MarkUploaded.
type PositionBuffer struct {
	data        []float32
	needsUpdate bool
	version     uint64
}

const ItemSize = 3

func newPositionBuffer(count int) *PositionBuffer {
	return &PositionBuffer{data: make([]float32, count*ItemSize)}
}

func (b *PositionBuffer) Data() []float32 {
	return b.data
}

func (b *PositionBuffer) Count() int {
	return len(b.data) / ItemSize
}

func (b *PositionBuffer) NeedsUpdate() bool {
	return b.needsUpdate
}

func (b *PositionBuffer) Version() uint64 {
	return b.version
}

func (b *PositionBuffer) MarkDirty() {
	b.needsUpdate = true
	b.version++
}

func (b *PositionBuffer) MarkUploaded() {
	b.needsUpdate = false
}

func (b *PositionBuffer) resize(count int) {
	if cap(b.data) >= count*ItemSize {
		b.data = b.data[:count*ItemSize]
		return
	}
	b.data = make([]float32, count*ItemSize)
}
