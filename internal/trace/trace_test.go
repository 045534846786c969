package trace

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cursor-escape/internal/input"
)

func record(t *testing.T, frames []Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	for _, f := range frames {
		require.NoError(t, rec.Record(f.Index, f.Sample))
	}
	require.NoError(t, rec.Close())
	assert.Equal(t, uint64(len(frames)), rec.Frames())
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	frames := Orbit(500, 120, 0.7)
	frames = append(frames, Frame{Index: 501, Sample: input.Sample{X: -1, Y: 1}})

	got, err := ReadAll(bytes.NewReader(record(t, frames)))
	require.NoError(t, err)
	if diff := cmp.Diff(frames, got); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyTrace(t *testing.T) {
	got, err := ReadAll(bytes.NewReader(record(t, nil)))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadAll_RejectsForeignData(t *testing.T) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	_, err := zw.Write([]byte("JUNK\x01 not a trace"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadAll(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadAll(bytes.NewReader([]byte("plain bytes")))
	assert.Error(t, err)
}

func TestReadAll_TruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	_, err := zw.Write(append([]byte(magic), version, 1, 2, 3))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadAll(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}

func TestPlayer(t *testing.T) {
	frames := []Frame{
		{Index: 1, Sample: input.Sample{X: 0.1}},
		{Index: 2, Sample: input.Sample{X: 0.2}},
	}

	p := NewPlayer(frames, false)
	var got []input.Sample
	unsubscribe := p.Subscribe(func(s input.Sample) { got = append(got, s) })
	defer unsubscribe()

	assert.True(t, p.Advance())
	assert.True(t, p.Advance())
	assert.False(t, p.Advance())
	assert.Equal(t, []input.Sample{{X: 0.1}, {X: 0.2}}, got)
	assert.Equal(t, input.Sample{X: 0.2}, p.Latest())

	looping := NewPlayer(frames, true)
	for i := 0; i < 5; i++ {
		assert.True(t, looping.Advance())
	}
	assert.Equal(t, input.Sample{X: 0.1}, looping.Latest())

	assert.False(t, NewPlayer(nil, true).Advance())
}

func TestOrbit(t *testing.T) {
	frames := Orbit(4, 4, 2)
	require.Len(t, frames, 4)
	assert.Equal(t, uint64(1), frames[0].Index)
	assert.Equal(t, input.Sample{X: 1, Y: 0}, frames[0].Sample, "clamped to the unit square")
	assert.InDelta(t, 1, frames[1].Sample.Y, 1e-12)
}
