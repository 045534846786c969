// Package trace records the pointer samples a session fed to each frame and
// plays them back, so a run can be reproduced headless with the same seed.
package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"

	"cursor-escape/internal/input"
)

const (
	magic   = "CETR"
	version = 1

	recordSize = 8 + 8 + 8
)

var ErrBadHeader = errors.New("not a pointer trace")

type Frame struct {
	Index  uint64
	Sample input.Sample
}

// Recorder writes frames into an LZ4 frame stream. Close must be called to
// flush the compressor; it does not close the underlying writer.
type Recorder struct {
	zw     *lz4.Writer
	buf    [recordSize]byte
	frames uint64
	err    error
}

func NewRecorder(w io.Writer) (*Recorder, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Fast)); err != nil {
		return nil, fmt.Errorf("configure lz4 writer: %w", err)
	}

	header := append([]byte(magic), version)
	if _, err := zw.Write(header); err != nil {
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	return &Recorder{zw: zw}, nil
}

// Record appends one frame. The first write error is kept and returned by
// every later call and by Close.
func (r *Recorder) Record(index uint64, s input.Sample) error {
	if r.err != nil {
		return r.err
	}

	binary.LittleEndian.PutUint64(r.buf[0:8], index)
	binary.LittleEndian.PutUint64(r.buf[8:16], math.Float64bits(s.X))
	binary.LittleEndian.PutUint64(r.buf[16:24], math.Float64bits(s.Y))
	if _, err := r.zw.Write(r.buf[:]); err != nil {
		r.err = fmt.Errorf("write frame %d: %w", index, err)
		return r.err
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() uint64 {
	return r.frames
}

func (r *Recorder) Close() error {
	if err := r.zw.Close(); err != nil && r.err == nil {
		r.err = fmt.Errorf("flush trace: %w", err)
	}
	return r.err
}

// ReadAll decodes a whole trace.
func ReadAll(rd io.Reader) ([]Frame, error) {
	zr := bufio.NewReader(lz4.NewReader(rd))

	header := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(zr, header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if string(header[:len(magic)]) != magic {
		return nil, ErrBadHeader
	}
	if header[len(magic)] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadHeader, header[len(magic)])
	}

	var frames []Frame
	var buf [recordSize]byte
	for {
		_, err := io.ReadFull(zr, buf[:])
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("read frame %d: %w", len(frames), err)
		}
		frames = append(frames, Frame{
			Index: binary.LittleEndian.Uint64(buf[0:8]),
			Sample: input.Sample{
				X: math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16])),
				Y: math.Float64frombits(binary.LittleEndian.Uint64(buf[16:24])),
			},
		})
	}
}
