package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"cursor-escape/internal/driver"
	"cursor-escape/internal/input"
	"cursor-escape/internal/trace"
	"cursor-escape/internal/utils"
)

type recording struct {
	file   *os.File
	rec    *trace.Recorder
	failed bool
}

func addRecordFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVar(path, "record", "", "record the pointer trace of this session to a file")
}

// startRecording records every frame of drv into path. It returns nil when
// path is empty.
func startRecording(path string, drv *driver.Driver) (*recording, error) {
	if path == "" {
		return nil, nil
	}

	f, err := utils.CreateFile(path)
	if err != nil {
		return nil, err
	}
	rec, err := trace.NewRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := &recording{file: f, rec: rec}
	drv.OnFrame(func(frame uint64, s input.Sample) {
		if err := r.rec.Record(frame, s); err != nil && !r.failed {
			r.failed = true
			utils.Warn("Trace recording failed: %v", err)
		}
	})
	utils.Info("Recording pointer trace to %s", path)
	return r, nil
}

func (r *recording) Close() error {
	if r == nil {
		return nil
	}
	err := r.rec.Close()
	utils.Info("Recorded %d frames to %s", r.rec.Frames(), r.file.Name())
	return errors.Join(err, r.file.Close())
}
