package main

import (
	"context"
	"log/slog"

	"github.com/alkime/coach/internal/audio"
	"github.com/alkime/coach/internal/recorder"
	"github.com/alkime/coach/internal/tui/screen"
)

func makeRecorderControls(
	ctx context.Context,
	rec *recorder.Controller,
	meter *audio.LevelMeter,
) screen.RecorderControls {
	return screen.RecorderControls{
		Record: recorderKnob{
			ctx:   ctx,
			rec:   rec,
			meter: meter,
		},
		Size:    takeSizeDial{rec: rec},
		Levels:  meter,
		Take:    rec.Take,
		Message: rec.Message,
		Reset: func() {
			rec.Reset(context.WithoutCancel(ctx))
		},
	}
}

// recorderKnob is on while the recorder is capturing.
type recorderKnob struct {
	ctx   context.Context
	rec   *recorder.Controller
	meter *audio.LevelMeter
}

func (k recorderKnob) Read() bool {
	return k.rec.State() == recorder.Recording
}

func (k recorderKnob) On() {
	k.meter.Reset()

	if err := k.rec.Start(k.ctx); err != nil {
		slog.Error("recorderKnob On error", "error", err)
	}
}

func (k recorderKnob) Off() {
	if err := k.rec.Stop(k.ctx); err != nil {
		slog.Error("recorderKnob Off error", "error", err)
	}
}

func (k recorderKnob) Toggle() {
	if k.Read() {
		k.Off()
	} else {
		k.On()
	}
}

// takeSizeDial reads bytes captured against the take cap.
type takeSizeDial struct {
	rec *recorder.Controller
}

func (d takeSizeDial) Read() int64 {
	return d.rec.BytesCaptured()
}

func (d takeSizeDial) Cap() (int64, int64) {
	return d.rec.BytesCaptured(), d.rec.MaxBytes()
}
