package main

import (
	"bytes"
	"image"
	"testing"

	"github.com/san-kum/raycastview/internal/batch"
	"github.com/san-kum/raycastview/internal/config"
	"github.com/san-kum/raycastview/internal/logging"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/storage"
	"github.com/san-kum/raycastview/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyConfig() *config.Config {
	cfg := config.GetPreset("tiny")
	cfg.Device.Backend = "host"
	return cfg
}

func TestStepEpisodeResets(t *testing.T) {
	bc, err := tinyConfig().Batch()
	require.NoError(t, err)
	mgr, err := batch.New(bc, nil)
	require.NoError(t, err)
	defer mgr.Close()

	step := stepEpisode(mgr, 3)
	ep := episode{}
	for i := 0; i < 7; i++ {
		ep, err = step(ep)
		require.NoError(t, err)
	}
	assert.Equal(t, episode{Index: 2, Steps: 1}, ep)
	assert.Equal(t, 7, mgr.Steps())
}

func TestRigRunsHeadless(t *testing.T) {
	cfg := tinyConfig()
	vc := cfg.ViewerConfig()
	vc.TickRate = 0

	r, err := openRig(&platform.Headless{Frames: 5, DeviceKind: "host"}, cfg, 64, 64, logging.Nop{}, vc)
	require.NoError(t, err)

	last, err := viewer.Run(t.Context(), r.v, r.mgr, stepEpisode(r.mgr, 0), episode{})
	require.NoError(t, err)
	assert.Equal(t, 5, last.Steps)
	assert.Equal(t, 5, r.v.Frames())
	require.NoError(t, r.Close())
}

func TestAgentInputAppliesTorque(t *testing.T) {
	bc, err := tinyConfig().Batch()
	require.NoError(t, err)
	pushed, err := batch.New(bc, nil)
	require.NoError(t, err)
	defer pushed.Close()
	idle, err := batch.New(bc, nil)
	require.NoError(t, err)
	defer idle.Close()

	push, rest := agentInput(pushed), agentInput(idle)
	for i := 0; i < 10; i++ {
		push(0, 0, platform.Input{Down: platform.Keys(platform.KeyUp)})
		rest(0, 0, platform.Input{})
		require.NoError(t, pushed.Step())
		require.NoError(t, idle.Step())
	}
	assert.Greater(t, pushed.AgentStates(0)[0][1], idle.AgentStates(0)[0][1])
}

func TestTransferSummaryCountsDeviceCopies(t *testing.T) {
	cfg := tinyConfig()
	cfg.Sim.ExecMode = "device"
	vc := cfg.ViewerConfig()
	vc.TickRate = 0

	r, err := openRig(&platform.Headless{Frames: 5, DeviceKind: "host"}, cfg, 64, 64, logging.Nop{}, vc)
	require.NoError(t, err)
	defer r.Close()

	_, err = viewer.Run(t.Context(), r.v, r.mgr, stepEpisode(r.mgr, 0), episode{})
	require.NoError(t, err)

	h, err := r.sess.Handles()
	require.NoError(t, err)
	line, ok := transferSummary(h.Device)
	require.True(t, ok)
	assert.Contains(t, line, "6 uploads, 5 downloads")
}

func TestTransferSummaryIgnoresUncountedDevices(t *testing.T) {
	_, ok := transferSummary(nil)
	assert.False(t, ok)
}

func TestWriteCaptureListsStates(t *testing.T) {
	st := storage.New(t.TempDir())
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	id, err := st.Save(storage.CaptureMetadata{World: 1, View: 0, Step: 12, Resolution: 2, Scale: 1, ExecMode: "host"},
		img, overlay.FormatPNG, [][]float64{{0.25, -1}, {3.1416, 0}})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeCapture(&out, st, id))
	text := out.String()
	assert.Contains(t, text, "capture "+id)
	assert.Contains(t, text, "world 1 view 0 step 12")
	assert.Contains(t, text, "AGENT")
	assert.Contains(t, text, "0.2500")
	assert.Contains(t, text, "3.1416")
}

func TestWriteCaptureUnknownID(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, writeCapture(&out, storage.New(t.TempDir()), "missing"))
}
