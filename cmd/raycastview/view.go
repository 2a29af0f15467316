package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/raycastview/internal/gui"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/tui"
	"github.com/san-kum/raycastview/internal/viewer"
	"github.com/spf13/cobra"
)

const (
	tuiWidth  = 120
	tuiHeight = 40
)

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	p := gui.New(cfg.DeviceKind(), overlay.Vec2{X: cfg.Overlay.PanelX, Y: cfg.Overlay.PanelY})
	r, err := openRig(p, cfg, cfg.Window.Width, cfg.Window.Height, log, cfg.ViewerConfig())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	last, runErr := viewer.Run(ctx, r.v, r.mgr, stepEpisode(r.mgr, episodeSteps), episode{})
	log.Infof("viewer closed after %d frames, episode %d step %d", r.v.Frames(), last.Index, last.Steps)
	if ctx.Err() != nil && errors.Is(runErr, ctx.Err()) {
		runErr = nil
	}
	return errors.Join(runErr, r.Close())
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.Create(filepath.Join(dataDir, "tui.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()
	log, err := newLogger(logFile, logFile)
	if err != nil {
		return err
	}

	vc := cfg.ViewerConfig()
	vc.Overlay = tui.OverlayOptions()

	r, err := openRig(tui.New(cfg.DeviceKind()), cfg, tuiWidth, tuiHeight, log, vc)
	if err != nil {
		return err
	}
	h, err := r.sess.Handles()
	if err != nil {
		return errors.Join(err, r.Close())
	}
	win, ok := h.Window.(*tui.Window)
	if !ok {
		return errors.Join(fmt.Errorf("unexpected window %T", h.Window), r.Close())
	}

	ctx, cancel := signalContext()
	defer cancel()

	step := stepEpisode(r.mgr, episodeSteps)
	ep := episode{}
	runErr := tui.Run(ctx, r.v, win, viewer.Hooks{
		Step: func() error {
			next, err := step(ep)
			if err != nil {
				return err
			}
			ep = next
			return nil
		},
	})
	if ctx.Err() != nil && errors.Is(runErr, ctx.Err()) {
		runErr = nil
	}
	return errors.Join(runErr, r.Close())
}
