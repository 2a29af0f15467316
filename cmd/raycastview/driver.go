package main

import (
	"errors"
	"fmt"

	"github.com/san-kum/raycastview/internal/batch"
	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/config"
	"github.com/san-kum/raycastview/internal/logging"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/session"
	"github.com/san-kum/raycastview/internal/viewer"
)

const torqueStep = 6.0

// episode is the carry threaded through viewer.Run.
type episode struct {
	Index int
	Steps int
}

// rig is everything one viewer run owns, closed in reverse order.
type rig struct {
	sess *session.Context
	mgr  *batch.Manager
	v    *viewer.Viewer
}

func (r *rig) Close() error {
	r.v.Close()
	return errors.Join(r.mgr.Close(), r.sess.Close())
}

func openRig(p platform.Platform, cfg *config.Config, width, height int, log logging.Logger, vc viewer.Config) (*rig, error) {
	sess, err := session.Create(p, width, height, cfg.Device.ID,
		session.WithLogger(log.With("session")), session.WithTitle(cfg.Window.Title))
	if err != nil {
		return nil, err
	}
	h, err := sess.Handles()
	if err != nil {
		return nil, errors.Join(err, sess.Close())
	}

	bc, err := cfg.Batch()
	if err != nil {
		return nil, errors.Join(err, sess.Close())
	}
	mgr, err := batch.New(bc, h.Device)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("building worlds: %w", err), sess.Close())
	}

	v, err := viewer.NewVisualizer(sess, mgr, viewer.WithConfig(vc), viewer.WithLogger(log.With("viewer")))
	if err != nil {
		return nil, errors.Join(err, mgr.Close(), sess.Close())
	}
	v.HandleInput(worldInput(mgr, log), agentInput(mgr))

	log.Infof("%s on %s: %d worlds x %d cams at %dpx (%s)",
		h.Backend, h.Device.Name(), bc.NumWorlds, bc.NumCams, bc.Resolution, bc.ExecMode)
	return &rig{sess: sess, mgr: mgr, v: v}, nil
}

func worldInput(mgr *batch.Manager, log logging.Logger) viewer.WorldInputFn {
	return func(world int, in platform.Input) {
		if in.Pressed.Has(platform.KeyR) {
			mgr.Reset(world)
			log.Infof("world %d reset", world)
		}
	}
}

// agentInput holds Up and Down as positive and negative torque on every
// pendulum of the selected world.
func agentInput(mgr *batch.Manager) viewer.AgentInputFn {
	return func(world, agent int, in platform.Input) {
		torque := 0.0
		if in.Down.Has(platform.KeyUp) {
			torque += torqueStep
		}
		if in.Down.Has(platform.KeyDown) {
			torque -= torqueStep
		}
		mgr.ApplyTorque(world, agent, torque)
	}
}

// stepEpisode advances the manager and resets every world once an episode
// has run for limit steps.
func stepEpisode(mgr *batch.Manager, limit int) func(episode) (episode, error) {
	return func(ep episode) (episode, error) {
		if err := mgr.Step(); err != nil {
			return ep, err
		}
		ep.Steps++
		if limit > 0 && ep.Steps >= limit {
			for w := 0; w < mgr.NumWorlds(); w++ {
				mgr.Reset(w)
			}
			ep = episode{Index: ep.Index + 1}
		}
		return ep, nil
	}
}

// transferSummary reports device copy counts for devices that keep them.
func transferSummary(dev compute.Device) (string, bool) {
	hd, ok := dev.(*compute.HostDevice)
	if !ok {
		return "", false
	}
	up, down := hd.Transfers()
	return fmt.Sprintf("%s: %d uploads, %d downloads", hd.Name(), up, down), true
}
