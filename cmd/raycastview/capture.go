package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/config"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/storage"
	"github.com/san-kum/raycastview/internal/viewer"
	"github.com/spf13/cobra"
)

var (
	captureFrames int
	captureWorld  int
	captureView   int
	captureFormat string
	captureScale  int
)

// headlessPlatform closes its window after frames frames (never for 0). An
// OpenGL backend needs a real window, so headless runs use emulated device
// memory instead.
func headlessPlatform(cfg *config.Config, frames int) *platform.Headless {
	kind := cfg.DeviceKind()
	if kind == compute.KindOpenGL {
		kind = compute.KindHost
	}
	return &platform.Headless{Frames: frames, DeviceKind: kind}
}

func captureStore() *storage.Store {
	return storage.New(filepath.Join(dataDir, "captures"))
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := overlay.FormatFromPath("capture." + captureFormat)
	if err != nil {
		return err
	}
	if captureWorld < 0 || captureWorld >= cfg.Sim.Worlds {
		return fmt.Errorf("world %d out of range [0, %d)", captureWorld, cfg.Sim.Worlds)
	}
	log, err := newLogger(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	vc := cfg.ViewerConfig()
	vc.TickRate = 0
	r, err := openRig(headlessPlatform(cfg, captureFrames), cfg, cfg.Window.Width, cfg.Window.Height, log, vc)
	if err != nil {
		return err
	}
	defer r.Close()

	r.v.Select(captureWorld, captureView)
	last, err := viewer.Run(context.Background(), r.v, r.mgr, stepEpisode(r.mgr, episodeSteps), episode{})
	if err != nil {
		return err
	}

	world, view := r.v.Selection()
	img, err := overlay.Snapshot(r.v.Reconstructor(), world, view)
	if err != nil {
		return err
	}

	st := captureStore()
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.CaptureMetadata{
		World:      world,
		View:       view,
		Step:       r.mgr.Steps(),
		Resolution: cfg.Sim.Resolution,
		Scale:      captureScale,
		ExecMode:   r.mgr.ExecMode().String(),
		Energy:     r.mgr.Energy(world),
	}, overlay.Upscale(img, captureScale), format, r.mgr.AgentStates(world))
	if err != nil {
		return err
	}

	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	log.Infof("captured world %d view %d at step %d (episode %d)", world, view, r.mgr.Steps(), last.Index)
	fmt.Printf("capture %s\n%s\n", id, st.ImagePath(meta))
	return nil
}

func listCaptures(cmd *cobra.Command, args []string) error {
	caps, err := captureStore().List()
	if err != nil {
		return err
	}
	if len(caps) == 0 {
		fmt.Println("no captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tWORLD\tVIEW\tSTEP\tRES\tMODE\tFORMAT\tENERGY")
	for _, c := range caps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\t%.3f\n",
			c.ID,
			c.Timestamp.Format("2006-01-02 15:04:05"),
			c.World,
			c.View,
			c.Step,
			c.Resolution,
			c.ExecMode,
			c.Format,
			c.Energy,
		)
	}
	return w.Flush()
}

func showCapture(cmd *cobra.Command, args []string) error {
	return writeCapture(os.Stdout, captureStore(), args[0])
}

// writeCapture prints the metadata of capture id followed by one row per
// agent state.
func writeCapture(out io.Writer, st *storage.Store, id string) error {
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "capture %s (%s)\n", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "world %d view %d step %d, %dpx x%d %s, energy %.3f\n",
		meta.World, meta.View, meta.Step, meta.Resolution, meta.Scale, meta.ExecMode, meta.Energy)
	fmt.Fprintf(out, "image %s\n\n", st.ImagePath(meta))
	if len(states) == 0 {
		fmt.Fprintln(out, "no agent states recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tTHETA\tOMEGA")
	for a, x := range states {
		row := fmt.Sprintf("%d", a)
		for _, v := range x {
			row += fmt.Sprintf("\t%.4f", v)
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}
