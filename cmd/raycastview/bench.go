package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/raycastview/internal/metrics"
	"github.com/san-kum/raycastview/internal/viewer"
	"github.com/spf13/cobra"
)

var benchFrames int

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchFrames < 1 {
		return fmt.Errorf("frames must be positive, got %d", benchFrames)
	}
	log, err := newLogger(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	vc := cfg.ViewerConfig()
	vc.TickRate = 0
	r, err := openRig(headlessPlatform(cfg, 0), cfg, cfg.Window.Width, cfg.Window.Height, log, vc)
	if err != nil {
		return err
	}
	defer r.Close()

	frames := metrics.NewFrameTime(benchFrames)
	drift := metrics.NewEnergyDrift()
	effort := metrics.NewControlEffort()

	step := stepEpisode(r.mgr, episodeSteps)
	ep := episode{}
	hooks := viewer.Hooks{
		Step: func() error {
			next, err := step(ep)
			if err != nil {
				return err
			}
			ep = next
			drift.Observe(r.mgr.Energy(0))
			effort.Observe(r.mgr.AppliedTorques(0)...)
			return nil
		},
	}

	start := time.Now()
	for i := 0; i < benchFrames; i++ {
		t0 := time.Now()
		if err := r.v.Frame(hooks); err != nil {
			return err
		}
		frames.Observe(time.Since(t0))
	}
	total := time.Since(start)

	fmt.Printf("benchmarking %d worlds x %d cams at %dpx (%s, %s, policy %s)\n\n",
		cfg.Sim.Worlds, cfg.Sim.Cams, cfg.Sim.Resolution, r.mgr.ExecMode(), cfg.Sim.Integrator, cfg.Sim.Policy)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tTIME\tMEAN\tP50\tP95\tMAX\tFRAMES/SEC\tIMAGES/SEC")
	fps := float64(benchFrames) / total.Seconds()
	fmt.Fprintf(w, "%d\t%v\t%.2fms\t%.2fms\t%.2fms\t%.2fms\t%.0f\t%.0f\n",
		benchFrames, total.Round(time.Millisecond), frames.Value(),
		frames.Percentile(0.5), frames.Percentile(0.95), frames.Max(),
		fps, fps*float64(cfg.Sim.Worlds*cfg.Sim.Cams))
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nworld 0: %s %.4f, %s %.3f\n", drift.Name(), drift.Value(), effort.Name(), effort.Value())
	if h, err := r.sess.Handles(); err == nil {
		if line, ok := transferSummary(h.Device); ok {
			fmt.Println(line)
		}
	}
	fmt.Println()

	fmt.Println(asciigraph.Plot(frames.Samples(),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("frame time (ms)"),
	))
	return nil
}
