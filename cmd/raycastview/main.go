package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/raycastview/internal/config"
	"github.com/san-kum/raycastview/internal/control"
	"github.com/san-kum/raycastview/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	logLevel   string

	worlds     int
	cams       int
	agents     int
	resolution int
	execMode   string
	backend    string
	deviceID   int
	dt         float64
	seed       int64
	integrator string
	policy     string
	tickRate   float64

	episodeSteps int
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// main registers the commands and runs the desktop viewer when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "raycastview",
		Short:        "interactive viewer for batched pendulum worlds and their raycast sensors",
		SilenceUsage: true,
		RunE:         runView,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".raycastview", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&worlds, "worlds", config.DefaultWorlds, "number of worlds")
	rootCmd.PersistentFlags().IntVar(&cams, "cams", config.DefaultCams, "cameras per world")
	rootCmd.PersistentFlags().IntVar(&agents, "agents", config.DefaultAgents, "pendulums per world")
	rootCmd.PersistentFlags().IntVar(&resolution, "res", config.DefaultResolution, "raycast resolution")
	rootCmd.PersistentFlags().StringVar(&execMode, "exec", "host", "raycast residency (host, device)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "auto", "compute backend (auto, host, opengl, cuda)")
	rootCmd.PersistentFlags().IntVar(&deviceID, "device", 0, "compute device id")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed")
	rootCmd.PersistentFlags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "none", "agent policy ("+strings.Join(control.Names(), ", ")+")")
	rootCmd.PersistentFlags().Float64Var(&tickRate, "tick", 30, "viewer tick rate")
	rootCmd.PersistentFlags().IntVar(&episodeSteps, "episode", 0, "reset every world after this many steps (0 never)")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "open the desktop viewer",
		RunE:  runView,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the viewer in the terminal",
		RunE:  runTUI,
	}

	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "run headless and save the selected raycast image",
		RunE:  runCapture,
	}
	captureCmd.Flags().IntVar(&captureFrames, "frames", 60, "frames to simulate before capturing")
	captureCmd.Flags().IntVar(&captureWorld, "world", 0, "world to capture")
	captureCmd.Flags().IntVar(&captureView, "view", 0, "camera to capture")
	captureCmd.Flags().StringVar(&captureFormat, "format", "png", "image format (png, webp, tga)")
	captureCmd.Flags().IntVar(&captureScale, "scale", 4, "upscale factor")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list captures",
		RunE:  listCaptures,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a capture's metadata and agent states",
		Args:  cobra.ExactArgs(1),
		RunE:  showCapture,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark headless frames",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames to run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(titleStyle.Render("presets"))
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %s\n", name, dimStyle.Render(fmt.Sprintf("%d worlds x %d cams, %d agents, %dpx, %s",
					p.Sim.Worlds, p.Sim.Cams, p.Sim.Agents, p.Sim.Resolution, p.Sim.ExecMode)))
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(viewCmd, tuiCmd, captureCmd, listCmd, showCmd, benchCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(out, errOut io.Writer) (logging.Logger, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = logging.LevelDebug
	}
	return logging.NewWithWriters(level, out, errOut), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadConfig applies, in order: defaults, preset, config file, then any
// flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("worlds") {
		cfg.Sim.Worlds = worlds
	}
	if flags.Changed("cams") {
		cfg.Sim.Cams = cams
	}
	if flags.Changed("agents") {
		cfg.Sim.Agents = agents
	}
	if flags.Changed("res") {
		cfg.Sim.Resolution = resolution
	}
	if flags.Changed("exec") {
		cfg.Sim.ExecMode = execMode
	}
	if flags.Changed("backend") {
		cfg.Device.Backend = backend
	}
	if flags.Changed("device") {
		cfg.Device.ID = deviceID
	}
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Sim.Integrator = integrator
	}
	if flags.Changed("policy") {
		cfg.Sim.Policy = policy
	}
	if flags.Changed("tick") {
		cfg.Viewer.TickRate = tickRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
