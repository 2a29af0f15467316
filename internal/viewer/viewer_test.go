package viewer_test

import (
	"context"
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/overlay"
	"github.com/san-kum/raycastview/internal/platform"
	"github.com/san-kum/raycastview/internal/session"
	"github.com/san-kum/raycastview/internal/viewer"
)

var _ = Describe("Viewer", func() {
	var (
		events   []string
		trace    func(string)
		headless *platform.Headless
		mgr      *fakeManager
		canvas   *tracingCanvas
		clock    *fakeClock
		sess     *session.Context
		v        *viewer.Viewer
		extra    []viewer.Option
	)

	build := func() {
		var err error
		sess, err = session.Create(headless, 320, 240, 0)
		Expect(err).NotTo(HaveOccurred())
		opts := append([]viewer.Option{viewer.WithClock(clock), viewer.WithCanvas(canvas)}, extra...)
		v, err = viewer.NewVisualizer(sess, mgr, opts...)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		events = nil
		trace = func(e string) { events = append(events, e) }
		headless = &platform.Headless{Frames: 1, Trace: trace}
		mgr = newFakeManager(3, 2, 2)
		canvas = &tracingCanvas{trace: trace}
		clock = &fakeClock{now: time.Unix(0, 0)}
		extra = nil
	})

	AfterEach(func() {
		if v != nil {
			v.Close()
		}
		Expect(sess.Close()).To(Succeed())
		v = nil
	})

	Describe("configuration", func() {
		It("uses the fixed session defaults", func() {
			build()
			cfg := v.Config()
			Expect(cfg.TickRate).To(Equal(30.0))
			Expect(cfg.CameraMoveSpeed).To(Equal(float32(5.0)))
			Expect(cfg.CameraPosition).To(Equal(mgl32.Vec3{0, -3, 0}))
			Expect(cfg.CameraRotation).To(Equal(mgl32.Quat{W: 1}))
			Expect(cfg.Overlay).To(Equal(overlay.DefaultOptions()))
		})
	})

	Describe("state machine", func() {
		It("starts idle and stops when the window closes", func() {
			headless.Frames = 3
			build()
			Expect(v.State()).To(Equal(viewer.Idle))

			steps := 0
			err := v.Loop(context.Background(), viewer.Hooks{
				Step: func() error { steps++; return nil },
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(3))
			Expect(v.Frames()).To(Equal(3))
			Expect(v.State()).To(Equal(viewer.Stopped))
		})

		It("refuses to run again once stopped", func() {
			build()
			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(Succeed())
			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(MatchError(viewer.ErrStopped))
			Expect(v.Frame(viewer.Hooks{})).To(MatchError(viewer.ErrStopped))
		})

		It("stops cleanly when the step asks for it", func() {
			headless.Frames = 0
			build()
			steps := 0
			err := v.Loop(context.Background(), viewer.Hooks{
				Step: func() error {
					steps++
					if steps == 4 {
						return viewer.ErrStop
					}
					return nil
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(4))
			Expect(v.State()).To(Equal(viewer.Stopped))
		})

		It("exits between frames when the context is cancelled", func() {
			headless.Frames = 0
			build()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			err := v.Loop(ctx, viewer.Hooks{Step: func() error { return nil }})
			Expect(err).To(MatchError(context.Canceled))
			Expect(v.Frames()).To(BeZero())
		})
	})

	Describe("frame phases", func() {
		It("runs input, step, render and overlay once each, in order", func() {
			build()
			err := v.Loop(context.Background(), viewer.Hooks{
				WorldInput: func(int, platform.Input) { trace("input") },
				AgentInput: func(int, int, platform.Input) { trace("agent") },
				Step:       func() error { trace("step"); return nil },
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]string{
				"input", "agent", "agent", "step", "begin", "render", "overlay", "end",
			}))
		})

		It("skips render and overlay when the step fails", func() {
			build()
			boom := errors.New("simulation diverged")
			err := v.Loop(context.Background(), viewer.Hooks{
				Step: func() error { trace("step"); return boom },
			})

			Expect(errors.Is(err, boom)).To(BeTrue())
			var fe *dynamo.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Phase).To(Equal(dynamo.PhaseStep))
			Expect(events).To(Equal([]string{"step"}))
			Expect(v.State()).To(Equal(viewer.Stopped))
		})

		It("treats renderer failures as fatal and skips the overlay", func() {
			extra = []viewer.Option{viewer.WithRenderer(failingRenderer{})}
			build()
			err := v.Loop(context.Background(), viewer.Hooks{})

			var fe *dynamo.FrameError
			Expect(errors.As(err, &fe)).To(BeTrue())
			Expect(fe.Phase).To(Equal(dynamo.PhaseRender))
			Expect(errors.Is(err, errContextLost)).To(BeTrue())
			Expect(events).NotTo(ContainElement("overlay"))
		})

		It("draws the selected image into the Raycast panel", func() {
			build()
			v.Select(2, 1)
			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(Succeed())

			Expect(canvas.Titles).To(Equal([]string{"Raycast"}))
			Expect(canvas.Rects).To(HaveLen(4))
			idx := byte(2*2 + 1)
			for _, r := range canvas.Rects {
				Expect(r.Color.R).To(Equal(idx))
				Expect(r.Color.A).To(Equal(uint8(255)))
			}
		})
	})

	Describe("input controls", func() {
		It("pauses stepping but keeps rendering", func() {
			headless.Frames = 3
			headless.Script = []platform.Input{pressed(platform.KeySpace), {}, pressed(platform.KeySpace)}
			build()

			steps := 0
			Expect(v.Loop(context.Background(), viewer.Hooks{
				Step: func() error { steps++; return nil },
			})).To(Succeed())

			Expect(steps).To(Equal(1))
			Expect(events).To(HaveLen(3 * 4))
			Expect(v.Paused()).To(BeFalse())
		})

		It("cycles worlds with wrap-around", func() {
			headless.Frames = 2
			headless.Script = []platform.Input{pressed(platform.KeyPageUp), pressed(platform.KeyPageDown)}
			build()

			var seen []int
			Expect(v.Loop(context.Background(), viewer.Hooks{
				WorldInput: func(world int, _ platform.Input) { seen = append(seen, world) },
			})).To(Succeed())

			Expect(seen).To(Equal([]int{2, 0}))
		})

		It("calls the agent handler for every agent of the selected world", func() {
			headless.Frames = 1
			mgr.agents = 3
			build()
			v.Select(1, 0)

			type call struct{ world, agent int }
			var calls []call
			Expect(v.Loop(context.Background(), viewer.Hooks{
				AgentInput: func(world, agent int, _ platform.Input) { calls = append(calls, call{world, agent}) },
			})).To(Succeed())

			Expect(calls).To(Equal([]call{{1, 0}, {1, 1}, {1, 2}}))
		})

		It("cycles views through the free camera", func() {
			headless.Frames = 3
			headless.Script = []platform.Input{
				pressed(platform.KeyRight),
				pressed(platform.KeyRight),
				pressed(platform.KeyRight),
			}
			build()

			var views []int
			Expect(v.Loop(context.Background(), viewer.Hooks{
				Step: func() error { _, view := v.Selection(); views = append(views, view); return nil },
			})).To(Succeed())

			Expect(views).To(Equal([]int{1, -1, 0}))
		})

		It("draws camera 0 while the free camera is active", func() {
			headless.Frames = 1
			headless.Script = []platform.Input{pressed(platform.KeyEscape)}
			build()
			v.Select(1, 1)

			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(Succeed())
			_, view := v.Selection()
			Expect(view).To(Equal(-1))
			Expect(canvas.Rects[0].Color.R).To(Equal(byte(2)))
		})

		It("flies the free camera at the configured speed", func() {
			headless.Frames = 1
			headless.Script = []platform.Input{{Down: platform.Keys(platform.KeyW), Dt: 0.5}}
			build()
			v.Select(0, -1)

			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(Succeed())
			pos := v.FlyCamera().Position
			Expect(pos.Sub(mgl32.Vec3{0, -0.5, 0}).Len()).To(BeNumerically("<", 1e-4), "got %v", pos)
		})
	})

	Describe("pacing", func() {
		It("sleeps out the remainder of each tick", func() {
			headless.Frames = 2
			clock.cost = 10 * time.Millisecond
			build()

			Expect(v.Loop(context.Background(), viewer.Hooks{})).To(Succeed())
			Expect(clock.slept).To(HaveLen(2))
			tick := time.Second / 30
			for _, d := range clock.slept {
				Expect(d).To(BeNumerically("~", tick-10*time.Millisecond, time.Millisecond))
			}
		})
	})

	Describe("Run", func() {
		It("threads the carry value through every step", func() {
			headless.Frames = 5
			build()

			final, err := viewer.Run(context.Background(), v, mgr, func(n int) (int, error) {
				return n + 2, nil
			}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(final).To(Equal(11))
		})

		It("returns the last good carry when the callback fails", func() {
			headless.Frames = 5
			build()
			boom := errors.New("reset failed")

			final, err := viewer.Run(context.Background(), v, mgr, func(s []string) ([]string, error) {
				if len(s) == 2 {
					return nil, boom
				}
				return append(s, "ok"), nil
			}, nil)
			Expect(errors.Is(err, boom)).To(BeTrue())
			Expect(final).To(Equal([]string{"ok", "ok"}))
		})

		It("rejects a manager the viewer was not built with", func() {
			build()
			_, err := viewer.Run(context.Background(), v, newFakeManager(1, 1, 1), func(n int) (int, error) {
				return n, nil
			}, 0)
			Expect(err).To(HaveOccurred())
			Expect(v.State()).To(Equal(viewer.Idle))
		})
	})

	Describe("session lifetime", func() {
		It("keeps the session alive until the viewer is closed", func() {
			build()
			Expect(errors.Is(sess.Close(), dynamo.ErrSessionInUse)).To(BeTrue())
			v.Close()
			v = nil
		})

		It("rejects a buffer that does not match the manager", func() {
			var err error
			sess, err = session.Create(headless, 320, 240, 0)
			Expect(err).NotTo(HaveOccurred())

			mismatched := newFakeManager(2, 2, 2)
			mismatched.buf = newFakeManager(3, 2, 2).buf
			_, err = viewer.NewVisualizer(sess, mismatched)
			Expect(errors.Is(err, dynamo.ErrInvalidLayout)).To(BeTrue())
		})
	})
})
