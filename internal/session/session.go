// Package session owns the window and compute device of one viewer session
// and tears them down in reverse order of creation.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/raycastview/internal/compute"
	"github.com/san-kum/raycastview/internal/dynamo"
	"github.com/san-kum/raycastview/internal/logging"
	"github.com/san-kum/raycastview/internal/platform"
)

const DefaultTitle = "raycastview"

// Handles are borrowed from the Context and are invalid once it is closed.
type Handles struct {
	Backend string
	Device  compute.Device
	Window  platform.Window
}

type Context struct {
	mu       sync.Mutex
	platform platform.Platform
	window   platform.Window
	device   compute.Device
	refs     int
	closed   bool

	title string
	log   logging.Logger
}

type Option func(*Context)

func WithLogger(l logging.Logger) Option {
	return func(c *Context) { c.log = l }
}

func WithTitle(title string) Option {
	return func(c *Context) { c.title = title }
}

// Create opens a window of the given size on p and a compute device bound to
// it. On failure everything opened so far is closed again.
func Create(p platform.Platform, width, height, deviceID int, opts ...Option) (*Context, error) {
	c := &Context{
		platform: p,
		title:    DefaultTitle,
		log:      logging.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, dynamo.ErrInvalidWindow)
	}
	if deviceID < 0 {
		return nil, fmt.Errorf("device %d: %w", deviceID, dynamo.ErrInvalidDevice)
	}

	win, err := p.OpenWindow(c.title, width, height)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("opening window: %w", err), p.Close())
	}
	c.window = win

	dev, err := p.OpenDevice(deviceID, win)
	if err != nil {
		if !errors.Is(err, dynamo.ErrDeviceUnavailable) {
			err = fmt.Errorf("%v: %w", err, dynamo.ErrDeviceUnavailable)
		}
		return nil, errors.Join(fmt.Errorf("opening device %d on %s: %w", deviceID, p.Name(), err),
			win.Close(), p.Close())
	}
	c.device = dev

	c.log.Infof("session opened: %s window %dx%d, device %s", p.Name(), width, height, dev.Name())
	return c, nil
}

func (c *Context) Handles() (Handles, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Handles{}, dynamo.ErrSessionClosed
	}
	return Handles{
		Backend: c.platform.Name(),
		Device:  c.device,
		Window:  c.window,
	}, nil
}

func (c *Context) Platform() platform.Platform { return c.platform }

// Retain registers a consumer of the handles. Close refuses to run while any
// consumer is registered.
func (c *Context) Retain() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return dynamo.ErrSessionClosed
	}
	c.refs++
	return nil
}

func (c *Context) Release() {
	c.mu.Lock()
	if c.refs > 0 {
		c.refs--
	}
	c.mu.Unlock()
}

// Close releases the device, then the window, then the platform. Closing
// twice is a no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	if c.refs > 0 {
		return fmt.Errorf("%d consumers attached: %w", c.refs, dynamo.ErrSessionInUse)
	}
	c.closed = true

	err := errors.Join(c.device.Close(), c.window.Close(), c.platform.Close())
	if err != nil {
		c.log.Errorf("session teardown: %v", err)
	} else {
		c.log.Debugf("session closed")
	}
	return err
}
