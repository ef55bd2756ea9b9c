// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package d3d12 implements the driver interfaces on top of
// a Direct3D 12 command list.
// Barriers are translated for either the legacy resource
// state model or the enhanced barrier model, as chosen by
// Config.EnhancedBarriers.
package d3d12

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/scratch"
)

const driverName = "direct3d12"

// Config configures the driver.
type Config struct {
	// EnhancedBarriers selects the enhanced barrier model.
	// It must only be set when the device reports support
	// for enhanced barriers.
	EnhancedBarriers bool
}

// Driver implements driver.Driver.
type Driver struct {
	dev Device
	cfg Config

	mu  sync.Mutex
	gpu *gpu
}

// New creates a new Driver that records into command lists
// created from dev.
func New(dev Device, cfg Config) *Driver { return &Driver{dev: dev, cfg: cfg} }

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu != nil {
		return d.gpu, nil
	}
	if d.dev == nil {
		return nil, errors.Wrap(driver.ErrNotInstalled, driverName)
	}
	d.gpu = &gpu{d: d, cfg: d.cfg}
	driver.Logger().Info("driver opened", "name", driverName, "enhancedBarriers", d.cfg.EnhancedBarriers)
	return d.gpu, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Backend returns gputypes.BackendDX12.
func (d *Driver) Backend() gputypes.Backend { return gputypes.BackendDX12 }

// Config returns the driver configuration.
func (d *Driver) Config() Config { return d.cfg }

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

// gpu implements driver.GPU.
// Scratch pools are shared by every command buffer created
// from it.
type gpu struct {
	d   *Driver
	cfg Config

	resBarriers scratch.Pool[ResourceBarrier]
	globals     scratch.Pool[GlobalBarrier]
	buffers     scratch.Pool[BufferBarrier]
	textures    scratch.Pool[TextureBarrier]
}

// Driver returns the Driver that owns the GPU.
func (g *gpu) Driver() driver.Driver { return g.d }

// open reports whether g is still the driver's GPU.
func (g *gpu) open() bool {
	g.d.mu.Lock()
	defer g.d.mu.Unlock()
	return g.d.gpu == g
}

// NewCmdBuffer creates a new command buffer.
func (g *gpu) NewCmdBuffer(que driver.Queue) (driver.CmdBuffer, error) {
	if que == nil {
		return nil, driver.ErrNoQueue
	}
	if !g.open() {
		return nil, driver.ErrClosed
	}
	cl, err := g.d.dev.NewCommandList(que)
	if err != nil {
		return nil, errors.Wrap(err, "d3d12: NewCommandList")
	}
	return &cmdBuffer{g: g, que: que, cl: cl}, nil
}
