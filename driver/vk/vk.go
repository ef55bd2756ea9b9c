// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package vk implements the driver interfaces on top of
// a Vulkan command buffer.
// Barriers are translated to Synchronization2 dependencies
// (vkCmdPipelineBarrier2), so the device must have the
// synchronization2 feature enabled.
package vk

import (
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/internal/scratch"
)

const driverName = "vulkan"

// Driver implements driver.Driver.
type Driver struct {
	dev Device

	mu  sync.Mutex
	gpu *gpu
}

// New creates a new Driver that records into command
// buffers created from dev.
func New(dev Device) *Driver { return &Driver{dev: dev} }

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
	d.gpu = &gpu{d: d}
	driver.Logger().Info("driver opened", "name", driverName)
	return d.gpu, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Backend returns gputypes.BackendVulkan.
func (d *Driver) Backend() gputypes.Backend { return gputypes.BackendVulkan }

// Close deinitializes the driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

// gpu implements driver.GPU.
type gpu struct {
	d *Driver

	memory  scratch.Pool[MemoryBarrier2]
	buffers scratch.Pool[BufferMemoryBarrier2]
	images  scratch.Pool[ImageMemoryBarrier2]
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
// The native command buffer is allocated from que's
// family.
func (g *gpu) NewCmdBuffer(que driver.Queue) (driver.CmdBuffer, error) {
	if que == nil {
		return nil, driver.ErrNoQueue
	}
	if !g.open() {
		return nil, driver.ErrClosed
	}
	cb, err := g.d.dev.NewCommandBuffer(que.Family())
	if err != nil {
		return nil, errors.Wrapf(err, "vk: NewCommandBuffer (family %d)", que.Family())
	}
	return &CmdBuffer{g: g, que: que, cb: cb}, nil
}
