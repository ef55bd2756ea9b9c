// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines a backend-agnostic description of
// resource usage and the interfaces through which GPU
// backends translate it into native synchronization.
// Backends live in sub-packages (e.g., driver/d3d12 and
// driver/vk).
package driver

import (
	"errors"
	"strings"
	"sync"

	"github.com/gogpu/gputypes"
	pkgerrors "github.com/pkg/errors"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying implementation.
type Driver interface {
	// Open initializes the driver.
	// If it succeeds, further calls with the same receiver
	// have no effect and must return the same GPU instance.
	// Callers should assume that Open is not safe for
	// parallel execution.
	Open() (GPU, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Backend identifies the native API of the driver.
	Backend() gputypes.Backend

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect.
	Close()
}

// GPU is the main interface to an open driver.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewCmdBuffer creates a new command buffer that will
	// be submitted to que.
	NewCmdBuffer(que Queue) (CmdBuffer, error)
}

// Destroyer is the interface that wraps the Destroy method.
type Destroyer interface {
	Destroy()
}

// CmdBuffer is the interface that defines a command
// recording context.
// A CmdBuffer must not be used from multiple goroutines
// at once, but distinct command buffers may be recorded
// in parallel.
type CmdBuffer interface {
	Destroyer

	// Barrier records the barriers in desc.
	// It translates desc into the native synchronization
	// commands of the backend. An empty desc records
	// nothing.
	// Malformed barriers are programmer errors and may
	// cause a panic.
	Barrier(desc *BarrierDesc)
}

// ErrNotInstalled means that the native objects that a
// driver needs were not provided.
var ErrNotInstalled = errors.New("driver: missing native device")

// ErrNoDriver means that no registered driver matched.
var ErrNoDriver = errors.New("driver: driver not found")

// ErrNoQueue means that a command buffer was requested
// for an invalid queue.
var ErrNoQueue = errors.New("driver: invalid queue")

// ErrClosed means that the driver has been closed.
var ErrClosed = errors.New("driver: driver is not open")

// Drivers returns the registered Drivers.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			Logger().Warn("driver replaced", "name", drv.Name())
			return
		}
	}
	drivers = append(drivers, drv)
	Logger().Info("driver registered", "name", drv.Name())
}

// Unregister removes the driver with the given name.
// It has no effect if no such driver is registered.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == name {
			drivers = append(drivers[:i], drivers[i+1:]...)
			return
		}
	}
}

// Load opens the first registered driver whose name
// contains name. It is case insensitive.
// If name is the empty string, then all registered
// drivers are considered.
func Load(name string) (Driver, GPU, error) {
	drivers := Drivers()
	var err error = ErrNoDriver
	lname := strings.ToLower(name)
	for i := range drivers {
		if !strings.Contains(strings.ToLower(drivers[i].Name()), lname) {
			continue
		}
		var u GPU
		if u, err = drivers[i].Open(); err != nil {
			err = pkgerrors.Wrapf(err, "driver: open %q", drivers[i].Name())
			continue
		}
		return drivers[i], u, nil
	}
	if errors.Is(err, ErrNoDriver) && name != "" {
		err = pkgerrors.Wrapf(err, "driver: load %q", name)
	}
	return nil, nil, err
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers = make([]Driver, 0, 2)
)
