// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Command barrierdump translates a batch of barriers described
// in a JSON file and prints the native barriers that each driver
// records for it.
//
// Usage:
//
//	barrierdump [-driver name] [-legacy] [-queue kind] [-v] file.json
//
// The BARRIERDUMP_DRIVER environment variable sets the default
// of -driver. An empty driver name selects every driver.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/gviegas/barrier/driver"
	"github.com/gviegas/barrier/driver/d3d12"
	"github.com/gviegas/barrier/driver/vk"
)

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "barrierdump:", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("barrierdump", flag.ContinueOnError)
	flags.SetOutput(stderr)
	drvName := flags.String("driver", getenv("BARRIERDUMP_DRIVER"), "record with the driver whose `name` contains the given string")
	legacy := flags.Bool("legacy", false, "use the legacy resource state model on direct3d12")
	queName := flags.String("queue", "graphics", "record on a queue of the given `kind` (graphics, compute or copy)")
	verbose := flags.Bool("v", false, "log driver activity to stderr")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("expected a single batch file")
	}

	if *verbose {
		driver.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer driver.SetLogger(nil)
	}

	que, err := lookup("queue", queues, *queName)
	if err != nil {
		return err
	}
	b, err := readBatch(flags.Arg(0))
	if err != nil {
		return err
	}
	if err := driver.Check(b.desc); err != nil {
		return errors.Wrap(err, flags.Arg(0))
	}

	drivers := []driver.Driver{
		d3d12.New(&d3d12Device{stdout}, d3d12.Config{EnhancedBarriers: !*legacy}),
		vk.New(&vkDevice{stdout}),
	}
	for _, drv := range drivers {
		driver.Register(drv)
		defer driver.Unregister(drv.Name())
		defer drv.Close()
	}

	if *drvName != "" {
		drv, gpu, err := driver.Load(*drvName)
		if err != nil {
			return err
		}
		return record(drv, gpu, que, b, stdout)
	}
	for _, drv := range drivers {
		gpu, err := drv.Open()
		if err != nil {
			return errors.Wrap(err, "open")
		}
		if err := record(drv, gpu, que, b, stdout); err != nil {
			return err
		}
	}
	return nil
}

func readBatch(path string) (*batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read batch")
	}
	defer f.Close()
	b, err := decodeBatch(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return b, nil
}

// renderer is implemented by command buffers that must
// know whether they are inside a render pass.
type renderer interface {
	BeginRendering()
	EndRendering()
}

// record records b on a new command buffer of gpu.
func record(drv driver.Driver, gpu driver.GPU, que driver.Queue, b *batch, w io.Writer) error {
	fmt.Fprintf(w, "# %s\n", drv.Name())
	cb, err := gpu.NewCmdBuffer(que)
	if err != nil {
		return errors.Wrapf(err, "%s: new command buffer", drv.Name())
	}
	defer cb.Destroy()

	r, ok := cb.(renderer)
	if b.inRendering && ok {
		r.BeginRendering()
		defer r.EndRendering()
	}
	cb.Barrier(b.desc)
	return nil
}
