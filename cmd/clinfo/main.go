package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/capture"
	"github.com/wippyai/cl-runtime/cl"
	"github.com/wippyai/cl-runtime/lifecycle"
	"github.com/wippyai/cl-runtime/native"
	"github.com/wippyai/cl-runtime/query"
	"github.com/wippyai/cl-runtime/sim"
)

func main() {
	var (
		driverName  = flag.String("driver", "sim", "Driver to use (sim, native)")
		fixture     = flag.String("fixture", "", "Simulator fixture YAML (default: built-in)")
		replay      = flag.String("replay", "", "Replay a capture file (.cbor, .yaml)")
		captureOut  = flag.String("capture", "", "Write a capture of every platform and device to this file and exit")
		format      = flag.String("format", "text", "Report format (text, yaml)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		shellMode   = flag.Bool("shell", false, "Raw attribute query shell")
		verbose     = flag.Bool("v", false, "Log driver calls to stderr")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer log.Sync() //nolint:errcheck
	query.SetLogger(log.Named("query"))
	lifecycle.SetLogger(log.Named("lifecycle"))

	drv, err := openDriver(*driverName, *fixture, *replay, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rt := cl.New(drv, cl.WithLogger(log.Named("cl")))

	switch {
	case *captureOut != "":
		err = writeCapture(drv, *driverName, *captureOut)
	case *interactive:
		err = runInteractive(rt)
	case *shellMode:
		err = runShell(rt)
	default:
		err = run(rt, *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDriver(name, fixture, replay string, log *zap.Logger) (clruntime.Driver, error) {
	simLog := sim.WithLogger(log.Named("sim"))

	if replay != "" {
		c, err := readCapture(replay)
		if err != nil {
			return nil, err
		}
		return sim.FromCapture(c, simLog)
	}

	switch name {
	case "sim":
		if fixture == "" {
			return sim.NewDefault(simLog), nil
		}
		f, err := sim.LoadFixture(fixture)
		if err != nil {
			return nil, err
		}
		return sim.New(f, simLog)
	case "native":
		native.SetLogger(log.Named("native"))
		return native.Open()
	default:
		return nil, fmt.Errorf("unknown driver %q (want sim or native)", name)
	}
}

func readCapture(path string) (*capture.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	if isYAML(path) {
		return capture.ReadYAML(f)
	}
	return capture.ReadCBOR(f)
}

func writeCapture(drv clruntime.Driver, driverName, path string) error {
	c, err := capture.Take(drv, driverName)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create capture: %w", err)
	}
	if isYAML(path) {
		err = c.WriteYAML(f)
	} else {
		err = c.WriteCBOR(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("Captured %d platform(s) to %s (id %s)\n", len(c.Platforms), path, c.ID)
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func run(rt *cl.Runtime, format string) error {
	rep, err := buildReport(rt)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return writeText(os.Stdout, rep, stdoutStyles())
	case "yaml":
		return writeYAML(os.Stdout, rep)
	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
}
