package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/cl"
	"github.com/wippyai/cl-runtime/query"
)

// shell runs raw attribute queries against any handle.
type shell struct {
	rt       *cl.Runtime
	out      io.Writer
	contexts map[clruntime.Handle]*cl.Context
}

func newShell(rt *cl.Runtime, out io.Writer) *shell {
	return &shell{rt: rt, out: out, contexts: make(map[clruntime.Handle]*cl.Context)}
}

func runShell(rt *cl.Runtime) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s := newShell(rt, rl.Stdout())
	defer s.close()
	s.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		if s.exec(line) {
			return nil
		}
	}
}

func (s *shell) close() {
	for _, c := range s.contexts {
		c.Dispose()
	}
	clear(s.contexts)
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "platforms", "p":
		err = s.cmdPlatforms()
	case "devices", "d":
		err = s.cmdDevices(args)
	case "attrs":
		err = s.cmdAttrs(args)
	case "get", "g":
		err = s.cmdGet(args)
	case "raw":
		err = s.cmdRaw(args)
	case "snapshot", "s":
		err = s.cmdSnapshot(args)
	case "context":
		err = s.cmdContext(args)
	case "release":
		err = s.cmdRelease(args)
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  platforms                            - List platforms
  devices <platform>                   - List devices of a platform
  attrs <kind>                         - List registered attributes of a kind
  get <kind> <handle> [device] <attr>  - Query and decode one attribute
  raw <kind> <handle> [device] <attr>  - Query one attribute and dump its bytes
  snapshot <kind> <handle> [device]    - Query every registered attribute
  context <device>...                  - Create a context held by the shell
  release <context>                    - Release a context created here
  quit                                 - Exit

Kinds: `+kindList()+`
Handles and numeric attributes accept 0x prefixes.`)
}

func kindList() string {
	var names []string
	for _, k := range clruntime.ObjectKinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func (s *shell) cmdPlatforms() error {
	platforms, err := s.rt.Platforms()
	if err != nil {
		return err
	}
	if len(platforms) == 0 {
		fmt.Fprintln(s.out, "No platforms.")
	}
	for _, p := range platforms {
		fmt.Fprintf(s.out, "  %s  %s\n", p.Handle(), p.Info().Name)
	}
	return nil
}

func (s *shell) cmdDevices(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: devices <platform>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	devices, err := s.rt.Platform(h).Devices(clruntime.DeviceTypeAll)
	if err != nil {
		return err
	}
	for _, d := range devices {
		info := d.Info()
		fmt.Fprintf(s.out, "  %s  %-4s %s\n", d.Handle(), info.Type, info.Name)
	}
	return nil
}

func (s *shell) cmdAttrs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: attrs <kind>")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	for _, d := range attr.For(kind).Descriptors() {
		fmt.Fprintf(s.out, "  0x%04x  %-40s %s\n", uint32(d.Param), d.Name, d.Kind)
	}
	return nil
}

// target parses "<kind> <handle> [device]" from the front of args and
// returns the rest.
func target(args []string) (clruntime.Target, []string, error) {
	if len(args) < 2 {
		return clruntime.Target{}, nil, fmt.Errorf("missing kind or handle")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return clruntime.Target{}, nil, err
	}
	h, err := parseHandle(args[1])
	if err != nil {
		return clruntime.Target{}, nil, err
	}
	t := clruntime.Target{Kind: kind, Handle: h}
	rest := args[2:]
	if kind.PerDevice() {
		if len(rest) == 0 {
			return clruntime.Target{}, nil, fmt.Errorf("%s needs a device handle", kind)
		}
		if t.Device, err = parseHandle(rest[0]); err != nil {
			return clruntime.Target{}, nil, err
		}
		rest = rest[1:]
	}
	return t, rest, nil
}

func (s *shell) cmdGet(args []string) error {
	t, rest, err := target(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: get <kind> <handle> [device] <attr>")
	}
	d, err := descriptor(t.Kind, rest[0])
	if err != nil {
		return err
	}
	v, err := s.rt.Attribute(t, d.Param)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s = %s\n", d.Name, attr.Format(d, v))
	return nil
}

func (s *shell) cmdRaw(args []string) error {
	t, rest, err := target(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: raw <kind> <handle> [device] <attr>")
	}
	param, err := paramName(t.Kind, rest[0])
	if err != nil {
		return err
	}
	res, err := s.rt.Query(t, param)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%d bytes (reported %d)\n", len(res.Data), res.Size)
	if len(res.Data) > 0 {
		fmt.Fprint(s.out, hex.Dump(res.Data))
	}
	return nil
}

func (s *shell) cmdSnapshot(args []string) error {
	t, rest, err := target(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("usage: snapshot <kind> <handle> [device]")
	}
	writeRows(s.out, rows(query.Snapshot(s.rt.Driver(), t)), plainStyles(), "  ")
	return nil
}

func (s *shell) cmdContext(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: context <device>...")
	}
	devices := make([]*cl.Device, len(args))
	for i, a := range args {
		h, err := parseHandle(a)
		if err != nil {
			return err
		}
		devices[i] = s.rt.Device(h)
	}
	ctx, err := s.rt.CreateContext(devices...)
	if err != nil {
		return err
	}
	s.contexts[ctx.Handle()] = ctx
	fmt.Fprintf(s.out, "context %s\n", ctx.Handle())
	return nil
}

func (s *shell) cmdRelease(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: release <context>")
	}
	h, err := parseHandle(args[0])
	if err != nil {
		return err
	}
	ctx, ok := s.contexts[h]
	if !ok {
		return fmt.Errorf("context %s was not created by this shell", h)
	}
	ctx.Dispose()
	delete(s.contexts, h)
	return nil
}

func parseKind(s string) (clruntime.ObjectKind, error) {
	kind, ok := clruntime.ParseObjectKind(strings.ToLower(s))
	if !ok {
		return 0, fmt.Errorf("unknown kind %q", s)
	}
	return kind, nil
}

func parseHandle(s string) (clruntime.Handle, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q", s)
	}
	return clruntime.Handle(n), nil
}

// paramName accepts a registered name, with or without the CL_ prefix, or
// any number.
func paramName(kind clruntime.ObjectKind, s string) (clruntime.ParamName, error) {
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		return clruntime.ParamName(n), nil
	}
	d, err := descriptor(kind, s)
	if err != nil {
		return 0, err
	}
	return d.Param, nil
}

func descriptor(kind clruntime.ObjectKind, s string) (attr.Descriptor, error) {
	reg := attr.For(kind)
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		if d, ok := reg.ByParam(clruntime.ParamName(n)); ok {
			return d, nil
		}
		return attr.Descriptor{}, fmt.Errorf("0x%x is not a registered %s attribute", n, kind)
	}
	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "CL_") {
		name = "CL_" + name
	}
	if d, ok := reg.ByName(name); ok {
		return d, nil
	}
	return attr.Descriptor{}, fmt.Errorf("unknown %s attribute %q", kind, s)
}
