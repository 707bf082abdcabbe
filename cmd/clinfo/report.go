package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/attr"
	"github.com/wippyai/cl-runtime/cl"
)

type report struct {
	Platforms []platformReport `yaml:"platforms"`
}

type platformReport struct {
	Name       string         `yaml:"name"`
	Handle     string         `yaml:"handle"`
	Attributes []row          `yaml:"attributes"`
	Devices    []deviceReport `yaml:"devices"`
}

type deviceReport struct {
	Name       string `yaml:"name"`
	Handle     string `yaml:"handle"`
	Attributes []row  `yaml:"attributes"`
}

type row struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
	Error string `yaml:"error,omitempty"`
}

func buildReport(rt *cl.Runtime) (*report, error) {
	platforms, err := rt.Platforms()
	if err != nil {
		return nil, err
	}

	rep := &report{}
	for _, p := range platforms {
		pr := platformReport{
			Name:       p.Info().Name,
			Handle:     p.Handle().String(),
			Attributes: rows(p.Attributes()),
		}
		devices, err := p.Devices(clruntime.DeviceTypeAll)
		if err != nil {
			return nil, err
		}
		for _, d := range devices {
			pr.Devices = append(pr.Devices, deviceReport{
				Name:       d.Info().Name,
				Handle:     d.Handle().String(),
				Attributes: rows(d.Attributes()),
			})
		}
		rep.Platforms = append(rep.Platforms, pr)
	}
	return rep, nil
}

// rows lists every registered attribute of the set's kind in registry
// order, failed ones included.
func rows(set *attr.Set) []row {
	descs := attr.For(set.Kind()).Descriptors()
	out := make([]row, 0, len(descs))
	for _, d := range descs {
		r := row{Name: d.Name}
		if v, ok := set.Get(d.Param); ok {
			r.Value = attr.Format(d, v)
		} else {
			r.Error = errorText(set.Err(d.Param))
		}
		out = append(out, r)
	}
	return out
}

func errorText(err error) string {
	if err == nil {
		return "not queried"
	}
	if st, ok := clruntime.StatusOf(err); ok {
		return st.String()
	}
	return err.Error()
}

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	fail  lipgloss.Style
	width int
}

func plainStyles() styles {
	return styles{
		title: lipgloss.NewStyle(),
		label: lipgloss.NewStyle(),
		value: lipgloss.NewStyle(),
		fail:  lipgloss.NewStyle(),
	}
}

func stdoutStyles() styles {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return plainStyles()
	}
	s := styles{
		title: titleStyle,
		label: typeStyle,
		value: resultStyle,
		fail:  errorStyle,
	}
	if w, _, err := term.GetSize(fd); err == nil {
		s.width = w
	}
	return s
}

func writeText(w io.Writer, rep *report, st styles) error {
	for _, p := range rep.Platforms {
		fmt.Fprintf(w, "%s %s\n", st.title.Render("Platform "+p.Name), p.Handle)
		writeRows(w, p.Attributes, st, "  ")
		for _, d := range p.Devices {
			fmt.Fprintf(w, "\n  %s %s\n", st.title.Render("Device "+d.Name), d.Handle)
			writeRows(w, d.Attributes, st, "    ")
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeRows(w io.Writer, rows []row, st styles, indent string) {
	pad := 0
	for _, r := range rows {
		pad = max(pad, len(r.Name))
	}
	for _, r := range rows {
		label := st.label.Render(r.Name + strings.Repeat(" ", pad-len(r.Name)))
		var text string
		if r.Error != "" {
			text = st.fail.Render("<" + r.Error + ">")
		} else {
			text = st.value.Render(truncate(r.Value, st.width-len(indent)-pad-2))
		}
		fmt.Fprintf(w, "%s%s  %s\n", indent, label, text)
	}
}

// truncate cuts s to n runes when n is positive.
func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeYAML(w io.Writer, rep *report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
