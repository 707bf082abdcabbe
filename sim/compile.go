package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type kernelDef struct {
	name       string
	attributes string
	reqd       []uint64
	numArgs    int
}

var (
	kernelRe = regexp.MustCompile(`(?s)(?:__kernel|\bkernel)\s+(?:__attribute__\s*\(\((.*?)\)\)\s*)?void\s+([A-Za-z_]\w*)\s*\(([^)]*)\)`)
	reqdRe   = regexp.MustCompile(`reqd_work_group_size\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
)

// compile scans source for #error directives. The build log lists them in
// the form a compiler front end would print.
func compile(source string) (log string, failed bool) {
	var b strings.Builder
	for i, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#error") {
			continue
		}
		msg := strings.TrimSpace(strings.TrimPrefix(trimmed, "#error"))
		fmt.Fprintf(&b, "<source>:%d:2: error: %s\n", i+1, msg)
		failed = true
	}
	return b.String(), failed
}

func parseKernels(source string) []kernelDef {
	var defs []kernelDef
	for _, m := range kernelRe.FindAllStringSubmatch(source, -1) {
		def := kernelDef{
			name:       m[2],
			attributes: strings.Join(strings.Fields(m[1]), ""),
			numArgs:    countParams(m[3]),
		}
		if r := reqdRe.FindStringSubmatch(m[1]); r != nil {
			def.reqd = make([]uint64, 3)
			for i := range def.reqd {
				def.reqd[i], _ = strconv.ParseUint(r[i+1], 10, 64)
			}
		}
		defs = append(defs, def)
	}
	return defs
}

func countParams(params string) int {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return 0
	}
	return strings.Count(params, ",") + 1
}
