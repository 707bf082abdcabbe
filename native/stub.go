//go:build !opencl

package native

import (
	clruntime "github.com/wippyai/cl-runtime"
	"github.com/wippyai/cl-runtime/errors"
)

// Available reports whether the package was built against a native runtime.
const Available = false

// Driver is a placeholder in builds without the opencl tag.
type Driver struct {
	clruntime.Driver
}

// Open fails: the package was built without the opencl tag.
func Open() (*Driver, error) {
	Logger().Debug("native driver requested in a build without opencl")
	return nil, errors.NotBuilt("rebuild with -tags opencl to use the native driver")
}
