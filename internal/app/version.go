package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build information, set at link time:
//
//	go build -ldflags "-X github.com/agbru/fibconv/internal/app.Version=v1.0.0 \
//	  -X github.com/agbru/fibconv/internal/app.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/agbru/fibconv/internal/app.BuildDate=$(date -u +%Y-%m-%d)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// versionFlags are the spellings accepted for the version flag. They are
// checked before flag parsing so -version works alongside otherwise invalid
// arguments.
var versionFlags = []string{"-version", "--version", "-V", "--V"}

// HasVersionFlag reports whether args (without the program name) request
// version information.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return slices.Contains(versionFlags, a)
	})
}

// PrintVersion writes the build information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fibconv %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
