// Test only package, shared setup for package tests.
package testutil

import (
	"flag"
	"log"
	"os"
	"strings"
	"sync"

	u "github.com/araddon/gou"
)

var (
	verbose   *bool
	setupOnce = sync.Once{}
)

// Setup enables -vv verbose logging or sends logs to /dev/null
// env var VERBOSELOGS=true turns on verbose logging for all packages
//
// Setup runs from package init(), before the test binary parses its
// flags, so -vv is read straight from the command line.
func Setup() {
	setupOnce.Do(func() {

		if flag.CommandLine.Lookup("vv") == nil {
			verbose = flag.Bool("vv", false, "Verbose Logging?")
		}

		logger := u.GetLogger()
		if logger != nil {
			// don't re-setup
			return
		}
		if (verbose != nil && *verbose) || Verbose(os.Args[1:]) || os.Getenv("VERBOSELOGS") != "" {
			u.SetupLogging("debug")
			u.SetColorOutput()
		} else {
			// make sure logging is always non-nil
			dn, _ := os.Open(os.DevNull)
			u.SetLogger(log.New(dn, "", 0), "error")
		}
	})
}

// Verbose is true when -vv is among command line args
func Verbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		switch strings.TrimLeft(arg, "-") {
		case "vv", "vv=true", "vv=1":
			return strings.HasPrefix(arg, "-")
		}
	}
	return false
}
