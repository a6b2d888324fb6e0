// Package files normalizes the options for file backed tables (csv,
// orc, parquet, json) and works out which format a set of paths holds.
// The files themselves are read by the engine, never by this package.
package files

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	u "github.com/araddon/gou"
)

// Format is a file format the engine can register a table from
type Format string

const (
	FormatCsv     Format = "csv"
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
	FormatOrc     Format = "orc"
)

var (
	// ErrUnknownFormat no format could be found for the paths
	ErrUnknownFormat = errors.New("unknown file format, optionally you can set the file format by passing it as a parameter like: file_format = 'csv'")

	// the global format registry mutex
	registryMu sync.Mutex
	formats    = make(map[Format]bool)
	extensions = make(map[string]Format)
)

func init() {
	RegisterFormat(FormatParquet, ".parquet")
	RegisterFormat(FormatJSON, ".json")
	RegisterFormat(FormatOrc, ".orc")
	RegisterFormat(FormatCsv, ".csv", ".psv", ".tbl")
}

// RegisterFormat makes a format available, along with the file extensions
// that identify it.  Registering a format or an extension twice panics.
func RegisterFormat(f Format, exts ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	f = Format(strings.ToLower(string(f)))
	if formats[f] {
		panic("RegisterFormat called twice for format " + string(f))
	}
	formats[f] = true
	for _, ext := range exts {
		if _, dupe := extensions[ext]; dupe {
			panic("RegisterFormat called twice for extension " + ext)
		}
		extensions[ext] = f
	}
	u.Debugf("registered file format %v %v", f, exts)
}

// PathExt is the extension of the path part of a file uri, so
// "s3://bucket/t/part0.parquet?v=1" gives ".parquet".
func PathExt(p string) string {
	if uri, err := url.Parse(p); err == nil && uri.Path != "" {
		p = uri.Path
	}
	return path.Ext(p)
}

// DetectFormat picks the format for a set of paths.  A known override
// (the file_format option) wins, else the first path's extension decides.
// An unknown override is only an error if the extension is unknown too.
func DetectFormat(firstPath, override string) (Format, error) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if override != "" {
		f := Format(strings.ToLower(override))
		if formats[f] {
			return f, nil
		}
		u.Debugf("unknown file_format %q, using the extension of %q", override, firstPath)
	}
	ext := PathExt(firstPath)
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	if override != "" {
		return "", fmt.Errorf("%w: file_format %q for %q", ErrUnknownFormat, override, firstPath)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, firstPath)
}
