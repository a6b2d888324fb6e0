package datasource

import (
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/bridge"
	"github.com/blazingdb/blazingsql/datasource/files"
	"github.com/blazingdb/blazingsql/frame"
	"github.com/blazingdb/blazingsql/schema"
	"github.com/blazingdb/blazingsql/value"
)

var (
	ErrEmptyInput      = fmt.Errorf("%w: input was an empty list", ErrResolution)
	ErrNotPathList     = fmt.Errorf("%w: expected a list of path strings", ErrResolution)
	ErrUnknownInput    = fmt.Errorf("%w: unknown input type", ErrResolution)
	ErrUnsupportedJSON = fmt.Errorf("%w: only lines=True is currently supported for json, optionally you can read the file into a frame first", ErrResolution)
	// ErrUnknownFormat the paths have no recognized extension and no file_format was given
	ErrUnknownFormat = fmt.Errorf("%w: %w", ErrResolution, files.ErrUnknownFormat)
)

// Option keys read by Resolve itself, the rest are format args.
const (
	OptFileFormat = "file_format"
	OptLines      = "lines"
)

// Allocator used to move host frames to the device
var Allocator frame.Allocator = frame.DefaultAllocator

// Resolve classifies input and builds the DataSource for table name.
// Accepted inputs are *frame.Table, *frame.Frame, arrow.Table,
// *bridge.ResultSet, *bridge.DistributedResult, a path string, or a
// non-empty []string / []interface{} of paths.  opts carries
// file_format, lines and the csv / orc args.
func Resolve(name string, input interface{}, opts u.JsonHelper) (*DataSource, error) {
	if opts == nil {
		opts = u.JsonHelper{}
	}
	switch in := input.(type) {
	case *frame.Table:
		if in == nil {
			return nil, fmt.Errorf("%w: nil table", ErrUnknownInput)
		}
		return newTableSource(KindGpuTable, name, in), nil
	case *frame.Frame:
		if in == nil {
			return nil, fmt.Errorf("%w: nil frame", ErrUnknownInput)
		}
		tbl, err := frame.FromFrame(in, Allocator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolution, err)
		}
		return newTableSource(KindFrame, name, tbl), nil
	case arrow.Table:
		f, err := frame.FromArrow(in)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolution, err)
		}
		tbl, err := frame.FromFrame(f, Allocator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolution, err)
		}
		return newTableSource(KindArrow, name, tbl), nil
	case *bridge.ResultSet:
		if in == nil || in.Columns == nil {
			return nil, fmt.Errorf("%w: result set has no columns", ErrResolution)
		}
		return newTableSource(KindResultSet, name, in.Columns), nil
	case *bridge.DistributedResult:
		tok, err := in.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrResolution, err)
		}
		return &DataSource{
			kind: KindDistributedResultSet,
			name: name,
			reg:  schema.NewDistributedRegistration(name, tok),
		}, nil
	case string:
		return resolveFiles(name, []string{in}, opts)
	case []string:
		if len(in) == 0 {
			return nil, ErrEmptyInput
		}
		return resolveFiles(name, in, opts)
	case []interface{}:
		if len(in) == 0 {
			return nil, ErrEmptyInput
		}
		if _, ok := in[0].(string); !ok {
			return nil, fmt.Errorf("%w, got %T", ErrNotPathList, in[0])
		}
		paths, ok := value.ToStrings(in)
		if !ok {
			return nil, ErrNotPathList
		}
		return resolveFiles(name, paths, opts)
	}
	return nil, fmt.Errorf("%w %T when creating table", ErrUnknownInput, input)
}

func resolveFiles(name string, paths []string, opts u.JsonHelper) (*DataSource, error) {
	paths = append([]string(nil), paths...)
	format, err := files.DetectFormat(paths[0], opts.String(OptFileFormat))
	if err != nil {
		if errors.Is(err, files.ErrUnknownFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, paths[0])
		}
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}
	switch format {
	case files.FormatParquet:
		reg := schema.NewFileRegistration(name, schema.SchemaFromParquetFile, paths)
		return newFileSource(KindParquet, name, paths, reg), nil
	case files.FormatJSON:
		if v, ok := opts[OptLines]; ok && value.IsFalse(v) {
			return nil, ErrUnsupportedJSON
		}
		reg := schema.NewFileRegistration(name, schema.SchemaFromJsonFile, paths)
		reg.JSONLines = true
		return newFileSource(KindJSON, name, paths, reg), nil
	case files.FormatOrc:
		args, err := files.ParseOrcArgs(opts)
		if err != nil {
			return nil, err
		}
		reg := schema.NewFileRegistration(name, schema.SchemaFromOrcFile, paths)
		reg.Orc = args
		return newFileSource(KindOrc, name, paths, reg), nil
	case files.FormatCsv:
		args, err := files.ParseCsvArgs(paths, opts)
		if err != nil {
			return nil, err
		}
		reg := schema.NewFileRegistration(name, schema.SchemaFromCsvFile, paths)
		reg.Csv = args
		return newFileSource(KindCsv, name, paths, reg), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}
