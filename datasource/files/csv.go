package files

import (
	"unicode/utf8"

	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/value"
)

const (
	// NoChar is the sentinel for single character options that are off,
	// ie no thousands separator or comment marker.
	NoChar = "\x00"
	// Unlimited row count
	Unlimited = -1
	// NoHeader the file has no header row
	NoHeader = -1
)

// CsvArgs are the fully defaulted, type checked options for reading
// delimited text files.  The json names are the option names users pass.
type CsvArgs struct {
	Paths            []string `json:"paths"`
	ColumnNames      []string `json:"names"`
	ColumnTypes      []string `json:"dtype"`
	Delimiter        string   `json:"delimiter"`
	SkipRows         int      `json:"skiprows"`
	LineTerminator   string   `json:"lineterminator"`
	SkipInitialSpace bool     `json:"skipinitialspace"`
	DelimWhitespace  bool     `json:"delim_whitespace"`
	Header           int      `json:"header"`
	NRows            int      `json:"nrows"`
	SkipBlankLines   bool     `json:"skip_blank_lines"`
	QuoteChar        string   `json:"quotechar"`
	Quoting          int      `json:"quoting"`
	DoubleQuote      bool     `json:"doublequote"`
	Decimal          string   `json:"decimal"`
	SkipFooter       int      `json:"skipfooter"`
	KeepDefaultNA    bool     `json:"keep_default_na"`
	NAFilter         bool     `json:"na_filter"`
	DayFirst         bool     `json:"dayfirst"`
	Thousands        string   `json:"thousands"`
	Comment          string   `json:"comment"`
	TrueValues       []string `json:"true_values"`
	FalseValues      []string `json:"false_values"`
	NAValues         []string `json:"na_values"`
}

func newCsvArgs(paths []string) *CsvArgs {
	return &CsvArgs{
		Paths:          paths,
		ColumnNames:    []string{},
		ColumnTypes:    []string{},
		Delimiter:      ",",
		LineTerminator: "\n",
		Header:         NoHeader,
		NRows:          Unlimited,
		SkipBlankLines: true,
		QuoteChar:      `"`,
		DoubleQuote:    true,
		Decimal:        ".",
		KeepDefaultNA:  true,
		NAFilter:       true,
		Thousands:      NoChar,
		Comment:        NoChar,
		TrueValues:     []string{},
		FalseValues:    []string{},
		NAValues:       []string{},
	}
}

// ParseCsvArgs normalizes a loose option bag into CsvArgs.  Unknown keys
// are ignored, missing keys get defaults.  The first option that breaks a
// rule is returned as a *ParamError and no args are produced.
func ParseCsvArgs(paths []string, opts u.JsonHelper) (*CsvArgs, error) {
	m := newCsvArgs(paths)
	p := &optParser{opts: opts}

	m.ColumnNames = p.strings("names")
	m.ColumnTypes = p.strings("dtype")
	m.Delimiter = p.delimiter(paths)
	m.LineTerminator = p.singleChar("lineterminator", "\n", false)
	m.SkipRows = p.skipRows("skiprows")
	m.Header = p.header(len(m.ColumnNames))
	m.NRows = p.rowCount("nrows", Unlimited)
	m.SkipInitialSpace = p.flag("skipinitialspace", false, true, false)
	m.DelimWhitespace = p.flag("delim_whitespace", false, false, true)
	m.SkipBlankLines = p.flag("skip_blank_lines", true, true, true)
	m.QuoteChar = p.quoteChar()
	m.Quoting = p.quoting()
	m.DoubleQuote = p.doubleQuote()
	m.Decimal = p.singleChar("decimal", ".", false)
	m.SkipFooter = p.skipFooter()
	m.KeepDefaultNA = p.flag("keep_default_na", true, false, false)
	m.NAFilter = p.flag("na_filter", true, false, false)
	m.DayFirst = p.flag("dayfirst", false, false, false)
	m.Thousands = p.singleChar("thousands", NoChar, true)
	m.Comment = p.singleChar("comment", NoChar, true)
	m.TrueValues = p.valueList("true_values", false)
	m.FalseValues = p.valueList("false_values", false)
	m.NAValues = p.valueList("na_values", true)

	if p.err != nil {
		u.Debugf("invalid csv args: %v", p.err)
		return nil, p.err
	}
	return m, nil
}

// DefaultCsvArgs builds args when there is no file to look at.  No rules
// are checked; options of the exact expected type are copied as is and
// the delimiter and row limit are forced to "," and unlimited.
func DefaultCsvArgs(opts u.JsonHelper) *CsvArgs {
	var paths []string
	switch p := opts["path"].(type) {
	case string:
		paths = []string{p}
	default:
		paths, _ = value.ToStrings(p)
	}
	m := newCsvArgs(paths)
	copyStrings(opts, "names", &m.ColumnNames)
	copyStrings(opts, "dtype", &m.ColumnTypes)
	copyString(opts, "lineterminator", &m.LineTerminator)
	copyString(opts, "quotechar", &m.QuoteChar)
	copyString(opts, "decimal", &m.Decimal)
	copyString(opts, "thousands", &m.Thousands)
	copyString(opts, "comment", &m.Comment)
	copyInt(opts, "skiprows", &m.SkipRows)
	copyInt(opts, "header", &m.Header)
	copyInt(opts, "quoting", &m.Quoting)
	copyInt(opts, "skipfooter", &m.SkipFooter)
	copyBool(opts, "skipinitialspace", &m.SkipInitialSpace)
	copyBool(opts, "delim_whitespace", &m.DelimWhitespace)
	copyBool(opts, "skip_blank_lines", &m.SkipBlankLines)
	copyBool(opts, "doublequote", &m.DoubleQuote)
	copyBool(opts, "keep_default_na", &m.KeepDefaultNA)
	copyBool(opts, "na_filter", &m.NAFilter)
	copyBool(opts, "dayfirst", &m.DayFirst)
	copyStrings(opts, "true_values", &m.TrueValues)
	copyStrings(opts, "false_values", &m.FalseValues)
	copyStrings(opts, "na_values", &m.NAValues)

	m.Delimiter = ","
	m.NRows = Unlimited
	return m
}

// optParser reads options one rule at a time and keeps the first error;
// once it has failed every later read is a no-op.
type optParser struct {
	opts u.JsonHelper
	err  error
}

func (m *optParser) get(key string) (interface{}, bool) {
	if m.err != nil {
		return nil, false
	}
	v, ok := m.opts[key]
	return v, ok
}

func (m *optParser) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *optParser) strings(key string) []string {
	v, ok := m.get(key)
	if !ok || v == nil {
		return []string{}
	}
	vals, ok := value.ToStrings(v)
	if !ok {
		m.fail(typeErr(key, "expected a list of strings, got %T", v))
		return nil
	}
	return vals
}

// delimiter defaults from the first path's extension
func (m *optParser) delimiter(paths []string) string {
	v, ok := m.get("delimiter")
	if ok && v != nil {
		s, isStr := v.(string)
		if !isStr {
			m.fail(typeErr("delimiter", "delimiter must be a string, not %T", v))
			return ""
		}
		return s
	}
	if len(paths) > 0 && PathExt(paths[0]) == ".psv" {
		return "|"
	}
	return ","
}

// singleChar options hold at most one character.  Bools, ints and empty
// strings are rejected; a nil value is a type error unless nilOff, in
// which case it means the option is off.
func (m *optParser) singleChar(key, def string, nilOff bool) string {
	v, ok := m.get(key)
	if !ok {
		return def
	}
	switch val := v.(type) {
	case nil:
		if nilOff {
			return def
		}
		m.fail(typeErr(key, "object of type 'NoneType' has no len()"))
	case bool:
		m.fail(typeErr(key, "object of type 'bool' has no len()"))
	case string:
		n := utf8.RuneCountInString(val)
		if n == 0 {
			m.fail(typeErr(key, "must be a 1-character string, got an empty string"))
		} else if n > 1 {
			m.fail(valueErr(key, "only length-1 %s supported, got %q", key, val))
		}
		return val
	default:
		if value.IsInt(v) {
			m.fail(typeErr(key, "object of type 'int' has no len()"))
		} else {
			m.fail(typeErr(key, "must be a 1-character string, not %T", v))
		}
	}
	return ""
}

// skipRows clamps anything negative or unusable to 0, only strings are
// rejected outright.
func (m *optParser) skipRows(key string) int {
	v, ok := m.get(key)
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case string:
		m.fail(typeErr(key, "an integer is required"))
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	}
	if n, isInt := value.ToInt64(v); isInt && n > 0 {
		return int(n)
	}
	return 0
}

// header is 0 (first row) when neither header nor names were given, and
// NoHeader when names were given or the header index is below -1.
func (m *optParser) header(numNames int) int {
	v, ok := m.get("header")
	if !ok {
		if numNames == 0 {
			return 0
		}
		return NoHeader
	}
	if v == nil {
		return NoHeader
	}
	n, isInt := value.ToInt64(v)
	if !isInt {
		m.fail(typeErr("header", "header must be integer or list of integers, not %T", v))
		return NoHeader
	}
	if n == NoHeader && numNames == 0 {
		return 0
	}
	if n < NoHeader {
		return NoHeader
	}
	return int(n)
}

// flag coerces boolean-ish options, anything other than false or 0 is true.
func (m *optParser) flag(key string, def, nilIsErr, strIsErr bool) bool {
	v, ok := m.get(key)
	if !ok {
		return def
	}
	if v == nil {
		if nilIsErr {
			m.fail(typeErr(key, "an integer is required"))
		}
		return def
	}
	if _, isStr := v.(string); isStr && strIsErr {
		m.fail(typeErr(key, "an integer is required"))
		return def
	}
	return !value.IsFalse(v)
}

func (m *optParser) quoteChar() string {
	v, ok := m.get("quotechar")
	if !ok {
		return `"`
	}
	switch val := v.(type) {
	case nil:
		m.fail(typeErr("quotechar", "quotechar must be set if quoting enabled"))
	case bool:
		m.fail(typeErr("quotechar", "quotechar must be string, not bool"))
	case string:
		if utf8.RuneCountInString(val) != 1 {
			m.fail(valueErr("quotechar", "quotechar must be a 1-character string"))
		}
		return val
	default:
		if value.IsInt(v) {
			m.fail(typeErr("quotechar", "quotechar must be string, not int"))
		} else {
			m.fail(typeErr("quotechar", "quotechar must be string, not %T", v))
		}
	}
	return ""
}

// quoting is one of the csv module modes, 0 (minimal) to 3 (none)
func (m *optParser) quoting() int {
	v, ok := m.get("quoting")
	if !ok {
		return 0
	}
	n, isInt := value.ToInt64(v)
	if !isInt {
		m.fail(typeErr("quoting", "'quoting' must be an integer"))
		return 0
	}
	if n < 0 || n > 3 {
		m.fail(valueErr("quoting", "bad 'quoting' value %d", n))
		return 0
	}
	return int(n)
}

// doubleQuote takes bools and ints only
func (m *optParser) doubleQuote() bool {
	v, ok := m.get("doublequote")
	if !ok {
		return true
	}
	if !value.IsBool(v) && !value.IsInt(v) {
		m.fail(typeErr("doublequote", "an integer is required"))
		return true
	}
	return !value.IsFalse(v)
}

func (m *optParser) skipFooter() int {
	v, ok := m.get("skipfooter")
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case bool:
		if val {
			m.fail(typeErr("skipfooter", "skipfooter must be an integer"))
		}
		return 0
	case string:
		m.fail(typeErr("skipfooter", "skipfooter must be an integer"))
		return 0
	}
	n, isInt := value.ToInt64(v)
	if !isInt {
		m.fail(typeErr("skipfooter", "skipfooter must be an integer"))
		return 0
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// valueList accepts a list of strings or a comma separated string.  Scalar
// bools and ints are rejected unless stringify, then they are rendered and
// split like a string.
func (m *optParser) valueList(key string, stringify bool) []string {
	v, ok := m.get(key)
	if !ok || v == nil {
		return []string{}
	}
	if s, isStr := v.(string); isStr {
		return value.SplitList(s)
	}
	if value.IsBool(v) || value.IsInt(v) {
		if stringify {
			s, _ := value.ToString(v)
			return value.SplitList(s)
		}
		kind := "int"
		if value.IsBool(v) {
			kind = "bool"
		}
		m.fail(typeErr(key, "'%s' object is not iterable", kind))
		return nil
	}
	vals, isList := value.ToStrings(v)
	if !isList {
		m.fail(typeErr(key, "expected a list of strings, got %T", v))
		return nil
	}
	return vals
}

func copyString(opts u.JsonHelper, key string, dst *string) {
	if s, ok := opts[key].(string); ok {
		*dst = s
	}
}

func copyBool(opts u.JsonHelper, key string, dst *bool) {
	if b, ok := opts[key].(bool); ok {
		*dst = b
	}
}

func copyInt(opts u.JsonHelper, key string, dst *int) {
	if n, ok := value.ToInt64(opts[key]); ok {
		*dst = int(n)
	}
}

func copyStrings(opts u.JsonHelper, key string, dst *[]string) {
	if l, ok := value.ToStrings(opts[key]); ok {
		*dst = l
	}
}
