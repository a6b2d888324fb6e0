package files

import (
	"errors"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazingdb/blazingsql/testutil"
)

func init() {
	testutil.Setup()
}

func TestCsvDefaults(t *testing.T) {
	args, err := ParseCsvArgs([]string{"/data/nation.csv"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ",", args.Delimiter)
	assert.Equal(t, "\n", args.LineTerminator)
	assert.Equal(t, 0, args.SkipRows)
	assert.Equal(t, 0, args.Header)
	assert.Equal(t, Unlimited, args.NRows)
	assert.Equal(t, `"`, args.QuoteChar)
	assert.Equal(t, 0, args.Quoting)
	assert.Equal(t, ".", args.Decimal)
	assert.Equal(t, NoChar, args.Thousands)
	assert.Equal(t, NoChar, args.Comment)
	assert.True(t, args.SkipBlankLines)
	assert.True(t, args.DoubleQuote)
	assert.True(t, args.KeepDefaultNA)
	assert.True(t, args.NAFilter)
	assert.False(t, args.SkipInitialSpace)
	assert.False(t, args.DelimWhitespace)
	assert.False(t, args.DayFirst)
	assert.Equal(t, []string{}, args.TrueValues)
	assert.Equal(t, []string{}, args.FalseValues)
	assert.Equal(t, []string{}, args.NAValues)
}

func TestCsvDelimiterByExtension(t *testing.T) {
	args, err := ParseCsvArgs([]string{"/data/nation.psv"}, u.JsonHelper{})
	require.NoError(t, err)
	assert.Equal(t, "|", args.Delimiter)

	args, err = ParseCsvArgs([]string{"/data/nation.csv"}, u.JsonHelper{})
	require.NoError(t, err)
	assert.Equal(t, ",", args.Delimiter)

	args, err = ParseCsvArgs([]string{"/data/nation.tbl"}, u.JsonHelper{})
	require.NoError(t, err)
	assert.Equal(t, ",", args.Delimiter)

	args, err = ParseCsvArgs([]string{"/data/nation.psv"}, u.JsonHelper{"delimiter": "\t"})
	require.NoError(t, err)
	assert.Equal(t, "\t", args.Delimiter)
}

func TestCsvHeader(t *testing.T) {
	tests := []struct {
		opts   u.JsonHelper
		header int
	}{
		{u.JsonHelper{"names": []string{}}, 0},
		{u.JsonHelper{"names": []string{"a", "b"}}, NoHeader},
		{u.JsonHelper{"header": -1}, 0},
		{u.JsonHelper{"header": -1, "names": []interface{}{"a"}}, NoHeader},
		{u.JsonHelper{"header": -5}, NoHeader},
		{u.JsonHelper{"header": nil}, NoHeader},
		{u.JsonHelper{"header": 2}, 2},
		{u.JsonHelper{"header": float64(1)}, 1},
	}
	for _, tt := range tests {
		args, err := ParseCsvArgs([]string{"a.csv"}, tt.opts)
		require.NoError(t, err, "opts %v", tt.opts)
		assert.Equal(t, tt.header, args.Header, "opts %v", tt.opts)
	}

	_, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"header": "first"})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
}

func TestCsvSingleChar(t *testing.T) {
	_, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"decimal": ".,"})
	assert.True(t, errors.Is(err, ErrValue), "wanted value error got %v", err)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"decimal": true})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)

	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "decimal", pe.Param)

	for _, key := range []string{"lineterminator", "decimal", "thousands", "comment"} {
		_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{key: 1})
		assert.True(t, errors.Is(err, ErrType), "%s: wanted type error got %v", key, err)
		_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{key: false})
		assert.True(t, errors.Is(err, ErrType), "%s: wanted type error got %v", key, err)
		_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{key: ""})
		assert.True(t, errors.Is(err, ErrType), "%s: wanted type error got %v", key, err)
		_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{key: "ab"})
		assert.True(t, errors.Is(err, ErrValue), "%s: wanted value error got %v", key, err)
	}

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"decimal": nil})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)

	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"thousands": nil, "comment": "#", "decimal": ","})
	require.NoError(t, err)
	assert.Equal(t, NoChar, args.Thousands)
	assert.Equal(t, "#", args.Comment)
	assert.Equal(t, ",", args.Decimal)
}

func TestCsvRowCounts(t *testing.T) {
	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"skiprows": -3, "skipfooter": -2, "nrows": 10})
	require.NoError(t, err)
	assert.Equal(t, 0, args.SkipRows)
	assert.Equal(t, 0, args.SkipFooter)
	assert.Equal(t, 10, args.NRows)

	args, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"skiprows": nil, "skipfooter": false, "nrows": nil})
	require.NoError(t, err)
	assert.Equal(t, 0, args.SkipRows)
	assert.Equal(t, 0, args.SkipFooter)
	assert.Equal(t, Unlimited, args.NRows)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"nrows": -1})
	assert.True(t, errors.Is(err, ErrValue), "wanted value error got %v", err)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"skiprows": "2"})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"skipfooter": true})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"skipfooter": "1"})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
}

func TestCsvFlags(t *testing.T) {
	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{
		"skipinitialspace": 1,
		"delim_whitespace": "yes",
	})
	assert.True(t, errors.Is(err, ErrType), "string delim_whitespace wanted type error got %v", err)
	assert.Nil(t, args)

	args, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{
		"skipinitialspace": 2,
		"delim_whitespace": true,
		"skip_blank_lines": 0,
		"doublequote":      false,
		"keep_default_na":  0,
		"na_filter":        false,
		"dayfirst":         1,
	})
	require.NoError(t, err)
	assert.True(t, args.SkipInitialSpace)
	assert.True(t, args.DelimWhitespace)
	assert.False(t, args.SkipBlankLines)
	assert.False(t, args.DoubleQuote)
	assert.False(t, args.KeepDefaultNA)
	assert.False(t, args.NAFilter)
	assert.True(t, args.DayFirst)

	for _, key := range []string{"skipinitialspace", "skip_blank_lines"} {
		_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{key: nil})
		assert.True(t, errors.Is(err, ErrType), "%s: wanted type error got %v", key, err)
	}
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"doublequote": "no"})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
}

func TestCsvQuoting(t *testing.T) {
	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quotechar": "'", "quoting": 3})
	require.NoError(t, err)
	assert.Equal(t, "'", args.QuoteChar)
	assert.Equal(t, 3, args.Quoting)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quotechar": nil})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quotechar": 1})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quotechar": true})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quotechar": `""`})
	assert.True(t, errors.Is(err, ErrValue), "wanted value error got %v", err)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quoting": 4})
	assert.True(t, errors.Is(err, ErrValue), "wanted value error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quoting": -1})
	assert.True(t, errors.Is(err, ErrValue), "wanted value error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"quoting": "all"})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
}

func TestCsvValueLists(t *testing.T) {
	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{
		"true_values":  "yes,Y",
		"false_values": []interface{}{"no"},
		"na_values":    "NA,-",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"yes", "Y"}, args.TrueValues)
	assert.Equal(t, []string{"no"}, args.FalseValues)
	assert.Equal(t, []string{"NA", "-"}, args.NAValues)

	args, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"na_values": 0, "true_values": nil})
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, args.NAValues)
	assert.Equal(t, []string{}, args.TrueValues)

	args, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"na_values": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"True"}, args.NAValues)

	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"true_values": true})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
	_, err = ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"false_values": 1})
	assert.True(t, errors.Is(err, ErrType), "wanted type error got %v", err)
}

func TestCsvFirstErrorWins(t *testing.T) {
	args, err := ParseCsvArgs([]string{"a.csv"}, u.JsonHelper{"lineterminator": true, "quoting": 9})
	assert.Nil(t, args)
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "lineterminator", pe.Param)
}

func TestDefaultCsvArgs(t *testing.T) {
	args := DefaultCsvArgs(u.JsonHelper{"path": "/data/a.psv", "delimiter": "|", "nrows": 5, "decimal": true, "dayfirst": true})
	assert.Equal(t, []string{"/data/a.psv"}, args.Paths)
	assert.Equal(t, ",", args.Delimiter)
	assert.Equal(t, Unlimited, args.NRows)
	assert.Equal(t, ".", args.Decimal, "wrong typed values are ignored")
	assert.True(t, args.DayFirst)

	args = DefaultCsvArgs(nil)
	assert.Nil(t, args.Paths)
	assert.Equal(t, ",", args.Delimiter)
}
