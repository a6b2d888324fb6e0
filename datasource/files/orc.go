package files

import (
	u "github.com/araddon/gou"

	"github.com/blazingdb/blazingsql/value"
)

const (
	// AllStripes read every stripe of the orc file
	AllStripes = -1
)

// OrcArgs are the normalized options for reading orc files.
type OrcArgs struct {
	Stripe   int  `json:"stripe"`
	SkipRows int  `json:"skip_rows"`
	NumRows  int  `json:"num_rows"`
	UseIndex bool `json:"use_index"`
}

// ParseOrcArgs normalizes a loose option bag into OrcArgs.
func ParseOrcArgs(opts u.JsonHelper) (*OrcArgs, error) {
	p := &optParser{opts: opts}
	m := &OrcArgs{
		Stripe:   p.stripe(),
		SkipRows: p.rowCount("skip_rows", 0),
		NumRows:  p.rowCount("num_rows", Unlimited),
		UseIndex: useIndex(opts),
	}
	if p.err != nil {
		u.Debugf("invalid orc args: %v", p.err)
		return nil, p.err
	}
	return m, nil
}

// DefaultOrcArgs builds args when there is no file to look at; the row
// window is forced to all rows.
func DefaultOrcArgs(opts u.JsonHelper) *OrcArgs {
	m := &OrcArgs{Stripe: AllStripes, NumRows: Unlimited}
	copyInt(opts, "stripe", &m.Stripe)
	m.UseIndex = useIndex(opts)
	return m
}

// useIndex is passed through, a missing or nil value is false
func useIndex(opts u.JsonHelper) bool {
	v, ok := opts["use_index"]
	if !ok || v == nil {
		return false
	}
	return !value.IsFalse(v)
}

func (m *optParser) stripe() int {
	v, ok := m.get("stripe")
	if !ok || v == nil {
		return AllStripes
	}
	n, isInt := value.ToInt64(v)
	if !isInt {
		m.fail(typeErr("stripe", "'stripe' must be an integer, not %T", v))
		return AllStripes
	}
	return int(n)
}

// rowCount returns def when unset and rejects negative counts
func (m *optParser) rowCount(key string, def int) int {
	v, ok := m.get(key)
	if !ok || v == nil {
		return def
	}
	n, isInt := value.ToInt64(v)
	if !isInt {
		m.fail(typeErr(key, "%q must be an integer, not %T", key, v))
		return def
	}
	if n < 0 {
		m.fail(valueErr(key, "%q must be an integer >= 0", key))
		return def
	}
	return int(n)
}
