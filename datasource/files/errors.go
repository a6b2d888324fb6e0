package files

import (
	"errors"
	"fmt"
)

var (
	// ErrType an option was given a value of the wrong type, ie a bool
	// where a single character string is required
	ErrType = errors.New("type error")
	// ErrValue an option value has the right type but is not valid,
	// ie a negative row count or a two character decimal marker
	ErrValue = errors.New("value error")
)

// ParamError describes the first option that failed normalization.
// errors.Is(err, ErrType) / errors.Is(err, ErrValue) tell the kinds apart.
type ParamError struct {
	Param string
	Kind  error
	Msg   string
}

func (m *ParamError) Error() string {
	return fmt.Sprintf("%v: %s: %s", m.Kind, m.Param, m.Msg)
}

func (m *ParamError) Unwrap() error { return m.Kind }

func typeErr(param, format string, args ...interface{}) error {
	return &ParamError{Param: param, Kind: ErrType, Msg: fmt.Sprintf(format, args...)}
}

func valueErr(param, format string, args ...interface{}) error {
	return &ParamError{Param: param, Kind: ErrValue, Msg: fmt.Sprintf(format, args...)}
}
