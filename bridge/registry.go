package bridge

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	u "github.com/araddon/gou"
)

var (
	// the dialer registry mutex
	dialerMu sync.Mutex
	dialers  = make(map[string]Dialer)
)

// Register makes a control connection implementation available by name.
// If Register is called twice with the same name or if dialer is nil,
// it panics.
func Register(name string, dialer Dialer) {
	if dialer == nil {
		panic("blazingsql/bridge: Register dialer is nil")
	}
	name = strings.ToLower(name)
	dialerMu.Lock()
	defer dialerMu.Unlock()
	if _, dup := dialers[name]; dup {
		panic("blazingsql/bridge: Register called twice for dialer " + name)
	}
	u.Debugf("register bridge dialer: %v %T", name, dialer)
	dialers[name] = dialer
}

// Get the dialer registered under name
func Get(name string) (Dialer, error) {
	dialerMu.Lock()
	defer dialerMu.Unlock()
	d, ok := dialers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no bridge dialer registered as %q (have %v)", name, registered())
	}
	return d, nil
}

func registered() []string {
	names := make([]string, 0, len(dialers))
	for name := range dialers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
