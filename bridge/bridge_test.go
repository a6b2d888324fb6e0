package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazingdb/blazingsql/testutil"
)

func init() {
	testutil.Setup()
}

func TestParseConnection(t *testing.T) {
	host, port, err := ParseConnection("localhost:8889")
	assert.NoError(t, err)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, 8889, port)

	host, port, err = ParseConnection("125.23.14.1:7887")
	assert.NoError(t, err)
	assert.Equal(t, "125.23.14.1", host)
	assert.Equal(t, 7887, port)

	host, port, err = ParseConnection("[::1]:8889")
	assert.NoError(t, err)
	assert.Equal(t, "::1", host)
	assert.Equal(t, 8889, port)

	for _, bad := range []string{"localhost", ":8889", "localhost:port", "", "localhost:99999"} {
		_, _, err = ParseConnection(bad)
		assert.True(t, errors.Is(err, ErrBadConnection), "%q wanted bad connection got %v", bad, err)
	}
}

func TestDistributedToken(t *testing.T) {
	r := &DistributedResult{Parts: []ResultPart{{Worker: "w0", ResultToken: 11}, {Worker: "w1", ResultToken: 12}}}
	tok, err := r.Token()
	assert.NoError(t, err)
	assert.Equal(t, int64(11), tok)

	_, err = (&DistributedResult{}).Token()
	assert.Equal(t, ErrEmptyResult, err)
}

func TestRegistry(t *testing.T) {
	d := DialerFunc(func(ctx context.Context, host string, port int) (Client, error) {
		return nil, nil
	})
	Register("Test-Registry", d)
	got, err := Get("test-registry")
	require.NoError(t, err)
	assert.NotNil(t, got)

	assert.Panics(t, func() { Register("test-registry", d) })
	assert.Panics(t, func() { Register("nil-dialer", nil) })

	_, err = Get("nope")
	assert.Error(t, err)
}
