package cli

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/bochaco/stableset-net/internal/pkg/logger"
	"github.com/bochaco/stableset-net/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init("error")
}

// fakeSource records filter registrations and fails subscriptions, which is
// enough for the command wiring under test.
type fakeSource struct {
	registerErr  error
	subscribeErr error
	registered   [][]byte
}

func (f *fakeSource) RegisterFilter(ctx context.Context, holderPublicKey []byte) error {
	if f.registerErr != nil {
		return f.registerErr
	}

	f.registered = append(f.registered, holderPublicKey)
	return nil
}

func (f *fakeSource) Subscribe(ctx context.Context, holderPublicKey []byte) (<-chan []byte, error) {
	return nil, f.subscribeErr
}

// runWithArgs invokes the CLI with the given argv, restoring os.Args after.
func runWithArgs(t *testing.T, source *fakeSource, args ...string) error {
	t.Helper()

	originalArgs := os.Args
	t.Cleanup(func() {
		os.Args = originalArgs
	})

	os.Args = append([]string{"stableset"}, args...)
	return Run(t.Context(), source, wallet.NewMemoryStore(), nil)
}

func TestRun(t *testing.T) {
	t.Run("help exits cleanly", func(t *testing.T) {
		err := runWithArgs(t, &fakeSource{}, "--help")
		assert.NoError(t, err)
	})

	t.Run("keygen exits cleanly", func(t *testing.T) {
		err := runWithArgs(t, &fakeSource{}, "keygen")
		assert.NoError(t, err)
	})

	t.Run("register forwards the decoded public key", func(t *testing.T) {
		source := &fakeSource{}

		err := runWithArgs(t, source, "register", "--pk", "abcd1234")
		require.NoError(t, err)

		require.Len(t, source.registered, 1)
		assert.Equal(t, []byte{0xab, 0xcd, 0x12, 0x34}, source.registered[0])
	})

	t.Run("register rejects a non-hex public key", func(t *testing.T) {
		err := runWithArgs(t, &fakeSource{}, "register", "--pk", "zz")
		assert.ErrorContains(t, err, "parsing hex-encoded public key")
	})

	t.Run("register surfaces transport failures", func(t *testing.T) {
		source := &fakeSource{registerErr: errors.New("peer unreachable")}

		err := runWithArgs(t, source, "register", "--pk", "abcd1234")
		assert.ErrorIs(t, err, source.registerErr)
	})

	t.Run("watch requires a secret key", func(t *testing.T) {
		err := runWithArgs(t, &fakeSource{}, "watch")
		assert.Error(t, err)
	})

	t.Run("watch rejects a malformed secret key", func(t *testing.T) {
		err := runWithArgs(t, &fakeSource{}, "watch", "--sk", "not-hex")
		assert.ErrorContains(t, err, "parsing hex-encoded secret key")
	})
}
