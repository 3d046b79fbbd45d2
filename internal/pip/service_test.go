package pip

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chis/pipup/internal/testutil"
)

func TestFreeze(t *testing.T) {
	t.Run("parses pip output", func(t *testing.T) {
		runner := &testutil.FakeRunner{Output: []byte("requests==2.31.0\nurllib3==2.2.1\n")}
		svc := NewServiceWithRunner("pip", runner)

		packages, err := svc.Freeze(context.Background(), false)
		require.NoError(t, err)
		require.Len(t, packages, 2)
		assert.Equal(t, [][]string{{"pip", "freeze"}}, runner.Calls)
	})

	t.Run("local only adds the flag", func(t *testing.T) {
		runner := &testutil.FakeRunner{}
		svc := NewServiceWithRunner("pip3", runner)

		_, err := svc.Freeze(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"pip3", "freeze", "--local"}}, runner.Calls)
	})

	t.Run("subprocess failure is fatal and carries output", func(t *testing.T) {
		runner := &testutil.FakeRunner{
			Output: []byte("No module named pip"),
			Err:    errors.New("exit status 1"),
		}
		svc := NewServiceWithRunner("pip", runner)

		_, err := svc.Freeze(context.Background(), false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No module named pip")
	})

	t.Run("empty command defaults to pip", func(t *testing.T) {
		svc := NewService("")
		assert.Equal(t, "pip", svc.command)
	})
}
