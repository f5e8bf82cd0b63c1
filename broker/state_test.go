package broker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leadkit/igbroker/broker"
	"github.com/leadkit/igbroker/instagram"
)

func TestAccountState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown account is anonymous", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		require.Equal(t, broker.StateAnonymous, h.svc.AccountState("acc-1"))
	})

	t.Run("disk record without live client is expired", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		require.NoError(t, h.store.Save("acc-1", broker.Record{
			Username: "alice",
			Session:  instagram.Settings(`{}`),
		}))
		require.Equal(t, broker.StateExpired, h.svc.AccountState("acc-1"))
	})

	t.Run("pending verification wins over live client", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.client.loginFn = func(context.Context, string, string) error {
			return &instagram.TwoFactorRequiredError{Identifier: "tf-1"}
		}
		h.svc.Login(ctx, "acc-1", "alice", "secret")
		require.Equal(t, broker.StateTwoFactorPending, h.svc.AccountState("acc-1"))
	})

	t.Run("full lifecycle", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t)
		h.client.userID = "111"

		h.svc.Login(ctx, "acc-1", "alice", "secret")
		require.Equal(t, broker.StateAuthenticated, h.svc.AccountState("acc-1"))

		h.svc.Logout(ctx, "acc-1")
		require.Equal(t, broker.StateAnonymous, h.svc.AccountState("acc-1"))
	})
}
