package vaultauth

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/appcreds/vaultcreds/internal/tests/fakevault"
	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvAuthMethodPrefersAppRole(t *testing.T) {
	ctx := context.Background()

	fv := fakevault.New(t)
	client := fv.APIClient(t)

	t.Setenv("APPROLE_ROLE_ID", fakevault.RoleID)
	t.Setenv("APPROLE_SECRET_ID", fakevault.SecretID)
	t.Setenv("VAULT_TOKEN", "ambient-token")

	m := EnvAuthMethod()

	secret, err := m.Login(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, fakevault.Token, secret.Auth.ClientToken)
	assert.IsType(t, &appRoleAuthMethod{}, m.(*compositeAuthMethod).chosen)
}

func TestEnvAuthMethodFallsBackToToken(t *testing.T) {
	ctx := context.Background()

	os.Unsetenv("APPROLE_ROLE_ID")
	os.Unsetenv("VAULT_AUTH_USERNAME")
	t.Setenv("VAULT_TOKEN", "ambient-token")

	m := EnvAuthMethod()

	secret, err := m.Login(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "ambient-token", secret.Auth.ClientToken)
}

func TestCompositeAuthMethod(t *testing.T) {
	ctx := context.Background()

	failing := authMethodFunc(func(_ context.Context, _ *api.Client) (*api.Secret, error) {
		return nil, errors.New("nope")
	})

	succeeding := authMethodFunc(func(_ context.Context, _ *api.Client) (*api.Secret, error) {
		return &api.Secret{Auth: &api.SecretAuth{ClientToken: "t"}}, nil
	})

	m := CompositeAuthMethod(nil, failing, succeeding)

	secret, err := m.Login(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "t", secret.Auth.ClientToken)

	// all methods failing surfaces the last error
	m = CompositeAuthMethod(failing)
	_, err = m.Login(ctx, nil)
	assert.ErrorContains(t, err, "nope")

	// no methods at all
	m = CompositeAuthMethod()
	_, err = m.Login(ctx, nil)
	assert.Error(t, err)
}

type authMethodFunc func(ctx context.Context, client *api.Client) (*api.Secret, error)

func (f authMethodFunc) Login(ctx context.Context, client *api.Client) (*api.Secret, error) {
	return f(ctx, client)
}
