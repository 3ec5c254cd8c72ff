package vaultcreds

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
)

func respErr(status int, details ...string) *api.ResponseError {
	return &api.ResponseError{
		HTTPMethod: "GET",
		URL:        "http://127.0.0.1:8200/v1/secret/data/myapp/database",
		StatusCode: status,
		Errors:     details,
	}
}

func TestLoginError(t *testing.T) {
	err := loginError(respErr(400, "invalid role or secret ID"))
	assert.ErrorIs(t, err, ErrAuthentication)

	err = loginError(respErr(503, "Vault is sealed"))
	assert.ErrorIs(t, err, ErrConnectivity)

	err = loginError(&url.Error{Op: "Put", URL: "http://127.0.0.1:1/v1/auth/approle/login",
		Err: errors.New("connection refused")})
	assert.ErrorIs(t, err, ErrConnectivity)

	// already-classified errors pass through untouched
	cfgErr := fmt.Errorf("missing role ID: %w", ErrConfiguration)
	assert.Equal(t, cfgErr, loginError(cfgErr))

	// unrecognized errors pass through too
	plain := errors.New("something else")
	assert.Equal(t, plain, loginError(plain))
}

func TestReadError(t *testing.T) {
	err := readError(fmt.Errorf("%w: at secret/data/myapp", api.ErrSecretNotFound))
	assert.ErrorIs(t, err, ErrNotFound)

	err = readError(respErr(404))
	assert.ErrorIs(t, err, ErrNotFound)

	err = readError(respErr(403, "1 error occurred:\n\t* permission denied\n\n"))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = readError(respErr(403, "permission denied", "invalid token"))
	assert.ErrorIs(t, err, ErrAuthentication)

	err = readError(respErr(401))
	assert.ErrorIs(t, err, ErrAuthentication)

	err = readError(respErr(500, "internal error"))
	assert.ErrorIs(t, err, ErrConnectivity)

	err = readError(&url.Error{Op: "Get", URL: "http://127.0.0.1:1/v1/secret/data/myapp",
		Err: errors.New("connection refused")})
	assert.ErrorIs(t, err, ErrConnectivity)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "expired", StateExpired.String())
}
