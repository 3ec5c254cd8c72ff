package vaultauth

import (
	"os"

	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/userpass"
)

// EnvAuthMethod configures the auth method based on environment
// variables. It will attempt to authenticate with the following methods,
// in order of precedence:
//
// # approle
//
// [NewAppRoleAuth] is called, using the role ID from $APPROLE_ROLE_ID and
// the secret ID from $APPROLE_SECRET_ID. The default mount path can be
// overridden with $VAULT_AUTH_APPROLE_MOUNT.
//
// # userpass
//
// The [github.com/hashicorp/vault/api/auth/userpass.NewUserpassAuth] is
// called, using the username from $VAULT_AUTH_USERNAME and the password
// from $VAULT_AUTH_PASSWORD. The default mount path can be overridden
// with $VAULT_AUTH_USERPASS_MOUNT.
//
// # token
//
// [NewTokenAuth] is called, using the token from $VAULT_TOKEN, or the
// token contained in $HOME/.vault-token.
//
// Note that this method is provided as a convenience for development
// setups. Production callers should construct the auth method they mean
// to use, with explicit options.
func EnvAuthMethod() api.AuthMethod {
	return CompositeAuthMethod(
		envAppRoleAdapter(),
		envUserPassAdapter(),
		NewTokenAuth(""),
	)
}

// envAppRoleAdapter builds an AppRole auth method from environment
// variables, for use only with [EnvAuthMethod]
func envAppRoleAdapter() api.AuthMethod {
	roleID := os.Getenv("APPROLE_ROLE_ID")
	if roleID == "" {
		return nil
	}

	var opts []AppRoleLoginOption

	if mountPath := os.Getenv("VAULT_AUTH_APPROLE_MOUNT"); mountPath != "" {
		opts = []AppRoleLoginOption{WithAppRoleMountPath(mountPath)}
	}

	a, err := NewAppRoleAuth(roleID, &SecretID{FromEnv: "APPROLE_SECRET_ID"}, opts...)
	if err != nil {
		return nil
	}

	return a
}

// envUserPassAdapter builds a UserPassAuth from environment variables,
// for use only with [EnvAuthMethod]
func envUserPassAdapter() api.AuthMethod {
	username := os.Getenv("VAULT_AUTH_USERNAME")
	if username == "" {
		return nil
	}

	password := &userpass.Password{FromEnv: "VAULT_AUTH_PASSWORD"}

	var opts []userpass.LoginOption

	if mountPath := os.Getenv("VAULT_AUTH_USERPASS_MOUNT"); mountPath != "" {
		opts = []userpass.LoginOption{userpass.WithMountPath(mountPath)}
	}

	a, err := userpass.NewUserpassAuth(username, password, opts...)
	if err != nil {
		return nil
	}

	return a
}
