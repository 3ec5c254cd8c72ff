package vaultauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/appcreds/vaultcreds"
	"github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

// NewAppRoleAuth builds an AppRole auth method from a role ID and a
// secret ID source. Both are validated here, before any network call.
//
// Use [WithAppRoleMountPath] to specify the mount path for the AppRole
// auth method. If not specified, the default is "approle".
//
// See also https://www.vaultproject.io/docs/auth/approle
func NewAppRoleAuth(roleID string, secretID *SecretID, opts ...AppRoleLoginOption) (api.AuthMethod, error) {
	if roleID == "" {
		return nil, fmt.Errorf("approle auth method requires a role ID: %w", vaultcreds.ErrConfiguration)
	}

	if err := secretID.validate(); err != nil {
		return nil, err
	}

	a := &appRoleAuthMethod{
		roleID:    roleID,
		secretID:  secretID,
		mountPath: "approle",
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("error from AppRole login option: %w", err)
		}
	}

	return a, nil
}

type AppRoleLoginOption func(a *appRoleAuthMethod) error

func WithAppRoleMountPath(mountPath string) AppRoleLoginOption {
	return func(a *appRoleAuthMethod) error {
		if mountPath == "" {
			return errors.New("mount path must not be empty")
		}

		a.mountPath = mountPath

		return nil
	}
}

// SecretID specifies where the secret ID required for AppRole login is
// held: a plaintext string, an environment variable, or a file. Exactly
// one source must be set.
type SecretID struct {
	FromFile   string
	FromString string
	FromEnv    string
}

func (s *SecretID) validate() error {
	if s == nil {
		return fmt.Errorf("approle auth method requires a secret ID: %w", vaultcreds.ErrConfiguration)
	}

	set := 0
	for _, src := range []string{s.FromFile, s.FromString, s.FromEnv} {
		if src != "" {
			set++
		}
	}

	switch set {
	case 0:
		return fmt.Errorf("secret ID must be provided with a source file, environment variable, or plaintext string: %w",
			vaultcreds.ErrConfiguration)
	case 1:
		return nil
	default:
		return fmt.Errorf("only one source for the secret ID should be specified: %w", vaultcreds.ErrConfiguration)
	}
}

type appRoleAuthMethod struct {
	secretID  *SecretID
	roleID    string
	mountPath string
}

func (a *appRoleAuthMethod) Login(ctx context.Context, client *api.Client) (*api.Secret, error) {
	sdkSecretID := &approle.SecretID{
		FromFile:   a.secretID.FromFile,
		FromString: a.secretID.FromString,
		FromEnv:    a.secretID.FromEnv,
	}

	m, err := approle.NewAppRoleAuth(a.roleID, sdkSecretID, approle.WithMountPath(a.mountPath))
	if err != nil {
		return nil, fmt.Errorf("invalid approle credentials: %w", vaultcreds.ErrConfiguration)
	}

	secret, err := m.Login(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("approle login failed: %w", err)
	}

	return secret, nil
}
