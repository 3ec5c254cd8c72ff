package vaultauth

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/appcreds/vaultcreds/internal/env"
	"github.com/hashicorp/vault/api"
)

// NewTokenAuth authenticates with the given token, or if none is
// provided, attempts to read from the $VAULT_TOKEN environment variable,
// or the $HOME/.vault-token file.
//
// This is an escape hatch for development and operator use: no login
// round trip happens, the token is simply handed to the client as-is.
//
// See also https://www.vaultproject.io/docs/auth/token
func NewTokenAuth(token string) api.AuthMethod {
	return &tokenAuthMethod{token: token, fsys: os.DirFS("/")}
}

type tokenAuthMethod struct {
	fsys  fs.FS
	token string
}

func (m *tokenAuthMethod) Login(_ context.Context, _ *api.Client) (*api.Secret, error) {
	if m.token != "" {
		return &api.Secret{Auth: &api.SecretAuth{ClientToken: m.token}}, nil
	}

	// maybe $VAULT_TOKEN (or $VAULT_TOKEN_FILE) is set?
	if token := env.GetenvFS(m.fsys, "VAULT_TOKEN"); token != "" {
		return &api.Secret{Auth: &api.SecretAuth{ClientToken: token}}, nil
	}

	// ok, let's try $HOME/.vault-token
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	p := path.Join(homeDir, ".vault-token")
	p = strings.TrimPrefix(p, "/")

	b, err := fs.ReadFile(m.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("readFile %q: %w", p, err)
	}

	return &api.Secret{Auth: &api.SecretAuth{ClientToken: strings.TrimSpace(string(b))}}, nil
}
