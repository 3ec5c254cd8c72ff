package vaultauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// CompositeAuthMethod returns an AuthMethod that will try each of the
// given methods in order, until one succeeds. Nil methods are skipped.
func CompositeAuthMethod(methods ...api.AuthMethod) api.AuthMethod {
	return &compositeAuthMethod{methods: methods}
}

type compositeAuthMethod struct {
	chosen  api.AuthMethod
	methods []api.AuthMethod
}

func (m *compositeAuthMethod) Login(ctx context.Context, client *api.Client) (secret *api.Secret, err error) {
	// once a method has succeeded, stick with it
	if m.chosen != nil {
		return m.chosen.Login(ctx, client)
	}

	for _, auth := range m.methods {
		if auth == nil {
			continue
		}

		secret, err = auth.Login(ctx, client)
		if err == nil {
			m.chosen = auth

			return secret, nil
		}
	}

	if err == nil {
		err = errors.New("no auth methods configured")
	}

	return nil, fmt.Errorf("unable to authenticate with vault by any configured method. Last error was: %w", err)
}
