package vaultcreds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"
)

// State tracks where a [Client] is in its authentication lifecycle.
type State int

const (
	// StateUnauthenticated is the initial state: no login has succeeded
	// yet, and no token is held.
	StateUnauthenticated State = iota

	// StateAuthenticated means a login succeeded and the token is held in
	// memory.
	StateAuthenticated

	// StateExpired means an authenticated call failed because Vault no
	// longer accepts the token. Re-authentication requires a new call to
	// [Client.Authenticate].
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Token describes the credential obtained by [Client.Authenticate]. The
// token string itself stays inside the underlying Vault API client and is
// deliberately not part of this struct, so it cannot end up in a log or
// error message by accident.
type Token struct {
	Accessor  string
	TTL       time.Duration
	Renewable bool
}

// Record is one secret's contents: a mapping of field name to value, as
// stored at a path in the KV store. It is a transient result and is not
// cached by the client.
type Record map[string]string

// Client reads secrets from a Vault KV version 2 mount, authenticating
// with the configured auth method.
//
// A Client is meant for a single caller, and does no internal locking.
type Client struct {
	vc    *api.Client
	auth  api.AuthMethod
	mount string

	state State
	token *Token
}

// New builds a Client for the Vault server named by cfg, using auth to
// acquire a token when [Client.Authenticate] is called. No network call
// is made until then.
//
// Each operation is a single blocking round trip: no retries, no backoff.
// The transport timeout is cfg.Timeout, or the Vault API default when
// unset.
func New(cfg Config, auth api.AuthMethod) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if auth == nil {
		return nil, fmt.Errorf("an auth method is required: %w", ErrConfiguration)
	}

	vconf := api.DefaultConfig()
	if vconf.Error != nil {
		return nil, fmt.Errorf("vault configuration error: %w", vconf.Error)
	}

	vconf.Address = cfg.Address
	// single attempt per operation - retry policy belongs to the caller
	vconf.MaxRetries = 0

	if cfg.Timeout > 0 {
		vconf.Timeout = cfg.Timeout
	}

	vc, err := api.NewClient(vconf)
	if err != nil {
		return nil, fmt.Errorf("vault client creation failed: %w", err)
	}

	mount := cfg.Mount
	if mount == "" {
		mount = "secret"
	}

	return &Client{vc: vc, auth: auth, mount: mount}, nil
}

// Authenticate exchanges the configured credentials for a token, which is
// held in memory for the lifetime of the client. On success the client
// transitions to [StateAuthenticated].
//
// The returned error wraps [ErrAuthentication] when Vault rejects the
// credentials, [ErrConnectivity] when the server can't be reached, and
// [ErrConfiguration] when the auth method's inputs were incomplete (in
// which case no request was sent).
func (c *Client) Authenticate(ctx context.Context) (*Token, error) {
	secret, err := c.vc.Auth().Login(ctx, c.auth)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", loginError(err))
	}

	if secret == nil || secret.Auth == nil {
		return nil, fmt.Errorf("authenticate: no auth info was returned after login: %w", ErrAuthentication)
	}

	c.token = &Token{
		Accessor:  secret.Auth.Accessor,
		TTL:       time.Duration(secret.Auth.LeaseDuration) * time.Second,
		Renewable: secret.Auth.Renewable,
	}
	c.state = StateAuthenticated

	return c.token, nil
}

// ReadSecret reads the record stored at path on the configured KV v2
// mount. The read does not mutate store state, and the result is not
// cached.
//
// The returned error wraps [ErrPermissionDenied] when the token's
// policies don't allow the read, [ErrNotFound] when nothing is stored at
// path, and [ErrAuthentication] when the token has expired or been
// revoked - in which case the client also transitions to [StateExpired].
func (c *Client) ReadSecret(ctx context.Context, path string) (Record, error) {
	if path == "" {
		return nil, fmt.Errorf("read secret: a path is required: %w", ErrConfiguration)
	}

	if c.state != StateAuthenticated {
		return nil, fmt.Errorf("read secret %q: client is %s: %w", path, c.state, ErrAuthentication)
	}

	kv, err := c.vc.KVv2(c.mount).Get(ctx, path)
	if err != nil {
		err = readError(err)
		if errors.Is(err, ErrAuthentication) {
			c.state = StateExpired
		}

		return nil, fmt.Errorf("read secret %q: %w", path, err)
	}

	rec := make(Record, len(kv.Data))

	for k, v := range kv.Data {
		if s, ok := v.(string); ok {
			rec[k] = s
		} else {
			rec[k] = fmt.Sprint(v)
		}
	}

	return rec, nil
}

// Renew extends the held token's lease, keeping the client in
// [StateAuthenticated]. It is only valid while authenticated, and only
// for renewable tokens - Vault rejects the call otherwise.
func (c *Client) Renew(ctx context.Context) (*Token, error) {
	if c.state != StateAuthenticated {
		return nil, fmt.Errorf("renew: client is %s: %w", c.state, ErrAuthentication)
	}

	secret, err := c.vc.Auth().Token().RenewSelfWithContext(ctx, 0)
	if err != nil {
		err = loginError(err)
		if errors.Is(err, ErrAuthentication) {
			c.state = StateExpired
		}

		return nil, fmt.Errorf("renew: %w", err)
	}

	if secret == nil || secret.Auth == nil {
		return nil, fmt.Errorf("renew: no auth info was returned: %w", ErrAuthentication)
	}

	c.token.TTL = time.Duration(secret.Auth.LeaseDuration) * time.Second
	c.token.Renewable = secret.Auth.Renewable

	return c.token, nil
}

// State reports the client's position in the authentication lifecycle.
// Note that expiry is only observed when an authenticated call fails, not
// by watching the clock.
func (c *Client) State() State {
	return c.state
}

// Token returns metadata for the held token, or nil before the first
// successful [Client.Authenticate].
func (c *Client) Token() *Token {
	return c.token
}
