package vaultcreds

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/vault/api"
)

var (
	// ErrConfiguration reports missing or malformed inputs, detected
	// before any request is sent to Vault.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrConnectivity reports that the Vault endpoint could not be
	// reached, or answered with a server-side failure.
	ErrConnectivity = errors.New("vault unreachable")

	// ErrAuthentication reports that Vault rejected the supplied
	// credentials, or that the held token is no longer valid.
	ErrAuthentication = errors.New("vault authentication failed")

	// ErrPermissionDenied reports that the token's policies do not allow
	// the attempted read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound reports that no secret exists at the requested path.
	ErrNotFound = errors.New("secret not found")
)

// loginError converts an error from a login or token-renewal call into
// one wrapping the appropriate sentinel, preventing Vault API types from
// leaking to callers.
func loginError(err error) error {
	if classified(err) {
		return err
	}

	rerr := &api.ResponseError{}
	if errors.As(err, &rerr) {
		if rerr.StatusCode >= 500 {
			return wrapResponseError(rerr, ErrConnectivity)
		}

		return wrapResponseError(rerr, ErrAuthentication)
	}

	uerr := &url.Error{}
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, uerr.URL, ErrConnectivity)
	}

	return err
}

// readError converts an error from a secret read into one wrapping the
// appropriate sentinel.
func readError(err error) error {
	if classified(err) {
		return err
	}

	if errors.Is(err, api.ErrSecretNotFound) {
		return ErrNotFound
	}

	rerr := &api.ResponseError{}
	if errors.As(err, &rerr) {
		switch {
		case rerr.StatusCode >= 500:
			return wrapResponseError(rerr, ErrConnectivity)
		case rerr.StatusCode == 404:
			return wrapResponseError(rerr, ErrNotFound)
		case rerr.StatusCode == 403 && tokenRejected(rerr.Errors):
			return wrapResponseError(rerr, ErrAuthentication)
		case rerr.StatusCode == 403:
			return wrapResponseError(rerr, ErrPermissionDenied)
		case rerr.StatusCode == 401:
			return wrapResponseError(rerr, ErrAuthentication)
		default:
			return err
		}
	}

	uerr := &url.Error{}
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, uerr.URL, ErrConnectivity)
	}

	return err
}

// classified reports whether err already wraps one of the package
// sentinels, so that translation doesn't re-wrap it.
func classified(err error) bool {
	for _, sentinel := range []error{
		ErrConfiguration, ErrConnectivity, ErrAuthentication,
		ErrPermissionDenied, ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

func wrapResponseError(rerr *api.ResponseError, sentinel error) error {
	errDetails := strings.Join(rerr.Errors, ", ")
	if errDetails != "" {
		errDetails = ", details: " + errDetails
	}

	return fmt.Errorf("%s %s - %d%s: %w",
		rerr.HTTPMethod,
		rerr.URL,
		rerr.StatusCode,
		errDetails,
		sentinel,
	)
}

// tokenRejected reports whether the error details from a 403 name the
// token itself. Vault reports an expired or revoked token on many
// endpoints with the same status as a policy denial, so this is the only
// signal available to tell the two apart.
func tokenRejected(details []string) bool {
	for _, d := range details {
		d = strings.ToLower(d)
		if strings.Contains(d, "token") {
			return true
		}
	}

	return false
}
