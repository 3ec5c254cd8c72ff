// Package vaultauth provides the credential-supply strategies used by
// [github.com/appcreds/vaultcreds.Client], all behind the standard
// [github.com/hashicorp/vault/api.AuthMethod] contract. AppRole is the
// primary method; userpass and static-token methods are provided for
// development setups, and [EnvAuthMethod] selects between them based on
// which environment variables are set.
//
// Each constructor validates its inputs up front and fails with an error
// wrapping [github.com/appcreds/vaultcreds.ErrConfiguration] before any
// network call is attempted.
//
// See also the auth methods shipped with the Vault API itself:
//   - [github.com/hashicorp/vault/api/auth/approle]
//   - [github.com/hashicorp/vault/api/auth/aws]
//   - [github.com/hashicorp/vault/api/auth/kubernetes]
//   - [github.com/hashicorp/vault/api/auth/ldap]
//   - [github.com/hashicorp/vault/api/auth/userpass]
package vaultauth
