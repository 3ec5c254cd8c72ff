// Package vaultcreds provides a minimal client for fetching application
// credentials from Hashicorp Vault's KV version 2 secret engine, using
// machine-to-machine authentication (primarily AppRole).
//
// # Usage
//
// Build a Config with the Vault server's address, choose an auth method
// (see the vaultauth package), and call [New]. The returned [Client]
// performs exactly two kinds of network operation: [Client.Authenticate],
// which exchanges the configured credentials for a short-lived token, and
// [Client.ReadSecret], which reads one record with that token. Both are
// single blocking round trips with no retries.
//
// The client never reads environment variables or any other ambient state.
// Populate Config at your process boundary and pass it in - the credcli
// example in this repository's examples directory shows one approach.
//
// # Secret hygiene
//
// Credentials and tokens are held in process memory only. The token string
// stays inside the underlying Vault API client; [Token] carries only
// metadata (accessor, TTL, renewability). No secret value is ever included
// in an error message or log line produced by this package.
//
// # Errors
//
// Failures are classified with the package sentinels ([ErrConfiguration],
// [ErrConnectivity], [ErrAuthentication], [ErrPermissionDenied],
// [ErrNotFound]) and can be tested with [errors.Is]. Configuration
// problems are detected before any request is sent.
//
// # Permissions
//
// The authenticated role needs the "read" capability on the KV v2 data
// path for each secret it fetches. See
// https://www.vaultproject.io/docs/concepts/policies#capabilities for
// details on how to configure these in Vault.
package vaultcreds
