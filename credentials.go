package vaultcreds

import (
	"errors"
	"fmt"
)

// DatabaseCredentials is the domain entity most applications fetch with
// this module: the user/password pair for a database connection.
type DatabaseCredentials struct {
	User     string
	Password string
}

// CredentialsFromRecord maps a raw secret record onto the entity. The
// record must carry "user" and "password" fields.
func CredentialsFromRecord(rec Record) (DatabaseCredentials, error) {
	user, ok := rec["user"]
	if !ok {
		return DatabaseCredentials{}, errors.New(`secret record is missing the "user" field`)
	}

	password, ok := rec["password"]
	if !ok {
		return DatabaseCredentials{}, errors.New(`secret record is missing the "password" field`)
	}

	return DatabaseCredentials{User: user, Password: password}, nil
}

// String renders the credentials with the password redacted, so the value
// is safe to pass to a logger.
func (c DatabaseCredentials) String() string {
	return fmt.Sprintf("DatabaseCredentials{User: %s, Password: <redacted>}", c.User)
}

// GoString keeps %#v output redacted as well.
func (c DatabaseCredentials) GoString() string {
	return c.String()
}
