package tracecreds

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	pathKey      = attribute.Key("secrets.path")
	fieldsKey    = attribute.Key("secrets.record_fields")
	ttlKey       = attribute.Key("secrets.token_ttl_seconds")
	renewableKey = attribute.Key("secrets.token_renewable")
)

// The secret path being read.
//
// Type: string
// Required: Yes
// Examples: "myapp/database", "shared/api-keys"
func Path(path string) attribute.KeyValue {
	return pathKey.String(path)
}

// The number of fields in a fetched record. Field names and values are
// never attached.
//
// Type: int
// Required: No
// Examples: 2, 0
func RecordFields(n int) attribute.KeyValue {
	return fieldsKey.Int(n)
}

// The TTL granted to the token, in seconds.
//
// Type: int64
// Required: No
// Examples: 3600, 60
func TokenTTL(ttl time.Duration) attribute.KeyValue {
	return ttlKey.Int64(int64(ttl.Seconds()))
}

// Whether the granted token can be renewed.
//
// Type: bool
// Required: No
// Examples: true, false
func TokenRenewable(renewable bool) attribute.KeyValue {
	return renewableKey.Bool(renewable)
}
