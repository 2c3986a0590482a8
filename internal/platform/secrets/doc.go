// Package secrets resolves credentials addressed by key paths.
//
// A path such as ["aws", "volumes", "access_key_id"] names one secret
// value. Providers report an absent secret with ok=false rather than an
// error, so callers decide whether a missing value is fatal. Backends:
// a YAML/JSON document on disk ([FileProvider]), environment variables
// ([EnvProvider]) and Vault KV v2 ([VaultProvider]).
package secrets
