// Package config defines the node configuration volplan runs with.
//
// The [Config] struct names the volume plans requested for this host, where
// the plan registry lives, which secrets backend holds the AWS credentials,
// and how the host tooling is reached. It is loaded from YAML by [LoadFile],
// defaulted, and validated before anything is provisioned. Timeouts for
// cloud operations come from the environment via [LoadTimeouts].
package config
