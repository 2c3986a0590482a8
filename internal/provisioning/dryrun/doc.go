// Package dryrun simulates a host in memory. It implements the volume,
// filesystem and cloud volume collaborators so a plan can be applied
// without touching real devices, and records every operation in order.
//
// A new Host behaves like a fresh machine; applying the same plan twice to
// one Host shows what a converged machine would do.
package dryrun
