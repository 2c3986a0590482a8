// Package plan defines volume plans and the registry they are loaded from.
//
// A volume plan is a data-bag-style document describing the storage layout a
// host should converge to: optional EBS volumes to create and attach, and LVM
// volume groups carved into logical volumes that are formatted and mounted.
//
// Plan items arrive untyped (JSON or YAML). [Decode] turns them into the
// typed model, applying defaults and the mirror-over-stripe precedence for
// sizing, and [VolumePlan.Validate] rejects layouts that would produce
// ambiguous device names.
package plan
