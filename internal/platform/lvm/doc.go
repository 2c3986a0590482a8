// Package lvm declares LVM2 physical volumes, volume groups and logical
// volumes idempotently through the lvm binary.
//
// Every Declare method inspects the JSON report of pvs, vgs or lvs first and
// only runs the create command when the object is absent. The returned bool
// reports whether anything was created.
package lvm
