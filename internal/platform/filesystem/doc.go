// Package filesystem formats block devices, mounts them, persists mounts in
// fstab and manages mount point directories.
package filesystem
