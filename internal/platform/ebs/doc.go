// Package ebs creates EBS volumes and attaches them to the running EC2
// instance.
//
// Volumes are identified by the volplan:name tag within an availability
// zone, so repeated runs find and reuse what earlier runs created.
package ebs
