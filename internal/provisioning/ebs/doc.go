// Package ebs resolves AWS credentials and creates the EBS volumes a plan
// requests.
//
// Credentials are read once per run from the secrets provider and kept in
// the run's volumes namespace. Missing or empty keys abort the whole run
// before any cloud call.
package ebs
