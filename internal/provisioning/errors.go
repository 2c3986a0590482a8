package provisioning

import (
	"errors"
	"fmt"
	"strings"
)

// MissingCredentialsError is returned when a plan requests EBS volumes but
// an AWS key is absent or empty. It aborts the whole run.
type MissingCredentialsError struct {
	Missing []string // secret keys that are absent or empty
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("EBS volumes requested but AWS credentials are missing or empty: %s",
		strings.Join(e.Missing, ", "))
}

// IsMissingCredentials reports whether err is or wraps a MissingCredentialsError.
func IsMissingCredentials(err error) bool {
	var mce *MissingCredentialsError
	return errors.As(err, &mce)
}
