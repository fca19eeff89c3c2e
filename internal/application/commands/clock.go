package commands

import "time"

// now stamps CreatedAt/UpdatedAt. Tests replace it for fixed timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}
