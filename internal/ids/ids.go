package ids

import "github.com/segmentio/ksuid"

// New returns an opaque unique identifier. Collisions are treated as
// negligible and are not checked anywhere downstream.
func New() string {
	return ksuid.New().String()
}
