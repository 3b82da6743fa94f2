package utils

import "github.com/google/uuid"

// NewUUID returns a time-ordered (v7) UUID string. Reading ids generated
// this way sort roughly by creation time, so id-ordered scans stay close
// to insertion order.
func NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("failed to generate UUID: " + err.Error())
	}

	return id.String()
}
