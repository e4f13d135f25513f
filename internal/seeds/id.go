package seeds

import (
	"github.com/google/uuid"
)

// WrestlerID is stable for a slug within a namespace, so re-seeding the same
// roster into a fresh database yields the same ids.
func WrestlerID(ns uuid.UUID, slug string) uuid.UUID {
	return uuid.NewSHA1(ns, []byte("wrestler:"+slug))
}
