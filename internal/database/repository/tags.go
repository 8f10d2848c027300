package repository

import "github.com/google/uuid"

// deterministicTagID derives a stable id from the tag name so repeat
// seeding and concurrent creation converge on the same row.
func deterministicTagID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("tag:"+name)).String()
}
