package media

import "github.com/google/uuid"

// coverExt is the extension of the canonical cover format.
const coverExt = ".webp"

// NewCoverName generates a collision-free file name for a stored cover
// asset. Names are random rather than timestamp-derived so two covers
// created in the same instant can never overwrite each other.
func NewCoverName() string {
	return "cover_" + uuid.NewString() + coverExt
}
