// Package slug provides the reversible encoding used for notification
// identifiers in URLs. The encoding is an offset, not a cipher: it keeps
// raw row ids out of links without pretending to be secure.
package slug

const offset int64 = 110909

// Encode maps a row id to its public slug.
func Encode(id int64) int64 {
	return id + offset
}

// Decode maps a public slug back to the row id. Returns 0 for slugs
// below the offset, which can never correspond to a stored row.
func Decode(slug int64) int64 {
	if slug <= offset {
		return 0
	}
	return slug - offset
}
