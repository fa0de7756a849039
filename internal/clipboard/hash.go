package clipboard

import (
	"crypto/sha256"
	"sort"
	"strings"
)

// HashContent returns the SHA-256 digest of a text or image payload.
func HashContent(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// CanonicalPaths returns a sorted copy of paths. File captures are
// canonicalized before hashing so the fingerprint does not depend on the
// order in which the platform enumerated the paths.
func CanonicalPaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}

// HashPaths returns the SHA-256 digest of a file capture: the canonical
// (sorted) path list joined with newlines. Paths never contain newlines on
// the supported platforms, so the join is unambiguous.
func HashPaths(paths []string) []byte {
	canon := CanonicalPaths(paths)
	return HashContent([]byte(strings.Join(canon, "\n")))
}
