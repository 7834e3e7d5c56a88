// Package fingerprint computes BLAKE3 digests of annotation files so a
// stored run can be tied to the exact inputs it scored.
package fingerprint

import (
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// Sum returns the hex-encoded BLAKE3-256 digest of data.
func Sum(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Combine digests a set of digests independent of their order. It
// identifies a corpus by the files that went into a run.
func Combine(digests []string) string {
	sorted := append([]string(nil), digests...)
	sort.Strings(sorted)

	h := blake3.New()
	for _, d := range sorted {
		h.Write([]byte(d))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Short returns the first 12 characters of a digest for log output.
func Short(digest string) string {
	if len(digest) <= 12 {
		return digest
	}
	return digest[:12]
}
