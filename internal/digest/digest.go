// Package digest is the single pluggable hashing primitive used for blob
// and commit identity. Every caller goes through Sum; swapping the
// underlying hash function (or its width) touches only this file.
package digest

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// MinPrefixLen is the shortest prefix accepted for an abbreviated-digest
// lookup (§4.7 step 2c).
const MinPrefixLen = 4

// Sum computes the textual digest of data: the SHA2-256 digest bytes
// rendered as multibase lowercase base32 (a 'b' prefix followed by 52
// base32 characters). Only the hash bytes are encoded, with no multihash or
// CID header in front of them, so every character after the 'b' depends on
// the content and a short prefix is enough to tell commits apart.
func Sum(data []byte) string {
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only fails for unsupported codes or bad lengths;
		// SHA2_256 with length -1 is always valid.
		panic(fmt.Errorf("digest: sum: %w", err))
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		panic(fmt.Errorf("digest: decode: %w", err))
	}
	encoded, err := multibase.Encode(multibase.Base32, decoded.Digest)
	if err != nil {
		panic(fmt.Errorf("digest: encode: %w", err))
	}
	return encoded
}

// HasPrefix reports whether digest begins with prefix, treated as an
// abbreviated-digest candidate per §4.7 step 2c.
func HasPrefix(dig, prefix string) bool {
	if len(prefix) < MinPrefixLen || len(prefix) > len(dig) {
		return false
	}
	return dig[:len(prefix)] == prefix
}

// Short returns the first n characters of dig for display, or dig itself
// if it is already shorter.
func Short(dig string, n int) string {
	if len(dig) <= n {
		return dig
	}
	return dig[:n]
}
