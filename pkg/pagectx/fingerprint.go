package pagectx

import (
	"encoding/binary"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Fingerprint is a 128-bit digest of the visibility-relevant request
// attributes. Two requests that must render identical output for a position
// produce the same Fingerprint.
type Fingerprint [16]byte

// Hex returns the lowercase hex encoding of the fingerprint.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f[:])
}

// String implements fmt.Stringer.
func (f Fingerprint) String() string {
	return f.Hex()
}

// Fingerprint digests the cache-relevant subset of the context: page type,
// primary entity ID, auth state, and roles when logged in. Roles are sorted
// so ordering differences supplied by the host do not fragment the cache.
func (c Context) Fingerprint() Fingerprint {
	var b strings.Builder
	b.WriteString(c.PageType)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(c.EntityID, 10))
	b.WriteByte(0)
	if c.LoggedIn {
		b.WriteString("logged_in")
		roles := append([]string(nil), c.Roles...)
		sort.Strings(roles)
		for _, r := range roles {
			b.WriteByte(0)
			b.WriteString(r)
		}
	} else {
		b.WriteString("logged_out")
	}
	return hashBytes([]byte(b.String()))
}

// Digest is the full canonical encoding of the context, used for per-render
// memoization keys where every field matters, not just the cache subset.
func (c Context) Digest() Fingerprint {
	var b strings.Builder
	b.WriteString(c.PageType)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(c.EntityID, 10))
	b.WriteByte(0)
	writeList(&b, c.Categories)
	writeList(&b, c.Tags)
	b.WriteString(strconv.FormatBool(c.LoggedIn))
	b.WriteByte(0)
	writeList(&b, c.Roles)
	b.WriteString(string(c.Device))
	b.WriteByte(0)
	b.WriteString(c.URL)
	b.WriteByte(0)
	b.WriteString(strconv.FormatInt(c.Now.Unix(), 10))
	return hashBytes([]byte(b.String()))
}

func writeList(b *strings.Builder, values []string) {
	for _, v := range values {
		b.WriteString(v)
		b.WriteByte(1)
	}
	b.WriteByte(0)
}

// hashBytes computes xxh3-128 of the given bytes.
func hashBytes(data []byte) Fingerprint {
	h128 := xxh3.Hash128(data)
	var f Fingerprint
	binary.LittleEndian.PutUint64(f[:8], h128.Lo)
	binary.LittleEndian.PutUint64(f[8:], h128.Hi)
	return f
}
