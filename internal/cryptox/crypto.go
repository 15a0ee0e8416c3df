// Package cryptox contains the one-way transforms used by the server:
// response digests and password hashes.
package cryptox

import (
	"crypto"
	_ "crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"golang.org/x/crypto/argon2"
)

// Digester turns response content into a fixed-length lowercase hex string.
// The same input always yields the same output; the input cannot be
// recovered from it.
type Digester struct {
	hash crypto.Hash
}

// NewDigester returns a Digester backed by h. It fails with
// common.ErrDigestUnavailable when h is not linked into the binary, which is
// a configuration problem and should stop the server from starting.
func NewDigester(h crypto.Hash) (*Digester, error) {
	if !h.Available() {
		return nil, fmt.Errorf("%w: %v", common.ErrDigestUnavailable, h)
	}
	return &Digester{hash: h}, nil
}

// NewSHA256Digester is the digester used for stored responses.
func NewSHA256Digester() (*Digester, error) {
	return NewDigester(crypto.SHA256)
}

// Digest hashes the UTF-8 bytes of content.
func (d *Digester) Digest(content string) string {
	h := d.hash.New()
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// Size is the length of every digest in hex characters.
func (d *Digester) Size() int {
	return d.hash.Size() * 2
}

// argon2id parameters for stored passwords.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

var errMalformedHash = errors.New("malformed password hash")

// HashPassword derives an argon2id key from password with a fresh random
// salt and encodes parameters, salt and key in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(argonSaltLen)
	key := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64.EncodeToString(salt), b64.EncodeToString(key))
}

// VerifyPassword reports whether candidate matches an encoded hash produced
// by HashPassword. The comparison is constant time.
func VerifyPassword(encoded string, candidate []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errMalformedHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, errMalformedHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return false, errMalformedHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return false, errMalformedHash
	}

	got := argon2.IDKey(candidate, salt, iterations, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, got) == 1, nil
}
