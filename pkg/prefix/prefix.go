// Package prefix validates vanity address prefixes and matches derived
// addresses against them.
package prefix

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// MaxLength is the longest accepted prefix, in hex characters.
const MaxLength = 20

// Errors
var (
	ErrPrefixTooLong       = errors.New("the prefix is too long, it must be at most 20 hex characters")
	ErrPrefixNotHexEncoded = errors.New("the prefix is not a hex encoded string")
)

// Sanitize trims surrounding whitespace, validates the prefix and returns it
// lowercased. The empty prefix is valid and matches every address.
// Length is checked before content, so "0x" followed by 41 zeros is
// ErrPrefixTooLong rather than ErrPrefixNotHexEncoded.
func Sanitize(p string) (string, error) {
	p = strings.TrimSpace(p)
	if len(p) > MaxLength {
		return "", ErrPrefixTooLong
	}
	for i := 0; i < len(p); i++ {
		if !isHexDigit(p[i]) {
			return "", ErrPrefixNotHexEncoded
		}
	}
	return strings.ToLower(p), nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Matcher checks raw addresses against a sanitized prefix without
// hex-encoding them. The prefix is pre-decoded to nibbles once.
type Matcher struct {
	prefix  string
	nibbles []byte
}

// NewMatcher sanitizes p and returns a Matcher for it.
func NewMatcher(p string) (*Matcher, error) {
	p, err := Sanitize(p)
	if err != nil {
		return nil, err
	}
	m := &Matcher{prefix: p, nibbles: make([]byte, len(p))}
	for i := 0; i < len(p); i++ {
		m.nibbles[i] = fromHexChar(p[i])
	}
	return m, nil
}

// Prefix returns the sanitized prefix.
func (m *Matcher) Prefix() string {
	return m.prefix
}

// Difficulty returns the expected number of attempts to find a match, 16^len.
func (m *Matcher) Difficulty() float64 {
	d := 1.0
	for range m.nibbles {
		d *= 16
	}
	return d
}

// Matches reports whether the lowercase hex encoding of addr starts with the
// prefix. This method does not allocate.
func (m *Matcher) Matches(addr *common.Address) bool {
	for i, n := range m.nibbles {
		b := addr[i/2]
		if i%2 == 0 {
			b >>= 4
		} else {
			b &= 0x0f
		}
		if b != n {
			return false
		}
	}
	return true
}

// fromHexChar expects a lowercase hex digit.
func fromHexChar(c byte) byte {
	if c <= '9' {
		return c - '0'
	}
	return c - 'a' + 10
}
