package rule

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"
)

// HashAlgorithm names one of the three HMAC variants a Hash redaction may
// use (spec.md §4.4). The zero value is HmacSha256, the engine default.
type HashAlgorithm string

const (
	HmacSha1   HashAlgorithm = "HMAC-SHA1"
	HmacSha256 HashAlgorithm = "HMAC-SHA256"
	HmacSha512 HashAlgorithm = "HMAC-SHA512"
)

func (a HashAlgorithm) newHash(key []byte) (hash.Hash, error) {
	switch a {
	case HmacSha1:
		return hmac.New(sha1.New, key), nil
	case "", HmacSha256:
		return hmac.New(sha256.New, key), nil
	case HmacSha512:
		return hmac.New(sha512.New, key), nil
	default:
		return nil, &UnknownHashAlgorithmError{Algorithm: string(a)}
	}
}

// HashValue computes the HMAC of text under key using a, rendering the
// digest as uppercase hex — matching HashAlgorithm::hash_value in
// original_source/src/rule.rs byte for byte.
func (a HashAlgorithm) HashValue(key, text string) (string, error) {
	h, err := a.newHash([]byte(key))
	if err != nil {
		return "", err
	}
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return strings.ToUpper(hex.EncodeToString(sum)), nil
}

// UnknownHashAlgorithmError is returned by RuleConfig construction when a
// RuleSpec names a hash algorithm this engine doesn't implement.
type UnknownHashAlgorithmError struct {
	Algorithm string
}

func (e *UnknownHashAlgorithmError) Error() string {
	return "rule: unknown hash algorithm " + e.Algorithm
}
