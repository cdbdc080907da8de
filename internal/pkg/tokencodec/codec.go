package tokencodec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrInvalidToken = errors.New("invalid token")

const (
	ivSize    = aes.BlockSize
	separator = ":"
)

// Key is an AES-256 key.
type Key [sha256.Size]byte

// DeriveKey hashes an operator supplied secret of any length into a Key.
func DeriveKey(secret string) Key {
	return Key(sha256.Sum256([]byte(secret)))
}

// Codec seals payloads as hex(iv):hex(aes-256-cbc(pkcs7(payload))).
// Tokens are not authenticated: a flipped ciphertext bit can decrypt to garbage
// that only the caller's payload parsing will catch.
type Codec struct {
	block cipher.Block
	rand  io.Reader
}

type Option func(*Codec)

// WithRandom replaces the IV source.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) {
		c.rand = r
	}
}

func New(key Key, opts ...Option) *Codec {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		// unreachable: key is always 32 bytes
		panic(err)
	}
	c := &Codec{block: block, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromSecret is New(DeriveKey(secret)).
func NewFromSecret(secret string, opts ...Option) *Codec {
	return New(DeriveKey(secret), opts...)
}

func (c *Codec) Encode(plaintext []byte) (string, error) {
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + separator + hex.EncodeToString(ciphertext), nil
}

func (c *Codec) Decode(token string) ([]byte, error) {
	parts := strings.Split(token, separator)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: expected 2 parts, got %d", ErrInvalidToken, len(parts))
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != ivSize {
		return nil, fmt.Errorf("%w: malformed iv", ErrInvalidToken)
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: malformed ciphertext", ErrInvalidToken)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(plaintext, ciphertext)

	out, err := unpad(plaintext)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", ErrInvalidToken)
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrInvalidToken)
		}
	}
	return b[:len(b)-n], nil
}
