// Package passcrypt implements the reversible password cipher used for admin
// credentials: AES-ECB with PKCS#7 padding behind the OpenSSL EVP key
// derivation, producing base64 "Salted__" envelopes. This matches the format
// already present in the admin_user collection, so login can decrypt and
// compare stored passwords written by earlier deployments.
package passcrypt

import (
	"crypto/aes"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	saltedPrefix = "Salted__"
	saltLen      = 8
	keyLen       = 32 // AES-256
)

// Errors returned on malformed ciphertext.
var (
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	ErrBadPadding          = errors.New("bad padding")
)

// Encrypt encrypts plaintext with the given passphrase. A fresh random salt
// is used per call, so equal inputs produce distinct ciphertexts.
func Encrypt(plaintext, passphrase string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(saltedPrefix)+saltLen+len(padded))
	copy(out, saltedPrefix)
	copy(out[len(saltedPrefix):], salt)
	ct := out[len(saltedPrefix)+saltLen:]
	for i := 0; i < len(padded); i += block.BlockSize() {
		block.Encrypt(ct[i:], padded[i:])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext, passphrase string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	var salt, body []byte
	if len(raw) >= len(saltedPrefix)+saltLen && string(raw[:len(saltedPrefix)]) == saltedPrefix {
		salt = raw[len(saltedPrefix) : len(saltedPrefix)+saltLen]
		body = raw[len(saltedPrefix)+saltLen:]
	} else {
		body = raw
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return "", err
	}
	if len(body) == 0 || len(body)%block.BlockSize() != 0 {
		return "", ErrMalformedCiphertext
	}

	plain := make([]byte, len(body))
	for i := 0; i < len(body); i += block.BlockSize() {
		block.Decrypt(plain[i:], body[i:])
	}
	return pkcs7Unpad(plain, block.BlockSize())
}

// deriveKey is the OpenSSL EVP_BytesToKey scheme with MD5: repeated digests
// of (previous digest | passphrase | salt) concatenated to key length.
func deriveKey(passphrase string, salt []byte) []byte {
	var key []byte
	var prev []byte
	for len(key) < keyLen {
		h := md5.New()
		h.Write(prev)
		h.Write([]byte(passphrase))
		h.Write(salt)
		prev = h.Sum(nil)
		key = append(key, prev...)
	}
	return key[:keyLen]
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	pad := blockSize - len(b)%blockSize
	out := make([]byte, len(b)+pad)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(b []byte, blockSize int) (string, error) {
	if len(b) == 0 {
		return "", ErrBadPadding
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > blockSize || pad > len(b) {
		return "", ErrBadPadding
	}
	for _, c := range b[len(b)-pad:] {
		if int(c) != pad {
			return "", ErrBadPadding
		}
	}
	return string(b[:len(b)-pad]), nil
}
