package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := "refresh-token-abc123"

	encrypted, err := Encrypt(plaintext, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := Decrypt(encrypted, testKey)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncrypt_ProducesDistinctCiphertexts(t *testing.T) {
	// A fresh IV per call means identical plaintexts encrypt differently.
	a, err := Encrypt("same-token", testKey)
	require.NoError(t, err)
	b, err := Encrypt("same-token", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncrypt_RejectsBadKey(t *testing.T) {
	_, err := Encrypt("data", []byte("short"))
	assert.Error(t, err)

	_, err = Encrypt("", testKey)
	assert.Error(t, err)
}

func TestDecrypt_RejectsGarbage(t *testing.T) {
	_, err := Decrypt("not-hex", testKey)
	assert.Error(t, err)

	_, err = Decrypt("abcd", testKey)
	assert.Error(t, err)
}

func TestGenerateHMAC(t *testing.T) {
	a := GenerateHMAC("20000.00", "4.5", "60", "2020-03-15", "secret")
	b := GenerateHMAC("20000.00", "4.5", "60", "2020-03-15", "secret")
	assert.Equal(t, a, b, "HMAC should be deterministic")

	tampered := GenerateHMAC("25000.00", "4.5", "60", "2020-03-15", "secret")
	assert.NotEqual(t, a, tampered, "changing the principal should change the HMAC")

	otherSecret := GenerateHMAC("20000.00", "4.5", "60", "2020-03-15", "other")
	assert.NotEqual(t, a, otherSecret)
}
