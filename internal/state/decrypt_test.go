// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// encryptState builds an OpenTofu style encrypted state around plaintext.
// Iterations are kept low so the suite stays quick.
func encryptState(t *testing.T, plaintext []byte, passphrase, provider string) []byte {
	t.Helper()

	salt := []byte("test-salt-12345")
	iterations := 1000
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, 32, sha512.New)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aesGCM, err := cipher.NewGCM(block)
	require.NoError(t, err)

	nonce := make([]byte, aesGCM.NonceSize())
	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)

	kpConfig, err := json.Marshal(map[string]interface{}{
		"salt":          base64.StdEncoding.EncodeToString(salt),
		"iterations":    iterations,
		"hash_function": "sha512",
		"key_length":    32,
	})
	require.NoError(t, err)

	doc, err := json.Marshal(map[string]interface{}{
		"meta": map[string]interface{}{
			"key_provider.pbkdf2." + provider: base64.StdEncoding.EncodeToString(kpConfig),
		},
		"encrypted_data": base64.StdEncoding.EncodeToString(ciphertext),
	})
	require.NoError(t, err)
	return doc
}

func TestDecryptOpenTofuState(t *testing.T) {
	plaintext := []byte(`{"version":4,"resources":[]}`)

	tests := []struct {
		name       string
		doc        func(t *testing.T) []byte
		passphrase string
		wantErr    string
	}{
		{
			name:       "valid",
			doc:        func(t *testing.T) []byte { return encryptState(t, plaintext, "secret", "mykey") },
			passphrase: "secret",
		},
		{
			name:       "any provider name",
			doc:        func(t *testing.T) []byte { return encryptState(t, plaintext, "secret", "prod_key") },
			passphrase: "secret",
		},
		{
			name:       "unicode passphrase",
			doc:        func(t *testing.T) []byte { return encryptState(t, plaintext, "pässwörd🔑", "k") },
			passphrase: "pässwörd🔑",
		},
		{
			name:       "wrong passphrase",
			doc:        func(t *testing.T) []byte { return encryptState(t, plaintext, "secret", "mykey") },
			passphrase: "nope",
			wantErr:    "failed to decrypt",
		},
		{
			name:    "not json",
			doc:     func(*testing.T) []byte { return []byte("not valid json") },
			wantErr: "failed to parse state",
		},
		{
			name:    "no key provider",
			doc:     func(*testing.T) []byte { return []byte(`{"meta":{},"encrypted_data":"AAAA"}`) },
			wantErr: "key provider",
		},
		{
			name: "bad key provider base64",
			doc: func(*testing.T) []byte {
				return []byte(`{"meta":{"key_provider.pbkdf2.k":"!!!"},"encrypted_data":"AAAA"}`)
			},
			wantErr: "failed to decode key provider config",
		},
		{
			name: "bad key provider json",
			doc: func(*testing.T) []byte {
				cfg := base64.StdEncoding.EncodeToString([]byte("{"))
				return []byte(`{"meta":{"key_provider.pbkdf2.k":"` + cfg + `"},"encrypted_data":"AAAA"}`)
			},
			wantErr: "failed to parse key provider config",
		},
		{
			name: "bad salt",
			doc: func(*testing.T) []byte {
				cfg := base64.StdEncoding.EncodeToString([]byte(`{"salt":"!!!","iterations":1,"key_length":32}`))
				return []byte(`{"meta":{"key_provider.pbkdf2.k":"` + cfg + `"},"encrypted_data":"AAAA"}`)
			},
			wantErr: "failed to decode salt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DecryptOpenTofuState(tt.doc(t), tt.passphrase)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, plaintext, result)
		})
	}
}

func TestDecryptState(t *testing.T) {
	key := make([]byte, 32)

	_, err := decryptState("!!!", key)
	assert.ErrorContains(t, err, "failed to decode base64")

	_, err = decryptState(base64.StdEncoding.EncodeToString([]byte("x")), []byte("short"))
	assert.ErrorContains(t, err, "failed to create cipher")

	_, err = decryptState(base64.StdEncoding.EncodeToString([]byte("tiny")), key)
	assert.ErrorContains(t, err, "ciphertext too short")
}

func TestDecoder(t *testing.T) {
	enc := encryptState(t, []byte(`{"resources":[{"instances":[]}]}`), "secret", "mykey")

	t.Run("plain document", func(t *testing.T) {
		p, err := Decoder{}.Decode([]byte(`{"resources":[]}`))
		require.NoError(t, err)
		assert.True(t, p.IsEmpty())
	})

	t.Run("encrypted document", func(t *testing.T) {
		calls := 0
		d := Decoder{Passphrase: func() (string, error) {
			calls++
			return "secret", nil
		}}
		p, err := d.Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, 1, p.Resources())
		assert.True(t, p.AllInstancesEmpty())
		assert.Equal(t, 1, calls)
	})

	t.Run("encrypted without source", func(t *testing.T) {
		_, err := Decoder{}.Decode(enc)
		assert.ErrorContains(t, err, "no passphrase source")
	})

	t.Run("passphrase error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Decoder{Passphrase: func() (string, error) { return "", boom }}.Decode(enc)
		assert.ErrorIs(t, err, boom)
	})
}

func TestPassphraseChain(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("TFSWEEP_PASSPHRASE", "from-env")
		p, err := PassphraseChain("from-flag")()
		require.NoError(t, err)
		assert.Equal(t, "from-flag", p)
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("TFSWEEP_PASSPHRASE", "from-env")
		fn := PassphraseChain("")
		p, err := fn()
		require.NoError(t, err)
		assert.Equal(t, "from-env", p)

		// Memoized even if the env changes afterwards.
		t.Setenv("TFSWEEP_PASSPHRASE", "changed")
		p, _ = fn()
		assert.Equal(t, "from-env", p)
	})
}
