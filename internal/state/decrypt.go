// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"

	"github.com/tfctl/tfsweep/internal/log"
)

// keyProviderPrefix is the meta key prefix OpenTofu uses for pbkdf2 key
// providers. The remainder of the key is the user-chosen provider name.
const keyProviderPrefix = "key_provider.pbkdf2."

// DecryptOpenTofuState decrypts an encrypted OpenTofu state file using the
// provided passphrase.
func DecryptOpenTofuState(stateData []byte, passphrase string) ([]byte, error) {
	if !gjson.ValidBytes(stateData) {
		return nil, fmt.Errorf("failed to parse state: %w", ErrMalformed)
	}

	var keyConfig string
	gjson.GetBytes(stateData, "meta").ForEach(func(k, v gjson.Result) bool {
		if strings.HasPrefix(k.String(), keyProviderPrefix) {
			keyConfig = v.String()
			return false
		}
		return true
	})
	if keyConfig == "" {
		return nil, fmt.Errorf("no %s* key provider in state meta", keyProviderPrefix)
	}

	keyProviderConfig, err := base64.StdEncoding.DecodeString(keyConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kpConfig struct {
		Salt       string `json:"salt"`
		Iterations int    `json:"iterations"`
		HashFunc   string `json:"hash_function"`
		KeyLength  int    `json:"key_length"`
	}

	if err = json.Unmarshal(keyProviderConfig, &kpConfig); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(kpConfig.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	key := pbkdf2.Key(
		[]byte(passphrase),
		salt,
		kpConfig.Iterations,
		kpConfig.KeyLength,
		sha512.New,
	)

	return decryptState(gjson.GetBytes(stateData, "encrypted_data").String(), key)
}

func decryptState(encryptedData string, derivedKey []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// The nonce is prepended to the sealed data.
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}

// PassphraseFunc supplies the passphrase for encrypted states.
type PassphraseFunc func() (string, error)

// PassphraseChain returns a PassphraseFunc that tries the explicit value, then
// TFSWEEP_PASSPHRASE, then an interactive terminal prompt. The answer is
// remembered so the user is asked at most once per run.
func PassphraseChain(explicit string) PassphraseFunc {
	var (
		once       sync.Once
		passphrase string
		err        error
	)
	return func() (string, error) {
		once.Do(func() {
			passphrase = explicit
			if passphrase == "" {
				passphrase = os.Getenv("TFSWEEP_PASSPHRASE")
			}
			if passphrase == "" {
				passphrase, err = GetPassphrase()
			}
		})
		return passphrase, err
	}
}

// GetPassphrase prompts on the controlling terminal for a passphrase without
// echoing input.
func GetPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("encrypted state found but no passphrase given and stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	password, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(password), nil
}

// Decoder turns raw bucket content into a Payload, decrypting when needed.
type Decoder struct {
	Passphrase PassphraseFunc
}

// Decode parses doc, decrypting it first if it is an encrypted state.
func (d Decoder) Decode(doc []byte) (Payload, error) {
	if IsEncrypted(doc) {
		if d.Passphrase == nil {
			return Payload{}, fmt.Errorf("encrypted state found but no passphrase source configured")
		}
		passphrase, err := d.Passphrase()
		if err != nil {
			return Payload{}, err
		}
		if doc, err = DecryptOpenTofuState(doc, passphrase); err != nil {
			return Payload{}, fmt.Errorf("failed to decrypt: %w", err)
		}
		log.Debugf("decrypted state: bytes=%d", len(doc))
	}

	return Parse(doc)
}
