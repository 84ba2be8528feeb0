package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ElrondNetwork/elrond-go-crypto/signing"
	"github.com/ElrondNetwork/elrond-go-crypto/signing/ed25519"
	"github.com/btcsuite/btcutil/bech32"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/tyler-smith/go-bip39"
)

const hardened = uint32(0x80000000)

type bip32Path []uint32

type bip32 struct {
	Key       []byte
	ChainCode []byte
}

func GetHTTP(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	client := http.DefaultClient
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", address, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}

func FormatTgUser(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}

// GetPrivateKeyFromSeed derives the ed25519 key at m/44'/508'/0'/0'/index'
func GetPrivateKeyFromSeed(seedphrase string, index int64) []byte {
	seed := bip39.NewSeed(seedphrase, "")
	path := bip32Path{
		44 + hardened,
		508 + hardened,
		hardened,
		hardened + uint32(index>>32),
		hardened + uint32(index&0xFFFFFFFF),
	}
	keyData := derivePrivateKey(seed, path)

	return keyData.Key
}

// DecodePrivateKey accepts a 32 byte ed25519 seed, or the 64 byte seed+pubkey
// form found in PEM files, hex encoded with or without 0x
func DecodePrivateKey(key string) ([]byte, error) {
	bytes, err := hex.DecodeString(strings.TrimPrefix(key, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	switch len(bytes) {
	case 32:
		return bytes, nil
	case 64:
		return bytes[:32], nil
	default:
		return nil, fmt.Errorf("invalid private key length %d", len(bytes))
	}
}

func GetAddressFromPrivateKey(privBytes []byte) (string, error) {
	_suite := ed25519.NewEd25519()
	keyGen := signing.NewKeyGenerator(_suite)
	txSignPrivKey, err := keyGen.PrivateKeyFromByteArray(privBytes)
	if err != nil {
		return "", err
	}
	pubKey := txSignPrivKey.GeneratePublic()
	pubBytes, err := pubKey.ToByteArray()
	if err != nil {
		return "", err
	}
	b, err := bech32.ConvertBits(pubBytes, 8, 5, true)
	if err != nil {
		return "", err
	}

	return bech32.Encode("erd", b)
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return address
	}

	return address[:8] + "..." + address[l-6:]
}

func derivePrivateKey(seed []byte, path bip32Path) *bip32 {
	b := &bip32{}
	digest := hmac.New(sha512.New, []byte("ed25519 seed"))
	digest.Write(seed)
	intermediary := digest.Sum(nil)
	b.Key = intermediary[:32]
	b.ChainCode = intermediary[32:]
	for _, childIdx := range path {
		data := make([]byte, 1+32+4)
		data[0] = 0x00
		copy(data[1:1+32], b.Key)
		binary.BigEndian.PutUint32(data[1+32:1+32+4], childIdx)
		digest = hmac.New(sha512.New, b.ChainCode)
		digest.Write(data)
		intermediary = digest.Sum(nil)
		b.Key = intermediary[:32]
		b.ChainCode = intermediary[32:]
	}
	return b
}
