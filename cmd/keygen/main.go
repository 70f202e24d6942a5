package main

import (
	"fmt"
	"log"

	"github.com/dmitrymomot/authkit/pkg/secrets"
)

func main() {
	masterKey, err := secrets.GenerateHexKey()
	if err != nil {
		log.Fatalf("Failed to generate master key: %v", err)
	}

	signingKey, err := secrets.GenerateEncodedKey()
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	fmt.Printf("TOTP_ENCRYPTION_KEY=%s\n", masterKey)
	fmt.Printf("JWT_SECRET=%s\n", signingKey)
}
