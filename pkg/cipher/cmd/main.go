package main

import (
	"fmt"
	"log"

	"github.com/enteocode/mfa/pkg/cipher"
)

func main() {
	encoded, err := cipher.GenerateEncodedSecret()
	if err != nil {
		log.Fatalf("Failed to generate cipher secret: %v", err)
	}

	fmt.Printf("Generated cipher secret (for MFA_CIPHER_KEY env var): \n———\n%s\n———\n", encoded)
}
