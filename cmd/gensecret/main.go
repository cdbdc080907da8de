// Command gensecret prints a random ENCRYPTION_SECRET.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintln(os.Stderr, "gensecret:", err)
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(b))
}
