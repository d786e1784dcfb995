// cmd/tools/hashpw/main.go
//
// Generates the bcrypt hash expected in ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tamarside/rounders/internal/api/auth"
)

func main() {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		log.Fatal("Password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
