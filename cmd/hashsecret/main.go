// Command hashsecret prints the Argon2id hash of an admin secret for use
// as ADMIN_SECRET_HASH in the server environment.
package main

import (
	"flag"
	"fmt"
	"log"

	"roulette-lab/auth"
)

func main() {
	secret := flag.String("secret", "", "Admin secret to hash")
	flag.Parse()

	if *secret == "" {
		log.Fatal("usage: hashsecret -secret <value>")
	}

	hash, err := auth.HashSecret(*secret)
	if err != nil {
		log.Fatal("Error while hashing: ", err)
	}
	fmt.Println(hash)
}
