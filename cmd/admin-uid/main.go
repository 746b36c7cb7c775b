package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
)

// Looks up the Firebase UID for an email address so it can be added to the
// ADMIN_UIDS allow-list.
func main() {
	email := flag.String("email", "", "firebase account email")
	flag.Parse()
	if *email == "" {
		log.Fatal("email is required: -email=owner@example.com")
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}

	u, err := authClient.GetUserByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("GetUserByEmail: %v", err)
	}

	fmt.Printf("uid for %s: %s\n", *email, u.UID)
	fmt.Println("add it to ADMIN_UIDS (comma-separated) and restart the API")
}
