// Command devtoken signs a bearer token for local testing with the same
// JWT_SECRET the server reads.
//
//	go run ./cmd/devtoken -role driver -name Rahim
package main

import (
	"flag"
	"fmt"
	"time"

	"grameego/cmd"
	httpadapter "grameego/internal/adapters/in/http"
	"grameego/internal/core/domain/model/kernel"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	var (
		id     = flag.String("id", "", "actor id, a random one when empty")
		role   = flag.String("role", "customer", "customer, driver or shop")
		name   = flag.String("name", "", "display name")
		shopID = flag.String("shop", "", "shop id for shop accounts")
		ttl    = flag.Duration("ttl", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	actorID := kernel.NewUUID()
	if *id != "" {
		if actorID, err = kernel.ParseUUID("id", *id); err != nil {
			log.Fatalf("Invalid id: %v", err)
		}
	}

	parsedRole, err := kernel.ParseRole(*role)
	if err != nil {
		log.Fatalf("Invalid role: %v", err)
	}

	actor, err := kernel.NewActor(actorID, parsedRole, *name, *shopID)
	if err != nil {
		log.Fatalf("Invalid actor: %v", err)
	}

	verifier, err := httpadapter.NewTokenVerifier(config.JWTSecret)
	if err != nil {
		log.Fatalf("Invalid secret: %v", err)
	}

	token, err := verifier.Issue(actor, *ttl, time.Now())
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
