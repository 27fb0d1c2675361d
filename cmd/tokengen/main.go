// Package main mints caller tokens for exercising the ledger API locally.
// Tokens are signed with the dev key and will NOT verify against a server
// configured with a real signing key.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/models"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/config"
	"github.com/fourtytwo42/healthChains-sub004/internal/platform/token"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	address := pflag.String("address", "", "caller address (0x + 40 hex digits)")
	signingKey := pflag.String("signing-key", "", "override the signing key (defaults to the dev key)")
	ttl := pflag.Duration("ttl", 15*time.Minute, "token time-to-live")
	asJSON := pflag.Bool("json", false, "output as JSON")
	pflag.Parse()

	if *address == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen --address 0x... [--ttl 15m] [--json]")
		os.Exit(2)
	}

	key := *signingKey
	if key == "" {
		key = config.Default().JWTSigningKey
	}

	svc := token.NewService(key, config.Default().TokenIssuer, *ttl)
	tok, err := svc.Issue(models.Address(*address))
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to issue token:", err)
		os.Exit(1)
	}

	if *asJSON {
		out := tokenOutput{
			Token:     tok,
			Address:   string(models.Address(*address).Canonical()),
			ExpiresIn: ttl.String(),
			Usage:     `curl -H "Authorization: Bearer <token>" ...`,
		}
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			os.Exit(1)
		}
		return
	}

	fmt.Println(tok)
}
