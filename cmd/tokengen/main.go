// Package main provides a CLI tool for generating caller tokens and wallet ids
// for the chaincerts wallet API. Tokens use the dev signing key unless -key is
// given and will NOT work against a production deployment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"chaincerts/internal/callertoken"
	"chaincerts/internal/platform/config"
	"chaincerts/internal/wallet/models"
)

// Defaults match config.TokenConfig when the JWT_* variables are unset.
const (
	defaultIssuer   = "chaincerts"
	defaultAudience = "chaincerts-wallet"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Caller    string            `json:"caller"`
	ExpiresIn string            `json:"expires_in"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	callerCmd := flag.NewFlagSet("caller", flag.ExitOnError)
	callerAddress := callerCmd.String("address", "", "Caller address placed in the sub claim (required)")
	callerKey := callerCmd.String("key", config.DevSigningKey, "HS256 signing key (JWT_SIGNING_KEY)")
	callerIssuer := callerCmd.String("issuer", defaultIssuer, "Token issuer (JWT_ISSUER)")
	callerAudience := callerCmd.String("audience", defaultAudience, "Token audience (JWT_AUDIENCE)")
	callerTTL := callerCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	callerJSON := callerCmd.Bool("json", false, "Output as JSON")

	walletCmd := flag.NewFlagSet("wallet", flag.ExitOnError)
	walletCount := walletCmd.Int("n", 1, "Number of wallet ids to generate")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "caller":
		callerCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		generateCallerToken(*callerAddress, *callerKey, *callerIssuer, *callerAudience, *callerTTL, *callerJSON)
	case "wallet":
		walletCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		for range max(*walletCount, 1) {
			fmt.Println(uuid.NewString())
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate caller tokens and wallet ids for the chaincerts API

WARNING: Tokens default to the dev signing key. Only use for local development and testing.

Usage:
  tokengen <command> [flags]

Commands:
  caller    Generate a caller token (JWT) for an owner or distributor address
  wallet    Generate fresh wallet ids

Examples:
  # Token for the wallet owner
  tokengen caller -address GOWNER

  # Token for a distributor, one hour, as JSON
  tokengen caller -address GDISTRIBUTOR -ttl 1h -json

  # Three wallet ids
  tokengen wallet -n 3

Use "tokengen <command> -h" for more information about a command.`)
}

func generateCallerToken(address, key, issuer, audience string, ttl time.Duration, jsonOutput bool) {
	caller, err := models.ParseAddress(address)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -address: %v\n", err)
		os.Exit(1)
	}

	svc := callertoken.NewService(key, issuer, audience, ttl)
	token, err := svc.Issue(context.Background(), caller)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Caller:    caller.String(),
			ExpiresIn: ttl.String(),
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		})
		return
	}

	fmt.Println("Caller Token (JWT)")
	fmt.Println("==================")
	fmt.Printf("Caller:     %s\n", caller)
	fmt.Printf("Issuer:     %s\n", issuer)
	fmt.Printf("Audience:   %s\n", audience)
	fmt.Printf("Expires In: %s\n", ttl)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:8080/wallets/...")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
