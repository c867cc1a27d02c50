package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-utils-authx"
)

func main() {
	token := flag.String("token", os.Getenv("AUTHX_ID_TOKEN"), "Compact ID token to decode (env AUTHX_ID_TOKEN)")
	usernameClaim := flag.String("username-claim", "cognito:username", "Provider username claim")
	groupsClaim := flag.String("groups-claim", "cognito:groups", "Provider groups claim")
	raw := flag.Bool("raw", false, "Print the raw claims mapping instead of the projected profile")
	flag.Parse()

	if *token == "" && flag.NArg() > 0 {
		*token = flag.Arg(0)
	}
	if *token == "" {
		flag.Usage()
		log.Fatal("a token is required")
	}

	claims, err := authx.DecodeClaims(*token)
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	if *raw {
		printClaims(claims)
		return
	}

	cfg := authx.Config{
		UsernameClaim: *usernameClaim,
		GroupsClaim:   *groupsClaim,
	}
	profile := authx.ProfileFromClaims(claims, cfg)
	printProfile(profile)
}

func printProfile(profile authx.UserProfile) {
	fmt.Println("== Decoded Profile (unverified) ==")
	fmt.Printf("subject           : %s\n", profile.SubjectID)
	fmt.Printf("username          : %s\n", profile.Username)
	fmt.Printf("email             : %s (verified: %t)\n", profile.Email, profile.EmailVerified)
	if profile.Name != "" {
		fmt.Printf("name              : %s\n", profile.Name)
	}
	if profile.PreferredUsername != "" {
		fmt.Printf("preferred_username: %s\n", profile.PreferredUsername)
	}
	if len(profile.Groups) > 0 {
		fmt.Printf("groups            : %s\n", strings.Join(profile.Groups, ", "))
	}
	fmt.Printf("issuer            : %s\n", profile.Issuer)
	fmt.Printf("audience          : %s\n", profile.Audience)
	if !profile.IssuedAt.IsZero() {
		fmt.Printf("issued_at         : %s\n", profile.IssuedAt.Format(time.RFC3339))
	}
	if !profile.ExpiresAt.IsZero() {
		fmt.Printf("expires_at        : %s\n", profile.ExpiresAt.Format(time.RFC3339))
	}
}

func printClaims(claims authx.Claims) {
	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %v\n", k, claims[k])
	}
}
