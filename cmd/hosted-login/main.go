package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-utils-authx"
)

func main() {
	envPath := defaultEnvPath()
	if err := loadEnvFile(envPath); err != nil {
		log.Printf("warning: load %s: %v", envPath, err)
	}

	cfg, err := authx.ConfigFromEnv()
	if err != nil {
		log.Fatalf("load config from env: %v", err)
	}

	authBase := flag.String("auth-base-url", cfg.AuthBaseURL, "Hosted UI base URL (env AUTHX_AUTH_BASE_URL)")
	clientID := flag.String("client-id", cfg.ClientID, "OAuth client id (env AUTHX_CLIENT_ID)")
	redirectURI := flag.String("redirect-uri", cfg.RedirectURI, "Redirect URI served locally (env AUTHX_REDIRECT_URI)")
	scopes := flag.String("scopes", strings.Join(cfg.Scopes, " "), "Space-separated scopes (env AUTHX_SCOPES)")
	timeout := flag.Duration("timeout", 5*time.Minute, "How long to wait for the hosted UI redirect")
	flag.Parse()

	cfg.AuthBaseURL = *authBase
	cfg.ClientID = *clientID
	cfg.RedirectURI = *redirectURI
	if s := strings.TrimSpace(*scopes); s != "" {
		cfg.Scopes = strings.Fields(s)
	}

	if cfg.AuthBaseURL == "" || cfg.ClientID == "" || cfg.RedirectURI == "" {
		flag.Usage()
		log.Fatal("auth-base-url, client-id, and redirect-uri are required")
	}

	callbackURL, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		log.Fatalf("invalid redirect URI: %v", err)
	}

	manager, err := authx.NewManager(cfg)
	if err != nil {
		log.Fatalf("create session manager: %v", err)
	}

	done := make(chan error, 1)
	mux := http.NewServeMux()
	mux.HandleFunc(callbackURL.Path, func(w http.ResponseWriter, r *http.Request) {
		bundle, err := manager.HandleRedirect(r.Context(), r.URL.String())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			done <- err
			return
		}
		if bundle == nil {
			http.Error(w, "redirect carried no code or error parameter", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Login complete, you can close this tab.")
		done <- nil
	})

	server := &http.Server{Addr: callbackURL.Host, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			done <- err
		}
	}()

	log.Printf("open the hosted UI to sign in:\n\n  %s\n", manager.LoginURL())

	select {
	case err := <-done:
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
	case <-time.After(*timeout):
		log.Fatal("timed out waiting for hosted UI redirect")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	profile, ok := manager.CurrentProfile()
	if !ok {
		log.Fatal("exchange succeeded but no profile could be derived")
	}
	printProfile(profile)

	if remote, err := manager.FetchRemoteProfile(context.Background()); err != nil {
		log.Printf("user-info fetch failed, showing token-derived profile only: %v", err)
	} else {
		fmt.Println("remote profile:")
		for k, v := range remote {
			fmt.Printf("  %s: %v\n", k, v)
		}
	}
}

func printProfile(profile *authx.UserProfile) {
	fmt.Println("== Session Established ==")
	fmt.Printf("subject      : %s\n", profile.SubjectID)
	fmt.Printf("username     : %s\n", profile.Username)
	fmt.Printf("email        : %s\n", profile.Email)
	fmt.Printf("issuer       : %s\n", profile.Issuer)
	fmt.Printf("audience     : %s\n", profile.Audience)
	if !profile.ExpiresAt.IsZero() {
		fmt.Printf("expires_at   : %s\n", profile.ExpiresAt.Format(time.RFC3339))
	}
	if len(profile.Groups) > 0 {
		fmt.Printf("groups       : %s\n", strings.Join(profile.Groups, ", "))
	}
}

func defaultEnvPath() string {
	if path := os.Getenv("AUTHX_ENV_FILE"); path != "" {
		return path
	}
	return ".env"
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			log.Printf("warning: invalid line %d in %s", lineNum, filepath.Base(path))
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if key == "" {
			continue
		}
		if _, present := os.LookupEnv(key); present {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			log.Printf("warning: set env %s: %v", key, err)
		}
	}
	return scanner.Err()
}
