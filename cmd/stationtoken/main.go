// Command stationtoken mints a signed bearer token for a scanning station or staff member.
//
//	stationtoken -user puerta-norte -role Asistente -ttl 72h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eventpass/config"
	"eventpass/internal/adapters/auth"
	"eventpass/internal/domain"
)

func main() {
	userID := flag.String("user", "", "subject of the token (station or staff identifier)")
	roleName := flag.String("role", string(domain.RoleAssistant), "Administrador, Docente, Asistente or Estudiante")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if *userID == "" {
		logger.Error("missing -user")
		flag.Usage()
		os.Exit(2)
	}
	role, ok := domain.ParseRole(*roleName)
	if !ok {
		logger.Error("unknown role", "role", *roleName)
		os.Exit(2)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret, *ttl).Issue(*userID, role)
	if err != nil {
		logger.Error("failed to issue token", "error", err)
		os.Exit(1)
	}
	logger.Debug("token issued", "user", *userID, "role", role, "expires_in", ttl.String())
	fmt.Println(token)
}
