package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tokengate/internal/audit"
	"tokengate/internal/balance"
	jwttoken "tokengate/internal/jwt_token"
	"tokengate/internal/platform/config"
	"tokengate/internal/platform/httpserver"
	"tokengate/internal/platform/logger"
	"tokengate/internal/policy"
	"tokengate/internal/policy/metrics"
	httptransport "tokengate/internal/transport/http"
	"tokengate/internal/verification"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	m := metrics.New()
	resolver := balance.NewResolver(balance.Config{
		BaseURL: cfg.BalanceAPIURL,
		APIKey:  cfg.BalanceAPIKey,
		Timeout: cfg.BalanceAPITimeout,
	}, log)
	evaluator := policy.NewEvaluator(resolver, log, m)
	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer)
	auditSvc := audit.NewService(audit.NewInMemoryStore())

	service := verification.NewService(evaluator, tokens, auditSvc, m, log, cfg.TokenTTL)
	handler := httptransport.NewVerifyHandler(service, log)
	auditHandler := httptransport.NewAuditHandler(auditSvc, jwttoken.NewJWTServiceAdapter(tokens))
	router := httptransport.NewRouter(handler, auditHandler, log)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting tokengate", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
