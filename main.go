package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "dealerpos/internal/config"
	intdb "dealerpos/internal/db"
	"dealerpos/internal/domain/models"
	router "dealerpos/internal/http"
	"dealerpos/internal/http/handlers"
	"dealerpos/internal/repositories"
	"dealerpos/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := intdb.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("[DB] schema: %v", err)
	}
	cancel()

	reference := buildReferenceService(env, db)
	sequences := repositories.SequenceRepository{DB: db}
	records := repositories.SalesRecordRepository{DB: db}
	auth := services.AuthService{
		Users:  repositories.UserRepository{DB: db},
		Secret: []byte(env.JWTSecret),
		TTL:    env.JWTTTL,
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := auth.EnsureAdmin(bootCtx, env.AdminUsername, env.AdminPassword); err != nil {
		log.Printf("[AUTH] admin bootstrap failed: %v", err)
	}
	bootCancel()

	hd := handlers.Handler{
		DB:        db,
		Reference: reference,
		Orders: services.OrderService{
			Reference: reference,
			Sequences: sequences,
			Ledger:    records,
			Docs:      services.DocsService{},
			TaxRate:   env.AccessoryTaxRate,
			InvoiceSeries: map[int]repositories.Series{
				models.FirmPrimary:   services.AccessorySeries(models.FirmPrimary, env.AccessoryFirm1.Prefix, env.AccessoryFirm1.Base),
				models.FirmSecondary: services.AccessorySeries(models.FirmSecondary, env.AccessoryFirm2.Prefix, env.AccessoryFirm2.Base),
			},
		},
		Records: records,
		Export:  services.LedgerExportService{Records: records},
		Auth:    auth,
	}

	// Router (Gin engine)
	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

// buildReferenceService picks the configured reference source. Workbook
// sources are read-only; MySQL also accepts new list entries.
func buildReferenceService(env intconfig.Env, db *sql.DB) *services.ReferenceService {
	if env.ReferenceSource == intconfig.ReferenceSourceWorkbook {
		log.Printf("[REFERENCE] source=workbook path=%s", env.ReferenceWorkbook)
		return services.NewReferenceService(repositories.WorkbookSource{Path: env.ReferenceWorkbook}, nil, env.ReferenceCacheTTL)
	}
	repo := repositories.ReferenceRepository{DB: db}
	log.Printf("[REFERENCE] source=mysql")
	return services.NewReferenceService(repo, repo, env.ReferenceCacheTTL)
}
