package handlers

import (
	"context"
	"database/sql"

	"dealerpos/internal/domain/models"
	"dealerpos/internal/repositories"
	"dealerpos/internal/services"
)

type ReferenceAPI interface {
	Get(ctx context.Context) (models.ReferenceData, error)
	Refresh()
	AddEntry(ctx context.Context, kind repositories.ReferenceKind, name string) error
}

type LedgerReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.LedgerRecord, error)
}

// Handler holds the collaborators the HTTP endpoints need.
type Handler struct {
	DB        *sql.DB
	Reference ReferenceAPI
	Orders    services.OrderService
	Records   LedgerReader
	Export    services.LedgerExportService
	Auth      services.AuthService
}
