// Package app wires configuration into adapters and use cases.
package app

import (
	"log/slog"

	"ContactOutreach/internal/config"
	"ContactOutreach/internal/infrastructure/audit"
	"ContactOutreach/internal/infrastructure/ecanvasser"
	"ContactOutreach/internal/infrastructure/ledger"
	"ContactOutreach/internal/infrastructure/phonesource"
	"ContactOutreach/internal/infrastructure/sendgrid"
	"ContactOutreach/internal/infrastructure/twilio"
	"ContactOutreach/internal/infrastructure/zerobounce"
	"ContactOutreach/internal/usecase"
)

// Application exposes one constructed workflow per CLI command.
type Application struct {
	Ingest   *usecase.Ingest
	Merge    *usecase.Merge
	Dispatch *usecase.Dispatch
	Reset    *usecase.Reset
}

// New builds all workflows from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	store := ledger.NewCSVStore(cfg.Ledger.Path)

	return &Application{
		Ingest: usecase.NewIngest(usecase.IngestDeps{
			Source: ecanvasser.NewClient(cfg.Source),
			Ledger: store,
			Logger: baseLogger.With("component", "ingest"),
		}),
		Merge: usecase.NewMerge(usecase.MergeDeps{
			Phones: phonesource.NewCSVLoader(cfg.Ledger.PhoneSourcePath),
			Ledger: store,
			Logger: baseLogger.With("component", "merge"),
		}),
		Dispatch: usecase.NewDispatch(usecase.DispatchDeps{
			Ledger:    store,
			Validator: zerobounce.NewValidator(cfg.Validation),
			Email:     sendgrid.NewSender(cfg.Email),
			SMS:       twilio.NewSender(cfg.SMS),
			Audit:     audit.NewCSVWriter(cfg.Dispatch.AuditDir),
			Config:    cfg,
			Logger:    baseLogger.With("component", "dispatch"),
		}),
		Reset: usecase.NewReset(usecase.ResetDeps{
			Ledger: store,
			Logger: baseLogger.With("component", "reset"),
		}),
	}
}
