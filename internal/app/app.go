package app

import (
	"fmt"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/config"
	"github.com/andy/invoicepro/internal/crypto"
	"github.com/andy/invoicepro/internal/repository"
	"github.com/andy/invoicepro/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	API    *api.Client
	Tokens *api.TokenStore

	// Repositories
	ClientRepo  repository.ClientRepository
	InvoiceRepo repository.InvoiceRepository
	CompanyRepo repository.CompanyRepository

	// Services
	InvoiceService service.InvoiceService
}

// New creates a new App instance, initializing all dependencies:
// config, keyring-backed token store, API client, repositories,
// services. It does not require a stored session; screens and
// commands check App.LoggedIn and route to login as needed.
func New() (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Pick up any session persisted by a previous login
	tokens := api.NewTokenStore(crypto.NewKeyring())
	tokens.Load()

	apiClient := api.New(cfg.API.BaseURL, tokens)

	clientRepo := repository.NewClientRepo(apiClient)
	invoiceRepo := repository.NewInvoiceRepo(apiClient)
	companyRepo := repository.NewCompanyRepo(apiClient)

	invoiceService := service.NewInvoiceService(invoiceRepo, cfg.Invoice.OutputDir)

	return &App{
		Config:         cfg,
		API:            apiClient,
		Tokens:         tokens,
		ClientRepo:     clientRepo,
		InvoiceRepo:    invoiceRepo,
		CompanyRepo:    companyRepo,
		InvoiceService: invoiceService,
	}, nil
}

// LoggedIn reports whether a session token is present. The token may
// still be rejected by the backend; ErrUnauthorized on any call is the
// authoritative signal.
func (a *App) LoggedIn() bool {
	return a.Tokens.HasToken()
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
