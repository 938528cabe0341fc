package app

import (
	authAPI "bank_backend/internal/api/auth"
	userAPI "bank_backend/internal/api/user"
	"bank_backend/internal/config"
	"bank_backend/internal/config/env"
	"bank_backend/internal/repository"
	"bank_backend/internal/repository/credential_repo"
	"bank_backend/internal/repository/user_repo"
	"bank_backend/internal/service"
	"bank_backend/internal/service/auth"
	"bank_backend/internal/service/interaction"
	"bank_backend/pkg/pass"
	"bank_backend/pkg/resp"
	"context"
	"net/http"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const configYAMLPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Config bits
	tokenCfg config.TokenConfig
	passCfg  config.PassConfig
	adminCfg config.AdminConfig

	// Repository bits
	userRepo repository.UserRepository
	credRepo repository.CredentialRepository

	// Service bits
	hasher    *pass.Hasher
	authServ  service.AuthService
	interServ service.InteractionService

	// Handler bits
	authHand *authAPI.Handler
	userHand *userAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) TokenCfg() config.TokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewTokenConfig()
		if err != nil {
			panic("failed to get token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) PassCfg() config.PassConfig {
	if sp.passCfg == nil {
		cfg, err := env.NewPassConfig()
		if err != nil {
			panic("failed to get password config: " + err.Error())
		}
		sp.passCfg = cfg
	}
	return sp.passCfg
}

func (sp *ServiceProvider) AdminCfg() config.AdminConfig {
	if sp.adminCfg == nil {
		cfg, err := env.NewAdminConfigFromYAML(configYAMLPath)
		if err != nil {
			panic("failed to get admin config: " + err.Error())
		}
		sp.adminCfg = cfg
	}
	return sp.adminCfg
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) CredentialRepo(ctx context.Context) repository.CredentialRepository {
	if sp.credRepo == nil {
		sp.credRepo = credential_repo.NewCredentialRepository(sp.DBClient(ctx))
	}
	return sp.credRepo
}

func (sp *ServiceProvider) Hasher() *pass.Hasher {
	if sp.hasher == nil {
		sp.hasher = pass.NewHasher(sp.PassCfg().Pepper())
	}
	return sp.hasher
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		tokenCfg := sp.TokenCfg()

		// Модель токена выбирается конфигурацией и не смешивается
		switch tokenCfg.Scheme() {
		case env.SchemeSigned:
			sp.authServ = auth.NewService(
				sp.UserRepo(ctx),
				sp.Hasher(),
				auth.NewSignedIssuer(tokenCfg.SecretKey(), tokenCfg.TTL()),
			)
		default:
			sp.authServ = auth.NewService(
				sp.UserRepo(ctx),
				sp.Hasher(),
				auth.NewOpaqueIssuer(sp.CredentialRepo(ctx), tokenCfg.TTL()),
			)
		}
	}
	return sp.authServ
}

func (sp *ServiceProvider) InteractionService(ctx context.Context) service.InteractionService {
	if sp.interServ == nil {
		sp.interServ = interaction.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthService(ctx),
			sp.AdminCfg(),
		)
	}
	return sp.interServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.InteractionService(ctx),
			Auth: sp.AuthService(ctx),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) UserHandler(ctx context.Context) *userAPI.Handler {
	if sp.userHand == nil {
		sp.userHand = userAPI.NewHandler(userAPI.HandlerDeps{
			Serv: sp.InteractionService(ctx),
		})
	}
	return sp.userHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		ping := func(w http.ResponseWriter, _ *http.Request) {
			resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "ok"})
		}
		r.Get("/", ping)
		r.Get("/status", ping)

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/token", authHandler.Token)
		})

		// User endpoints
		userHandler := sp.UserHandler(ctx)
		r.Get("/uid", userHandler.UID)
		r.Route("/users/{id}", func(rr chi.Router) {
			rr.Get("/balance", userHandler.Balance)
			rr.Put("/username", userHandler.EditUsername)
			rr.Post("/transfer", userHandler.Transfer)
			rr.Delete("/", userHandler.Delete)
		})

		// Admin endpoints
		r.Route("/admin/{caller_id}/users/{id}", func(rr chi.Router) {
			rr.Get("/balance", userHandler.AdminBalance)
			rr.Put("/balance", userHandler.AdminSetBalance)
			rr.Delete("/", userHandler.AdminDelete)
		})

		sp.router = r
	}

	return sp.router
}
