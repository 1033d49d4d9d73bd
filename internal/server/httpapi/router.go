// Package httpapi exposes the application services as a JSON HTTP API.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/sarojnow24/smart-budget-tracker/internal/logging"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/config"
	"github.com/sarojnow24/smart-budget-tracker/internal/server/services"
)

type API struct {
	config  *config.Config
	logger  logging.Logger
	users   *services.UserService
	backups *services.BackupService
	wallets *services.WalletService
	exports *services.ExportService
}

func NewAPI(cfg *config.Config, logger logging.Logger,
	users *services.UserService, backups *services.BackupService,
	wallets *services.WalletService, exports *services.ExportService) *API {
	return &API{
		config:  cfg,
		logger:  logger,
		users:   users,
		backups: backups,
		wallets: wallets,
		exports: exports,
	}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogMiddleware(a.logger))

	r.GET("/ping", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", a.register)
		authGroup.POST("/login", a.login)
		authGroup.POST("/refresh", a.refresh)
		authGroup.POST("/logout", a.logout)
		authGroup.POST("/password/reset-request", a.passwordResetRequest)
		authGroup.POST("/password/reset-confirm", a.passwordResetConfirm)
	}

	api := r.Group("/api")
	api.Use(authMiddleware(a.config.SecretKey))
	{
		api.GET("/me", a.me)
		api.PUT("/auth/password", a.updatePassword)

		api.GET("/backup", a.getBackup)
		api.PUT("/backup", a.putBackup)

		api.GET("/wallets", a.listWallets)
		api.POST("/wallets", a.createWallet)
		api.GET("/wallets/:id", a.getWallet)
		api.DELETE("/wallets/:id", a.deleteWallet)
		api.GET("/wallets/:id/data", a.getWalletData)
		api.PUT("/wallets/:id/data", a.putWalletData)
		api.GET("/wallets/:id/members", a.listMembers)
		api.POST("/wallets/:id/members", a.inviteMember)
		api.DELETE("/wallets/:id/members/:userID", a.removeMember)

		api.GET("/profiles/lookup", a.lookupProfile)

		api.POST("/export", a.export)
	}

	return r
}
