package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/config"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/handler/http/middleware"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/metrics"
	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/utils/password"
)

// NewRouter assembles the gin engine: middleware stack, auth routes,
// health and metrics endpoints.
func NewRouter(
	cfg *config.Config,
	authHandler *AuthHandler,
	meHandler *MeHandler,
	healthHandler *HealthHandler,
	signer interfaces.TokenSigner,
	logger *zap.Logger,
) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.CORS(cfg.Server.CORSAllowedOrigins),
		middleware.Metrics(),
	)

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/oauth/:provider/callback", authHandler.OAuthCallback)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)

			auth.POST("/password/setup",
				middleware.Auth(signer, logger),
				authHandler.SetupPassword,
			)
		}

		v1.GET("/me",
			middleware.Auth(signer, logger),
			meHandler.GetMe,
		)
	}

	return router
}

// registerValidators installs the strongpwd binding rule used by the
// register payload.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
			return password.IsStrong(fl.Field().String())
		})
	}
}
