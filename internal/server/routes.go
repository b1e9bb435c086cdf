package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/handlers"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/web"
)

// credentialRateLimit is the per-IP request rate allowed on /login and /signup.
const credentialRateLimit = 5

// RegisterRoutes mounts the public routes, then registers and boots every
// module on the authenticated /app group.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	pagesHandler := handlers.NewPagesHandler()
	authHandler := handlers.NewAuthHandler(s.sessions, s.profiles)
	rateLimiter := middleware.RateLimiter(credentialRateLimit)

	s.E.GET("/", pagesHandler.Home)
	s.E.GET("/post-job", pagesHandler.PostJob)
	s.E.GET("/affiliates", pagesHandler.Affiliates)

	s.E.GET("/login", authHandler.LoginGet)
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.POST("/signup", authHandler.SignupPost, rateLimiter)
	s.E.POST("/logout", authHandler.SignOut)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.E.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: s.gatherer}))
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	app := s.E.Group("/app", middleware.RequireAuth)

	for _, m := range s.modules {
		s.logger.Info("Registering module", "module", m.Name())
		if err := m.Register(s.registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	for _, m := range s.modules {
		s.logger.Info("Booting module", "module", m.Name())
		if err := m.Boot(ctx, app, s.registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}
