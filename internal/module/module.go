package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/registry"
)

// Module is a self-contained application feature.
type Module interface {
	Name() string

	// Register publishes the module's services in the registry. All modules
	// register before any boots.
	Register(reg *registry.Registry) error

	// Boot mounts routes on the authenticated /app group and starts
	// background work.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown stops background work.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op implementations for modules to embed.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}
