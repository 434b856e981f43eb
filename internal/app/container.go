package app

import (
	"fmt"

	"vaults-mcp/internal/client"
	"vaults-mcp/internal/config"
	"vaults-mcp/internal/server"
	"vaults-mcp/internal/tools"
	"vaults-mcp/pkg/logging"

	"go.uber.org/dig"
)

// Container holds the resolved singletons of one application run.
type Container struct {
	client   *client.Client
	registry *tools.Registry
	server   *server.Server
}

func (c *Container) Client() *client.Client    { return c.client }
func (c *Container) Registry() *tools.Registry { return c.registry }
func (c *Container) Server() *server.Server    { return c.server }

// newContainer wires settings -> client -> registry -> server.
func newContainer(settings config.Config) (*Container, error) {
	d := dig.New()

	providers := []any{
		func() config.Config { return settings },
		newClient,
		newBackend,
		tools.NewRegistry,
		server.New,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, fmt.Errorf("registering provider: %w", err)
		}
	}

	var result *Container
	err := d.Invoke(func(c *client.Client, r *tools.Registry, s *server.Server) {
		result = &Container{client: c, registry: r, server: s}
	})
	if err != nil {
		return nil, fmt.Errorf("building container: %w", err)
	}
	return result, nil
}

func newClient(settings config.Config) *client.Client {
	c := client.New(client.ConfigFrom(settings))
	if !c.HasFunctionKey() {
		logging.Warn("Bootstrap", "No function key configured, authenticated tools will be rejected by the backend")
	}
	return c
}

func newBackend(c *client.Client) tools.Backend {
	return c
}
