package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/httpapi"
)

var (
	serveAddr    string
	serveMCPAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the web app",
	Long: `Start the JSON HTTP API used by the lexdraft web app. The MCP server is
mounted at /mcp on the same address; --mcp-addr also serves it on its own
listener.

The address and allowed CORS origins come from the [server] settings.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", "also serve MCP on this address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if accountService == nil {
		return errAccountNotConfigured
	}
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	mcpServer, err := newMCPServer()
	if err != nil {
		return err
	}
	api, err := httpapi.NewServer(&httpapi.Ports{
		Account: accountService,
		Quiz:    quizFactory,
	}, httpapi.Options{
		AllowedOrigins: settings.Server.AllowedOrigins,
		MCP:            mcpServer.Handler(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(ctx, addr)
	})
	if serveMCPAddr != "" {
		g.Go(func() error {
			return mcpServer.RunHTTP(ctx, serveMCPAddr)
		})
	}
	return g.Wait()
}
