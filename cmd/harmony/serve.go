package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Veraticus/harmony/internal/certs"
	"github.com/Veraticus/harmony/internal/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		origins []string
		useTLS  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		Long: `Serve the dashboard over HTTP until interrupted. The listen address comes
from --addr, server.addr in the config file or HARMONY_SERVER_ADDR.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.logger.Enabled(cmd.Context(), slog.LevelDebug) {
				gin.SetMode(gin.ReleaseMode)
			}
			var tlsConfig *tls.Config
			if useTLS {
				var err error
				tlsConfig, err = certs.NewFileManager(filepath.Join(opts.cfg.Storage.DataDir, "certs")).TLSConfig()
				if err != nil {
					return fmt.Errorf("failed to prepare TLS certificate: %w", err)
				}
			}

			ctx := cmd.Context()
			return opts.withApp(ctx, func(a *app) error {
				srv := server.New(server.Deps{
					Store:        a.store,
					Recommender:  a.recommender,
					Content:      a.content,
					Resources:    a.finder,
					Advisor:      a.advisor,
					Logger:       a.logger,
					AllowOrigins: origins,
					TLS:          tlsConfig,
				})
				return srv.Run(ctx, opts.cfg.Server.Addr)
			})
		},
	}
	cmd.Flags().String("addr", "", "listen address, e.g. :8080")
	cmd.Flags().BoolVar(&useTLS, "tls", false, "serve HTTPS with a self-signed localhost certificate")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	_ = opts.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
