package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shodan-inspector/internal/api"
	"shodan-inspector/internal/config"
	"shodan-inspector/internal/logger"
	"shodan-inspector/internal/middleware"
	"shodan-inspector/internal/utils"
)

func serveCmd() *cobra.Command {
	var addr, staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and the /api/query relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			return serve(cmd.Context(), cfg, logger.L())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address (env ADDR)")
	cmd.Flags().StringVar(&staticDir, "static-dir", "web/static", "directory holding index.html and assets (env STATIC_DIR)")
	return cmd
}

// newHandler is the router wrapped in the access log and CORS chain.
func newHandler(c *config.Config, l *slog.Logger) http.Handler {
	mux := api.BuildRoutes(api.Deps{Relay: newRelay(), StaticDir: c.StaticDir, Started: time.Now()})
	return middleware.Wrap(mux, middleware.Options{Logger: l, CORSOrigins: c.CORSOrigins})
}

// newServer sets the write timeout above the upstream timeout.
func newServer(c *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              c.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      c.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func serve(ctx context.Context, c *config.Config, l *slog.Logger) error {
	l.Debug("config_static_dir", "dir", c.StaticDir)
	s := newServer(c, newHandler(c, l))

	errc := make(chan error, 2)
	go func() {
		if c.TLSEnable {
			if err := utils.EnsureSelfSignedCert(c.TLSCertPath, c.TLSKeyPath, "shodan-inspector.local"); err != nil {
				errc <- err
				return
			}
			if c.TLSRedirectEnable {
				go func() {
					r := &http.Server{Addr: c.TLSRedirectAddr, Handler: logger.AccessMiddleware(l)(redirectHandler(c.Addr, l)), ReadHeaderTimeout: 5 * time.Second}
					l.Info("http_redirect_listening", "addr", c.TLSRedirectAddr, "to", "https"+c.Addr)
					if err := r.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						l.Error("http_redirect_error", "err", err)
					}
				}()
			}
			l.Info("listening_tls", "addr", c.Addr, "cert", c.TLSCertPath)
			errc <- s.ListenAndServeTLS(c.TLSCertPath, c.TLSKeyPath)
			return
		}
		l.Info("listening", "addr", c.Addr)
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		l.Error("server_error", "err", err)
		return err
	case <-ctx.Done():
		l.Info("server_shutdown")
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.Shutdown(sctx)
	}
}

// redirectHandler sends plain HTTP to the HTTPS listener, keeping host and path.
func redirectHandler(httpsAddr string, l *slog.Logger) http.Handler {
	port := ""
	if i := strings.LastIndex(httpsAddr, ":"); i != -1 {
		port = httpsAddr[i+1:]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if i := strings.LastIndex(host, ":"); i != -1 && !strings.HasSuffix(host, "]") {
			host = host[:i]
		}
		if port != "" && port != "443" {
			host = host + ":" + port
		}
		target := "https://" + host + r.URL.RequestURI()
		l.Debug("http_redirect", "from", r.Host, "to", target)
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}
