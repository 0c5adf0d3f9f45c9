package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/prajan97/diamond-intel/internal/handler"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the web app",
		Long: `Open the store and serve the REST API and the single-page app until
SIGINT or SIGTERM. A store file that cannot be read stops startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}
}

// runServe blocks until ctx is cancelled or the listener fails, then drains
// in-flight requests for up to server.shutdown_timeout.
func runServe(ctx context.Context, a *app) error {
	ledger, err := a.openLedger()
	if err != nil {
		a.logger.Error("store unavailable", zap.Error(err))
		return err
	}
	defer ledger.Detach()

	if a.logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.NewHandlers(ledger, a.logger), handler.RouterConfig{
		WebDir: a.settings.Web.Dir,
		Logger: a.logger,
	})
	srv := &http.Server{
		Addr:              a.settings.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		a.logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", ledger.Path()),
			zap.String("web_dir", a.settings.Web.Dir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), // do not inherit cancellation from ctx
			a.settings.Server.ShutdownTimeout,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown", zap.Error(err))
			return err
		}
		a.logger.Info("server stopped")
		return nil
	})

	return eg.Wait()
}
