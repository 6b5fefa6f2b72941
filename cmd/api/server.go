package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/internal/boot"
	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/equivalent/equivalent"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/trace"
	"github.com/scienceol/equivalents/pkg/utils"
	"github.com/scienceol/equivalents/pkg/web"
	"github.com/spf13/cobra"
)

func NewWeb() *cobra.Command {
	return &cobra.Command{
		Use:          "apiserver",
		Long:         "Start the equivalents HTTP API server",
		SilenceUsage: true,
		PreRunE:      initWeb,
		RunE:         runWeb,
		PostRunE:     cleanWebResource,
	}
}

func initWeb(cmd *cobra.Command, _ []string) error {
	conf := config.Global()
	return trace.InitTrace(cmd.Context(), &trace.InitConfig{
		ServiceName:   fmt.Sprintf("%s-%s", conf.Server.Service, conf.Server.Platform),
		Version:       conf.Trace.Version,
		Exporter:      trace.Exporter(conf.Trace.Exporter),
		TraceEndpoint: conf.Trace.TraceEndpoint,
	})
}

func runWeb(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	conf := config.Global()

	c, err := boot.Catalog(ctx, conf)
	if err != nil {
		logger.Errorf(ctx, "load reagent catalog err: %+v", err)
		return err
	}

	if conf.Server.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	web.NewRouter(router, &web.Services{
		Reagent:    c,
		Equivalent: equivalent.New(c),
	})

	port := conf.Server.Port
	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       30 * time.Second,
		TLSNextProto:      make(map[string]func(*http.Server, *tls.Conn, http.Handler)),
	}

	fmt.Printf("API Server starting on http://0.0.0.0:%d\n", port)
	return serve(ctx, httpServer, 30*time.Second)
}

// serve runs srv until ctx is done or the listener fails, whichever is
// first. A listener failure is returned.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	errCh := make(chan error, 1)
	utils.SafelyGo(func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}, func(err error) {
		errCh <- err
	})

	select {
	case err := <-errCh:
		logger.Errorf(ctx, "run http server err: %+v", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shut down server err: %+v", err)
		return err
	}
	return nil
}

func cleanWebResource(cmd *cobra.Command, _ []string) error {
	boot.Close(cmd.Context())
	trace.CloseTrace()
	return nil
}
