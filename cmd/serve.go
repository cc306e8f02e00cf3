package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the published artifacts over HTTP" }
func (*serveCmd) Usage() string {
	return `ptk serve [-addr <host:port>]

  Serves the published artifacts as a read-only JSON API:

    GET /api/<artifact>   the content of <data-dir>/<artifact>.json
    GET /health           liveness probe
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8080", "Address to listen on")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	srv := &http.Server{Addr: c.addr, Handler: newRouter(artifactsDir())}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("serve-artifacts", "addr", c.addr, "dir", artifactsDir())

	select {
	case err := <-errc:
		fmt.Fprintf(os.Stderr, "Error serving artifacts: %v\n", err)
		return subcommands.ExitFailure
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error stopping server: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// artifactName restricts artifact names to files of the artifacts folder.
var artifactName = regexp.MustCompile(`^[a-z0-9_]+$`)

// newRouter returns the HTTP handler serving the artifacts of dir.
func newRouter(dir string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api/:artifact", func(c *gin.Context) {
		name := c.Param("artifact")
		if !artifactName.MatchString(name) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact name"})
			return
		}
		content, err := os.ReadFile(filepath.Join(dir, name+".json"))
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("artifact %q not published", name)})
			return
		}
		if err != nil {
			slog.Error("read-artifact", "name", name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read artifact"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", content)
	})
	return r
}
