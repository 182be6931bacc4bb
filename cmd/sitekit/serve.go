package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/page"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve <page.html>",
		Short: "Serve the enhanced page with theme, font and form endpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Serve.Addr
			}
			if a.cfg.Log.Level == "debug" {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           newRouter(a, args[0]),
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving page", "addr", addr, "file", args[0])
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			a.logger.Info("shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to serve.addr)")
	return cmd
}

// newRouter wires the page endpoints. Every request loads a fresh copy of
// the file so edits show up without a restart; preferences persist through
// the configured store.
func newRouter(a *app, path string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(a.logger))

	h := &pageHandler{app: a, path: path}
	router.GET("/", h.show)
	router.POST("/theme", h.toggleTheme)
	router.POST("/font", h.changeFont)
	router.POST("/submit", h.submit)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	return router
}

type pageHandler struct {
	app  *app
	path string
}

func (h *pageHandler) load(c *gin.Context) (*page.Page, bool) {
	p, err := h.app.openPage(c.Request.Context(), h.path)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "page unavailable")
		return nil, false
	}
	return p, true
}

func (h *pageHandler) render(c *gin.Context, status int, p *page.Page) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *pageHandler) show(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	h.render(c, http.StatusOK, p)
}

func (h *pageHandler) toggleTheme(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	if err := p.Click(c.Request.Context(), "#"+enhance.ThemeButtonID); err != nil {
		_ = c.Error(err)
		c.String(http.StatusConflict, "theme button missing")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *pageHandler) changeFont(c *gin.Context) {
	var key string
	switch strings.ToLower(c.DefaultPostForm("key", c.Query("key"))) {
	case "up":
		key = fontsize.KeyIncrease
	case "down":
		key = fontsize.KeyDecrease
	default:
		c.String(http.StatusBadRequest, "key must be up or down")
		return
	}
	p, ok := h.load(c)
	if !ok {
		return
	}
	if _, err := p.KeyDown(c.Request.Context(), key); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "key press failed")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// submit copies posted values into the validated controls by field key and
// answers with the annotated page, 422 when validation failed.
func (h *pageHandler) submit(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	fields, err := p.Fields("")
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusNotFound, "no form on page")
		return
	}
	for _, field := range fields {
		value, posted := c.GetPostForm(field.Key)
		if !posted {
			continue
		}
		if err := p.Fill(field.Selector, value); err != nil {
			_ = c.Error(err)
			c.String(http.StatusBadRequest, "cannot fill %s", field.Key)
			return
		}
	}
	if err := p.Submit(c.Request.Context(), ""); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "submit failed")
		return
	}
	status := http.StatusOK
	if p.Count("."+form.ErrorMessageClass) > 0 {
		status = http.StatusUnprocessableEntity
	}
	h.render(c, status, p)
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case len(c.Errors) > 0:
			logger.Error("request completed with errors", append(attrs, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			logger.Error("request failed", attrs...)
		case c.Writer.Status() >= 400:
			logger.Warn("request completed with client error", attrs...)
		default:
			logger.Debug("request completed", attrs...)
		}
	}
}
