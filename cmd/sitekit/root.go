package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-sitekit/internal/config"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/metrics"
	"github.com/goliatone/go-sitekit/pkg/page"
	"github.com/goliatone/go-sitekit/pkg/prefs"
)

type app struct {
	cfgFile string
	envFile string
	output  string

	cfg     *config.Config
	logger  *slog.Logger
	prefs   *prefs.Preferences
	metrics *metrics.Metrics
	closers []io.Closer

	stdout io.Writer
	stdin  io.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{stdout: os.Stdout, stdin: os.Stdin}

	root := &cobra.Command{
		Use:           "sitekit",
		Short:         "Apply the interactive layer of the site to HTML pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stdout = cmd.OutOrStdout()
			a.stdin = cmd.InOrStdin()
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with SITEKIT_* overrides")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write the resulting HTML here")

	root.AddCommand(
		newEnhanceCmd(a),
		newThemeCmd(a),
		newFontCmd(a),
		newSubmitCmd(a),
		newFillCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, logCloser, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		File:     cfg.Log.File,
		MaxSize:  cfg.Log.MaxSize,
		MaxFiles: cfg.Log.MaxFiles,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	a.logger = logger
	a.closers = append(a.closers, logCloser)

	store, storeCloser, err := prefs.Open(ctx, cfg.PrefsConfig())
	if err != nil {
		// pages stay interactive without storage
		logger.WarnContext(ctx, "preference store unavailable", "driver", cfg.Store.Driver, "error", err)
		store = prefs.UnavailableStore{}
	}
	a.closers = append(a.closers, storeCloser)
	a.prefs = prefs.New(store, prefs.WithLogger(logger))
	a.metrics = metrics.New(nil)
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if a.closers[i] == nil {
			continue
		}
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) newPage(opts ...page.Option) *page.Page {
	base := []page.Option{
		page.WithPreferences(a.prefs),
		page.WithLogger(a.logger),
		page.WithMetrics(a.metrics),
		page.WithSite(a.cfg.SiteInfo()),
	}
	return page.New(append(base, opts...)...)
}

// openPage loads and initialises the page read from path ("-" for stdin).
func (a *app) openPage(ctx context.Context, path string) (*page.Page, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = a.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	p := a.newPage()
	if err := p.Load(ctx, r); err != nil {
		return nil, err
	}
	if err := p.Init(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *app) writeOutput(p *page.Page) error {
	if strings.TrimSpace(a.output) == "" {
		return nil
	}
	f, err := os.Create(a.output)
	if err != nil {
		return err
	}
	if err := p.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
