// Command pydepdocs serves full-text search over the pip, conda, poetry
// and uv documentation as an MCP tool.
//
// Usage:
//
//	pydepdocs [serve] [flags]          run the MCP server (stdio by default)
//	pydepdocs search [flags] <query>   run one search and print the result
//	pydepdocs tool                     print the tool descriptor as JSON
//	pydepdocs version                  print build information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/pydepdocs/discovery"
	"github.com/jonwraymond/pydepdocs/index"
	"github.com/jonwraymond/pydepdocs/internal/config"
	"github.com/jonwraymond/pydepdocs/internal/logging"
	"github.com/jonwraymond/pydepdocs/internal/metrics"
	"github.com/jonwraymond/pydepdocs/internal/version"
	"github.com/jonwraymond/pydepdocs/registry"
)

const usage = `pydepdocs: search Python dependency manager documentation over MCP.

Usage:
  pydepdocs [serve] [flags]          run the MCP server (stdio by default)
  pydepdocs search [flags] <query>   run one search and print the result
  pydepdocs tool [--format yaml]     print the tool descriptor
  pydepdocs version                  print build information

Run "pydepdocs <command> --help" for the flags of a command.
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		return runServe(args)
	case "search":
		return runSearch(args, stdout)
	case "tool":
		return runTool(args, stdout)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return nil
	case "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

// app is the wired object graph shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	cache   *index.Cache
	metrics *metrics.Metrics
	disc    *discovery.Discovery
	reg     *registry.Registry
}

// newApp loads the configuration and wires every component. Nothing is
// opened yet.
func newApp(flags *pflag.FlagSet, quiet bool) (*app, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if level == "" && quiet {
		level = "warn"
	}
	logger, err := logging.New(cfg.Env, level)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, metrics: metrics.New()}
	a.cache = index.NewCache(cfg.Index.Dir, logger)

	a.disc, err = discovery.New(discovery.Options{
		Cache:       a.cache,
		Logger:      logger,
		Metrics:     a.metrics,
		Timeout:     cfg.Search.Timeout,
		DefaultTopN: cfg.Search.DefaultTopN,
	})
	if err != nil {
		return nil, err
	}

	a.reg, err = registry.New(registry.Config{
		ServerInfo:     registry.ServerInfo{Name: registry.ToolNamespace, Version: version.Version},
		Discovery:      a.disc,
		Cache:          a.cache,
		Metrics:        a.metrics,
		Logger:         logger,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Error("close index", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func runServe(args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	config.BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	a, err := newApp(flags, false)
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("starting pydepdocs",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("transport", a.cfg.Transport),
		zap.String("index_dir", a.cfg.Index.Dir),
	)

	if _, err := a.cache.Ensure(); err != nil {
		a.logger.Error("search index unavailable", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(serveCtx)
	g.Go(func() error {
		defer cancel()
		switch a.cfg.Transport {
		case config.TransportHTTP:
			return registry.ServeHTTP(gctx, a.reg, a.cfg.HTTP.Addr, a.cfg.HTTP.ShutdownTimeout)
		default:
			return registry.ServeStdio(gctx, a.reg)
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.logger.Info("shutdown signal received")
		}
		return nil
	})

	err = g.Wait()
	if err != nil {
		a.logger.Error("server stopped with error", zap.Error(err))
	} else {
		a.logger.Info("server stopped")
	}
	return err
}

func runSearch(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("search", pflag.ContinueOnError)
	config.BindFlags(flags)
	pkg := flags.StringP("package", "p", "", "restrict results to one package: "+strings.Join(index.PackageNames(), ", "))
	topN := flags.IntP("top-n", "n", 0, "maximum number of results, 1-10 (default from config)")
	remote := flags.String("remote", "", "URL of a running pydepdocs MCP endpoint to query instead of the local index")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	filter, err := index.ParsePackage(*pkg)
	if err != nil {
		return err
	}
	req := discovery.Request{
		Query:         strings.Join(flags.Args(), " "),
		PackageFilter: filter,
		TopN:          *topN,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *remote != "" {
		client, err := registry.Dial(ctx, registry.ClientConfig{URL: *remote})
		if err != nil {
			return err
		}
		defer client.Close()

		text, err := client.Search(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, text)
		return nil
	}

	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Fprintln(stdout, a.disc.Search(ctx, req))
	return nil
}

func runTool(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("tool", pflag.ContinueOnError)
	config.BindFlags(flags)
	format := flags.String("format", "json", "output format: json or yaml")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	a, err := newApp(flags, true)
	if err != nil {
		return err
	}
	defer a.close()

	summary := a.reg.Describe()
	switch *format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		// round-trip through JSON so the schema keeps its JSON field names
		raw, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}
