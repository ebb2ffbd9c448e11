package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/banshee-data/groundstation/internal/api"
	"github.com/banshee-data/groundstation/internal/catalog"
	"github.com/banshee-data/groundstation/internal/config"
	"github.com/banshee-data/groundstation/internal/fsutil"
	"github.com/banshee-data/groundstation/internal/route"
	"github.com/banshee-data/groundstation/internal/shell"
	"github.com/banshee-data/groundstation/internal/store"
	"github.com/banshee-data/groundstation/internal/version"
	"github.com/banshee-data/groundstation/internal/views"
)

var (
	configFile = flag.String("config", "", "Path to a JSON dashboard config (optional)")
	listen     = flag.String("listen", "", "Listen address (overrides config, default :8080)")
	dataDir    = flag.String("data-dir", "", "Directory the file picker browses (overrides config, default .)")
	outputDir  = flag.String("output-dir", "", "Root for decoded products (overrides config, default beside the input)")
	debug      = flag.Bool("debug", false, "Mount /debug/ routes with the catalog SQL console")
	showVer    = flag.Bool("version", false, "Print the version and exit")
	healthOnly = flag.Bool("healthcheck", false, "Probe a running dashboard at the listen address and exit")
)

// loadConfig reads the optional config file and applies any flags that were
// set on the command line on top of it.
func loadConfig() (*config.DashboardConfig, error) {
	cfg := config.EmptyDashboardConfig()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadDashboardConfig(*configFile)
		if err != nil {
			return nil, err
		}
	}

	if *listen != "" {
		cfg.Listen = listen
	}
	if *dataDir != "" {
		cfg.DataDir = dataDir
	}
	if *outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if *debug {
		cfg.DebugRoutes = debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// app is the wired dashboard: one store, one shell, one handler.
type app struct {
	store   *store.Store
	catalog *catalog.Catalog
	handler http.Handler
}

func (a *app) Close() error {
	return a.catalog.Close()
}

func newApp(cfg *config.DashboardConfig) (*app, error) {
	data, err := filepath.Abs(cfg.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cat, err := catalog.Open()
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	st := store.New(store.WithActivityLimit(cfg.GetActivityLimit()))

	fsys := fsutil.OSFileSystem{}
	tp := views.NewEmbeddedTemplateProvider()
	registry, err := views.NewRegistry(
		views.NewOverview(cat, tp),
		views.NewFilePicker(cat, fsys, data, tp),
		views.NewDecoder(cat, cfg.GetOutputDir(), tp),
		views.NewNotFound(tp),
	)
	if err != nil {
		cat.Close()
		return nil, err
	}

	apiServer := api.NewServer(st, cat, fsys, data)
	apiServer.SetKeepalive(cfg.GetEventKeepalive())

	mux := apiServer.ServeMux()
	if cfg.GetDebugRoutes() {
		if err := cat.AttachAdminRoutes(mux); err != nil {
			cat.Close()
			return nil, fmt.Errorf("attach admin routes: %w", err)
		}
	}
	sh := shell.New(st, route.DefaultTable(), registry)
	mux.Handle("/", sh)

	return &app{store: st, catalog: cat, handler: api.LoggingMiddleware(sh.Intercept(mux))}, nil
}

// Main
func main() {
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if *healthOnly {
		status, err := checkHealth(context.Background(), http.DefaultClient, cfg.GetListen())
		if err != nil {
			log.Fatalf("healthcheck failed: %v", err)
		}
		fmt.Println(status)
		return
	}

	a, err := newApp(cfg)
	if err != nil {
		log.Fatalf("failed to start dashboard: %v", err)
	}
	defer a.Close()

	log.Printf("groundstation %s: session %s, listening on %s", version.String(), a.store.GetState().SessionID, cfg.GetListen())

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()

		server := &http.Server{
			Addr:    cfg.GetListen(),
			Handler: a.handler,
		}

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			// Open event streams hold connections until their client goes away.
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
