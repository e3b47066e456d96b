package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/gnomonworks/yantra/artifacts"
	"github.com/gnomonworks/yantra/cache"
	"github.com/gnomonworks/yantra/cli/config"
	"github.com/gnomonworks/yantra/compute"
	"github.com/gnomonworks/yantra/log"
	"github.com/gnomonworks/yantra/metrics"
	"github.com/gnomonworks/yantra/params"
	"github.com/gnomonworks/yantra/runtime"
	"github.com/gnomonworks/yantra/session"
	"github.com/gnomonworks/yantra/site"
	"github.com/gnomonworks/yantra/types"
)

// Exit codes.
const (
	exitSuccess          = 0
	exitGenerationFailed = 1
	exitUsage            = 2
)

// defaultConfigName is looked up in the working directory and the user
// config directory when --config is not given.
const defaultConfigName = "yantra.yaml"

// env holds the wired dependencies for one command invocation.
type env struct {
	cfg       *config.Config
	store     *session.Store
	logger    *log.Logger
	collector *metrics.Collector

	// client is nil for commands that never contact the service.
	client *compute.Client
}

// loadConfig resolves the config file from --config or the default lookup
// locations. A missing default file yields an empty config; a missing
// explicit path is an error.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}

	for _, path := range defaultConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return config.Load(path)
		}
	}

	return &config.Config{}, nil
}

func defaultConfigPaths() []string {
	paths := []string{defaultConfigName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "yantra", defaultConfigName))
	}
	return paths
}

// newEnv wires the shared session over the config and flags. Commands that
// contact the service set needService.
func newEnv(c *cli.Context, needService bool) (*env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	var storeOpts []session.Option
	if cfg.Session.ClearErrorOnEdit {
		storeOpts = append(storeOpts, session.WithClearErrorOnEdit())
	}
	store := session.New(storeOpts...)

	e := &env{
		cfg:       cfg,
		store:     store,
		logger:    log.NewLogger(store.ID()),
		collector: metrics.NewCollector(store.ID()),
	}

	if err := e.applyParamDefaults(); err != nil {
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	if needService {
		client, err := e.buildClient(c)
		if err != nil {
			return nil, cli.Exit(err.Error(), exitUsage)
		}
		e.client = client
	}

	return e, nil
}

// applyParamDefaults folds the config's defaults section into the store.
func (e *env) applyParamDefaults() error {
	d := e.cfg.Defaults
	return e.store.UpdateParams(func(p *params.Params) error {
		if d.Instrument != "" {
			if err := p.SetInstrument(types.InstrumentType(d.Instrument)); err != nil {
				return err
			}
		}
		if d.Scale != nil {
			if err := p.SetScale(*d.Scale); err != nil {
				return err
			}
		}
		if d.MaterialThickness != nil {
			if err := p.SetMaterialThickness(*d.MaterialThickness); err != nil {
				return err
			}
		}
		if d.KerfCompensation != nil {
			if err := p.SetKerfCompensation(*d.KerfCompensation); err != nil {
				return err
			}
		}
		if d.IncludeBase != nil {
			p.SetIncludeBase(*d.IncludeBase)
		}
		return nil
	})
}

// buildClient creates the compute client, flags overriding config.
func (e *env) buildClient(c *cli.Context) (*compute.Client, error) {
	clientCfg := compute.Config{
		BaseURL: e.cfg.Service.URL,
		Timeout: e.cfg.Service.Timeout.Duration,
		Headers: e.cfg.Service.Headers,
	}
	if url := c.String("service-url"); url != "" {
		clientCfg.BaseURL = url
	}
	if c.IsSet("timeout") {
		clientCfg.Timeout = c.Duration("timeout")
	}
	if clientCfg.BaseURL == "" {
		return nil, fmt.Errorf("no compute service URL: set --service-url, YANTRA_SERVICE_URL, or service.url in %s", defaultConfigName)
	}
	return compute.NewClient(clientCfg)
}

// orchestrator wires the generation orchestrator with the result cache as
// its sink. Cache setup failures are non-fatal: generation still works,
// results just are not persisted.
func (e *env) orchestrator() *runtime.Orchestrator {
	cfg := runtime.Config{
		Store:     e.store,
		Service:   e.client,
		Collector: e.collector,
		Logger:    e.logger,
	}
	if c, err := e.resultCache(); err == nil {
		cfg.Sink = c
	} else {
		e.logger.Warn("result cache unavailable", map[string]any{"error": err.Error()})
	}
	return runtime.New(cfg)
}

// resultCache opens the last-result cache in the configured directory.
func (e *env) resultCache() (*cache.Cache, error) {
	dir := e.cfg.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		dir = filepath.Join(base, "yantra")
	}
	return cache.New(dir)
}

// fetcher creates an artifact fetcher from the storage config.
func (e *env) fetcher() *artifacts.Fetcher {
	return artifacts.NewFetcher(artifacts.S3Options{
		Region:       e.cfg.Storage.Region,
		Endpoint:     e.cfg.Storage.Endpoint,
		UsePathStyle: e.cfg.Storage.S3PathStyle,
	})
}

// logSessionSummary emits the end-of-session metrics through the logger.
// Deferred by every command that runs generations.
func (e *env) logSessionSummary() {
	runtime.LogSessionReport(e.logger, e.collector.Snapshot())
}

// failureText maps a service failure to its user-facing message: the
// remote detail verbatim, or the generic transport fallback.
func failureText(err error) string {
	var remote *compute.RemoteError
	if errors.As(err, &remote) {
		return remote.DisplayMessage()
	}
	return compute.TransportFallbackMessage
}

// resolveLocation picks the site from --preset, --lat/--lon, or the
// config's default preset, in that precedence order.
func resolveLocation(c *cli.Context, cfg *config.Config) (types.Location, error) {
	lat, lon := c.String("lat"), c.String("lon")
	presetID := c.String("preset")

	switch {
	case presetID != "" && (lat != "" || lon != ""):
		return types.Location{}, fmt.Errorf("--preset and --lat/--lon are mutually exclusive")
	case presetID != "":
		return site.SelectPreset(presetID)
	case lat != "" || lon != "":
		if lat == "" || lon == "" {
			return types.Location{}, fmt.Errorf("custom sites require both --lat and --lon")
		}
		return site.AcceptCustom(lat, lon)
	case cfg.Defaults.Preset != "":
		return site.SelectPreset(cfg.Defaults.Preset)
	default:
		return types.Location{}, fmt.Errorf("no site selected: use --preset or --lat/--lon")
	}
}
