package meta

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"statsdemit/internal/log"
	"statsdemit/internal/metrics"
)

// Provider supplies the latest committed configuration. Implementations are safe for concurrent
// use; callers must treat the returned Config as read-only.
type Provider interface {
	metrics.ConfigProvider

	// Config returns the current configuration snapshot.
	Config() *Config
}

// StaticProvider always supplies the same configuration.
type StaticProvider struct {
	cfg *Config
}

// FileProvider supplies the configuration parsed from a file on disk, and can watch the file to
// pick up changes. A change that fails to parse or validate is rejected and the previous
// configuration stays in effect.
type FileProvider struct {
	path    string
	logger  log.Logger
	current atomic.Value
}

var (
	_ Provider = (*StaticProvider)(nil)
	_ Provider = (*FileProvider)(nil)
)

// NewStaticProvider creates a provider for a fixed configuration.
func NewStaticProvider(cfg *Config) *StaticProvider {
	return &StaticProvider{cfg: cfg}
}

// Config returns the fixed configuration.
func (p *StaticProvider) Config() *Config {
	return p.cfg
}

// TransportConfig returns the transport snapshot of the fixed configuration.
func (p *StaticProvider) TransportConfig() metrics.TransportConfig {
	return p.cfg.TransportConfig()
}

// NewFileProvider creates a provider by parsing the configuration file at path. It fails if the
// initial configuration is invalid.
func NewFileProvider(path string, logger log.Logger) (*FileProvider, error) {
	p := &FileProvider{path: path, logger: logger}

	if err := p.Reload(); err != nil {
		return nil, err
	}

	return p, nil
}

// Config returns the most recently loaded valid configuration.
func (p *FileProvider) Config() *Config {
	return p.current.Load().(*Config)
}

// TransportConfig returns the transport snapshot of the most recently loaded valid configuration.
func (p *FileProvider) TransportConfig() metrics.TransportConfig {
	return p.Config().TransportConfig()
}

// Reload re-reads the configuration file, committing it only if it is valid.
func (p *FileProvider) Reload() error {
	cfg, err := ParseConfig(p.path)
	if err != nil {
		return err
	}

	p.current.Store(cfg)
	p.logger.Debug("config: loaded configuration: path=%s statsd_enabled=%t", p.path, cfg.Statsd.Enabled)

	return nil
}

// Watch reloads the configuration whenever the file is written or recreated, until the context is
// cancelled. The parent directory is watched so that editors replacing the file atomically are
// handled. Reload and watcher errors are passed to onError; they never stop the watch.
func (p *FileProvider) Watch(ctx context.Context, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "config: error creating file watcher")
	}
	defer watcher.Close()

	target := filepath.Clean(p.path)

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "config: error watching config directory: path=%s", p.path)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if err := p.Reload(); err != nil {
				onError(err)
				continue
			}

			p.logger.Info("config: reloaded configuration: path=%s", p.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			onError(errors.Wrap(err, "config: file watcher error"))
		}
	}
}
