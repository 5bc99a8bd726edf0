package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"voicegate/internal/api"
	"voicegate/internal/config"
	"voicegate/internal/deps"
	"voicegate/internal/inference"
	"voicegate/internal/logging"
	"voicegate/internal/normalize"
	"voicegate/internal/notifications"
	"voicegate/internal/preflight"
	"voicegate/internal/queue"
	"voicegate/internal/services/ffmpeg"
)

// Daemon owns the upload pipeline's runtime: it wires the validator,
// normalizer, queue store, and correlator into the HTTP surface and
// enforces single-instance execution via a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *queue.Store
	notifier notifications.Service

	lockPath string
	lock     *flock.Flock

	server  *apiServer
	running atomic.Bool
	cancel  context.CancelFunc
}

// Option adjusts daemon construction, mainly for tests.
type Option func(*options)

type options struct {
	transcoder ffmpeg.Client
	notifier   notifications.Service
}

// WithTranscoder overrides the ffmpeg client.
func WithTranscoder(client ffmpeg.Client) Option {
	return func(o *options) {
		if client != nil {
			o.transcoder = client
		}
	}
}

// WithNotifier overrides the notification service.
func WithNotifier(svc notifications.Service) Option {
	return func(o *options) {
		if svc != nil {
			o.notifier = svc
		}
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	settings := options{
		transcoder: ffmpeg.NewCLI(
			ffmpeg.WithBinary(cfg.FFmpegBinary()),
			ffmpeg.WithSampleRate(cfg.FFmpeg.SampleRate),
		),
		notifier: notifications.NewService(cfg),
	}
	for _, opt := range opts {
		opt(&settings)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "voicegated.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		notifier: settings.notifier,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	normalizer := normalize.NewNormalizer(cfg, settings.transcoder, logger)
	correlator := inference.NewCorrelator(store, logger)
	queueSvc := api.NewQueueService(store)
	d.server = newAPIServer(cfg, d, normalizer, correlator, queueSvc, logger)
	return d, nil
}

// Start runs preflight checks, acquires the instance lock, and begins
// serving the HTTP surface. It returns once the listener is up.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := preflight.Run(d.cfg); err != nil {
		return fmt.Errorf("preflight: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another voicegate daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.server.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		d.cancel = nil
		return err
	}

	d.running.Store(true)
	d.logger.Info("voicegate daemon started",
		logging.String("address", d.server.addr()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop shuts the server down and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("voicegate daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound listen address, useful when the configured port is 0.
func (d *Daemon) Addr() string {
	return d.server.addr()
}

// Status reports daemon runtime information.
func (d *Daemon) Status(ctx context.Context) api.DaemonStatus {
	status := api.DaemonStatus{
		Running:   d.running.Load(),
		PID:       os.Getpid(),
		Bind:      d.cfg.Paths.APIBind,
		UploadDir: d.cfg.Paths.UploadDir,
	}
	if addr := d.server.addr(); addr != "" {
		status.Bind = addr
	}

	stats, err := d.store.Stats(ctx)
	if err != nil {
		d.logger.Warn("queue stats unavailable", logging.Error(err))
	} else {
		status.QueueStats = api.MergeQueueStats(stats)
	}

	for _, dep := range deps.Check(d.cfg) {
		status.Dependencies = append(status.Dependencies, api.DependencyStatus{
			Name:        dep.Name,
			Command:     dep.Command,
			Description: dep.Description,
			Available:   dep.Available,
			Detail:      dep.Detail,
		})
	}
	return status
}
