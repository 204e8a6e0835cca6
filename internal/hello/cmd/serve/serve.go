// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package serve

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/innovationmech/hello/internal/hello/cmd/version"
	"github.com/innovationmech/hello/internal/hello/config"
	"github.com/innovationmech/hello/internal/hello/server"
	cfg "github.com/innovationmech/hello/pkg/config"
	"github.com/innovationmech/hello/pkg/logger"
)

// reloadDebounce collapses editor save bursts into a single reload.
const reloadDebounce = 500 * time.Millisecond

// Options holds the serve flags.
type Options struct {
	ConfigDir   string
	Environment string
	Host        string
	Port        int
}

// NewServeCmd creates a new serve command.
func NewServeCmd() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the hello HTTP server",
		Long: `Start the hello HTTP server.

Configuration is read from hello.yaml, hello.<env>.yaml and hello.override.yaml in
the config directory, then from HELLO_* environment variables. Changes to the
files are picked up while running; logging.level is applied immediately.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigDir, "config-dir", ".", "Directory containing the configuration files")
	cmd.Flags().StringVar(&opts.Environment, "env", os.Getenv("HELLO_ENV"), "Environment name selecting hello.<env>.yaml")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Override server.host")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "Override server.port")

	return cmd
}

// loadConfig resolves the configuration layers and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *Options) (*cfg.Manager, *config.ServeConfig, error) {
	managerOpts := cfg.DefaultOptions()
	managerOpts.WorkDir = opts.ConfigDir
	managerOpts.EnvironmentName = opts.Environment
	manager := cfg.NewManager(managerOpts)

	serveCfg, err := config.Load(manager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("host") {
		serveCfg.Server.Host = opts.Host
	}
	if cmd.Flags().Changed("port") {
		serveCfg.Server.Port = opts.Port
	}
	if err := serveCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return manager, serveCfg, nil
}

// runServer runs the hello server until ctx is cancelled or the listener fails.
func runServer(ctx context.Context, cmd *cobra.Command, opts *Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	manager, serveCfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if err := logger.SetLevel(serveCfg.Logging.Level); err != nil {
		return err
	}
	logger.Logger.Info("Starting hello server...", zap.String("version", version.Version))

	if serveCfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         serveCfg.Sentry.DSN,
			Environment: serveCfg.Sentry.Environment,
			Release:     "hello-serve@" + version.Version,
			SampleRate:  serveCfg.Sentry.SampleRate,
			Debug:       serveCfg.Sentry.Debug,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	srv, err := server.NewServer(serveCfg)
	if err != nil {
		logger.Logger.Error("Failed to create server", zap.Error(err))
		return err
	}

	reloader := cfg.NewHotReloader(manager, reloadDebounce)
	if err := reloader.Start(); err == nil {
		var monitor *cfg.ReloadMonitor
		if collector := srv.Collector(); collector != nil {
			monitor = cfg.NewReloadMonitor(manager, collector)
		}
		go watchConfig(reloader.Events(), monitor)
		defer func() {
			_ = reloader.Stop()
		}()
	} else {
		logger.Logger.Debug("hot reloader not started", zap.Error(err))
	}

	if err := srv.Start(ctx); err != nil {
		logger.Logger.Error("Failed to start server", zap.Error(err))
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Logger.Info("Shutting down server...")
	case err, ok := <-srv.Errors():
		if ok {
			logger.Logger.Error("Server error", zap.Error(err))
			serveErr = err
		}
	}

	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return serveErr
}

// watchConfig applies reloaded settings until events is closed.
func watchConfig(events <-chan cfg.Change, monitor *cfg.ReloadMonitor) {
	for change := range events {
		if monitor != nil {
			monitor.HandleChange(change)
		}
		if change.Err != nil {
			logger.Logger.Warn("config reload error", zap.Error(change.Err))
			continue
		}
		applyLogLevel(change.Settings)
	}
}

func applyLogLevel(settings map[string]interface{}) {
	logging, ok := settings["logging"].(map[string]interface{})
	if !ok {
		return
	}
	level, ok := logging["level"].(string)
	if !ok || level == "" || level == logger.GetLevel() {
		return
	}
	if err := logger.SetLevel(level); err != nil {
		logger.Logger.Warn("apply log level failed", zap.Error(err))
		return
	}
	logger.Logger.Info("log level updated via hot-reload", zap.String("level", logger.GetLevel()))
}
