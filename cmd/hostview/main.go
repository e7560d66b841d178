// Command hostview embeds a web application in a browser renderer and
// bridges its file-chooser and camera-permission flows to host capabilities.
package main

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
	"strings"
	"syscall"
	"time"

	"github.com/hostview-dev/hostview-sdk/api"
	"github.com/hostview-dev/hostview-sdk/bridge"
	"github.com/hostview-dev/hostview-sdk/config"
	"github.com/hostview-dev/hostview-sdk/infrastructure/captureplugin"
	"github.com/hostview-dev/hostview-sdk/infrastructure/cdprender"
	"github.com/hostview-dev/hostview-sdk/infrastructure/grantstore"
	"github.com/hostview-dev/hostview-sdk/infrastructure/picker"
	"github.com/hostview-dev/hostview-sdk/infrastructure/prompter"
	"github.com/hostview-dev/hostview-sdk/infrastructure/sharedir"
	"github.com/hostview-dev/hostview-sdk/schema"
)

func main() {
	printSchema := flag.Bool("schema", false, "print the hosted-app manifest schema and exit")
	flag.Parse()

	if *printSchema {
		out, err := schema.ManifestSchema()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	if err := run(); err != nil {
		slog.Error("hostview exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	logger := newLogger()
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := grantstore.NewFileStore(grantstore.WithPath(cfg.GrantsPath))

	if cfg.ManifestPath != "" {
		if err := applyManifest(cfg, store); err != nil {
			return err
		}
	}

	share, err := sharedir.New(sharedir.WithRoot(cfg.ShareDir))
	if err != nil {
		return err
	}

	dispatcher := bridge.NewDispatcher()

	var pickerOpts []picker.Option
	if cfg.CapturePlugin != "" {
		device, err := captureplugin.Open(ctx, cfg.CapturePlugin, captureplugin.WithLogger(logger))
		if err != nil {
			return err
		}
		defer device.Close(context.Background())
		pickerOpts = append(pickerOpts, picker.WithCamera(device))
	}

	renderer, err := cdprender.New(cfg.AppURL, share,
		cdprender.WithLogger(logger),
		cdprender.WithHeadless(cfg.Headless),
		cdprender.WithUserDataDir(filepath.Join(cfg.StateDir, "profile")),
	)
	if err != nil {
		return err
	}

	ctrl := bridge.NewController(bridge.Deps{
		Renderer: renderer,
		Prompter: prompter.NewCliPrompter(os.Stdin, os.Stdout, dispatcher.Post),
		Picker:   picker.NewCliPicker(os.Stdin, os.Stdout, cfg.MediaDir, share, dispatcher.Post, pickerOpts...),
		Share:    share,
		Store:    store,
	},
		bridge.WithDispatcher(dispatcher),
		bridge.WithLogger(logger),
	)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewServer(ctrl, api.WithLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("status api listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status api failed", "err", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("hosting application", "url", cfg.AppURL, "headless", cfg.Headless)
	return ctrl.Run(ctx)
}

// applyManifest validates the manifest and merges its pre-granted rules into
// the persistent grant set.
func applyManifest(cfg *config.Config, store *grantstore.FileStore) error {
	raw, err := os.ReadFile(cfg.ManifestPath)
	if err != nil {
		return err
	}
	if err := schema.ValidateManifest(raw); err != nil {
		return err
	}
	manifest, err := config.ParseManifest(raw)
	if err != nil {
		return err
	}

	cfg.AppURL = manifest.URL

	pre := manifest.GrantSet()
	if pre.IsEmpty() {
		return nil
	}
	grants, err := store.Load()
	if err != nil {
		return err
	}
	grants.Merge(pre)
	return store.Save(grants)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("HOSTVIEW_LOG"), "debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
