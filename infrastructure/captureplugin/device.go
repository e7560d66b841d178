// Package captureplugin runs a WASM capture plugin as the camera stand-in on
// hosts without a native camera application. The plugin exports a single
// `capture` function returning a packed pointer/length pair addressing the
// produced media bytes in guest memory.
package captureplugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

const captureExport = "capture"

// deviceConfig holds configuration for the Device.
type deviceConfig struct {
	logger *slog.Logger
}

func defaultDeviceConfig() deviceConfig {
	return deviceConfig{
		logger: slog.Default(),
	}
}

// Option configures a Device instance.
type Option func(*deviceConfig)

// WithLogger sets the device logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *deviceConfig) {
		c.logger = l
	}
}

// Device is an instantiated capture plugin.
type Device struct {
	runtime wazero.Runtime
	module  api.Module
	log     *slog.Logger
}

// Open compiles and instantiates the plugin at wasmPath.
func Open(ctx context.Context, wasmPath string, opts ...Option) (*Device, error) {
	cfg := defaultDeviceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	wasmBytes, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture plugin: %w", err)
	}

	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)

	module, err := r.InstantiateWithConfig(ctx, wasmBytes,
		wazero.NewModuleConfig().WithName("capture-plugin"))
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate capture plugin: %w", err)
	}
	if module.ExportedFunction(captureExport) == nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("capture plugin does not export %q", captureExport)
	}

	return &Device{
		runtime: r,
		module:  module,
		log:     cfg.logger.With("component", "captureplugin"),
	}, nil
}

// Capture invokes the plugin and returns the produced media bytes.
func (d *Device) Capture(ctx context.Context) ([]byte, error) {
	f := d.module.ExportedFunction(captureExport)
	results, err := f.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture call failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("capture returned no results")
	}

	packed := results[0]
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if length == 0 {
		return nil, fmt.Errorf("capture produced no data")
	}
	data, ok := d.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("capture result out of guest memory range (ptr=%d len=%d)", ptr, length)
	}
	// Copy out: the guest may reuse the region on the next call.
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

// CaptureTo writes the produced media into the pre-created destination file.
func (d *Device) CaptureTo(ctx context.Context, path string) error {
	data, err := d.Capture(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write capture destination: %w", err)
	}
	d.log.Debug("capture written", "path", path, "bytes", len(data))
	return nil
}

// Close releases the plugin runtime.
func (d *Device) Close(ctx context.Context) error {
	return d.runtime.Close(ctx)
}
