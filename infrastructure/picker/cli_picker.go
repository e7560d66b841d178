// Package picker implements the composite chooser for interactive terminal
// hosts: one dialog offering camera capture and a content picker over a
// media directory as equally weighted alternatives.
package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hostview-dev/hostview-sdk/domain/entities"
	"github.com/hostview-dev/hostview-sdk/domain/ports"
)

// Camera abstracts the capture device writing into a pre-created
// destination file. Implemented by captureplugin.Device.
type Camera interface {
	CaptureTo(ctx context.Context, path string) error
}

// PostFunc delivers a callback onto the bridge dispatcher.
type PostFunc func(func())

// cliPickerConfig holds configuration for the CliPicker.
type cliPickerConfig struct {
	camera Camera
}

// Option configures a CliPicker instance.
type Option func(*cliPickerConfig)

// WithCamera sets the capture device. Without one the camera alternative is
// shown only when the dialog spec carries a capture destination and fails
// over to cancel.
func WithCamera(cam Camera) Option {
	return func(c *cliPickerConfig) {
		c.camera = cam
	}
}

// CliPicker implements ports.Picker over terminal I/O.
type CliPicker struct {
	in       io.Reader
	out      io.Writer
	mediaDir string
	share    ports.ShareProvider
	post     PostFunc
	config   cliPickerConfig
}

var _ ports.Picker = (*CliPicker)(nil)

// NewCliPicker creates a CliPicker reading choices from in. mediaDir is the
// directory the content-picker alternative offers files from.
func NewCliPicker(in io.Reader, out io.Writer, mediaDir string, share ports.ShareProvider, post PostFunc, opts ...Option) *CliPicker {
	cfg := cliPickerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CliPicker{in: in, out: out, mediaDir: mediaDir, share: share, post: post, config: cfg}
}

// Launch implements ports.Picker.
func (p *CliPicker) Launch(spec ports.ChooserSpec, done func(entities.PickerResult)) {
	go func() {
		res := p.run(spec)
		p.post(func() {
			done(res)
		})
	}()
}

func (p *CliPicker) run(spec ports.ChooserSpec) entities.PickerResult {
	scanner := bufio.NewScanner(p.in)
	cameraAvailable := spec.Capture != nil && p.config.camera != nil

	_, _ = fmt.Fprintf(p.out, "File requested by %s:\n", spec.Request.Origin)
	if cameraAvailable {
		_, _ = fmt.Fprintln(p.out, "  [c] Take photo")
	}
	_, _ = fmt.Fprintln(p.out, "  [g] Choose from files")
	_, _ = fmt.Fprintln(p.out, "  [x] Cancel")
	_, _ = fmt.Fprintf(p.out, "> ")

	if !scanner.Scan() {
		return entities.PickerResult{Code: entities.PickerCancelled}
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "c":
		if !cameraAvailable {
			return entities.PickerResult{Code: entities.PickerCancelled}
		}
		return p.capture(spec)
	case "g":
		return p.pickFile(scanner, spec.AcceptTypes)
	default:
		return entities.PickerResult{Code: entities.PickerCancelled}
	}
}

// capture invokes the camera against the pre-created destination. A result
// with no data locator tells the bridge the destination holds the content.
func (p *CliPicker) capture(spec ports.ChooserSpec) entities.PickerResult {
	if err := p.config.camera.CaptureTo(context.Background(), spec.Capture.Path); err != nil {
		_, _ = fmt.Fprintf(p.out, "capture failed: %v\n", err)
		return entities.PickerResult{Code: entities.PickerCancelled}
	}
	return entities.PickerResult{Code: entities.PickerOK}
}

func (p *CliPicker) pickFile(scanner *bufio.Scanner, acceptTypes []string) entities.PickerResult {
	files, err := p.listMedia(acceptTypes)
	if err != nil || len(files) == 0 {
		_, _ = fmt.Fprintln(p.out, "no files available")
		return entities.PickerResult{Code: entities.PickerCancelled}
	}

	for i, f := range files {
		_, _ = fmt.Fprintf(p.out, "  [%d] %s\n", i+1, filepath.Base(f))
	}
	_, _ = fmt.Fprintf(p.out, "> ")
	if !scanner.Scan() {
		return entities.PickerResult{Code: entities.PickerCancelled}
	}
	idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || idx < 1 || idx > len(files) {
		return entities.PickerResult{Code: entities.PickerCancelled}
	}

	// Hand out the picker's own locator, like a content provider would.
	loc, err := p.share.Import(files[idx-1])
	if err != nil {
		_, _ = fmt.Fprintf(p.out, "import failed: %v\n", err)
		return entities.PickerResult{Code: entities.PickerCancelled}
	}
	return entities.PickerResult{Code: entities.PickerOK, Data: loc}
}

func (p *CliPicker) listMedia(acceptTypes []string) ([]string, error) {
	entries, err := os.ReadDir(p.mediaDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(p.mediaDir, e.Name())
		if matchesAccept(path, acceptTypes) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// imageExts are the extensions offered for "image/*" restrictions.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

func matchesAccept(path string, acceptTypes []string) bool {
	if len(acceptTypes) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, t := range acceptTypes {
		switch {
		case t == "*/*":
			return true
		case t == "image/*" && imageExts[ext]:
			return true
		case strings.HasPrefix(t, "."):
			if strings.EqualFold(t, ext) {
				return true
			}
		}
	}
	return false
}
