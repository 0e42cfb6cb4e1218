// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect runs a pretrained object-detection model on a single
// image and saves an annotated copy.
//
// Inference happens inside a container image that ships the model
// runtime. The image bytes are streamed to the container on stdin and the
// annotated image is read back from stdout, so no volume mounts are
// needed.
package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// Errors returned by Detector.Run.
var (
	ErrNoRuntime    = errors.New("no container runtime available")
	ErrImageMissing = errors.New("detection image not found")
	ErrEmptyOutput  = errors.New("detection produced no image")
)

// script decodes the image on stdin, runs the model named by argv[1] and
// writes the annotated image, encoded for the extension in argv[2], to
// stdout. Detection counts go to stderr.
const script = `import sys
import numpy as np, cv2
from ultralytics import YOLO
img = cv2.imdecode(np.frombuffer(sys.stdin.buffer.read(), np.uint8), cv2.IMREAD_COLOR)
if img is None:
    sys.exit("cannot decode input image")
res = YOLO(sys.argv[1])(img, verbose=False)[0]
print(f"{len(res.boxes)} detections", file=sys.stderr)
ok, buf = cv2.imencode(sys.argv[2], res.plot())
if not ok:
    sys.exit("cannot encode output image")
sys.stdout.buffer.write(buf.tobytes())
`

// Detector runs the detection container.
type Detector struct {
	Runtime Runtime
	Config  types.DetectConfig
	Logger  *slog.Logger
}

// Result describes one completed detection run.
type Result struct {
	Output string
	Bytes  int
	// Log is the container's stderr, e.g. "3 detections".
	Log string
}

// DefaultOutput returns the annotated-image path for input:
// "<dir>/<name>_annotated<ext>".
func DefaultOutput(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_annotated" + ext
}

// Run detects objects in the image at input and writes the annotated copy
// to output.
func (d *Detector) Run(ctx context.Context, input, output string) (Result, error) {
	img, err := os.ReadFile(input)
	if err != nil {
		return Result{}, fmt.Errorf("reading image: %w", err)
	}

	if err := d.Runtime.ImageExists(ctx, d.Config.Image); err != nil {
		return Result{}, err
	}

	ext := strings.ToLower(filepath.Ext(output))
	if ext == "" {
		ext = ".jpg"
	}

	d.logger().Info("running detection",
		"runtime", d.Runtime.Name(), "image", d.Config.Image, "model", d.Config.Model, "input", input)

	var stdout, stderr bytes.Buffer
	args := []string{"python3", "-c", script, d.Config.Model, ext}
	if err := d.Runtime.Run(ctx, d.Config.Image, args, bytes.NewReader(img), &stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Result{}, fmt.Errorf("%w: %s", err, lastLine(msg))
		}
		return Result{}, err
	}
	if stdout.Len() == 0 {
		return Result{}, ErrEmptyOutput
	}

	if err := os.WriteFile(output, stdout.Bytes(), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing annotated image: %w", err)
	}
	return Result{
		Output: output,
		Bytes:  stdout.Len(),
		Log:    strings.TrimSpace(stderr.String()),
	}, nil
}

func (d *Detector) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
