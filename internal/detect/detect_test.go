// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/litreview/pkg/types"
)

func testDetector(t *testing.T, cmds map[string]bool, pipe func(string, []string, io.Reader, io.Writer, io.Writer) error) (*Detector, string) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "fish.jpg")
	if err := os.WriteFile(input, []byte("raw image"), 0o644); err != nil {
		t.Fatal(err)
	}
	exec := &mockExecutor{runnableCmds: cmds, runPipedFunc: pipe}
	return &Detector{
		Runtime: newDockerRuntime(exec),
		Config:  types.DetectConfig{Image: "yolo:cpu", Model: "yolov8n.pt"},
	}, input
}

func TestDetectorRun(t *testing.T) {
	var gotArgs []string
	d, input := testDetector(t,
		map[string]bool{"docker image inspect yolo:cpu": true},
		func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
			gotArgs = args
			data, _ := io.ReadAll(stdin)
			fmt.Fprint(stdout, "boxes on "+string(data))
			fmt.Fprint(stderr, "2 detections\n")
			return nil
		})

	output := DefaultOutput(input)
	res, err := d.Run(context.Background(), input, output)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "boxes on raw image" {
		t.Errorf("output = %q", data)
	}
	if res.Log != "2 detections" || res.Bytes != len(data) || res.Output != output {
		t.Errorf("result = %+v", res)
	}

	want := []string{"run", "--rm", "-i", "yolo:cpu", "python3", "-c"}
	if len(gotArgs) != len(want)+3 {
		t.Fatalf("args = %v", gotArgs)
	}
	for i, a := range want {
		if gotArgs[i] != a {
			t.Errorf("args[%d] = %q, want %q", i, gotArgs[i], a)
		}
	}
	if gotArgs[7] != "yolov8n.pt" || gotArgs[8] != ".jpg" {
		t.Errorf("model, ext = %q, %q", gotArgs[7], gotArgs[8])
	}
}

func TestDetectorRunImageMissing(t *testing.T) {
	d, input := testDetector(t, nil, nil)
	_, err := d.Run(context.Background(), input, filepath.Join(t.TempDir(), "out.jpg"))
	if !errors.Is(err, ErrImageMissing) {
		t.Errorf("err = %v, want ErrImageMissing", err)
	}
}

func TestDetectorRunMissingInput(t *testing.T) {
	d, _ := testDetector(t, nil, nil)
	if _, err := d.Run(context.Background(), "/nonexistent/fish.jpg", "out.jpg"); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestDetectorRunFailureIncludesStderr(t *testing.T) {
	d, input := testDetector(t,
		map[string]bool{"docker image inspect yolo:cpu": true},
		func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
			fmt.Fprint(stderr, "Traceback...\ncannot decode input image\n")
			return errors.New("exit status 1")
		})

	_, err := d.Run(context.Background(), input, filepath.Join(t.TempDir(), "out.jpg"))
	if err == nil || !strings.HasSuffix(err.Error(), "cannot decode input image") {
		t.Errorf("err = %v", err)
	}
}

func TestDetectorRunEmptyOutput(t *testing.T) {
	d, input := testDetector(t,
		map[string]bool{"docker image inspect yolo:cpu": true},
		func(string, []string, io.Reader, io.Writer, io.Writer) error { return nil })

	if _, err := d.Run(context.Background(), input, filepath.Join(t.TempDir(), "out.png")); !errors.Is(err, ErrEmptyOutput) {
		t.Errorf("err = %v, want ErrEmptyOutput", err)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"figures/underwater_fish.jpg", "figures/underwater_fish_annotated.jpg"},
		{"img.PNG", "img_annotated.PNG"},
		{"noext", "noext_annotated.jpg"},
	}
	for _, tt := range tests {
		if got := DefaultOutput(tt.in); got != tt.want {
			t.Errorf("DefaultOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
