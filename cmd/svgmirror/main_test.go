package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/svgmirror/internal/config"
	"github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/protocol"
)

const chartHTML = `<!DOCTYPE html>
<html><body>
<svg-html>
  <lineargradient id="fade"><stop offset="0"></stop></lineargradient>
  <rect x="0" fill="red"></rect>
  <text>42</text>
</svg-html>
</body></html>`

// testEnv writes the chart and a default config into a temp dir.
func testEnv(t *testing.T) (dir, htmlPath, configPath string) {
	t.Helper()
	dir = t.TempDir()

	htmlPath = filepath.Join(dir, "chart.html")
	if err := os.WriteFile(htmlPath, []byte(chartHTML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.New()
	cfg.LogLevel = "error"
	configPath = filepath.Join(dir, config.ConfigFileName)
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatal(err)
	}
	return dir, htmlPath, configPath
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	_, htmlPath, configPath := testEnv(t)

	out, _, err := run(t, "render", "--config", configPath, "--view-box", "0 0 10 10", "--width", "100", htmlPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="100">` +
		`<linearGradient id="fade"><stop offset="0"/></linearGradient>` +
		`<rect x="0" fill="red"/>` +
		`<text>42</text>` +
		`</svg>` + "\n"
	if out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestRenderFromStdin(t *testing.T) {
	_, _, configPath := testEnv(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(`<my-drawing><circle r="1"></circle></my-drawing>`))
	cmd.SetArgs([]string{"render", "--config", configPath, "--host", "my-drawing", "--pretty"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	want := "<svg xmlns=\"http://www.w3.org/2000/svg\">\n  <circle r=\"1\"/>\n</svg>\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestRenderMissingHost(t *testing.T) {
	_, htmlPath, configPath := testEnv(t)

	_, _, err := run(t, "render", "--config", configPath, "--host", "nowhere", htmlPath)
	if !errors.HasCode(err, "L001") {
		t.Errorf("got %v, want L001", err)
	}
}

func TestRenderInvalidConfigOverride(t *testing.T) {
	_, htmlPath, configPath := testEnv(t)

	_, _, err := run(t, "render", "--config", configPath, "--log-level", "chatty", htmlPath)
	if !errors.HasCode(err, "C003") {
		t.Errorf("got %v, want C003", err)
	}
}

func TestRenderMetrics(t *testing.T) {
	_, htmlPath, configPath := testEnv(t)

	_, stderr, err := run(t, "render", "--config", configPath, "--metrics", htmlPath)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stderr, "svgmirror_replicated_elements_total 4") {
		t.Errorf("expected replicated count in metrics, got:\n%s", stderr)
	}
}

func TestReplayCommand(t *testing.T) {
	dir, htmlPath, configPath := testEnv(t)

	script := `[
		{"op": "set-attr", "path": "1", "name": "fill", "value": "blue"},
		{"op": "remove-attr", "path": "1", "name": "x"},
		{"op": "sync"},
		{"op": "insert", "path": "", "index": 1, "html": "<g></g>"},
		{"op": "move", "path": "2", "to": "1"},
		{"op": "text", "path": "2", "value": "43"},
		{"op": "append", "path": "", "html": "<circle r=\"5\"></circle>"},
		{"op": "remove", "path": "0"}
	]`
	scriptPath := filepath.Join(dir, "steps.json")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}
	patchesPath := filepath.Join(dir, "changes.bin")

	out, errOut, err := run(t, "replay", "--config", configPath, "--script", scriptPath, "--patches", patchesPath, "--verify", htmlPath)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !strings.Contains(errOut, "verified") {
		t.Errorf("expected a verification note, got stderr: %s", errOut)
	}

	want := `<svg xmlns="http://www.w3.org/2000/svg">` +
		`<g><rect fill="blue"/></g>` +
		`<text>43</text>` +
		`<circle r="5"/>` +
		`</svg>` + "\n"
	if out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}

	f, err := os.Open(patchesPath)
	if err != nil {
		t.Fatalf("patches file: %v", err)
	}
	defer f.Close()

	first, err := protocol.ReadFrame(f)
	if err != nil || first.Type != protocol.FrameSnapshot {
		t.Fatalf("first frame = %+v, %v", first, err)
	}
	snapshot, err := protocol.DecodeSnapshot(first.Payload)
	if err != nil || snapshot.Tag != "svg" || len(snapshot.Children) != 3 {
		t.Fatalf("snapshot = %+v, %v", snapshot, err)
	}

	var last *protocol.Frame
	frames := 0
	for {
		frame, err := protocol.ReadFrame(f)
		if err != nil {
			break
		}
		if frame.Type != protocol.FramePatches {
			t.Errorf("frame %d type = %s", frames, frame.Type)
		}
		if _, err := protocol.DecodePatches(frame.Payload); err != nil {
			t.Errorf("frame %d: %v", frames, err)
		}
		frames++
		last = frame
	}
	if frames == 0 || !last.Flags.Has(protocol.FlagFinal) {
		t.Errorf("got %d patch frames, last final=%v", frames, last != nil && last.Flags.Has(protocol.FlagFinal))
	}
}

func TestReplayVerifyInMemory(t *testing.T) {
	dir, htmlPath, configPath := testEnv(t)

	script := `[
		{"op": "append", "path": "", "html": "<g><circle></circle></g>"},
		{"op": "sync"},
		{"op": "move", "path": "1", "to": "3"},
		{"op": "text", "path": "0", "value": "label"},
		{"op": "remove", "path": "2"}
	]`
	scriptPath := filepath.Join(dir, "steps.json")
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := run(t, "replay", "--config", configPath, "--script", scriptPath, "--verify", htmlPath)
	if err != nil {
		t.Fatalf("replay --verify failed: %v", err)
	}
	if !strings.Contains(errOut, "verified 4 patch frames") {
		t.Errorf("stderr = %s", errOut)
	}
}

func TestPatchLogVerifyMismatch(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElementNS(dom.NamespaceSVG, "svg")

	var log patchLog
	log.reset(root)
	root.SetAttributeNS("", "width", "10")

	if _, err := log.verify("", root); !errors.HasCode(err, "S002") {
		t.Errorf("got %v, want S002", err)
	}

	log.record([]protocol.Patch{protocol.NewSetAttrPatch(protocol.ElementID(root), "width", "10")})
	if frames, err := log.verify("", root); err != nil || frames != 1 {
		t.Errorf("verify = %d, %v; want 1 frame", frames, err)
	}
}

func TestReplayInvalidStep(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"bad path", `[{"op": "set-attr", "path": "9", "name": "fill"}]`},
		{"missing name", `[{"op": "set-attr", "path": "0"}]`},
		{"unknown op", `[{"op": "explode", "path": "0"}]`},
		{"remove host", `[{"op": "remove", "path": ""}]`},
		{"move into self", `[{"op": "move", "path": "0", "to": "0"}]`},
		{"not an array", `{"op": "sync"}`},
		{"unknown field", `[{"op": "sync", "when": "now"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, htmlPath, configPath := testEnv(t)
			scriptPath := filepath.Join(dir, "steps.json")
			if err := os.WriteFile(scriptPath, []byte(tt.script), 0644); err != nil {
				t.Fatal(err)
			}

			_, _, err := run(t, "replay", "--config", configPath, "--script", scriptPath, htmlPath)
			if !errors.HasCode(err, "S001") {
				t.Errorf("got %v, want S001", err)
			}
		})
	}
}

func TestTagsCommand(t *testing.T) {
	out, _, err := run(t, "tags")
	if err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 36 {
		t.Fatalf("got %d lines, want header + 35", len(lines))
	}
	if !strings.Contains(out, "LINEARGRADIENT") || !strings.Contains(out, "linearGradient") {
		t.Errorf("missing linearGradient row:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("got %q, want %q", out, version)
	}
}
