package main

import (
	"bytes"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/mirror"
	"github.com/vango-dev/svgmirror/pkg/protocol"
)

func replayCmd() *cobra.Command {
	var (
		flags       sessionFlags
		scriptPath  string
		patchesPath string
		verify      bool
	)

	cmd := &cobra.Command{
		Use:   "replay --script steps.json [file]",
		Short: "Apply a mutation script and print the mirrored SVG",
		Long: `Load an HTML document, mirror its host element, then apply the steps
of a JSON script to the HTML tree. Changes reach the SVG at every
"sync" step and once more at the end.

Script steps:
  {"op": "set-attr",    "path": "0", "name": "fill", "value": "blue"}
  {"op": "remove-attr", "path": "0", "name": "x"}
  {"op": "append",      "path": "",  "html": "<circle r=\"5\"></circle>"}
  {"op": "insert",      "path": "",  "index": 0, "html": "<g></g>"}
  {"op": "remove",      "path": "1"}
  {"op": "move",        "path": "1", "to": "0"}
  {"op": "text",        "path": "0", "value": "42"}
  {"op": "sync"}

Paths are slash-separated child indexes from the host element.

With --verify the patch log is read back, applied to its snapshot and
compared with the final SVG tree.

Examples:
  svgmirror replay --script steps.json chart.html
  svgmirror replay --script steps.json --patches changes.bin chart.html
  svgmirror replay --script steps.json --patches changes.bin --verify chart.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolveConfig(cmd)
			if err != nil {
				return err
			}

			scriptFile, err := os.Open(scriptPath)
			if err != nil {
				return err
			}
			defer scriptFile.Close()
			steps, err := parseScript(scriptFile)
			if err != nil {
				return err
			}

			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()

			var log patchLog
			s, err := openSession(cfg, in, cmd.ErrOrStderr(), mirror.WithPatchHandler(log.record))
			if err != nil {
				return err
			}
			defer s.engine.Close()

			// The attach batch is covered by the snapshot.
			log.reset(s.engine.Root())

			for i, st := range steps {
				if err := applyStep(s.host, i, st, s.engine.Sync); err != nil {
					return err
				}
			}
			if err := s.engine.Sync(); err != nil {
				return err
			}
			s.logger.Info("replayed", "steps", len(steps), "batches", len(log.batches))

			if patchesPath != "" {
				if err := log.writeFile(patchesPath); err != nil {
					return err
				}
				info(cmd.ErrOrStderr(), "wrote %d patch frames to %s", len(log.batches), patchesPath)
			}

			if verify {
				frames, err := log.verify(patchesPath, s.engine.Root())
				if err != nil {
					return err
				}
				info(cmd.ErrOrStderr(), "verified %d patch frames against the SVG tree", frames)
			}

			if err := s.render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if flags.metrics {
				return s.writeMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON script of mutation steps")
	cmd.Flags().StringVar(&patchesPath, "patches", "", "Write a snapshot and every patch batch to this file")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that the patch log rebuilds the final SVG tree")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// patchLog keeps the snapshot and patch batches of a replay.
type patchLog struct {
	snapshot *protocol.NodeWire
	batches  [][]protocol.Patch
}

func (l *patchLog) record(patches []protocol.Patch) {
	l.batches = append(l.batches, patches)
}

// reset starts the log over from a snapshot of root.
func (l *patchLog) reset(root *dom.Element) {
	l.snapshot = protocol.ElementToWire(root)
	l.batches = nil
}

// writeFile writes the log to path.
func (l *patchLog) writeFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := l.writeTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeTo writes a snapshot frame followed by one patches frame per batch.
// The last frame carries FlagFinal.
func (l *patchLog) writeTo(w io.Writer) error {
	frames := []*protocol.Frame{protocol.NewFrame(protocol.FrameSnapshot, protocol.EncodeSnapshot(l.snapshot))}
	for i, batch := range l.batches {
		frames = append(frames, protocol.NewFrame(protocol.FramePatches, protocol.EncodePatches(&protocol.PatchesFrame{
			Seq:     uint64(i + 1),
			Patches: batch,
		})))
	}
	frames[len(frames)-1].Flags = protocol.FlagFinal

	for _, frame := range frames {
		if err := protocol.WriteFrame(w, frame); err != nil {
			return err
		}
	}
	return nil
}

// verify replays the log written to path, or an in-memory copy when path
// is empty, and compares the result with root. It returns the number of
// patches frames replayed.
func (l *patchLog) verify(path string, root *dom.Element) (int, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		r = f
	} else {
		var buf bytes.Buffer
		if err := l.writeTo(&buf); err != nil {
			return 0, err
		}
		r = &buf
	}

	replica, frames, err := protocol.ReplayStream(r)
	if err != nil {
		return 0, errors.New("S002").Wrap(err)
	}
	if !reflect.DeepEqual(replica.Root(), protocol.ElementToWire(root)) {
		return 0, errors.New("S002").
			WithDetailf("Replaying %d patch frames does not rebuild the SVG tree.", frames)
	}
	return frames, nil
}
