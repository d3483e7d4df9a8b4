package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/vango-dev/svgmirror/internal/config"
	"github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/htmlsrc"
	"github.com/vango-dev/svgmirror/pkg/mirror"
	"github.com/vango-dev/svgmirror/pkg/render"
)

// sessionFlags are the flags shared by commands that mirror a document.
type sessionFlags struct {
	configPath string
	host       string
	viewBox    string
	width      float64
	height     float64
	pretty     bool
	logLevel   string
	metrics    bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file (default: nearest "+config.ConfigFileName+")")
	cmd.Flags().StringVar(&f.host, "host", "", "Host element tag (default from config)")
	cmd.Flags().StringVar(&f.viewBox, "view-box", "", "viewBox of the root <svg>")
	cmd.Flags().Float64Var(&f.width, "width", 0, "Width of the root <svg>")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Height of the root <svg>")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Indent the SVG output")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&f.metrics, "metrics", false, "Print engine metrics to stderr on exit")
}

// resolveConfig loads the config file and applies command-line overrides.
// Without --config a missing file falls back to the defaults.
func (f *sessionFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.LoadFromDir(".")
		if errors.HasCode(err, "C001") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if f.host != "" {
		cfg.Host = f.host
	}
	if f.viewBox != "" {
		cfg.ViewBox = f.viewBox
	}
	if f.width != 0 {
		cfg.Width = f.width
	}
	if f.height != 0 {
		cfg.Height = f.height
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Render.Pretty = f.pretty
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is one loaded document and the engine mirroring it.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	doc      *dom.Document
	host     *dom.Element
	engine   *mirror.Engine
}

// openSession parses the input, attaches an engine to its host element and
// forwards the root configuration.
func openSession(cfg *config.Config, in io.Reader, stderr io.Writer, opts ...mirror.Option) (*session, error) {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	doc := dom.NewDocument()
	host, err := htmlsrc.Parse(doc, in, cfg.Host)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics := mirror.NewMetrics(
		mirror.WithRegistry(registry),
		mirror.WithNamespace(cfg.Metrics.Namespace),
		mirror.WithSubsystem(cfg.Metrics.Subsystem),
	)

	options := append([]mirror.Option{
		mirror.WithLogger(logger),
		mirror.WithMetrics(metrics),
		mirror.WithCascade(cfg.Cascade),
		mirror.WithPositionalInsert(cfg.PositionalInsert),
	}, opts...)

	engine := mirror.New(doc, options...)
	engine.SetViewBox(cfg.ViewBox)
	engine.SetWidth(cfg.Width)
	engine.SetHeight(cfg.Height)

	if err := engine.Attach(host); err != nil {
		return nil, err
	}
	logger.Info("mirroring", "host", cfg.Host, "elements", engine.Associations()-1)

	return &session{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		doc:      doc,
		host:     host,
		engine:   engine,
	}, nil
}

// render writes the presentation tree to w.
func (s *session) render(w io.Writer) error {
	renderer := render.NewRenderer(render.RendererConfig{
		Pretty: s.cfg.Render.Pretty,
		Indent: s.cfg.Render.Indent,
	})
	if err := renderer.RenderToWriter(w, s.engine.Root()); err != nil {
		return err
	}
	if !s.cfg.Render.Pretty {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// writeMetrics dumps the session's metrics in the Prometheus text format.
func (s *session) writeMetrics(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}
