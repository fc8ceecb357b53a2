package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/termfolio/internal/clock"
	"github.com/san-kum/termfolio/internal/config"
	"github.com/san-kum/termfolio/internal/logs"
	"github.com/san-kum/termfolio/internal/page"
	"github.com/san-kum/termfolio/internal/prefs"
	"github.com/san-kum/termfolio/internal/typewriter"
	"github.com/san-kum/termfolio/internal/viz"
	"github.com/spf13/cobra"
)

const appName = "termfolio"

var (
	configFile  string
	contentFile string
	logLevel    string
	logFile     string
	themeName   string
	preset      string
	duration    float64
	sampleMs    int
)

// env is what every command needs after flags, config files and the
// environment have been merged.
type env struct {
	cfg     *config.Config
	content *page.Content
	prefs   *prefs.Store
	logger  *slog.Logger
	closer  io.Closer
}

func (e *env) Close() error { return e.closer.Close() }

func main() {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "portfolio page for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPage,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "page content file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "typing speed preset: "+strings.Join(config.ListPresets(), ", "))
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme for this session")

	typeCmd := &cobra.Command{
		Use:   "type [phrases...]",
		Short: "play the typing animation on one line",
		RunE:  runType,
	}
	typeCmd.Flags().Float64Var(&duration, "time", 10.0, "seconds to run")

	timelineCmd := &cobra.Command{
		Use:   "timeline [phrases...]",
		Short: "plot typed length over time",
		RunE:  runTimeline,
	}
	timelineCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated seconds")
	timelineCmd.Flags().IntVar(&sampleMs, "sample", 50, "sample interval (ms)")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes",
		RunE:  listThemes,
	}

	themeCmd := &cobra.Command{
		Use:   "theme [name]",
		Short: "show or save the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  setTheme,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config and content files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(typeCmd, timelineCmd, themesCmd, themeCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup merges defaults, the config file, .env and the environment, then
// command line flags, in that order. console sends logs to stderr as well
// as the log file.
func setup(console bool) (*env, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if contentFile != "" {
		cfg.Content = contentFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Typing = *p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logs.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	opts := logs.Options{File: cfg.LogFile}
	if console {
		opts.Console = os.Stderr
	}
	logger, closer, err := logs.New(opts)
	if err != nil {
		return nil, err
	}

	content := page.Default()
	if cfg.Content != "" {
		content, err = page.Load(cfg.Content)
		if err != nil {
			closer.Close()
			return nil, fmt.Errorf("load content: %w", err)
		}
	}
	if err := content.Validate(); err != nil {
		closer.Close()
		return nil, err
	}

	return &env{
		cfg:     cfg,
		content: content,
		prefs:   prefs.Open(appName, logger),
		logger:  logger,
		closer:  closer,
	}, nil
}

func runPage(cmd *cobra.Command, args []string) error {
	// The page owns the terminal, so logs only go to the file.
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.Close()

	return viz.RunInteractive(viz.Options{
		Config:  e.cfg,
		Content: e.content,
		Prefs:   e.prefs,
		Logger:  e.logger,
	})
}

func phrasesFor(e *env, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return e.content.Phrases
}

func runType(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	sink := typewriter.SinkFunc(func(text string) {
		fmt.Fprintf(out, "\r\033[K> %s▌", text)
	})
	c, err := typewriter.New(phrasesFor(e, args), sink, clock.Real(),
		typewriter.WithTiming(e.cfg.Timing()),
		typewriter.WithLogger(e.logger),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, stop := context.WithTimeout(ctx, seconds(duration))
	defer stop()

	c.Start()
	<-ctx.Done()
	c.Stop()
	fmt.Fprintln(out)

	if errors.Is(ctx.Err(), context.Canceled) {
		e.logger.Debug("interrupted")
	}
	return nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	if sampleMs <= 0 {
		return fmt.Errorf("sample interval must be positive, got %d", sampleMs)
	}

	phrases := phrasesFor(e, args)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	sched := clock.NewManual(start)

	frames := 0
	holds := 0
	var last string
	sink := typewriter.SinkFunc(func(text string) {
		frames++
		if text == last {
			holds++
		}
		last = text
	})
	c, err := typewriter.New(phrases, sink, sched, typewriter.WithTiming(e.cfg.Timing()))
	if err != nil {
		return err
	}

	step := time.Duration(sampleMs) * time.Millisecond
	total := seconds(duration)
	var lengths []float64
	cycles := 0
	prev := c.State().PhraseIndex

	c.Start()
	for elapsed := time.Duration(0); elapsed <= total; elapsed += step {
		sched.Advance(0)
		st := c.State()
		if st.PhraseIndex != prev {
			cycles++
			prev = st.PhraseIndex
		}
		lengths = append(lengths, float64(st.CharIndex))
		sched.Advance(step)
	}
	c.Stop()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, asciigraph.Plot(lengths,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("typed characters over %.1fs", duration)),
	))
	fmt.Fprintln(out)

	t := e.cfg.Timing()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHRASES\tFRAMES\tHOLDS\tCYCLES\tTYPE\tDELETE\tHOLD FULL\tHOLD EMPTY")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
		len(phrases), frames, holds, cycles, t.Type, t.Delete, t.HoldFull, t.HoldEmpty)
	return w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	current := viz.ResolveTheme(e.cfg.Theme, e.prefs.Theme()).Name
	out := cmd.OutOrStdout()
	for _, t := range viz.Themes {
		marker := " "
		if t.Name == current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-10s %s\n", marker, t.Name, viz.GradientText("████████", t.Primary, t.Secondary))
	}
	return nil
}

func setTheme(cmd *cobra.Command, args []string) error {
	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, viz.ResolveTheme(e.cfg.Theme, e.prefs.Theme()).Name)
		return nil
	}
	name := args[0]
	if _, ok := viz.GetTheme(name); !ok {
		return fmt.Errorf("unknown theme %q (have %s)", name, strings.Join(viz.ThemeNames(), ", "))
	}
	if err := e.prefs.SetTheme(name); err != nil {
		return err
	}
	if !e.prefs.Persistent() {
		fmt.Fprintln(out, "preferences are not persistent, theme applies to this run only")
	}
	fmt.Fprintln(out, "theme:", name)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "termfolio.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	contentPath := strings.TrimSuffix(path, ".yaml") + ".content.yaml"

	for _, p := range []string{path, contentPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists", p)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Content = contentPath
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	if err := page.Save(contentPath, page.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", path, contentPath)
	return nil
}

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }
