package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jask/tomato/internal/config"
	"github.com/jask/tomato/internal/database"
	"github.com/jask/tomato/internal/database/repository"
	"github.com/jask/tomato/internal/logging"
	"github.com/jask/tomato/internal/service"
	"github.com/jask/tomato/internal/timer"
	"github.com/jask/tomato/internal/tui"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1e66f5"))
	breakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#40a02b"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	name := "run"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(out)
		return nil
	}
	cmd, ok := lookup(name)
	if !ok {
		if s := suggest(name); s != "" {
			return errors.Errorf("unknown command %q, did you mean %q?", name, s)
		}
		return errors.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "config")
	}
	log, closer, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return errors.Wrap(err, "logging")
	}
	defer closer.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir db dir")
	}
	db, err := database.OpenMigrated(cfg.Database.Path)
	if err != nil {
		return errors.Wrap(err, "open db")
	}
	defer db.Close()

	env := &env{
		cfg:     cfg,
		log:     log,
		db:      db,
		journal: &service.Journal{Intervals: repository.NewIntervalRepo(db), Log: log},
		out:     out,
	}
	return cmd.run(ctx, env, args)
}

type env struct {
	cfg     config.Config
	log     zerolog.Logger
	db      *sql.DB
	journal *service.Journal
	out     io.Writer
}

func runTimer(ctx context.Context, e *env, _ []string) error {
	if err := tui.CheckTerminal(os.Stdout); err != nil {
		return err
	}
	app, err := tui.New(ctx, tui.Options{
		Lengths: timer.Lengths{Focus: e.cfg.Timer.Focus, Break: e.cfg.Timer.Break},
		Colors: tui.Colors{
			Focus:  e.cfg.UI.Colors.Focus,
			Break:  e.cfg.UI.Colors.Break,
			Paused: e.cfg.UI.Colors.Paused,
		},
		TrackFocus: e.cfg.UI.TrackFocus,
		Journal:    e.journal,
		Log:        e.log,
	})
	if err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if e.cfg.UI.TrackFocus {
		opts = append(opts, tea.WithReportFocus())
	}
	e.log.Info().Dur("focus", e.cfg.Timer.Focus).Dur("break", e.cfg.Timer.Break).Msg("timer started")
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return errors.Wrap(err, "tui")
	}
	return nil
}

func runHistory(ctx context.Context, e *env, args []string) error {
	n := 10
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			return errors.Errorf("history: invalid count %q", args[0])
		}
		n = v
	}
	ivs, err := e.journal.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(ivs) == 0 {
		fmt.Fprintln(e.out, dimStyle.Render("no intervals yet"))
		return nil
	}
	fmt.Fprintln(e.out, titleStyle.Render("Recent intervals"))
	for _, iv := range ivs {
		fmt.Fprintln(e.out, formatInterval(iv))
	}
	return nil
}

func formatInterval(iv repository.Interval) string {
	style := focusStyle
	if iv.Kind == timer.KindBreak.String() {
		style = breakStyle
	}
	line := fmt.Sprintf("%s  %s  %s",
		iv.CompletedAt.Local().Format("2006-01-02 15:04"),
		style.Render(fmt.Sprintf("%-5s", iv.Kind)),
		timer.FormatRemaining(int(iv.Length/time.Second)))
	if iv.CaughtUp {
		line += dimStyle.Render("  (while away)")
	}
	return line
}

func runStats(ctx context.Context, e *env, _ []string) error {
	from, to := service.Day(time.Now())
	s, err := e.journal.Summarize(ctx, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, titleStyle.Render("Today"))
	fmt.Fprintf(e.out, "%s %d (%s)\n", focusStyle.Render("focus"), s.Focus, s.FocusTotal)
	fmt.Fprintf(e.out, "%s %d\n", breakStyle.Render("break"), s.Breaks)
	if s.CaughtUp > 0 {
		fmt.Fprintln(e.out, dimStyle.Render(fmt.Sprintf("%d finished while away", s.CaughtUp)))
	}
	return nil
}

func runConfig(_ context.Context, e *env, args []string) error {
	sub := "path"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	path := config.Path()
	switch sub {
	case "path":
		fmt.Fprintln(e.out, path)
		return nil
	case "init":
		force := len(args) > 0 && args[0] == "--force"
		if _, err := os.Stat(path); err == nil && !force {
			return errors.Errorf("config: %s exists, use --force to overwrite", path)
		}
		if err := config.Save(e.cfg); err != nil {
			return err
		}
		e.log.Info().Str("path", path).Msg("config written")
		fmt.Fprintf(e.out, "wrote %s\n", path)
		return nil
	}
	return errors.Errorf("config: unknown subcommand %q", sub)
}

func runReset(ctx context.Context, e *env, _ []string) error {
	m := &service.MaintenanceService{DB: e.db}
	if err := m.Reset(ctx); err != nil {
		return err
	}
	e.log.Info().Msg("journal reset")
	fmt.Fprintln(e.out, "journal cleared")
	return nil
}
