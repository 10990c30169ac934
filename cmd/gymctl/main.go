// Command gymctl is the front desk tool for the gym database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"gymdesk/internal/adapters/perf"
	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/adapters/storage/uow"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/config"
	"gymdesk/internal/domain/apperr"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now)
	stop()
	os.Exit(code)
}

// command is one leaf of the command tree.
type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

// commands maps "group sub" (or a bare name) to its handler.
var commands = map[string]command{
	"init":              {"create the schema and seed the admin account", cmdInit},
	"login":             {"check a username and password", cmdLogin},
	"member add":        {"register a member, optionally with a first payment", cmdMemberAdd},
	"member list":       {"list members with expiry and next booking", cmdMemberList},
	"member show":       {"show one member with payments and slots", cmdMemberShow},
	"member update":     {"edit a member's profile fields", cmdMemberUpdate},
	"member delete":     {"delete a member and, per policy, their records", cmdMemberDelete},
	"member summary":    {"count active, expired and expiring members", cmdMemberSummary},
	"member import":     {"import members from a CSV file", cmdMemberImport},
	"pay":               {"record a payment and renew the membership", cmdPay},
	"attendance show":   {"show the attendance sheet for a day", cmdAttendanceShow},
	"attendance mark":   {"save the attendance sheet for a day", cmdAttendanceMark},
	"trainer add":       {"add a trainer", cmdTrainerAdd},
	"trainer list":      {"list trainers and their status", cmdTrainerList},
	"trainer book":      {"book a trainer for a member in a slot", cmdTrainerBook},
	"trainer release":   {"clear today's bookings of a trainer", cmdTrainerRelease},
	"trainer cancel":    {"cancel a booking, or a member's booking today", cmdTrainerCancel},
	"trainer history":   {"list every booking of a trainer", cmdTrainerHistory},
	"slot add":          {"add a time slot", cmdSlotAdd},
	"slot list":         {"list time slots", cmdSlotList},
	"slot assign":       {"assign a member to a slot", cmdSlotAssign},
	"slot unassign":     {"remove a member from a slot", cmdSlotUnassign},
	"report payments":   {"payments in a date range with due status", cmdReportPayments},
	"report revenue":    {"revenue per month", cmdReportRevenue},
	"report overdue":    {"payments past their due date", cmdReportOverdue},
	"report attendance": {"attendance marks in a date range", cmdReportAttendance},
	"config":            {"list the environment variables gymctl reads", nil},
}

// usageError marks bad invocations so they exit with exitUsage.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// run executes one gymctl invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	global := flag.NewFlagSet("gymctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	cfgPath := global.String("config", "", "YAML config file (GYM_* env vars override it)")
	dbPath := global.String("db", "", "database file, overrides storage.path")
	noColor := global.Bool("no-color", false, "disable colored output")
	showVersion := global.Bool("version", false, "print version and exit")
	global.Usage = func() { printUsage(stderr) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, "gymctl", version)
		return exitOK
	}
	if *noColor {
		color.NoColor = true
	}

	name, rest, cmd, ok := resolve(global.Args())
	if !ok {
		printUsage(stderr)
		return exitUsage
	}
	if name == "config" {
		config.Usage(stdout)
		return exitOK
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(stderr, errPrefix(), err)
		return exitUsage
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}
	logger := cfg.Log.NewLogger(stderr)
	slog.SetDefault(logger)

	a, err := openApp(ctx, cfg, name == "init", stdout, now)
	if err != nil {
		fmt.Fprintln(stderr, errPrefix(), err)
		return exitError
	}
	defer a.close()

	start := time.Now()
	err = cmd.run(ctx, a, rest)
	a.logPerf(start)
	if err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "%s %v\nrun 'gymctl %s -h' for usage\n", errPrefix(), err, name)
			return exitUsage
		}
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		slog.Debug("command_event", "event", "failed", "command", name, "kind", apperr.Kind(err), "error", err)
		fmt.Fprintln(stderr, errPrefix(), err)
		return exitError
	}
	return exitOK
}

// resolve finds the longest command name matching the head of args.
func resolve(args []string) (string, []string, command, bool) {
	if len(args) >= 2 {
		if c, ok := commands[args[0]+" "+args[1]]; ok {
			return args[0] + " " + args[1], args[2:], c, true
		}
	}
	if len(args) >= 1 {
		if c, ok := commands[args[0]]; ok {
			return args[0], args[1:], c, true
		}
	}
	return "", nil, command{}, false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: gymctl [-config file] [-db path] [-no-color] <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-20s %s\n", n, commands[n].summary)
	}
}

func errPrefix() string {
	return color.New(color.FgRed, color.Bold).Sprint("error:")
}

// app holds what every command needs for one invocation.
type app struct {
	cfg    *config.Config
	db     *storage.TimedDB
	tx     *uow.Transactor
	now    func() time.Time
	out    io.Writer
	seeded bool
}

// openApp opens the store, makes sure the schema exists and seeds the admin
// account on an empty accounts table. Attendance is only ever reset by an
// explicit init.
func openApp(ctx context.Context, cfg *config.Config, initializing bool, out io.Writer, now func() time.Time) (*app, error) {
	opts := storage.Options{MaxOpenConns: cfg.Storage.MaxOpenConns}
	db, err := storage.Open(ctx, cfg.Storage.Path, opts)
	if err != nil {
		return nil, err
	}
	tdb := storage.NewTimedDB(db, perf.NewCollector(perf.DefaultRingSize), cfg.Storage.SlowQueryMs)

	opts.ResetAttendanceOnInit = initializing && cfg.Storage.ResetAttendanceOnInit
	if err := storage.EnsureSchema(ctx, tdb, opts); err != nil {
		tdb.Close()
		return nil, err
	}
	tx := uow.New(tdb)
	seeded, err := orchestrators.ExecuteSeedAdmin(ctx, orchestrators.SeedAdminInput{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, orchestrators.SeedAdminDeps{Tx: tx})
	if err != nil {
		tdb.Close()
		return nil, err
	}
	return &app{cfg: cfg, db: tdb, tx: tx, now: now, out: out, seeded: seeded}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		slog.Error("storage_event", "event", "close_failed", "error", err)
	}
}

// logPerf writes the timing snapshot of this invocation at debug level.
func (a *app) logPerf(since time.Time) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	snap := a.db.Collector().Snapshot(since, 3)
	queries := make([]string, 0, len(snap.SlowestQueries))
	for _, q := range snap.SlowestQueries {
		queries = append(queries, fmt.Sprintf("%s:%d/%.2fms", q.Name, q.Count, q.MaxMs))
	}
	slog.Debug("perf",
		"operations", snap.Operations,
		"failed_operations", snap.FailedOperations,
		"p95_ms", snap.OperationP95Ms,
		"slowest_queries", strings.Join(queries, ","),
	)
}
