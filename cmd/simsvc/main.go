package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ringsim/internal/combat"
	"ringsim/internal/config"
	"ringsim/internal/util"
)

type options struct {
	cfgDir   string
	out      string
	red      string
	blue     string
	seed     int64
	n        int
	workers  int
	saveLog  bool
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("simsvc failed", "error", err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (options, error) {
	var env config.Env
	if err := config.ParseEnv(&env); err != nil {
		return options{}, err
	}

	var o options
	fs := flag.NewFlagSet("simsvc", flag.ContinueOnError)
	fs.StringVar(&o.cfgDir, "config", env.ConfigDir, "config dir")
	fs.StringVar(&o.out, "out", "out.json", "output file (single) or summary file (batch)")
	fs.StringVar(&o.red, "red", "", "red corner fighter id (default: first in roster)")
	fs.StringVar(&o.blue, "blue", "", "blue corner fighter id (default: second in roster)")
	fs.Int64Var(&o.seed, "seed", env.Seed, "seed, 0 picks a random one")
	fs.IntVar(&o.n, "n", env.Runs, "number of fights")
	fs.IntVar(&o.workers, "workers", env.Workers, "concurrent fights in batch mode")
	fs.BoolVar(&o.saveLog, "log", true, "save full event log when n==1")
	fs.StringVar(&o.logLevel, "log-level", env.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	return o, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func run(ctx context.Context, args []string) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}
	setupLogging(o.logLevel)

	tuning, roster, err := config.LoadAll(o.cfgDir)
	if err != nil {
		return err
	}
	red, blue, err := pickCorners(roster, o.red, o.blue)
	if err != nil {
		return err
	}
	if o.seed == 0 {
		if o.seed, err = util.NewSeed(); err != nil {
			return err
		}
	}
	slog.Info("fight card", "red", red.ID, "blue", blue.ID, "rounds", tuning.Fight.Rounds, "seed", o.seed, "runs", o.n)

	if o.n <= 1 {
		env := &combat.Env{Rng: util.New(o.seed)}
		res, err := combat.RunSingle(env, tuning, red.Build(), blue.Build(), o.saveLog)
		if err != nil {
			return fmt.Errorf("run fight: %w", err)
		}
		if err := os.WriteFile(o.out, combat.MarshalPretty(res), 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		winner := res.Winner
		if winner == "" {
			winner = "draw"
		}
		fmt.Printf("Single fight finished. Winner=%s, Method=%s, Round=%d -> %s\n", winner, res.Method, res.Round, o.out)
		return nil
	}

	summary, err := runBatch(ctx, tuning, red, blue, o.seed, o.n, o.workers)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	fmt.Printf("Batch %d done -> %s\n", o.n, filepath.Base(o.out))
	return nil
}

// pickCorners resolves the two fighter ids, falling back to the first two
// roster entries.
func pickCorners(roster *config.FightersConfig, red, blue string) (config.FighterDef, config.FighterDef, error) {
	var none config.FighterDef
	if red == "" || blue == "" {
		if roster == nil || len(roster.Fighters) < 2 {
			return none, none, errors.New("roster needs at least two fighters")
		}
		if red == "" {
			red = roster.Fighters[0].ID
		}
		if blue == "" {
			blue = roster.Fighters[1].ID
			if blue == red {
				blue = roster.Fighters[0].ID
			}
		}
	}
	a, err := roster.Find(red)
	if err != nil {
		return none, none, err
	}
	b, err := roster.Find(blue)
	if err != nil {
		return none, none, err
	}
	if a.ID == b.ID {
		return none, none, fmt.Errorf("%w: %q", combat.ErrDuplicateFighter, a.ID)
	}
	return a, b, nil
}
