// Command captchagen writes labeled CAPTCHA datasets described by a YAML
// configuration file.
//
//	captchagen --config generator_config.yaml --part part2 part3 part4
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/dataset"
)

type cli struct {
	Config  string   `arg:"--config,required" help:"path to the YAML configuration file"`
	Part    []string `arg:"--part,required" help:"tiers to generate (part2, part3, part4)"`
	Output  string   `arg:"--output" help:"override output_dir from the configuration"`
	Workers int      `arg:"--workers" help:"parallel generators, 0 for one per CPU"`
	Seed    *uint64  `arg:"--seed" help:"seed for reproducible output with --workers 1"`
	Verbose bool     `arg:"-v,--verbose" help:"log per-sample details"`
}

func (cli) Description() string {
	return "Generate labeled CAPTCHA datasets."
}

func main() {
	var args cli
	arg.MustParse(&args)

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	captcha.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args cli) error {
	cfg, err := dataset.LoadConfig(args.Config)
	if err != nil {
		return err
	}
	if args.Output != "" {
		cfg.OutputDir = args.Output
	}

	var opts []dataset.DriverOption
	if args.Workers != 0 {
		opts = append(opts, dataset.WithWorkers(args.Workers))
	}
	if args.Seed != nil {
		opts = append(opts, dataset.WithSeed(*args.Seed))
	}
	d, err := dataset.NewDriver(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := captcha.Logger()
	log.Info("starting CAPTCHA generation", "output_dir", cfg.OutputDir, "parts", args.Part)

	summaries, err := d.Run(ctx, args.Part)
	for _, s := range summaries {
		log.Info("part done", "part", s.Part, "generated", s.Generated, "failed", s.Failed,
			"images", s.ImagesDir, "labels", s.ManifestPath)
	}
	return err
}
