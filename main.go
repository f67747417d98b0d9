package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/carlmjohnson/versioninfo"

	"github.com/pdok/morton3d/bench"
	"github.com/pdok/morton3d/cmwc"
	"github.com/pdok/morton3d/control"
	"github.com/pdok/morton3d/morton"
	"github.com/pdok/morton3d/validation"

	"github.com/iancoleman/strcase"
	"github.com/muesli/reflow/padding"
	"github.com/urfave/cli/v2"
)

const WIDTH string = `width`
const CONFIG string = `config`
const SIZES string = `sizes`
const TIMES string = `times`
const SEED string = `seed`
const STRATEGIES string = `strategies`
const BENCHFAILED string = `bench-failed`
const SKIPBENCH string = `skip-bench`

// random triples and codes compared with the for-loop reference
const agreementSamples = 1 << 16

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

//nolint:funlen
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "morton3d"
	app.Usage = "Validates and benchmarks 3D Morton code strategies"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.UintFlag{
			Name:     WIDTH,
			Aliases:  []string{"w"},
			Usage:    "Code width in bits, 32 or 64. Defaults to the platform word width",
			Value:    strconv.IntSize,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(WIDTH)},
		},
		&cli.StringFlag{
			Name:     CONFIG,
			Aliases:  []string{"c"},
			Usage:    "Harness config file, JSON or YAML (.yaml/.yml)",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(CONFIG)},
		},
		&cli.StringFlag{
			Name:     SIZES,
			Aliases:  []string{"s"},
			Usage:    `Cube sides to measure. JSON array of integers. E.g.: [128,256,512]`,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(SIZES)},
		},
		&cli.UintFlag{
			Name:     TIMES,
			Aliases:  []string{"t"},
			Usage:    "Repetitions per measurement, the average is reported",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(TIMES)},
		},
		&cli.UintFlag{
			Name:     SEED,
			Usage:    "Seed of the random streams. Defaults to the current time",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(SEED)},
		},
		&cli.StringFlag{
			Name:     STRATEGIES,
			Usage:    `Strategies to check and measure. JSON array of names. E.g.: ["magic-bits","lut-shifted"]`,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(STRATEGIES)},
		},
		&cli.BoolFlag{
			Name:     BENCHFAILED,
			Usage:    "Also measure strategies that failed the correctness checks",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(BENCHFAILED)},
		},
		&cli.BoolFlag{
			Name:     SKIPBENCH,
			Usage:    "Only run the correctness checks",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(SKIPBENCH)},
		},
	}

	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		opts := options{benchFailed: c.Bool(BENCHFAILED), skipBench: c.Bool(SKIPBENCH)}

		var passed bool
		switch c.Uint(WIDTH) {
		case 32:
			passed, err = run[morton.Code32](os.Stdout, cfg, opts)
		case 64:
			passed, err = run[morton.Code64](os.Stdout, cfg, opts)
		default:
			return cli.Exit(fmt.Sprintf("unsupported width %d, use 32 or 64", c.Uint(WIDTH)), 2)
		}
		if err != nil {
			return err
		}
		if !passed {
			return cli.Exit("correctness checks failed", 1)
		}
		return nil
	}
	return app
}

// loadConfig layers the defaults, the config file and the flags, in that order
func loadConfig(c *cli.Context) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if path := c.String(CONFIG); path != "" {
		var err error
		if cfg, err = bench.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if c.IsSet(SIZES) {
		var sizes []uint
		if err := json.Unmarshal([]byte(c.String(SIZES)), &sizes); err != nil {
			return cfg, fmt.Errorf(`could not parse %s: %w`, SIZES, err)
		}
		cfg.Sizes = sizes
	}
	if c.IsSet(TIMES) {
		cfg.Times = c.Uint(TIMES)
	}
	if c.IsSet(STRATEGIES) {
		var strategies []string
		if err := json.Unmarshal([]byte(c.String(STRATEGIES)), &strategies); err != nil {
			return cfg, fmt.Errorf(`could not parse %s: %w`, STRATEGIES, err)
		}
		cfg.Strategies = strategies
	}
	switch {
	case c.IsSet(SEED):
		cfg.Seed = uint32(c.Uint(SEED))
	case cfg.Seed == 0:
		cfg.Seed = uint32(time.Now().UnixNano())
	}
	return cfg, nil
}

type options struct {
	benchFailed bool
	skipBench   bool
}

// run checks the configured strategies at width C and measures the ones that passed.
// It reports whether all correctness checks passed.
func run[C morton.Code](w io.Writer, cfg bench.Config, opts options) (bool, error) {
	width := morton.WidthOf[C]()
	if err := cfg.Validate(width); err != nil {
		return false, err
	}
	codecs, err := morton.Select[C](cfg.Strategies)
	if err != nil {
		return false, err
	}
	vectors, err := control.Load()
	if err != nil {
		return false, err
	}
	writeHeader(w, width, cfg.Seed)

	fmt.Fprintf(w, "++ Checking %d-bit strategies against the control vectors and the for-loop reference\n", width.CodeBits)
	rng := cmwc.New(cfg.Seed)
	report := validation.Check(codecs, vectors)
	report.Merge(validation.CheckAgreement(codecs, morton.New[C](morton.ForLoop), rng, agreementSamples))
	writeChecks(w, width, report)

	if opts.skipBench {
		return report.Passed(), nil
	}
	measured := codecs
	if !opts.benchFailed {
		measured = passing(codecs, report)
	}
	if len(measured) == 0 {
		log.Println("no strategies left to measure")
		return report.Passed(), nil
	}

	fmt.Fprintf(w, "++ Running performance tests (%d repetitions per measurement)\n", cfg.Times)
	var writeErr error
	_, err = bench.Run(cfg, measured, rng, func(s *bench.Sweep) {
		if writeErr == nil {
			writeErr = s.Write(w)
		}
	})
	if err != nil {
		return false, err
	}
	return report.Passed(), writeErr
}

func writeHeader(w io.Writer, width morton.Width, seed uint32) {
	fmt.Fprintf(w, "++ %d-bit version\n", width.CodeBits)
	fmt.Fprintf(w, "++ Compiled with %s for %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(w, "++ Not using intrinsics optimization.")
	fmt.Fprintf(w, "++ Random seed %d\n", seed)
}

func writeChecks(w io.Writer, width morton.Width, report *validation.Report) {
	for _, s := range report.Strategies() {
		label := padding.String(fmt.Sprintf("    %d-bit %v:", width.CodeBits, s), 28)
		if n := report.FailureCount(s); n > 0 {
			fmt.Fprintf(w, "%sFAILED (%d errors)\n", label, n)
		} else {
			fmt.Fprintf(w, "%spassed\n", label)
		}
	}
	fmt.Fprintf(w, "    %s\n", report.Summary())
}

func passing[C morton.Code](codecs []morton.Codec[C], report *validation.Report) []morton.Codec[C] {
	var passed []morton.Codec[C]
	for _, codec := range codecs {
		if !report.Failed(codec.Strategy()) {
			passed = append(passed, codec)
		}
	}
	return passed
}
