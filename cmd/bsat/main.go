package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-bsat/bsat/internal/drat"
	"github.com/go-bsat/bsat/internal/localsearch"
	"github.com/go-bsat/bsat/internal/parsers"
	"github.com/go-bsat/bsat/internal/progress"
	"github.com/go-bsat/bsat/internal/report"
	"github.com/go-bsat/bsat/internal/sat"
)

// Exit codes follow the driver convention: 10 = SAT, 20 = UNSAT, 0 =
// UNKNOWN, 1 = usage/IO error.
const (
	exitSAT     = 10
	exitUNSAT   = 20
	exitUnknown = 0
	exitError   = 1
)

type options struct {
	gzipped        bool
	configPath     string
	dratPath       string
	cpuProfile     bool
	memProfile     bool
	verbose        bool
	localSearch    bool
	lsMaxFlips     int
	lsNoise        float64
	clauseDecay    float64
	variableDecay  float64
	restartFirst   int64
	restartInc     float64
	glucoseRestart bool
	bce            bool
	varElim        bool
	maxConflicts   int64
	maxDecisions   int64
	timeout        time.Duration
	seed           int64
}

func newRootCmd() *cobra.Command {
	o := options{}
	defaults := sat.DefaultOptions

	cmd := &cobra.Command{
		Use:          "bsat <instance.cnf>",
		Short:        "CDCL SAT solver over DIMACS CNF instances",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, o, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&o.gzipped, "gzip", false, "treat the instance file as gzip-compressed")
	flags.StringVar(&o.configPath, "config", "", "optional config file layered underneath these flags")
	flags.StringVar(&o.dratPath, "drat", "", "write a DRAT proof to this path")
	flags.BoolVar(&o.cpuProfile, "cpuprof", false, "save a pprof CPU profile to cpuprof.pprof")
	flags.BoolVar(&o.memProfile, "memprof", false, "save a pprof heap profile to memprof.pprof")
	flags.BoolVar(&o.verbose, "verbose", false, "log a progress line on SIGUSR1 and print a final stats table")
	flags.BoolVar(&o.localSearch, "local-search", false, "run a WalkSAT probe before CDCL search")
	flags.IntVar(&o.lsMaxFlips, "local-search-flips", localsearch.DefaultOptions.MaxFlips, "max flips for the local-search probe")
	flags.Float64Var(&o.lsNoise, "local-search-noise", localsearch.DefaultOptions.Noise, "random-walk probability for the local-search probe")

	flags.Float64Var(&o.clauseDecay, "clause-decay", defaults.ClauseDecay, "clause activity decay factor")
	flags.Float64Var(&o.variableDecay, "variable-decay", defaults.VariableDecay, "variable activity decay factor")
	flags.Int64Var(&o.restartFirst, "restart-first", defaults.RestartFirst, "geometric restart's initial conflict threshold")
	flags.Float64Var(&o.restartInc, "restart-inc", defaults.RestartInc, "geometric restart threshold multiplier")
	flags.BoolVar(&o.glucoseRestart, "glucose-restart", defaults.GlucoseRestart, "enable Glucose-style LBD-EMA restarts alongside the geometric schedule")
	flags.BoolVar(&o.bce, "bce", defaults.BCE, "enable blocked-clause elimination preprocessing")
	flags.BoolVar(&o.varElim, "var-elim", defaults.VarElim, "enable bounded variable elimination preprocessing")
	flags.Int64Var(&o.maxConflicts, "max-conflicts", defaults.MaxConflicts, "abort with UNKNOWN after this many conflicts (-1 disables)")
	flags.Int64Var(&o.maxDecisions, "max-decisions", defaults.MaxDecisions, "abort with UNKNOWN after this many decisions (-1 disables)")
	flags.DurationVar(&o.timeout, "timeout", 0, "abort with UNKNOWN after this long (0 disables)")
	flags.Int64Var(&o.seed, "seed", 1, "PRNG seed for random phase selection and the local-search probe")

	return cmd
}

func explicitFlags(cmd *cobra.Command) map[string]bool {
	explicit := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}

func runSolve(cmd *cobra.Command, o options, instancePath string) error {
	if o.cpuProfile {
		f, err := os.Create("cpuprof.pprof")
		if err != nil {
			return errors.Wrap(err, "creating cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "starting cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	opts := sat.DefaultOptions
	opts.ClauseDecay = o.clauseDecay
	opts.VariableDecay = o.variableDecay
	opts.RestartFirst = o.restartFirst
	opts.RestartInc = o.restartInc
	opts.GlucoseRestart = o.glucoseRestart
	opts.BCE = o.bce
	opts.VarElim = o.varElim
	opts.MaxConflicts = o.maxConflicts
	opts.MaxDecisions = o.maxDecisions
	opts.Timeout = o.timeout
	opts.Rand = newRand(o.seed)

	if o.configPath != "" {
		fc, err := loadFileConfig(o.configPath)
		if err != nil {
			return err
		}
		explicit := explicitFlags(cmd)
		if err := applyFileConfig(&opts, fc, explicit); err != nil {
			return err
		}
	}

	var ph *progress.Handler
	if o.verbose {
		ph = progress.New(syscall.SIGUSR1)
		defer ph.Close()
		opts.ProgressPoll = ph.Poll
	}

	s := sat.NewSolver(opts)

	if err := parsers.LoadDIMACS(instancePath, o.gzipped, s); err != nil {
		return errors.Wrap(err, "loading instance")
	}
	fmt.Printf("c variables: %d\n", s.NumVariables())

	var dw *drat.Writer
	if o.dratPath != "" {
		f, err := os.Create(o.dratPath)
		if err != nil {
			return errors.Wrap(err, "creating DRAT proof file")
		}
		defer f.Close()
		dw = drat.New(f)
		s.SetDRATWriter(dw)
	}

	if o.localSearch {
		runLocalSearchProbe(s, o)
	}

	start := time.Now()
	result := s.Solve()
	elapsed := time.Since(start)

	if o.verbose {
		report.Summary(os.Stdout, result, s.Stats, elapsed)
	}

	if err := parsers.WriteResult(os.Stdout, result, s.Model()); err != nil {
		return errors.Wrap(err, "writing result")
	}

	if o.memProfile {
		f, err := os.Create("memprof.pprof")
		if err != nil {
			return errors.Wrap(err, "creating mem profile")
		}
		defer f.Close()
		pprof.WriteHeapProfile(f)
	}

	// os.Exit skips deferred calls, so the CPU profile is finished here.
	if o.cpuProfile {
		pprof.StopCPUProfile()
	}

	switch result {
	case sat.Sat:
		os.Exit(exitSAT)
	case sat.Unsat:
		os.Exit(exitUNSAT)
	default:
		os.Exit(exitUnknown)
	}
	return nil
}

// runLocalSearchProbe runs a bounded WalkSAT pass over the root-level
// formula before CDCL search starts. It never feeds a result back into the
// solver (the core has no partial-assignment seeding hook); it only
// reports whether the probe happened to land on a full model, which is
// informative when tuning the noise/flip budget.
func runLocalSearchProbe(s *sat.Solver, o options) {
	clauses := s.Clauses()
	opts := localsearch.Options{
		MaxFlips: o.lsMaxFlips,
		Noise:    o.lsNoise,
		Rand:     newRand(o.seed),
	}
	_, ok := localsearch.Run(s.NumVariables(), clauses, nil, opts)
	log.Printf("c local-search probe: flips<=%d noise=%.2f found-model=%t", o.lsMaxFlips, o.lsNoise, ok)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
}
