package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/l4u/elixir/internal/buildpipeline"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/lower"
	"github.com/l4u/elixir/internal/modenv"
	"github.com/l4u/elixir/internal/parser"
	"github.com/l4u/elixir/internal/scope"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/syntax"
)

// Lower runs the full pipeline over a file loaded from disk.
func Lower(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return lowerFile(ctx, fs, fs.Get(fileID), opts)
}

// LowerSource runs the full pipeline over an in-memory buffer, for the
// repl and tests.
func LowerSource(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return lowerFile(ctx, fs, fs.Get(fileID), opts)
}

// unitJob is one queued unit: the file's top level, or a scheduled
// module body with the alias snapshot it inherited.
type unitJob struct {
	module  string
	line    uint32
	body    syntax.Term
	aliases map[string]string
}

// unitOutcome is what one worker hands back: the lowered unit, its
// private bag, the modules it scheduled, and how long it took.
type unitOutcome struct {
	unit    Unit
	bag     *diag.Bag
	tasks   []modenv.Task
	elapsed time.Duration
}

func lowerFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	res := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
		Timings: &buildpipeline.Timings{},
	}

	if hit := tryCache(file, opts, res); hit {
		return res, nil
	}

	term, ok := parseStage(file, opts, res)
	if !ok {
		return res, nil
	}

	if err := drainUnits(ctx, file, term, opts, res); err != nil {
		return nil, err
	}

	storeCache(file, opts, res)
	return res, nil
}

// parseStage parses the file into a quoted term. It reports false when
// parsing produced errors; the recovered term is not worth lowering.
func parseStage(file *source.File, opts Options, res *Result) (syntax.Term, bool) {
	buildpipeline.Emit(opts.Sink, buildpipeline.Event{
		Unit:   file.Path,
		Stage:  buildpipeline.StageParse,
		Status: buildpipeline.StatusWorking,
	})
	start := time.Now()

	parsed := parser.Parse(file, parser.Options{
		Reporter:  &diag.BagReporter{Bag: res.Bag},
		MaxErrors: uint(opts.maxDiagnostics()),
	})
	elapsed := time.Since(start)
	res.Timings.Add(buildpipeline.StageParse, elapsed)

	if res.Bag.HasErrors() {
		buildpipeline.Emit(opts.Sink, buildpipeline.Event{
			Unit:    file.Path,
			Stage:   buildpipeline.StageParse,
			Status:  buildpipeline.StatusError,
			Elapsed: elapsed,
		})
		return nil, false
	}

	buildpipeline.Emit(opts.Sink, buildpipeline.Event{
		Unit:    file.Path,
		Stage:   buildpipeline.StageParse,
		Status:  buildpipeline.StatusDone,
		Elapsed: elapsed,
	})
	return parsed.Term, true
}

// drainUnits lowers the top-level unit and then every module it
// scheduled, wave by wave. Units inside a wave run concurrently; their
// outcomes fold back in scheduling order, so diagnostics and unit lists
// come out identical no matter how many workers ran.
func drainUnits(ctx context.Context, file *source.File, term syntax.Term, opts Options, res *Result) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	pending := []unitJob{{module: "", line: 1, body: term}}
	for len(pending) > 0 {
		for i := range pending {
			buildpipeline.Emit(opts.Sink, buildpipeline.Event{
				Unit:   unitLabel(file, pending[i].module),
				Stage:  buildpipeline.StageLower,
				Status: buildpipeline.StatusQueued,
			})
		}

		outcomes := make([]unitOutcome, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(pending)))
		for i := range pending {
			i := i
			job := pending[i]
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				out, err := runUnit(file, job, opts)
				if err != nil {
					return err
				}
				outcomes[i] = out
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var next []unitJob
		for i := range outcomes {
			out := &outcomes[i]
			res.Units = append(res.Units, out.unit)
			res.Bag.Merge(out.bag)
			res.Timings.Add(buildpipeline.StageLower, out.elapsed)
			for _, task := range out.tasks {
				next = append(next, unitJob{
					module:  task.Name,
					line:    task.Line,
					body:    task.Body,
					aliases: task.Aliases,
				})
			}
		}
		pending = next
	}
	return nil
}

// runUnit lowers one unit with a fresh scope and environment. The only
// error it returns is a non-diagnostic one; translation failures land
// in the unit's bag.
func runUnit(file *source.File, job unitJob, opts Options) (unitOutcome, error) {
	label := unitLabel(file, job.module)
	buildpipeline.Emit(opts.Sink, buildpipeline.Event{
		Unit:   label,
		Stage:  buildpipeline.StageLower,
		Status: buildpipeline.StatusWorking,
	})
	start := time.Now()

	bag := diag.NewBag(opts.maxDiagnostics())
	env := modenv.New(job.module)
	env.SeedAliases(job.aliases)
	tr := lower.New(file, env, lower.Options{
		Internal: opts.Internal,
		Reporter: &diag.BagReporter{Bag: bag},
	})

	s := scope.New(file.Path)
	if job.module != "" {
		s = s.WithModule(job.module)
	}

	stmts, _, err := tr.Unit(job.body, s)
	elapsed := time.Since(start)
	if err != nil {
		f, isFailure := diag.AsFailure(err)
		if !isFailure {
			return unitOutcome{}, err
		}
		bag.Add(f.Diagnostic())
		buildpipeline.Emit(opts.Sink, buildpipeline.Event{
			Unit:    label,
			Stage:   buildpipeline.StageLower,
			Status:  buildpipeline.StatusError,
			Err:     f,
			Elapsed: elapsed,
		})
		return unitOutcome{
			unit:    Unit{Module: job.module, Line: job.line},
			bag:     bag,
			elapsed: elapsed,
		}, nil
	}

	buildpipeline.Emit(opts.Sink, buildpipeline.Event{
		Unit:    label,
		Stage:   buildpipeline.StageLower,
		Status:  buildpipeline.StatusDone,
		Elapsed: elapsed,
	})
	return unitOutcome{
		unit:    Unit{Module: job.module, Line: job.line, Stmts: stmts},
		bag:     bag,
		tasks:   env.Tasks(),
		elapsed: elapsed,
	}, nil
}

func unitLabel(file *source.File, module string) string {
	if module == "" {
		return file.Path
	}
	return module
}
