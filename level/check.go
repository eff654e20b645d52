package level

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/hrm/cpu"
	"github.com/ezrec/hrm/emulator"
	hrmio "github.com/ezrec/hrm/io"
)

// DEFAULT_MAX_STEPS stops a case that never halts.
const DEFAULT_MAX_STEPS = 1_000_000

// Result of a single case.
type Result struct {
	Case   int         // Index of the case in the level.
	Outbox []cpu.Value // Outbox when the case stopped.
	Steps  int         // Steps taken.
	Err    error       // Runtime error, step limit, or outbox mismatch.
}

// Passed returns true if the case produced the expected outbox.
func (res *Result) Passed() bool {
	return res.Err == nil
}

// Report of a level check.
type Report struct {
	Name      string
	Size      int // Instruction count of the program.
	SizeGoal  int
	Steps     int // Average steps over all cases, rounded up.
	StepsGoal int
	Results   []Result
}

// Passed returns true if every case passed.
func (rep *Report) Passed() bool {
	for n := range rep.Results {
		if !rep.Results[n].Passed() {
			return false
		}
	}
	return true
}

func goal(value, target int) string {
	switch {
	case target == 0:
		return ""
	case value <= target:
		return fmt.Sprintf(" (goal %d, met)", target)
	default:
		return fmt.Sprintf(" (goal %d)", target)
	}
}

func (rep *Report) String() string {
	var sb strings.Builder

	status := "passed"
	if !rep.Passed() {
		status = "FAILED"
	}
	fmt.Fprintf(&sb, "%v: %v\n", rep.Name, status)
	for _, res := range rep.Results {
		if res.Passed() {
			fmt.Fprintf(&sb, "  %v: ok, %d steps\n", caseName(res.Case), res.Steps)
		} else {
			fmt.Fprintf(&sb, "  %v: %v\n", caseName(res.Case), res.Err)
		}
	}
	fmt.Fprintf(&sb, "  size:  %d%v\n", rep.Size, goal(rep.Size, rep.SizeGoal))
	fmt.Fprintf(&sb, "  steps: %d%v\n", rep.Steps, goal(rep.Steps, rep.StepsGoal))

	return sb.String()
}

type checker struct {
	limit    int
	maxSteps int
	logger   *zap.Logger
}

// CheckOpt configures a level check.
type CheckOpt func(*checker)

// WithLimit sets the number of cases run at once.
func WithLimit(limit int) CheckOpt {
	return func(chk *checker) {
		chk.limit = limit
	}
}

// WithMaxSteps sets the step count after which a case fails.
func WithMaxSteps(steps int) CheckOpt {
	return func(chk *checker) {
		chk.maxSteps = steps
	}
}

// WithLogger traces the emulator of every case.
func WithLogger(logger *zap.Logger) CheckOpt {
	return func(chk *checker) {
		chk.logger = logger
	}
}

// Check runs every case of the level against the program, each in its own
// emulator. The error is only set if ctx ends before all cases finish.
func (lvl *Level) Check(ctx context.Context, prog *cpu.Program, opts ...CheckOpt) (report *Report, err error) {
	chk := checker{
		limit:    runtime.GOMAXPROCS(0),
		maxSteps: DEFAULT_MAX_STEPS,
	}
	for _, opt := range opts {
		opt(&chk)
	}

	if prog == nil {
		prog = &cpu.Program{}
	}

	results := make([]Result, len(lvl.Cases))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(chk.limit)
	for n := range lvl.Cases {
		eg.Go(func() (err error) {
			results[n], err = chk.run(ctx, prog, lvl.Seed(n), Values(lvl.Cases[n].Outbox))
			results[n].Case = n
			return
		})
	}

	err = eg.Wait()
	if err != nil {
		return
	}

	report = &Report{
		Name:      lvl.Name,
		Size:      prog.Size(),
		SizeGoal:  lvl.Size,
		StepsGoal: lvl.Steps,
		Results:   results,
	}

	total := 0
	for _, res := range results {
		total += res.Steps
	}
	if len(results) > 0 {
		report.Steps = (total + len(results) - 1) / len(results)
	}

	return
}

// run executes a single case.
func (chk *checker) run(ctx context.Context, prog *cpu.Program, seed hrmio.Seed, expected []cpu.Value) (res Result, err error) {
	emu := emulator.NewEmulator(prog)
	emu.Logger = chk.logger
	emu.Reset(seed.Memory, seed.Inbox)

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		done, terr := emu.Tick()
		if terr != nil {
			res.Err = terr
			break
		}
		if done {
			break
		}

		if emu.Ticks() >= chk.maxSteps {
			res.Err = ErrTooSlow
			break
		}
	}

	res.Steps = emu.Ticks()
	res.Outbox = emu.Cpu.Outbox

	if res.Err == nil && !slices.Equal(res.Outbox, expected) {
		res.Err = &ErrOutbox{Expected: expected, Actual: res.Outbox}
	}

	return
}
