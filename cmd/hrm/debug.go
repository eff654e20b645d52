package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ezrec/hrm/emulator"
	"github.com/ezrec/hrm/internal/logger"
	hrmio "github.com/ezrec/hrm/io"
	"github.com/ezrec/hrm/translate"
)

const (
	historyFile = ".hrm_history"
	prompt      = "hrm> "
	runLimit    = 1_000_000
	undoLimit   = 10_000
)

var ErrDebugStdin = errors.New(translate.From("the debugger reads commands from stdin, use -f for the program"))

const debugHelp = `Commands:
  step [n]   execute n instructions (default 1)
  back [n]   undo n instructions (default 1)
  run        execute until the program halts
  state      show hands, inbox, outbox and floor
  list       show the program listing
  reset      restart from the initial inbox and floor
  quit       leave the debugger
`

// debugger single-steps an emulator.
type debugger struct {
	emu  *emulator.Emulator
	seed hrmio.Seed
	out  io.Writer
}

func (dbg *debugger) reset() {
	dbg.emu.Reset(dbg.seed.Memory, dbg.seed.Inbox)
}

// where shows the next instruction.
func (dbg *debugger) where() {
	code, ok := dbg.emu.Code()
	if !ok || !dbg.emu.Running() {
		fmt.Fprintf(dbg.out, "halted after %d steps, outbox %v\n", dbg.emu.Ticks(), hrmio.FormatValues(dbg.emu.Outbox))
		return
	}

	fmt.Fprintf(dbg.out, "%3d: %-14v ; line %d\n", dbg.emu.Ip(), code, dbg.emu.LineNo())
}

// step executes up to count instructions.
func (dbg *debugger) step(count int) {
	for range count {
		done, err := dbg.emu.Tick()
		if err != nil {
			fmt.Fprintf(dbg.out, "Program failed with: %v\n", err)
			return
		}
		if done {
			break
		}
	}

	if dbg.emu.Running() && count >= runLimit {
		fmt.Fprintf(dbg.out, "still running after %d steps\n", dbg.emu.Ticks())
	}

	dbg.where()
}

// back undoes up to count instructions.
func (dbg *debugger) back(count int) {
	for range count {
		if !dbg.emu.Back() {
			fmt.Fprintln(dbg.out, "at the start of the history")
			break
		}
	}

	dbg.where()
}

// exec runs a single debugger command.
func (dbg *debugger) exec(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	count := 1
	if len(fields) > 1 {
		var err error
		count, err = strconv.Atoi(fields[1])
		if err != nil || count < 1 {
			fmt.Fprintf(dbg.out, "%v: '%v' is not a positive count\n", fields[0], fields[1])
			return
		}
	}

	switch strings.ToLower(fields[0]) {
	case "s", "step":
		dbg.step(count)
	case "b", "back":
		dbg.back(count)
	case "r", "run":
		dbg.step(runLimit)
	case "p", "state":
		fmt.Fprint(dbg.out, dbg.emu.Cpu.String())
	case "l", "list":
		fmt.Fprint(dbg.out, dbg.emu.Program.String())
	case "reset":
		dbg.reset()
		dbg.where()
	case "q", "quit", "exit":
		quit = true
	case "h", "help", "?":
		fmt.Fprint(dbg.out, debugHelp)
	default:
		fmt.Fprintf(dbg.out, "unknown command '%v', try 'help'\n", fields[0])
	}

	return
}

var debugCmd = &cobra.Command{
	Use:   "debug [values...] [- tile:value...]",
	Short: "Step through a program interactively",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if source == "-" {
			err = ErrDebugStdin
			return
		}

		prog, err := loadProgram()
		if err != nil {
			return
		}

		seed, err := loadSeed(args)
		if err != nil {
			return
		}

		emu := emulator.NewEmulator(prog)
		emu.Logger = logger.Zap(verbose)
		emu.History.Limit = undoLimit

		dbg := &debugger{emu: emu, seed: seed, out: cmd.OutOrStdout()}
		dbg.reset()
		dbg.where()

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				log.Debug("history not saved", "err", err)
			}
		}()

		for {
			line, perr := ln.Prompt(prompt)
			if errors.Is(perr, io.EOF) || errors.Is(perr, liner.ErrPromptAborted) {
				fmt.Fprintln(dbg.out)
				break
			}
			if perr != nil {
				err = perr
				return
			}

			if len(strings.TrimSpace(line)) != 0 {
				ln.AppendHistory(line)
			}

			if dbg.exec(line) {
				break
			}
		}

		return
	},
}

func init() {
	debugCmd.Flags().StringVarP(&input, "input", "i", "", "File of inbox words, read after the arguments")

	rootCmd.AddCommand(debugCmd)
}
