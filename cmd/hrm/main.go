// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ezrec/hrm/cpu"
	"github.com/ezrec/hrm/emulator"
	"github.com/ezrec/hrm/internal/logger"
	hrmio "github.com/ezrec/hrm/io"
	"github.com/ezrec/hrm/translate"
)

var (
	verbose bool
	noColor bool
	lang    string
	source  string
	strict  bool
	input   string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "hrm",
	Short: "Mailbox machine assembler and emulator",
	Long: `Hrm assembles and runs programs for the mailbox machine, in the text
format exported by the Human Resource Machine game.

Numbers and letters for the inbox are given on the command line. Tiles
of the floor follow a lone '-' as tile:value pairs:

    hrm run -f countdown.hrm 3 7 - 9:0

Negative numbers must come after a '--'.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, noColor)
		if len(lang) != 0 {
			translate.SetLocale(lang)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [values...] [- tile:value...]",
	Short: "Run a program to completion, and print the outbox",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
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
		emu.Reset(seed.Memory, seed.Inbox)

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		outbox, err := emu.Run(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Program failed with: %v\n", err)
			os.Exit(1)
		}

		log.Debug("halted", "steps", emu.Ticks(), "size", emu.Size())

		tape := &hrmio.Tape{Output: cmd.OutOrStdout()}
		err = tape.Send(outbox)
		return
	},
}

var asmCmd = &cobra.Command{
	Use:   "asm",
	Short: "Assemble a program, and print its listing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		prog, err := loadProgram()
		if err != nil {
			return
		}

		_, err = io.WriteString(cmd.OutOrStdout(), prog.String())
		return
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose mode, traces every step")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored log output")
	flags.StringVar(&lang, "lang", "", "Language of messages, default from the environment")
	flags.StringVarP(&source, "file", "f", "-", "Program source, '-' for stdin")
	flags.BoolVar(&strict, "strict", false, "Fail on unparsable programs and missing labels")

	runCmd.Flags().StringVarP(&input, "input", "i", "", "File of inbox words, read after the arguments")
	runCmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop a program that runs longer, 0 for never")

	rootCmd.AddCommand(runCmd, asmCmd)
}

// loadProgram assembles the program source.
func loadProgram() (prog *cpu.Program, err error) {
	var inf io.Reader = os.Stdin
	if source != "-" {
		var file *os.File
		file, err = os.Open(source)
		if err != nil {
			return
		}
		defer file.Close()
		inf = file
	}

	asm := &cpu.Assembler{
		Strict: strict,
		Logger: logger.Zap(verbose),
	}
	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", source, err)
		return
	}

	log.Debug("assembled", "file", source, "size", prog.Size(), "labels", len(prog.Label))

	return
}

// loadSeed builds the inbox and floor from the arguments, and the input
// file if any.
func loadSeed(args []string) (seed hrmio.Seed, err error) {
	seed, err = hrmio.ParseArgs(args)
	if err != nil {
		return
	}

	if len(input) == 0 {
		return
	}

	file, err := os.Open(input)
	if err != nil {
		return
	}
	defer file.Close()

	tape := &hrmio.Tape{Input: file}
	values, err := tape.Receive()
	if err != nil {
		err = fmt.Errorf("%v: %w", input, err)
		return
	}

	seed = seed.Merge(hrmio.Seed{Inbox: values})
	return
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
