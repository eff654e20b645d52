package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ezrec/hrm/internal/logger"
	"github.com/ezrec/hrm/level"
)

var (
	levelFile string
	limit     int
	maxSteps  int
)

var checkCmd = &cobra.Command{
	Use:   "check -l level.yaml",
	Short: "Check a program against the cases of a level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		file, err := os.Open(levelFile)
		if err != nil {
			return
		}
		defer file.Close()

		lvl, err := level.Load(file)
		if err != nil {
			err = fmt.Errorf("%v: %w", levelFile, err)
			return
		}

		prog, err := loadProgram()
		if err != nil {
			return
		}

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		opts := []level.CheckOpt{
			level.WithMaxSteps(maxSteps),
			level.WithLogger(logger.Zap(verbose)),
		}
		if limit > 0 {
			opts = append(opts, level.WithLimit(limit))
		}

		report, err := lvl.Check(ctx, prog, opts...)
		if err != nil {
			return
		}

		fmt.Fprint(cmd.OutOrStdout(), report.String())

		if !report.Passed() {
			log.Warn("level failed", "level", lvl.Name)
			os.Exit(1)
		}

		return
	},
}

func init() {
	checkCmd.Flags().StringVarP(&levelFile, "level", "l", "", "Level file")
	checkCmd.Flags().IntVar(&limit, "jobs", 0, "Cases run at once, 0 for one per CPU")
	checkCmd.Flags().IntVar(&maxSteps, "max-steps", level.DEFAULT_MAX_STEPS, "Steps after which a case fails")
	checkCmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop checking after this long, 0 for never")
	_ = checkCmd.MarkFlagRequired("level")

	rootCmd.AddCommand(checkCmd)
}
