package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmcarroll/ctsched/internal/audit"
	"github.com/dmcarroll/ctsched/internal/envdump"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/loader"
	"github.com/dmcarroll/ctsched/internal/report"
	"github.com/dmcarroll/ctsched/internal/search"
	"github.com/dmcarroll/ctsched/internal/softeval"
)

const defaultProblemFile = "problem.yaml"

func resolveProblemPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if _, err := os.Stat(defaultProblemFile); err == nil {
		return defaultProblemFile, nil
	}
	return "", fmt.Errorf("no problem file found. Either create %s in the current directory or pass the path as an argument", defaultProblemFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "ctsched",
		Short: "League game and practice schedule generator",
	}

	var debug bool
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "dump the loaded problem instance to stderr before running")

	var outputFile string
	var budget time.Duration
	generateCmd := &cobra.Command{
		Use:          "generate [problem.yaml]",
		Short:        "Search for a schedule satisfying a problem instance",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveProblemPath(args)
			if err != nil {
				return err
			}
			return runGenerate(path, outputFile, budget, debug)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "output workbook path")
	generateCmd.Flags().DurationVar(&budget, "budget", 0, "wall-clock search budget (0 = unlimited)")

	auditCmd := &cobra.Command{
		Use:          "audit <problem.yaml> <schedule.xlsx>",
		Short:        "Recheck a generated workbook's schedule against the problem instance",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(args[0], args[1], debug)
		},
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter problem.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultProblemFile, "output path for the problem file")

	rootCmd.AddCommand(generateCmd, auditCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(problemTemplate), 0644); err != nil {
		return fmt.Errorf("writing problem file: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

func runGenerate(path, outputPath string, budget time.Duration, debug bool) error {
	in, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("loading problem: %w", err)
	}

	if debug {
		envdump.Dump(log.New(os.Stderr, "ctsched: ", log.LstdFlags), in)
	}

	fmt.Printf("Searching %d games and %d practices across %d slots...\n",
		len(in.GameIDs), len(in.PracticeIDs), len(in.Slots))

	checker := hardcheck.New(in)
	d := &search.Driver{
		Problem:      in,
		Checker:      checker,
		Evaluator:    softeval.New(in),
		ReportEvery:  500,
		ReportWriter: os.Stdout,
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if budget > 0 {
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	best, err := d.Search(ctx)
	if err != nil && err != context.DeadlineExceeded {
		return fmt.Errorf("searching: %w", err)
	}
	if best == nil {
		fmt.Println("No solution was found!")
		return nil
	}

	fmt.Println("Search has ended! Here is the solution found:")
	if err := report.WriteText(os.Stdout, best); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	f, err := report.WriteWorkbook(in, best, &checker.Counters)
	if err != nil {
		return fmt.Errorf("generating workbook: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runAudit(problemPath, schedulePath string, debug bool) error {
	in, err := loader.LoadFromFile(problemPath)
	if err != nil {
		return fmt.Errorf("loading problem: %w", err)
	}

	if debug {
		envdump.Dump(log.New(os.Stderr, "ctsched: ", log.LstdFlags), in)
	}

	assignments, err := audit.ReadWorkbook(schedulePath)
	if err != nil {
		return fmt.Errorf("reading workbook: %w", err)
	}

	result := audit.Audit(in, assignments)

	fmt.Printf("Eval-value: %d\n", result.Eval)
	for _, v := range result.Violations {
		fmt.Printf("✗ %s: %s\n", v.ActivityID, v.Message)
	}

	fmt.Printf("\nAudit complete: %d violations\n", len(result.Violations))
	if len(result.Violations) > 0 {
		return fmt.Errorf("%d violations found", len(result.Violations))
	}
	return nil
}

const problemTemplate = `# ctsched problem instance
# =========================
# This file defines a league's games, practices, and scheduling rules for
# one season's worth of weekly slots.

name: "Sample League"

weights:
  min_filled: 1
  preference: 1
  pair: 1
  section: 1

penalties:
  game_min: 10
  practice_min: 10
  not_paired: 5
  section: 2

# Every grid slot starts at max=0, min=0. Declare real capacities here
# before listing games and practices.
slot_capacities:
  - kind: game
    weekday: MO
    start_time: "18:00"
    max: 2
    min: 1

# admin_blocks zero out capacity on specific slots (e.g. reserved for a
# standing coaches' meeting).
admin_blocks: []

games:
  - id: "CMSA U12T1"
    association: CMSA
    age: U12
    tier: T1
    division: "1"

practices: []

not_compatible: []
unwanted: []
preferences: []
pair: []
part_assign: []
special_bookings: []
`
