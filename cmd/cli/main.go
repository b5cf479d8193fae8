package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/engine"
)

var (
	monthFirst bool
	asOf       string
	topN       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gostatement",
		Short: "Bank statement processing tool",
		Long:  `Normalizes extracted bank statement rows into a validated ledger and monthly summary.`,
	}

	rootCmd.PersistentFlags().BoolVar(&monthFirst, "month-first", false, "Resolve ambiguous numeric dates as month/day/year")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "Upper bound for plausible dates, YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().IntVar(&topN, "top-n", engine.DefaultTopN, "Number of top transactions to report")

	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(batchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func processCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "process <rows.json>",
		Short: "Process one statement",
		Long:  `Reads extracted rows from a JSON file ("-" for stdin) and emits the ledger and summary.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			rows, err := loadRows(args[0])
			if err != nil {
				return err
			}

			result, err := eng.Process(rows)
			if err != nil {
				return err
			}

			if output == "" {
				printJSON(result)
				return nil
			}
			return writeResult(output, result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a file instead of stdout")
	return cmd
}

func batchCmd() *cobra.Command {
	var (
		outputDir   string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every statement in a directory",
		Long:  `Processes every .json file in the directory concurrently and writes one result file per statement.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			files, err := filepath.Glob(filepath.Join(args[0], "*.json"))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no .json files in %s", args[0])
			}

			if outputDir == "" {
				outputDir = args[0]
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}

			var g errgroup.Group
			g.SetLimit(concurrency)

			var failed atomic.Int64
			processed := 0
			for _, file := range files {
				if strings.HasSuffix(file, resultSuffix) {
					continue
				}
				processed++
				g.Go(func() error {
					if err := processFile(eng, file, outputDir); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file, err)
						failed.Add(1)
					}
					return nil
				})
			}

			g.Wait()
			if n := failed.Load(); n > 0 {
				return fmt.Errorf("%d of %d statements failed", n, processed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for result files (default: input directory)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of statements processed in parallel")
	return cmd
}

func processFile(eng *engine.Engine, file, outputDir string) error {
	rows, err := loadRows(file)
	if err != nil {
		return err
	}
	result, err := eng.Process(rows)
	if err != nil {
		return err
	}
	return writeResult(resultPath(outputDir, file), result)
}

func buildEngine() (*engine.Engine, error) {
	cfg := engine.DefaultConfig()
	cfg.DayFirst = !monthFirst
	cfg.TopN = topN

	if asOf != "" {
		t, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of date %q: %w", asOf, err)
		}
		cfg.AsOf = t
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	return engine.New(cfg, logger), nil
}

func loadRows(path string) ([]domain.RawRow, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid rows file %s: %w", path, err)
	}
	return rows, nil
}

const resultSuffix = ".result.json"

// resultPath maps an input file to its result file in the output
// directory: statements/jan.json -> out/jan.result.json.
func resultPath(outputDir, inputFile string) string {
	base := strings.TrimSuffix(filepath.Base(inputFile), ".json")
	return filepath.Join(outputDir, base+resultSuffix)
}

func writeResult(path string, result *engine.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
