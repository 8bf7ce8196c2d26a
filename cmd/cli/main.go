package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gomice/adapters/api"
	"gomice/adapters/diagnostics"
	"gomice/adapters/excel"
	"gomice/adapters/mice"
	"gomice/adapters/predict"
	"gomice/adapters/sanitize"
	"gomice/app"
	"gomice/internal/config"
	"gomice/internal/rng"
	"gomice/ports"
)

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "gomice",
		Short: "Multiple imputation by chained equations for tabular datasets",
	}

	rootCmd.AddCommand(
		newImputeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newSessionService wires the default adapter stack
func newSessionService() *app.SessionService {
	engine := mice.NewEngine(predict.NewFactory(), rng.NewAdapter())
	return app.NewSessionService(sanitize.NewSanitizer(), engine)
}

func newImputeCmd() *cobra.Command {
	var (
		continuous []string
		chains     int
		iterations int
		seed       int64
		outPath    string
		showDiag   bool
	)

	cmd := &cobra.Command{
		Use:   "impute [dataset-file]",
		Short: "Fill missing values of an Excel/CSV dataset",
		Long: `Sanitize a dataset, report per-column missingness, and run chained-equations
imputation over the columns that have missing cells.

Example: gomice impute survey.xlsx --continuous age,income --chains 2 --seed 42 --out imputed.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if chains == 0 {
				chains = cfg.Impute.Chains
			}
			if iterations == 0 {
				iterations = cfg.Impute.Iterations
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Impute.Seed
			}

			var writer ports.ResultWriterPort
			if outPath != "" {
				writer = excel.NewResultWriter(outPath)
			}

			sessions := newSessionService()
			result, err := sessions.RunFile(cmd.Context(), excel.NewDataReader(args[0]), writer, app.RunRequest{
				ContinuousColumns: continuous,
				Chains:            chains,
				Iterations:        iterations,
				Seed:              seed,
			})
			if err != nil {
				return err
			}

			fmt.Printf("run %s: %d rows, %d columns, %d missing cell(s)\n",
				result.RunID, result.Sanitized.RowCount(), result.Sanitized.ColumnCount(),
				result.Missingness.TotalMissing())
			for _, row := range result.Missingness.Rows {
				fmt.Printf("  %-24s %6d  %6.2f%%\n", row.Variable, row.MissingCount, row.MissingPct)
			}

			if len(result.Completed) == 0 {
				fmt.Println("no missing values, nothing to impute")
			} else {
				fmt.Printf("completed %d chain(s)\n", len(result.Completed))
				for _, fb := range result.Fallbacks {
					fmt.Printf("  fallback on %q (chain %d): %s\n", fb.Variable, fb.Chain, fb.Condition)
				}
			}

			if outPath != "" {
				fmt.Printf("wrote %s\n", outPath)
			}

			if showDiag && len(result.Completed) > 0 {
				summaries := diagnostics.NumericSummaries(result.Sanitized, result.Completed[0])
				payload, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(payload))
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&continuous, "continuous", nil, "column names to treat as continuous (others default to categorical)")
	cmd.Flags().IntVar(&chains, "chains", 0, fmt.Sprintf("independent completed datasets to produce (default %d)", mice.DefaultChains))
	cmd.Flags().IntVar(&iterations, "iterations", 0, fmt.Sprintf("refinement passes per chain (default %d)", mice.DefaultIterations))
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed governing all randomized steps")
	cmd.Flags().StringVar(&outPath, "out", "", "output .xlsx path (Missingness / Data_Original / Data_Imputed sheets)")
	cmd.Flags().BoolVar(&showDiag, "diagnostics", false, "print before/after distribution summaries as JSON")

	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one-shot imputation runs over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}

			server := api.NewServer(newSessionService())
			return server.ListenAndServe(port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default from GOMICE_PORT)")
	return cmd
}
