package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritium/veritium/internal/model"
	"github.com/veritium/veritium/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchOutput  string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <document-id> <claims-file>",
	Short: "Assess multiple claims against a document in parallel",
	Long: `Batch assesses many claims against one ingested document:
- Read claims from the input file (one per line, # comments skipped)
- Assess claims in parallel with a configurable worker count
- Print a per-claim verdict summary, optionally a JSON report

Example:
  veritium batch 3f2a... claims.txt
  veritium batch 3f2a... claims.txt --concurrency 8 --output results.json`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write assessments to a JSON file")

	addEmbeddingFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	documentID, file := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: close store: %v\n", closeErr)
		}
	}()

	// The document must exist before spinning up workers
	doc, err := st.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Assessing claims against %q with %d workers...\n", doc.Title, concurrency)

	assessor := worker.NewBatchAssessor(p, concurrency)
	results, err := assessor.AssessFile(ctx, documentID, file)
	if err != nil {
		return fmt.Errorf("assess file: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Claim, result.Err)
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %q: %s (confidence %.2f)\n",
			result.Claim, result.Assessment.Stance, result.Assessment.ConfidenceScore)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)

	if batchOutput != "" {
		if err := writeBatchReport(batchOutput, results); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutput)
	}

	return nil
}

type batchReportEntry struct {
	Claim      string            `json:"claim"`
	Assessment *model.Assessment `json:"assessment,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func writeBatchReport(path string, results []*worker.AssessmentResult) (err error) {
	entries := make([]batchReportEntry, 0, len(results))
	for _, r := range results {
		entry := batchReportEntry{Claim: r.Claim, Assessment: r.Assessment}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		entries = append(entries, entry)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
