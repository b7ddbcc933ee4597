package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritium/veritium/internal/model"
	"github.com/veritium/veritium/internal/pipeline"
	"github.com/veritium/veritium/internal/store"
)

var (
	ingestTitle    string
	ingestAuthors  []string
	ingestAbstract string
	ingestDOI      string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	fetchRate      float64
	noRobots       bool
	outputJSON     bool
	embedProvider  string
	embedModel     string
	cacheDir       string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <url-or-file>",
	Short: "Ingest a document and extract its claims",
	Long: `Ingest loads a scientific document into the local store:
- Fetch a URL (robots.txt-aware) or read a local text file
- Extract the claims the document actually makes
- Assess methodological quality (sample size, p-values, DOI, design)
- Persist the document for later claim assessments

Example:
  veritium ingest https://example.org/papers/exercise-trial
  veritium ingest paper.txt --title "Cardio Trial" --doi 10.1234/cardio.77
  veritium ingest paper.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	// Metadata flags (local files only; URLs carry their own)
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title")
	ingestCmd.Flags().StringSliceVar(&ingestAuthors, "author", nil, "document author (repeatable)")
	ingestCmd.Flags().StringVar(&ingestAbstract, "abstract", "", "document abstract")
	ingestCmd.Flags().StringVar(&ingestDOI, "doi", "", "document DOI")

	// HTTP flags
	ingestCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "fetch timeout")
	ingestCmd.Flags().StringVar(&userAgent, "ua", "Veritium/0.1 (+https://github.com/veritium/veritium)", "HTTP User-Agent")
	ingestCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	ingestCmd.Flags().Float64Var(&fetchRate, "fetch-rate", 0, "max fetches per second per domain (0 uses the default)")
	ingestCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")

	// Output flags
	ingestCmd.Flags().BoolVar(&outputJSON, "json", false, "print the stored document as JSON")

	addEmbeddingFlags(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Minute)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: close store: %v\n", closeErr)
		}
	}()

	var doc *model.Document
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if verbose {
			fmt.Fprintf(os.Stderr, "⚙️  Fetching %s...\n", source)
		}
		doc, err = p.IngestURL(ctx, source)
	} else {
		data, readErr := os.ReadFile(source)
		if readErr != nil {
			return fmt.Errorf("read file: %w", readErr)
		}
		doc, err = p.IngestText(ctx, string(data), pipeline.DocumentMeta{
			Title:    ingestTitle,
			Authors:  ingestAuthors,
			Abstract: ingestAbstract,
			DOI:      ingestDOI,
		})
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	fmt.Fprintf(os.Stderr, "✓ Ingested %q\n", doc.Title)
	fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", len(doc.ExtractedClaims))
	fmt.Fprintf(os.Stderr, "✓ Method quality: %.2f\n", doc.MethodQualityScore)
	if doc.DOI != "" {
		fmt.Fprintf(os.Stderr, "✓ DOI: %s\n", doc.DOI)
	}
	fmt.Printf("%s\n", doc.ID)

	return nil
}

// addEmbeddingFlags registers the embedding flags shared by the commands
// that run assessments.
func addEmbeddingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&embedProvider, "embed-provider", "", "embedding provider for semantic similarity (openai; empty disables)")
	cmd.Flags().StringVar(&embedModel, "embed-model", "text-embedding-3-small", "embedding model name")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist embedding vectors to this directory across runs")
}

// buildConfig assembles configuration from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if timeout > 0 {
		cfg.HTTP.Timeout = timeout
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if fetchRate > 0 {
		cfg.HTTP.RequestsPerSecond = fetchRate
	}
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Output.Verbose = verbose
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}

	if embedProvider != "" {
		cfg.Embedding.Provider = embedProvider
		cfg.Embedding.Model = embedModel
		switch embedProvider {
		case "openai":
			cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Embedding.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			return nil, fmt.Errorf("unknown embedding provider %q", embedProvider)
		}
	}

	return cfg, nil
}

// openPipeline opens the store at the configured path and builds a pipeline
// on top of it. The caller closes the returned store.
func openPipeline(cfg *model.Config) (*pipeline.Pipeline, *store.Store, error) {
	st, err := store.NewStore(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return pipeline.NewPipeline(cfg, st), st, nil
}
