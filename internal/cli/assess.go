package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	assessTimeout time.Duration
	showDetailed  bool
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess <document-id> <claim>",
	Short: "Assess a claim against an ingested document",
	Long: `Assess scores a user claim against a previously ingested document:
- Semantic similarity between the claim and the document's claims
- Stance classification (supports, contradicts, neutral)
- Aggregate confidence with an uncertainty penalty
- A template-driven explanation of the verdict

Example:
  veritium assess 3f2a... "Exercise reduces cardiovascular disease risk"
  veritium assess 3f2a... "Coffee cures cancer" --detailed
  veritium assess 3f2a... "Vitamin D prevents colds" --json`,
	Args: cobra.ExactArgs(2),
	RunE: runAssess,
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().DurationVar(&assessTimeout, "timeout", time.Minute, "assessment timeout")
	assessCmd.Flags().BoolVar(&showDetailed, "detailed", false, "print the detailed explanation sections")
	assessCmd.Flags().BoolVar(&outputJSON, "json", false, "print the assessment as JSON")

	addEmbeddingFlags(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	documentID, claim := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), assessTimeout)
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

	assessment, err := p.Assess(ctx, documentID, claim)
	if err != nil {
		return fmt.Errorf("assess failed: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	fmt.Printf("Claim:      %s\n", assessment.UserClaim)
	fmt.Printf("Stance:     %s\n", assessment.Stance)
	fmt.Printf("Confidence: %.2f\n", assessment.ConfidenceScore)
	fmt.Printf("Similarity: %.2f  Entailment: %.2f  Quality: %.2f  Evidence: %.2f\n",
		assessment.SimilarityScore, assessment.EntailmentScore,
		assessment.MethodQualityScore, assessment.EvidenceStrengthScore)
	fmt.Printf("\n%s\n", assessment.Explanation)
	fmt.Printf("\nShare ID: %s\n", assessment.ShareID)

	if showDetailed {
		detailed, err := p.ExplainAssessment(ctx, assessment.ID)
		if err != nil {
			return fmt.Errorf("explain failed: %w", err)
		}
		fmt.Printf("\nMethodology:\n  %s\n", detailed.Methodology)
		fmt.Printf("\nEvidence analysis:\n  %s\n", detailed.EvidenceAnalysis)
		fmt.Printf("\nOverclaiming:\n  %s\n", detailed.OverclaimingAssessment)
	}

	return nil
}
