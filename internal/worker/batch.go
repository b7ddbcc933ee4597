package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veritium/veritium/internal/model"
)

// Assessor scores a single claim against a stored document
type Assessor interface {
	Assess(ctx context.Context, documentID, claim string) (*model.Assessment, error)
}

// AssessJob assesses one claim against one document
type AssessJob struct {
	DocumentID string
	Claim      string
	Assessor   Assessor
}

// Execute runs the assessment
func (j *AssessJob) Execute(ctx context.Context) Result {
	assessment, err := j.Assessor.Assess(ctx, j.DocumentID, j.Claim)
	if err != nil {
		return &AssessmentResult{Claim: j.Claim, Err: err}
	}
	return &AssessmentResult{Claim: j.Claim, Assessment: assessment}
}

// AssessmentResult is the outcome of one batch claim assessment
type AssessmentResult struct {
	Claim      string
	Assessment *model.Assessment
	Err        error
}

// GetError returns the error from the assessment
func (r *AssessmentResult) GetError() error {
	return r.Err
}

// BatchAssessor assesses multiple claims against a document concurrently
type BatchAssessor struct {
	assessor    Assessor
	concurrency int
}

// NewBatchAssessor creates a batch assessor
func NewBatchAssessor(assessor Assessor, concurrency int) *BatchAssessor {
	return &BatchAssessor{
		assessor:    assessor,
		concurrency: concurrency,
	}
}

// AssessClaims assesses the claims concurrently. Results arrive in
// completion order, not input order.
func (b *BatchAssessor) AssessClaims(ctx context.Context, documentID string, claims []string) []*AssessmentResult {
	if len(claims) == 0 {
		return []*AssessmentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&AssessJob{
			DocumentID: documentID,
			Claim:      claim,
			Assessor:   b.assessor,
		})
	}

	results := pool.Wait()

	assessResults := make([]*AssessmentResult, len(results))
	for i, result := range results {
		assessResults[i] = result.(*AssessmentResult)
	}
	return assessResults
}

// AssessFile reads claims from a file and assesses them concurrently
func (b *BatchAssessor) AssessFile(ctx context.Context, documentID, filePath string) ([]*AssessmentResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return b.AssessClaims(ctx, documentID, claims), nil
}

// ReadClaimsFromFile reads claims from a file, one per line. Blank lines and
// # comments are skipped; duplicate lines are submitted once.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return claims, nil
}
