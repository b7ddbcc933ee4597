package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/veritium/veritium/internal/model"
)

// mockAssessor implements Assessor
type mockAssessor struct {
	shouldError bool
}

func (m *mockAssessor) Assess(ctx context.Context, documentID, claim string) (*model.Assessment, error) {
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.shouldError {
		return nil, errors.New("assess error")
	}
	return &model.Assessment{
		ID:         "asm-" + claim,
		DocumentID: documentID,
		UserClaim:  claim,
	}, nil
}

func TestBatchAssessor_AssessClaims(t *testing.T) {
	assessor := &mockAssessor{}
	batch := NewBatchAssessor(assessor, 2)

	claims := []string{"claim one", "claim two", "claim three"}
	results := batch.AssessClaims(context.Background(), "doc-1", claims)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("unexpected error for %q: %v", res.Claim, res.Err)
			continue
		}
		if res.Assessment == nil {
			t.Errorf("expected assessment for %q", res.Claim)
			continue
		}
		if res.Assessment.DocumentID != "doc-1" {
			t.Errorf("unexpected document ID %q", res.Assessment.DocumentID)
		}
		seen[res.Claim] = true
	}
	for _, claim := range claims {
		if !seen[claim] {
			t.Errorf("missing result for %q", claim)
		}
	}
}

func TestBatchAssessor_AssessClaims_Error(t *testing.T) {
	assessor := &mockAssessor{shouldError: true}
	batch := NewBatchAssessor(assessor, 2)

	results := batch.AssessClaims(context.Background(), "doc-1", []string{"claim one"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Assessment != nil {
		t.Error("expected nil assessment on error")
	}
}

func TestBatchAssessor_AssessClaims_Empty(t *testing.T) {
	batch := NewBatchAssessor(&mockAssessor{}, 2)

	results := batch.AssessClaims(context.Background(), "doc-1", nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestReadClaimsFromFile(t *testing.T) {
	content := `exercise reduces heart disease risk
# a comment
meditation improves sleep quality

exercise reduces heart disease risk
`

	tmpfile, err := os.CreateTemp("", "claims")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = os.Remove(tmpfile.Name())
	}()

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	claims, err := ReadClaimsFromFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ReadClaimsFromFile failed: %v", err)
	}

	expected := []string{"exercise reduces heart disease risk", "meditation improves sleep quality"}
	if len(claims) != len(expected) {
		t.Fatalf("expected %d claims, got %d: %v", len(expected), len(claims), claims)
	}
	for i, want := range expected {
		if claims[i] != want {
			t.Errorf("claim %d = %q, want %q", i, claims[i], want)
		}
	}
}

func TestReadClaimsFromFile_Missing(t *testing.T) {
	if _, err := ReadClaimsFromFile("/nonexistent/claims.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
