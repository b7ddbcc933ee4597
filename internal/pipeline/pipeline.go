package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veritium/veritium/internal/assess"
	"github.com/veritium/veritium/internal/embed"
	"github.com/veritium/veritium/internal/explain"
	"github.com/veritium/veritium/internal/extract"
	"github.com/veritium/veritium/internal/ingest"
	"github.com/veritium/veritium/internal/model"
	"github.com/veritium/veritium/internal/quality"
	"github.com/veritium/veritium/internal/similarity"
	"github.com/veritium/veritium/internal/stance"
	"github.com/veritium/veritium/internal/store"
)

// Pipeline wires ingestion, scoring, and explanation into the two core
// operations: ingest a document, assess a claim against it.
type Pipeline struct {
	cfg        *model.Config
	store      *store.Store
	fetcher    *ingest.Fetcher
	extractor  *extract.Extractor
	quality    *quality.Scorer
	similarity *similarity.Engine
	stance     *stance.Classifier
	aggregator *assess.Aggregator
	explainer  *explain.Synthesizer
}

// NewPipeline creates a pipeline backed by the given store
func NewPipeline(cfg *model.Config, st *store.Store) *Pipeline {
	var robots *ingest.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = ingest.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Pipeline{
		cfg:        cfg,
		store:      st,
		fetcher:    ingest.NewFetcher(cfg.HTTP, robots),
		extractor:  extract.NewExtractor(),
		quality:    quality.NewScorer(),
		similarity: similarity.NewEngine(embed.NewHandle(cfg.Embedding, cfg.Cache)),
		stance:     stance.NewClassifier(),
		aggregator: assess.NewAggregator(),
		explainer:  explain.NewSynthesizer(),
	}
}

// DocumentMeta carries optional metadata supplied alongside pasted text
type DocumentMeta struct {
	Title    string
	Authors  []string
	Abstract string
	DOI      string
}

// IngestText stores pasted document text: claims are extracted and the
// methodological quality score computed once, at ingestion.
func (p *Pipeline) IngestText(ctx context.Context, text string, meta DocumentMeta) (*model.Document, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("document text is empty")
	}
	return p.ingest(ctx, text, meta, "", "text")
}

// IngestURL fetches a URL, extracts its visible text, and stores it as a
// document.
func (p *Pipeline) IngestURL(ctx context.Context, rawURL string) (*model.Document, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	title, text, err := ingest.ExtractText(fetched.HTML)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	if title == "" {
		title = ingest.SubjectFromURL(fetched.FinalURL)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no visible text at %s", fetched.FinalURL)
	}

	return p.ingest(ctx, text, DocumentMeta{Title: title}, fetched.FinalURL, "url")
}

func (p *Pipeline) ingest(ctx context.Context, text string, meta DocumentMeta, sourceURL, sourceType string) (*model.Document, error) {
	claims := p.extractor.Extract(text)
	qa := p.quality.DetailedAssessment(text)

	doc := &model.Document{
		ID:                 uuid.New().String(),
		Title:              meta.Title,
		Authors:            meta.Authors,
		Abstract:           meta.Abstract,
		Content:            text,
		DOI:                meta.DOI,
		URL:                sourceURL,
		SourceType:         sourceType,
		ExtractedClaims:    claims,
		MethodQualityScore: qa.Breakdown.Overall,
		CreatedAt:          time.Now().UTC(),
	}
	if doc.Title == "" {
		doc.Title = "Untitled document"
	}
	// Prefer an explicit DOI; fall back to one mined from the text
	if doc.DOI == "" && qa.Details.DOIFound != "" {
		doc.DOI = qa.Details.DOIFound
	}

	if err := p.store.SaveDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Assess scores a user claim against a stored document and persists the
// resulting assessment. Similarity and stance run concurrently; the quality
// score was computed at ingestion and is reused.
func (p *Pipeline) Assess(ctx context.Context, documentID, userClaim string) (*model.Assessment, error) {
	if strings.TrimSpace(userClaim) == "" {
		return nil, fmt.Errorf("claim is empty")
	}

	doc, err := p.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var simResult model.SimilarityResult
	var stanceResult model.StanceResult

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		simResult = p.similarity.Analyze(ctx, userClaim, doc.ExtractedClaims, doc.Content)
	}()
	go func() {
		defer wg.Done()
		stanceResult = p.stance.Classify(userClaim, doc.Content)
	}()
	wg.Wait()

	assessment := p.aggregator.Aggregate(doc, userClaim, simResult, stanceResult, doc.MethodQualityScore)
	assessment.Explanation = p.explainer.Explain(userClaim, doc, simResult, stanceResult, assessment.ConfidenceScore)

	if err := p.store.SaveAssessment(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// ExplainAssessment rebuilds the sectioned explanation for a stored
// assessment.
func (p *Pipeline) ExplainAssessment(ctx context.Context, assessmentID string) (*explain.DetailedExplanation, error) {
	a, err := p.store.GetAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	doc, err := p.store.GetDocument(ctx, a.DocumentID)
	if err != nil {
		return nil, err
	}

	simResult := model.SimilarityResult{
		SimilarityScore:  a.SimilarityScore,
		EvidenceSnippets: a.EvidenceSnippets,
	}
	stanceResult := model.StanceResult{
		Stance:          a.Stance,
		EntailmentScore: a.EntailmentScore,
	}
	qa := p.quality.DetailedAssessment(doc.Content)

	detailed := p.explainer.ExplainDetailed(a.UserClaim, doc, simResult, stanceResult, a.ConfidenceScore, qa)
	return &detailed, nil
}

// Store exposes the backing store for read-side handlers
func (p *Pipeline) Store() *store.Store {
	return p.store
}
