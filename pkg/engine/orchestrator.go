package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/user/fraudscope/pkg/config"
	"github.com/user/fraudscope/pkg/forensics"
	"github.com/user/fraudscope/pkg/logging"
	"github.com/user/fraudscope/pkg/statute"
)

// Document is one analysis request: plain text plus an optional financial
// statement pair (and historical statements for the digit test).
type Document struct {
	ID         string
	Text       string
	Current    *forensics.FinancialStatement
	Previous   *forensics.FinancialStatement
	Historical []*forensics.FinancialStatement
}

// AnalysisReport is the pipeline output for one document. Findings are
// sorted by descending severity; SkippedAnalyzers records, for audit, every
// analyzer that did not contribute and why.
type AnalysisReport struct {
	DocumentID       string                 `json:"document_id,omitempty"`
	Findings         []Finding              `json:"findings"`
	Actionable       []Finding              `json:"actionable"`
	OverallRisk      RiskAssessment         `json:"overall_risk"`
	TextScore        *TextScore             `json:"text_score,omitempty"`
	Forensics        *forensics.ScoreResult `json:"forensics,omitempty"`
	Anomaly          *AnomalyResult         `json:"anomaly,omitempty"`
	Package          ProsecutionPackage     `json:"prosecution_package"`
	SkippedAnalyzers []string               `json:"skipped_analyzers,omitempty"`
}

// Pipeline wires the four detection levels, the aggregator, the filter, and
// the compiler. It holds only immutable state after construction and is safe
// for concurrent use across documents.
type Pipeline struct {
	cfg       *config.Config
	scanner   *PatternScanner
	scorer    *ForensicScorer
	forensics *forensics.Engine
	anomaly   *AnomalyDetector
	aggregate *RiskAggregator
	filter    *ActionabilityFilter
	compiler  *ProsecutionCompiler
}

// NewPipeline builds a pipeline around a read-only statute index. The index
// must be fully built before the first analysis call and is never mutated by
// the pipeline.
func NewPipeline(cfg *config.Config, index *statute.Index) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	crossRefs := []string(nil)
	if index != nil {
		crossRefs = index.Citations()
	}
	return &Pipeline{
		cfg:       cfg,
		scanner:   NewPatternScanner(index, DefaultRules(), crossRefs),
		scorer:    NewForensicScorer(cfg.TextAlertThreshold),
		forensics: forensics.NewEngine(),
		anomaly:   NewAnomalyDetector(),
		aggregate: NewRiskAggregator(cfg.TextFraudWeight, cfg.AnomalyWeight),
		filter:    NewActionabilityFilter(cfg.MinActionableConfidence, cfg.MinActionableSeverity),
		compiler:  NewProsecutionCompiler(),
	}
}

// AnalyzeDocument runs the four detection levels concurrently, each bounded
// by its configured timeout and failure-isolated: a panicking, erroring, or
// timed-out analyzer contributes nothing and is recorded in
// SkippedAnalyzers, while the rest of the pipeline still produces output.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, doc Document) *AnalysisReport {
	report := &AnalysisReport{DocumentID: doc.ID}

	var (
		patternFindings []Finding
		textScore       TextScore
		textFinding     *Finding
		forensicResult  *forensics.ScoreResult
		anomalyResult   *AnomalyResult
	)

	hasStatements := doc.Current != nil && doc.Previous != nil

	// mu guards the result slots above. A timed-out analyzer is abandoned
	// but may still be running; its late commit is discarded because its
	// context is already done.
	var mu sync.Mutex
	var wg sync.WaitGroup
	skip := func(name, reason string) {
		mu.Lock()
		report.SkippedAnalyzers = append(report.SkippedAnalyzers, name+": "+reason)
		mu.Unlock()
	}
	commit := func(ctx context.Context, apply func()) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() == nil {
			apply()
		}
	}

	run := func(name string, fn func(context.Context) error) {
		if !p.cfg.AnalyzerEnabled(name) {
			skip(name, "disabled by configuration")
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runIsolated(ctx, name, p.cfg.AnalyzerTimeout(name), fn); err != nil {
				logging.Logger.Warnw("analyzer skipped", "analyzer", name, "error", err)
				skip(name, err.Error())
			}
		}()
	}

	run("pattern", func(ctx context.Context) error {
		findings := p.scanner.Scan(doc.Text)
		commit(ctx, func() { patternFindings = findings })
		return nil
	})
	run("text", func(ctx context.Context) error {
		score, finding := p.scorer.Score(doc.Text)
		commit(ctx, func() { textScore, textFinding = score, finding })
		return nil
	})
	if hasStatements {
		run("forensic", func(ctx context.Context) error {
			res, err := p.forensics.Analyze(doc.Current, doc.Previous, doc.Historical...)
			if err != nil {
				return err
			}
			commit(ctx, func() { forensicResult = res })
			return nil
		})
		run("anomaly", func(ctx context.Context) error {
			res := p.anomaly.Detect(RatiosFromStatements(doc.Current, doc.Previous))
			commit(ctx, func() { anomalyResult = &res })
			return nil
		})
	} else {
		skip("forensic", "no financial statement pair supplied")
		skip("anomaly", "no financial statement pair supplied")
	}

	wg.Wait()
	mu.Lock()
	defer mu.Unlock()

	report.Findings = append(report.Findings, patternFindings...)
	if textFinding != nil {
		report.Findings = append(report.Findings, *textFinding)
	}
	report.TextScore = &textScore
	if forensicResult != nil {
		report.Forensics = forensicResult
		if f := forensicFinding(forensicResult); f != nil {
			report.Findings = append(report.Findings, *f)
		}
	}
	if anomalyResult != nil {
		report.Anomaly = anomalyResult
		if f := anomalyFinding(anomalyResult); f != nil {
			report.Findings = append(report.Findings, *f)
		}
	}

	SortFindings(report.Findings)

	correlation := correlationSignal(patternFindings, forensicResult, anomalyResult)
	report.OverallRisk = p.aggregate.Aggregate(textScore.Score, anomalyResult, correlation)
	report.Actionable = p.filter.Filter(report.Findings)
	report.Package = p.compiler.Compile(report.Actionable)

	logging.Logger.Infow("document analysis complete",
		"document", doc.ID,
		"findings", len(report.Findings),
		"actionable", len(report.Actionable),
		"risk", report.OverallRisk.Score,
		"skipped", len(report.SkippedAnalyzers))
	return report
}

// AnalyzeBatch fans documents out across a bounded worker pool. Documents
// are independent; the only shared state is the read-only statute index.
// Reports come back in input order.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, docs []Document) []*AnalysisReport {
	workers := p.cfg.BatchWorkers
	if workers < 1 {
		workers = 1
	}

	reports := make([]*AnalysisReport, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i] = p.AnalyzeDocument(ctx, docs[i])
			}
		}()
	}

	for i := range docs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			i = len(docs)
		}
	}
	close(jobs)
	wg.Wait()
	return reports
}

// runIsolated executes an analyzer with a timeout and panic recovery. The
// orchestration boundary recovers everything; callers above it never see a
// raw panic from a single malformed document.
func runIsolated(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("analyzer %s panicked: %v", name, r)
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("analyzer %s aborted: %w", name, ctx.Err())
	}
}

// forensicFinding folds the quantitative red flags into one aggregated
// finding. No red flags means no finding; the raw scores still feed the
// aggregator and the report.
func forensicFinding(res *forensics.ScoreResult) *Finding {
	if len(res.RedFlags) == 0 {
		return nil
	}

	severity := 30.0
	switch res.Beneish.Band {
	case forensics.ManipulationCritical:
		severity = 85
	case forensics.ManipulationHigh:
		severity = 70
	case forensics.ManipulationMedium:
		severity = 50
	}
	severity += 5 * float64(len(res.RedFlags)-1)

	f := NewFinding(KindFinancialForensics, "financial_forensics",
		"Quantitative forensic models flagged the financial statements",
		clamp(70+5*float64(len(res.RedFlags)), 0, 95), severity)
	f.Evidence = append(f.Evidence, res.RedFlags...)
	f.EvidenceKind = "quantitative_model"
	f.TriggerExplanation = fmt.Sprintf(
		"M-Score %.2f (%s), Z-Score %.2f (%s), F-Score %d (%s), Benford passed=%v",
		res.Beneish.Score, res.Beneish.Band, res.Altman.Z, res.Altman.Zone,
		res.Piotroski.Score, res.Piotroski.Rating, res.Benford.Passed)
	return &f
}

// anomalyFinding surfaces strong outlier scores as a finding; weak scores
// only contribute through the aggregator.
func anomalyFinding(res *AnomalyResult) *Finding {
	if res.Score < 5 {
		return nil
	}
	f := NewFinding(KindAnomalySignal, "anomaly_detector",
		"Financial ratios are statistical outliers against industry benchmarks",
		res.Confidence*100, res.Score*10)
	f.Evidence = append(f.Evidence, res.Patterns...)
	f.Evidence = append(f.Evidence, res.Insights...)
	f.EvidenceKind = "statistical_outlier"
	return &f
}

// correlationSignal measures cross-signal co-occurrence: pattern hits
// alongside quantitative red flags strengthen both, the way correlated
// findings escalate severity in multi-tool scanners.
func correlationSignal(patternFindings []Finding, forensicResult *forensics.ScoreResult, anomaly *AnomalyResult) float64 {
	quant := (forensicResult != nil && len(forensicResult.RedFlags) > 0) ||
		(anomaly != nil && anomaly.Score > 5)
	if len(patternFindings) == 0 || !quant {
		return 0
	}

	signal := 0.7
	for _, f := range patternFindings {
		if f.Kind == KindStatutoryViolation && forensicResult != nil && len(forensicResult.RedFlags) > 0 {
			signal = 1.0
			break
		}
	}
	return signal
}
