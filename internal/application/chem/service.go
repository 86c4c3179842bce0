// Package chem is the application service over the SMILES pipeline.  It wires
// the pure domain passes together with logging, metrics, input guards, and
// the optional canonical-result cache, and is the single entry point the CLI
// and HTTP interfaces call.
package chem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/domain/canon"
	"github.com/turtacn/SmilesKit/internal/domain/graph"
	"github.com/turtacn/SmilesKit/internal/domain/perception"
	"github.com/turtacn/SmilesKit/internal/domain/rings"
	"github.com/turtacn/SmilesKit/internal/domain/smiles"
	redisc "github.com/turtacn/SmilesKit/internal/infrastructure/cache/redis"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SmilesKit/pkg/errors"
	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

// Service exposes the three pipeline operations.  A zero-dependency instance
// (nop logger, nil metrics, nil cache) behaves identically minus telemetry.
type Service struct {
	cfg     config.ChemConfig
	log     logging.Logger
	metrics *prometheus.PipelineMetrics
	cache   redisc.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithLogger injects the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics injects the pipeline metrics.
func WithMetrics(m *prometheus.PipelineMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache injects the canonical-result cache.
func WithCache(c redisc.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// NewService builds a Service with the given pipeline configuration.
func NewService(cfg config.ChemConfig, opts ...Option) *Service {
	if cfg.MaxRingSize <= 0 {
		cfg.MaxRingSize = rings.DefaultMaxCycleLen
	}
	s := &Service{cfg: cfg, log: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("chem")
	return s
}

// Parse tokenizes and parses the input, enriches the valid molecules, and
// returns the result with all diagnostics.  It never returns an error for bad
// chemistry; errors are reserved for guard violations.
func (s *Service) Parse(ctx context.Context, input string) (*smiles.ParseResult, error) {
	if err := s.guard(input); err != nil {
		return nil, err
	}

	start := time.Now()
	result := smiles.Parse(input)
	parseElapsed := time.Since(start)

	atoms := 0
	for _, m := range result.Molecules {
		atoms += m.AtomCount()
	}
	if s.cfg.MaxAtoms > 0 && atoms > s.cfg.MaxAtoms {
		s.metrics.ObserveParse(prometheus.OutcomeError, parseElapsed, atoms)
		return nil, errors.New(errors.CodeMoleculeTooLarge, "input exceeds the configured atom limit").
			WithDetail(input[:min(len(input), 64)])
	}

	enrichStart := time.Now()
	result.Diagnostics = append(result.Diagnostics,
		perception.EnrichAll(result.Molecules, s.cfg.MaxRingSize)...)
	s.metrics.ObserveEnrich(time.Since(enrichStart))

	outcome := prometheus.OutcomeOK
	if result.HasErrors() {
		outcome = prometheus.OutcomeError
	}
	s.metrics.ObserveParse(outcome, parseElapsed, atoms)
	for _, d := range result.Diagnostics {
		s.metrics.ObserveDiagnostics(string(d.Severity), 1)
	}

	s.log.Debug("parsed SMILES",
		logging.Int("molecules", len(result.Molecules)),
		logging.Int("atoms", atoms),
		logging.Int("diagnostics", len(result.Diagnostics)),
		logging.Duration("elapsed", parseElapsed))

	return result, nil
}

// Emit serialises molecules per the options.  Canonical emission assumes the
// molecules passed in are enriched (Parse output always is).
func (s *Service) Emit(mols []*graph.Molecule, opts chemtypes.EmitOptions) (string, error) {
	start := time.Now()
	out, err := canon.Emit(mols, opts)
	s.metrics.ObserveCanonicalize(time.Since(start))
	if err != nil {
		s.log.Error("emission failed", logging.Err(err))
		return "", err
	}
	return out, nil
}

// Canonical runs the full pipeline input → canonical SMILES.  Results are
// served from the cache when one is configured; cache failures degrade to a
// recompute.
func (s *Service) Canonical(ctx context.Context, input string) (string, []chemtypes.Diagnostic, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKey(input)); err == nil && ok {
			s.metrics.ObserveCache(true)
			return cached, nil, nil
		}
		s.metrics.ObserveCache(false)
	}

	result, err := s.Parse(ctx, input)
	if err != nil {
		return "", nil, err
	}
	if result.HasErrors() || len(validMolecules(result.Molecules)) == 0 {
		return "", result.Diagnostics, errors.New(errors.CodeSyntaxError, "input did not produce a valid molecule")
	}

	out, err := s.Emit(validMolecules(result.Molecules), chemtypes.EmitOptions{Canonical: true})
	if err != nil {
		return "", result.Diagnostics, err
	}

	if s.cache != nil {
		// best effort; the value is recomputable
		_ = s.cache.Set(ctx, cacheKey(input), out, 0)
	}
	return out, result.Diagnostics, nil
}

// AnalyzeRings parses the input and returns ring information per molecule,
// for consumers that need SSSR and classification without emission.
func (s *Service) AnalyzeRings(ctx context.Context, input string) ([]*graph.RingInfo, []chemtypes.Diagnostic, error) {
	result, err := s.Parse(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	mols := validMolecules(result.Molecules)
	if result.HasErrors() || len(mols) == 0 {
		return nil, result.Diagnostics, errors.New(errors.CodeSyntaxError, "input did not produce a valid molecule")
	}

	out := make([]*graph.RingInfo, 0, len(mols))
	for _, m := range mols {
		out = append(out, rings.Analyze(m, s.cfg.MaxRingSize))
	}
	return out, result.Diagnostics, nil
}

// RingRelations returns the pairwise SSSR classification matrix per molecule.
func (s *Service) RingRelations(ctx context.Context, input string) ([][][]chemtypes.RingRelation, []chemtypes.Diagnostic, error) {
	result, err := s.Parse(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	mols := validMolecules(result.Molecules)
	if result.HasErrors() || len(mols) == 0 {
		return nil, result.Diagnostics, errors.New(errors.CodeSyntaxError, "input did not produce a valid molecule")
	}

	out := make([][][]chemtypes.RingRelation, 0, len(mols))
	for _, m := range mols {
		out = append(out, rings.ClassifyAll(m, s.cfg.MaxRingSize))
	}
	return out, result.Diagnostics, nil
}

func (s *Service) guard(input string) error {
	if input == "" {
		return nil
	}
	// A generous byte-level pre-check so a pathological input cannot allocate
	// an arbitrarily large token stream before the atom guard runs.
	if s.cfg.MaxAtoms > 0 && len(input) > s.cfg.MaxAtoms*16 {
		return errors.New(errors.CodeMoleculeTooLarge, "input exceeds the configured atom limit")
	}
	return nil
}

func validMolecules(mols []*graph.Molecule) []*graph.Molecule {
	out := make([]*graph.Molecule, 0, len(mols))
	for _, m := range mols {
		if !m.Invalid && m.AtomCount() > 0 {
			out = append(out, m)
		}
	}
	return out
}

func cacheKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return "canonical:" + hex.EncodeToString(sum[:])
}
