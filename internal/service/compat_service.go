package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"attachsearch/internal/domain"
	"attachsearch/internal/index"
	"attachsearch/internal/logger"
	"attachsearch/internal/matcher"
	"attachsearch/internal/registry"
)

// CompatibilityServiceImpl owns one loaded corpus and answers queries over it.
type CompatibilityServiceImpl struct {
	loader  domain.VehicleLoader
	opts    matcher.Options
	log     *log.Logger
	reg     *registry.Registry
	idx     *index.Index
	matcher *matcher.Matcher
	report  domain.LoadReport
	summary string
}

var _ domain.CompatibilityService = (*CompatibilityServiceImpl)(nil)

// NewCompatibilityService creates an empty service; call Ingest to load a corpus.
func NewCompatibilityService(loader domain.VehicleLoader, opts matcher.Options, lg *log.Logger) *CompatibilityServiceImpl {
	if lg == nil {
		lg = logger.Discard()
	}
	s := &CompatibilityServiceImpl{loader: loader, opts: opts, log: lg}
	s.use(nil)
	return s
}

// FromVehicles builds a ready service over already parsed records.
func FromVehicles(vehicles []*domain.Vehicle, opts matcher.Options, lg *log.Logger) *CompatibilityServiceImpl {
	s := NewCompatibilityService(nil, opts, lg)
	s.use(vehicles)
	s.report = domain.LoadReport{Vehicles: s.reg.Len()}
	s.summary = s.describe()
	return s
}

// Ingest loads the documents under paths, replacing any previous corpus,
// and returns a one-line summary of what was loaded.
func (s *CompatibilityServiceImpl) Ingest(ctx context.Context, paths []string) (string, error) {
	if s.loader == nil {
		return "", fmt.Errorf("no loader configured")
	}
	vehicles, report, err := s.loader.Load(ctx, paths)
	if err != nil {
		return "", fmt.Errorf("load vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		return "", fmt.Errorf("%w in %d file(s)", domain.ErrNoVehicles, report.Files)
	}
	s.use(vehicles)
	s.report = report
	s.summary = s.describe()

	for _, name := range s.reg.Duplicates() {
		s.log.Debug("duplicate full name, first one wins lookups", "name", name)
	}
	st := s.idx.Stats()
	s.log.Info("corpus loaded",
		"files", report.Files,
		"vehicles", st.Vehicles,
		"connectors", st.Connectors,
		"issues", len(report.Issues))
	return s.summary, nil
}

func (s *CompatibilityServiceImpl) use(vehicles []*domain.Vehicle) {
	s.reg = registry.New(vehicles)
	s.idx = index.Build(s.reg)
	s.matcher = matcher.New(s.idx, s.opts)
}

func (s *CompatibilityServiceImpl) describe() string {
	st := s.idx.Stats()
	out := fmt.Sprintf("%d vehicles in %d kinds, %d connector types", st.Vehicles, len(s.reg.GroupByKind()), st.Connectors)
	if n := len(s.report.Issues); n > 0 {
		out += fmt.Sprintf(" (%d document issues)", n)
	}
	return out
}

// Summary describes the loaded corpus.
func (s *CompatibilityServiceImpl) Summary() string { return s.summary }

// Report returns the details of the last load.
func (s *CompatibilityServiceImpl) Report() domain.LoadReport { return s.report }

// Vehicles returns every vehicle in load order.
func (s *CompatibilityServiceImpl) Vehicles() []*domain.Vehicle { return s.reg.All() }

// GroupByKind returns the corpus partitioned by kind.
func (s *CompatibilityServiceImpl) GroupByKind() []domain.KindGroup { return s.reg.GroupByKind() }

// Find resolves a full name. A miss is a normal outcome, reported as false.
func (s *CompatibilityServiceImpl) Find(fullName string) (*domain.Vehicle, bool) {
	return s.reg.FindByFullName(fullName)
}

// Matches runs both compatibility directions for v.
func (s *CompatibilityServiceImpl) Matches(v *domain.Vehicle) domain.Compatibility {
	return s.matcher.Compatibility(v)
}

// Connectors lists every connector type with per-side vehicle counts.
func (s *CompatibilityServiceImpl) Connectors() []domain.ConnectorUsage {
	return s.idx.Usage()
}
