package chem_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appchem "github.com/turtacn/SmilesKit/internal/application/chem"
	"github.com/turtacn/SmilesKit/internal/config"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SmilesKit/pkg/errors"
	chemtypes "github.com/turtacn/SmilesKit/pkg/types/chem"
)

func newService(opts ...appchem.Option) *appchem.Service {
	opts = append([]appchem.Option{appchem.WithLogger(logging.NewNopLogger())}, opts...)
	return appchem.NewService(config.Defaults().Chem, opts...)
}

func TestService_Parse(t *testing.T) {
	t.Parallel()

	svc := newService()
	result, err := svc.Parse(context.Background(), "CCO")
	require.NoError(t, err)
	require.Len(t, result.Molecules, 1)
	assert.Equal(t, 3, result.Molecules[0].AtomCount())
	// enrichment ran: the oxygen carries its hydrogen
	assert.Equal(t, 1, result.Molecules[0].Atoms[2].ImplicitH)
}

func TestService_Canonical(t *testing.T) {
	t.Parallel()

	svc := newService(appchem.WithMetrics(prometheus.NewPipelineMetrics()))

	out, diags, err := svc.Canonical(context.Background(), "OCC")
	require.NoError(t, err)
	assert.Equal(t, "CCO", out)
	assert.Empty(t, diags)

	out2, _, err := svc.Canonical(context.Background(), "C(O)C")
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

func TestService_CanonicalRejectsInvalid(t *testing.T) {
	t.Parallel()

	svc := newService()
	_, diags, err := svc.Canonical(context.Background(), "C1CC")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSyntaxError))
	assert.NotEmpty(t, diags)
}

func TestService_AtomGuard(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults().Chem
	cfg.MaxAtoms = 5
	svc := appchem.NewService(cfg, appchem.WithLogger(logging.NewNopLogger()))

	_, err := svc.Parse(context.Background(), "CCCCCCCCCC")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMoleculeTooLarge))

	_, err = svc.Parse(context.Background(), "CCC")
	assert.NoError(t, err)
}

func TestService_AnalyzeRings(t *testing.T) {
	t.Parallel()

	svc := newService()
	infos, diags, err := svc.AnalyzeRings(context.Background(), "c1ccc2ccccc2c1")
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, infos, 1)
	assert.Len(t, infos[0].SSSR, 2)

	matrix, _, err := svc.RingRelations(context.Background(), "c1ccc2ccccc2c1")
	require.NoError(t, err)
	require.Len(t, matrix, 1)
	assert.Equal(t, chemtypes.RelationFused, matrix[0][0][1])
}

func TestService_CanonicalUsesCache(t *testing.T) {
	t.Parallel()

	cache := &fakeCache{store: map[string]string{}}
	svc := newService(appchem.WithCache(cache))

	first, _, err := svc.Canonical(context.Background(), "OCC")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, _, err := svc.Canonical(context.Background(), "OCC")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second call must be served from cache")
	assert.GreaterOrEqual(t, cache.gets, 2)
}

// fakeCache is an in-memory redis.Cache stand-in.
type fakeCache struct {
	store map[string]string
	gets  int
	sets  int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	f.gets++
	v, ok := f.store[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.sets++
	f.store[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }
func (f *fakeCache) Close() error                 { return nil }
