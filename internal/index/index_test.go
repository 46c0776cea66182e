package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachsearch/internal/domain"
	"attachsearch/internal/registry"
)

func fixture() (*registry.Registry, []*domain.Vehicle) {
	vs := []*domain.Vehicle{
		domain.MustVehicle(domain.VehicleSpec{Brand: "A", Name: "Tractor", Kind: "tractor",
			AttacherTypes: []string{"trailer", "threePoint", "trailer"}}),
		domain.MustVehicle(domain.VehicleSpec{Brand: "B", Name: "Trailer", Kind: "trailer",
			AttacherTypes: []string{"trailerLow"}, InputAttacherTypes: []string{"trailer"}}),
		domain.MustVehicle(domain.VehicleSpec{Brand: "C", Name: "Plough", Kind: "plough",
			InputAttacherTypes: []string{"threePoint"}}),
		domain.MustVehicle(domain.VehicleSpec{Brand: "D", Name: "Dolly", Kind: "trailer",
			AttacherTypes: []string{"trailer"}, InputAttacherTypes: []string{"trailerLow", "trailer"}}),
	}
	return registry.New(vs), vs
}

func TestBuild_FanOut(t *testing.T) {
	reg, vs := fixture()
	x := Build(reg)

	assert.Equal(t, []*domain.Vehicle{vs[0], vs[3]}, x.Attachers("trailer"))
	assert.Equal(t, []*domain.Vehicle{vs[0]}, x.Attachers("threePoint"))
	assert.Equal(t, []*domain.Vehicle{vs[1], vs[3]}, x.InputAttachers("trailer"))
	assert.Empty(t, x.Attachers("unknown"))
	assert.Same(t, reg, x.Registry())
}

func TestCandidates_RegistryOrder(t *testing.T) {
	reg, _ := fixture()
	x := Build(reg)

	assert.Equal(t, []int{0, 1, 3}, x.AttacherCandidates([]string{"trailerLow", "trailer"}))
	assert.Equal(t, []int{1, 2, 3}, x.InputAttacherCandidates([]string{"trailer", "threePoint"}))
	assert.Empty(t, x.AttacherCandidates(nil))
	assert.Empty(t, x.InputAttacherCandidates([]string{"nothing"}))
}

func TestConnectorTypesAndUsage(t *testing.T) {
	reg, _ := fixture()
	x := Build(reg)

	assert.Equal(t, []string{"threePoint", "trailer", "trailerLow"}, x.ConnectorTypes())

	usage := x.Usage()
	require.Len(t, usage, 3)
	assert.Equal(t, domain.ConnectorUsage{Connector: "trailer", Attachers: 2, InputAttachers: 2}, usage[1])
	assert.Equal(t, domain.ConnectorUsage{Connector: "trailerLow", Attachers: 1, InputAttachers: 1}, usage[2])
}

func TestStats(t *testing.T) {
	reg, _ := fixture()
	s := Build(reg).Stats()

	assert.Equal(t, 4, s.Vehicles)
	assert.Equal(t, 3, s.Connectors)
	// duplicate "trailer" on the tractor collapses into one posting
	assert.Equal(t, uint64(4), s.AttacherRefs)
	assert.Equal(t, uint64(4), s.InputRefs)
}

func TestBuild_EmptyRegistry(t *testing.T) {
	x := Build(registry.New(nil))
	assert.Empty(t, x.ConnectorTypes())
	assert.Empty(t, x.Usage())
	assert.Equal(t, Stats{}, x.Stats())
}
