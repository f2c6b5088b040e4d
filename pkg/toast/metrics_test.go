package toast

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type mapStore map[string]any

func (s mapStore) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

func (s mapStore) Flash(key string, value any) {
	s[key] = value
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	tr := New(mapStore{}, WithToasterMetrics(m))
	tr.Success("a").Success("b").Error("c")
	tr.Flash()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.flashedTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.flashedTotal.WithLabelValues("error")))

	ctx := withState(t.Context(), &requestState{toaster: tr, metrics: m})
	Shared(ctx)
	Shared(ctx)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.deliveredTotal))

	m.kept()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keptTotal))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.flashed(LevelInfo)
		m.delivered(1)
		m.kept()
	})
}

func TestMetrics_Namespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, WithNamespace("app"), WithSubsystem("ui"))
	m.kept()

	families, err := reg.Gather()
	assert.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "app_ui_kept_total")
}
