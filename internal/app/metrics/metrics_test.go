package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()
	r.SetUnits(3)
	r.ObserveUpload(OutcomeSuccess, 1024)
	r.ObserveUpload(OutcomeSuccess, 1024)
	r.ObserveUpload(OutcomeFailure, 4096)
	r.ObserveRun(1500 * time.Millisecond)

	assert.Equal(t, 2.0, promtest.ToFloat64(r.uploads.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, promtest.ToFloat64(r.uploads.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 2048.0, promtest.ToFloat64(r.uploadBytes))
	assert.Equal(t, 3.0, promtest.ToFloat64(r.units))
	assert.Equal(t, 1.5, promtest.ToFloat64(r.runDuration))
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.SetUnits(2)
	r.ObserveUpload(OutcomeSuccess, 10)

	path := filepath.Join(t.TempDir(), "a2t.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `a2t_uploads_total{outcome="success"} 1`)
	assert.Contains(t, string(data), "a2t_units 2")
}

func TestWriteFileNoop(t *testing.T) {
	var r *Recorder
	assert.NoError(t, r.WriteFile("/nonexistent/dir/a2t.prom"))
	assert.NoError(t, New().WriteFile(""))
}
