package stub

import (
	"testing"

	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/stretchr/testify/assert"
)

func TestStubPlatform(t *testing.T) {
	p := New()

	// Verify it implements Platform interface
	var _ platform.Platform = p

	assert.NotEmpty(t, p.Name())
	assert.False(t, p.IsSupported())
}

func TestStubMonitorService(t *testing.T) {
	p := New()

	svc, err := p.OpenMonitorService()
	assert.Nil(t, svc)
	assert.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrUnsupported)
	assert.Contains(t, err.Error(), "not available")
}

func TestStubTopology(t *testing.T) {
	p := New()

	displays, err := p.Topology().Displays()
	assert.Empty(t, displays)
	assert.ErrorIs(t, err, platform.ErrUnsupported)
}
