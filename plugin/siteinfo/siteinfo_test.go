package siteinfo

import (
	"context"
	"testing"

	"zhi-theme/core/module"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	assert.Equal(t, module.KindData, m.Kind)
	assert.Equal(t, "zhi", m.Exports.(Info).Theme)

	out, err := m.Run(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, out)
}
