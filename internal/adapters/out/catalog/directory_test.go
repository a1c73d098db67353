package catalog_test

import (
	"context"
	"testing"

	"grameego/internal/adapters/out/catalog"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultDirectory(t *testing.T) {
	d, err := catalog.NewDefaultDirectory()
	require.NoError(t, err)

	shops, err := d.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, shops)

	for _, s := range shops {
		got, err := d.Get(context.Background(), s.ID())
		require.NoError(t, err)
		assert.Equal(t, s.Name(), got.Name())
		assert.Positive(t, got.ProductsCount())
	}
}

func TestDirectory_Get_Unknown(t *testing.T) {
	d, err := catalog.NewDirectory([]byte(`[{"id":"s1","name":"One","address":"Road 1","products":[]}]`))
	require.NoError(t, err)

	_, err = d.Get(context.Background(), "nope")

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewDirectory_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"malformed json", `{`},
		{"missing name", `[{"id":"s1","address":"Road 1"}]`},
		{"duplicate shop", `[{"id":"s1","name":"A","address":"R"},{"id":"s1","name":"B","address":"R"}]`},
		{"negative price", `[{"id":"s1","name":"A","address":"R","products":[{"id":"p","name":"P","price":-1}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewDirectory([]byte(tt.document))
			assert.Error(t, err)
		})
	}
}
