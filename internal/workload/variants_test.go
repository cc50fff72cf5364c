package workload

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psantana5/fieldbench/internal/battery"
)

func TestGetter_AllDepthsReadRoman(t *testing.T) {
	rec := &Record{Ordinal: 7, Roman: "ⅶ"}
	for depth := 0; depth <= MaxAliasDepth; depth++ {
		t.Run(GetterName(depth), func(t *testing.T) {
			assert.Equal(t, "ⅶ", Getter(depth)(rec))
		})
	}
}

func TestGetter_NegativeDepthIsDirect(t *testing.T) {
	assert.Equal(t, RomanLiteral, Getter(-3)(&SampleRecord))
}

func TestGetter_DepthBeyondCatalog(t *testing.T) {
	assert.Equal(t, RomanLiteral, Getter(MaxAliasDepth+4)(&SampleRecord))
}

func TestCatalog_DescriptionsNameTheMechanism(t *testing.T) {
	for _, v := range Catalog(MaxAliasDepth) {
		switch {
		case strings.HasPrefix(v.Name, "index-"):
			assert.Contains(t, v.Description, "tuple position", v.Name)
		case strings.HasPrefix(v.Name, "getter-"):
			assert.Contains(t, v.Description, "wrapping calls", v.Name)
		}
	}
}

func TestRecord_Tuple(t *testing.T) {
	tup := SampleRecord.Tuple()
	assert.Equal(t, SampleRecord.Ordinal, tup[0])
	assert.Equal(t, RomanLiteral, tup[RomanIndex])
	assert.Same(t, SampleRecord.Big, tup[2])
	assert.Equal(t, tup, SampleTuple)
}

func TestCatalog_EveryVariantReturnsRoman(t *testing.T) {
	catalog := Catalog(MaxAliasDepth)
	require.Len(t, catalog, 5+MaxAliasDepth+1)

	seen := map[string]bool{}
	for _, v := range catalog {
		assert.False(t, seen[v.Name], "duplicate name %s", v.Name)
		seen[v.Name] = true
		assert.NotEmpty(t, v.Description, v.Name)
		assert.Equal(t, RomanLiteral, v.Fn(), v.Name)
	}
}

func TestCatalog_DepthClamped(t *testing.T) {
	tests := []struct {
		depth   int
		getters int
	}{
		{-1, 1},
		{0, 1},
		{2, 3},
		{MaxAliasDepth, MaxAliasDepth + 1},
		{99, MaxAliasDepth + 1},
	}

	for _, tt := range tests {
		catalog := Catalog(tt.depth)
		assert.Len(t, catalog, 5+tt.getters, "depth %d", tt.depth)
		assert.Equal(t, GetterName(tt.getters-1), catalog[len(catalog)-1].Name)
	}
}

func TestSelect(t *testing.T) {
	t.Run("empty selects all", func(t *testing.T) {
		reg, err := Select(nil, MaxAliasDepth)
		require.NoError(t, err)
		assert.Equal(t, len(Catalog(MaxAliasDepth)), reg.Len())
	})

	t.Run("keeps requested order", func(t *testing.T) {
		reg, err := Select([]string{"getter-2", "literal", "selector"}, MaxAliasDepth)
		require.NoError(t, err)
		assert.Equal(t, []string{"getter-2", "literal", "selector"}, reg.Names())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Select([]string{"literal", "nope"}, MaxAliasDepth)
		assert.ErrorIs(t, err, ErrUnknownWorkload)
	})

	t.Run("getter beyond depth is unknown", func(t *testing.T) {
		_, err := Select([]string{"getter-4"}, 2)
		assert.ErrorIs(t, err, ErrUnknownWorkload)
	})
}

func TestSelect_RunsAsBattery(t *testing.T) {
	reg, err := Select([]string{"literal", "index-const", "getter-5"}, MaxAliasDepth)
	require.NoError(t, err)

	result, err := battery.NewRunner(reg, battery.Config{}).Run(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, []string{"literal", "index-const", "getter-5"}, result.Names())
}
