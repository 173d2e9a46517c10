package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleinsmith/orthobill/internal/catalog"
)

func testNodes() []catalog.Node {
	return []catalog.Node{
		{
			Code: "XIX",
			Desc: "Injury",
			Children: []catalog.Node{
				{
					Code: "S70-S79",
					Desc: "Injuries to the hip and thigh",
					Children: []catalog.Node{
						{
							Code: "S78",
							Desc: "Traumatic amputation of hip and thigh",
							Children: []catalog.Node{
								{
									Code:     "S78.1",
									Desc:     "Traumatic amputation at level between hip and knee",
									DescFull: "Traumatic amputation of thigh at level between hip and knee",
								},
								{Code: "S78.9", Desc: "Traumatic amputation, level unspecified"},
							},
						},
					},
				},
			},
		},
		{
			Code: "XXI",
			Desc: "Factors influencing health status",
			Children: []catalog.Node{
				{Code: "Z97.1", Desc: "Presence of artificial limb"},
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	entries := catalog.Flatten(testNodes())

	// Chapter and range headings with children are skipped; S78 is kept
	// despite having children because it is a specific clinical code.
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, e.Code)
	}

	assert.Equal(t, []string{"S78", "S78.1", "S78.9", "Z97.1"}, codes)
}

func TestFlatten_FullPathAndDescription(t *testing.T) {
	entries := catalog.Flatten(testNodes())
	require.NotEmpty(t, entries)

	var s781 catalog.Entry

	for _, e := range entries {
		if e.Code == "S78.1" {
			s781 = e
		}
	}

	require.Equal(t, "S78.1", s781.Code)
	// desc_full wins over desc.
	assert.Equal(t, "Traumatic amputation of thigh at level between hip and knee", s781.Description)
	assert.Equal(t, "Injury > Injuries to the hip and thigh > Traumatic amputation of hip and thigh > Traumatic amputation at level between hip and knee", s781.FullPath)
}

func TestIndex_Search(t *testing.T) {
	ix := catalog.NewIndex(testNodes())

	t.Run("CodePrefix", func(t *testing.T) {
		results := ix.Search("S78", 10)
		require.Len(t, results, 3)
		assert.Equal(t, "S78", results[0].Code)
		assert.Equal(t, "S78.1", results[1].Code)
	})

	t.Run("CaseInsensitiveDescription", func(t *testing.T) {
		results := ix.Search("ARTIFICIAL LIMB", 10)
		require.Len(t, results, 1)
		assert.Equal(t, "Z97.1", results[0].Code)
	})

	t.Run("FullPathMatch", func(t *testing.T) {
		// "hip and thigh" only appears in ancestor descriptions for S78.9.
		results := ix.Search("injuries to the hip", 10)
		require.NotEmpty(t, results)

		for _, e := range results {
			assert.Contains(t, e.FullPath, "Injuries to the hip and thigh")
		}
	})

	t.Run("EmptyQueryReturnsCatalogOrder", func(t *testing.T) {
		results := ix.Search("   ", 2)
		require.Len(t, results, 2)
		assert.Equal(t, "S78", results[0].Code)
		assert.Equal(t, "S78.1", results[1].Code)
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, ix.Search("definitely-not-a-code", 10))
	})

	t.Run("LimitApplies", func(t *testing.T) {
		assert.Len(t, ix.Search("S78", 2), 2)
	})

	t.Run("ZeroLimitUsesDefault", func(t *testing.T) {
		assert.Len(t, ix.Search("", 0), ix.Len())
	})
}

func TestCommon(t *testing.T) {
	codes := catalog.Common()
	require.Len(t, codes, 10)
	assert.Equal(t, "S72.0", codes[0].Code)

	seen := make(map[string]bool, len(codes))
	for _, c := range codes {
		assert.NotEmpty(t, c.Description)

		seen[c.Code] = true
	}

	assert.True(t, seen["Z97.1"])
}
