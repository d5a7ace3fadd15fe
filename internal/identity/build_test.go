package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maintenanceSegments() []SegmentSpec {
	return []SegmentSpec{
		{ID: "category", Prompt: "Category?", Options: []Option{{Value: "maintenance", Label: "Maintenance"}, {Value: "release"}}},
		{ID: "cadence", Prompt: "Cadence?", Options: []Option{{Value: "daily"}, {Value: "weekly", Label: "Weekly"}}},
	}
}

func TestBuildSegmentSelection(t *testing.T) {
	spec := SegmentSpec{ID: "cadence", Options: []Option{{Value: "daily", Label: "Every day"}}}

	t.Run("declared option uses option label", func(t *testing.T) {
		sel, err := BuildSegmentSelection(spec, "daily", BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, SegmentSelection{ID: "cadence", Value: "daily", Label: "Every day", Source: SourceOption}, sel)
	})

	t.Run("forced source wins for declared option", func(t *testing.T) {
		sel, err := BuildSegmentSelection(spec, " daily ", BuildOptions{Source: SourceCLI})
		require.NoError(t, err)
		assert.Equal(t, SourceCLI, sel.Source)
		assert.Equal(t, "daily", sel.Value)
	})

	t.Run("unlisted value rejected without allowCustom", func(t *testing.T) {
		_, err := BuildSegmentSelection(spec, "hourly", BuildOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCustomValue))
		assert.Contains(t, err.Error(), `"cadence"`)
		assert.Contains(t, err.Error(), "daily")

		var segErr *SegmentError
		require.True(t, errors.As(err, &segErr))
		assert.Equal(t, []string{"cadence"}, segErr.SegmentIDs)
	})

	t.Run("unlisted value accepted when requested", func(t *testing.T) {
		sel, err := BuildSegmentSelection(spec, "hourly", BuildOptions{Source: SourceCLI, AcceptUnlisted: true})
		require.NoError(t, err)
		assert.Equal(t, SegmentSelection{ID: "cadence", Value: "hourly", Label: "hourly", Source: SourceCLI}, sel)
	})

	t.Run("unlisted value accepted with allowCustom", func(t *testing.T) {
		custom := spec
		custom.AllowCustom = true
		sel, err := BuildSegmentSelection(custom, "hourly", BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, SourceCustom, sel.Source)
	})

	t.Run("blank value", func(t *testing.T) {
		_, err := BuildSegmentSelection(spec, "   ", BuildOptions{AcceptUnlisted: true})
		assert.True(t, errors.Is(err, ErrEmptyCustomValue))
	})
}

func TestBuildSelection(t *testing.T) {
	segments := []SegmentSpec{
		{ID: "category", Options: []Option{{Value: "projects"}}},
		{ID: "cadence", Options: []Option{{Value: "daily"}, {Value: "weekly"}}},
		{ID: "window", AllowCustom: true},
	}
	fallback := NewSelection([]SegmentSelection{
		{ID: "category", Value: "projects", Label: "Projects", Source: SourceCLI},
		{ID: "cadence", Value: "daily", Label: "daily", Source: SourceCLI, Details: map[string]any{"cron": "0 3 * * *"}},
		{ID: "window", Value: "window-a", Label: "Window A", Source: SourceCLI},
	})

	tests := []struct {
		name        string
		overrides   map[string]string
		metadata    map[string]SegmentMetadata
		fallback    *Selection
		wantSlug    string
		wantMissing []string
	}{
		{
			name:        "nothing known",
			wantMissing: []string{"category", "cadence", "window"},
		},
		{
			name:        "partial overrides report remaining ids in declared order",
			overrides:   map[string]string{"cadence": "weekly"},
			wantMissing: []string{"category", "window"},
		},
		{
			name:      "overrides cover everything",
			overrides: map[string]string{"category": "projects", "cadence": "weekly", "window": "nightly"},
			wantSlug:  "projects/weekly/nightly",
		},
		{
			name:     "fallback completes selection",
			fallback: &fallback,
			wantSlug: "projects/daily/window-a",
		},
		{
			name:      "override beats fallback",
			overrides: map[string]string{"window": "window-b"},
			fallback:  &fallback,
			wantSlug:  "projects/daily/window-b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildSelection(segments, tt.overrides, tt.metadata, tt.fallback)
			require.NoError(t, err)
			if tt.wantMissing != nil {
				assert.Nil(t, result.Selection)
				assert.Equal(t, tt.wantMissing, result.MissingSegmentIDs)
				return
			}
			require.NotNil(t, result.Selection)
			assert.Empty(t, result.MissingSegmentIDs)
			assert.Equal(t, tt.wantSlug, result.Selection.Slug)
			require.Len(t, result.Selection.Segments, len(segments))
			for i, spec := range segments {
				assert.Equal(t, spec.ID, result.Selection.Segments[i].ID)
			}
		})
	}
}

func TestBuildSelectionCopiesFallbackVerbatim(t *testing.T) {
	segments := []SegmentSpec{{ID: "cadence", Options: []Option{{Value: "daily"}}}}
	fallback := NewSelection([]SegmentSelection{
		{ID: "cadence", Value: "daily", Label: "Nightly-ish", Source: SourceCLI, Details: map[string]any{"cron": "0 3 * * *"}},
	})

	result, err := BuildSelection(segments, nil, nil, &fallback)
	require.NoError(t, err)
	require.NotNil(t, result.Selection)
	got := result.Selection.Segments[0]
	assert.Equal(t, "Nightly-ish", got.Label)
	assert.Equal(t, map[string]any{"cron": "0 3 * * *"}, got.Details)

	got.Details["cron"] = "changed"
	assert.Equal(t, "0 3 * * *", fallback.Segments[0].Details["cron"], "fallback must not be aliased")
}

func TestBuildSelectionMetadataWins(t *testing.T) {
	segments := maintenanceSegments()
	fallback := NewSelection([]SegmentSelection{
		{ID: "category", Value: "maintenance", Label: "Maintenance", Source: SourceCLI},
		{ID: "cadence", Value: "daily", Label: "daily", Source: SourceCLI, Details: map[string]any{"cron": "0 3 * * *"}},
	})
	metadata := map[string]SegmentMetadata{
		"category": {Label: "Upkeep"},
		"cadence":  {Details: map[string]any{"tz": "UTC"}},
	}

	result, err := BuildSelection(segments, map[string]string{"category": "maintenance"}, metadata, &fallback)
	require.NoError(t, err)
	require.NotNil(t, result.Selection)
	assert.Equal(t, "Upkeep", result.Selection.Segments[0].Label)
	assert.Equal(t, SourceCLI, result.Selection.Segments[0].Source)
	assert.Equal(t, map[string]any{"cron": "0 3 * * *", "tz": "UTC"}, result.Selection.Segments[1].Details)
}

func TestBuildSelectionRejectsInvalidOverride(t *testing.T) {
	_, err := BuildSelection(maintenanceSegments(), map[string]string{"cadence": "hourly"}, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidCustomValue))
}

func TestParseSlug(t *testing.T) {
	segments := maintenanceSegments()

	t.Run("matching arity", func(t *testing.T) {
		sel, err := ParseSlug(segments, "maintenance/daily", nil)
		require.NoError(t, err)
		assert.Equal(t, "maintenance/daily", sel.Slug)
		require.Len(t, sel.Segments, 2)
		assert.Equal(t, "category", sel.Segments[0].ID)
		assert.Equal(t, "maintenance", sel.Segments[0].Value)
		assert.Equal(t, "Maintenance", sel.Segments[0].Label)
		assert.Equal(t, "cadence", sel.Segments[1].ID)
		assert.Equal(t, "daily", sel.Segments[1].Value)
		assert.Equal(t, SourceCLI, sel.Segments[1].Source)
	})

	t.Run("trims and drops empty pieces", func(t *testing.T) {
		sel, err := ParseSlug(segments, " /maintenance/ / hourly /", nil)
		require.NoError(t, err)
		assert.Equal(t, "maintenance/hourly", sel.Slug)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := ParseSlug(segments, "maintenance", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSegmentCountMismatch))
		assert.Contains(t, err.Error(), "2 segment(s), received 1")
	})
}

func TestSelectionHelpers(t *testing.T) {
	sel := NewSelection([]SegmentSelection{{ID: "category", Value: "projects"}, {ID: "cadence", Value: "daily"}})
	assert.Equal(t, "projects/daily", sel.Slug)
	assert.Equal(t, "category=projects, cadence=daily", sel.Hint())
	v, ok := sel.Value("cadence")
	assert.True(t, ok)
	assert.Equal(t, "daily", v)
	assert.Equal(t, map[string]string{"category": "projects", "cadence": "daily"}, sel.Values())
}
