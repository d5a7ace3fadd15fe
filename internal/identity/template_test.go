package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDefault(t *testing.T) {
	siblings := []SegmentSelection{{ID: "category", Value: "projects"}, {ID: "cadence", Value: "weekly"}}

	tests := []struct {
		template string
		want     string
	}{
		{"{{cadence}}-maintenance", "weekly-maintenance"},
		{"{{ category }}/{{cadence}}", "projects/weekly"},
		{"{{window}}-x", "-x"},
		{"static", "static"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDefault(tt.template, siblings))
		})
	}
}
