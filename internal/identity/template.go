package identity

import "regexp"

// placeholderPattern matches {{segmentId}} references in a segment default.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.-]+)\s*\}\}`)

// RenderDefault substitutes {{id}} placeholders in template with the values of
// already-resolved siblings. Placeholders naming an unresolved segment render
// as the empty string.
func RenderDefault(template string, siblings []SegmentSelection) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		id := placeholderPattern.FindStringSubmatch(match)[1]
		for _, sib := range siblings {
			if sib.ID == id {
				return sib.Value
			}
		}
		return ""
	})
}
