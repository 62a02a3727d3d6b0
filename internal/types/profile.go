package types

import "strings"

// Markers embedded in stub résumé text when a file could not be converted.
const (
	PDFPlaceholderMarker  = "[PDF Content]"
	DOCXPlaceholderMarker = "[DOCX Content]"
	StubNoticeMarker      = "Em uma implementação real"
)

// PlaceholderMarkers lists every marker that flags simulated résumé content.
var PlaceholderMarkers = []string{
	PDFPlaceholderMarker,
	DOCXPlaceholderMarker,
	StubNoticeMarker,
}

// HasPlaceholderMarker reports whether text contains any placeholder marker.
func HasPlaceholderMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range PlaceholderMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// ResumeProfile holds the personal and professional data extracted from a résumé.
// A nil field means the value was not found; empty strings and empty lists never occur.
type ResumeProfile struct {
	FullName       *string  `json:"full_name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Address        *string  `json:"address"`
	Education      *string  `json:"education"`
	Experience     *string  `json:"experience"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Projects       []string `json:"projects"`
}
