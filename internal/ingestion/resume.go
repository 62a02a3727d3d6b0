package ingestion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// ErrUnsupportedFile is returned for résumé uploads that are not .txt, .md, .pdf or .docx.
var ErrUnsupportedFile = errors.New("unsupported file type")

// MaxResumeBytes caps the size of an uploaded résumé.
const MaxResumeBytes = 10 << 20

// ResumeText returns the text of an uploaded résumé. Plain text and Markdown
// pass through cleaned. PDF and DOCX files are not parsed: they yield a stub
// carrying a placeholder marker, which the profile extractors recognize.
func ResumeText(fileName string, data []byte) (string, error) {
	if len(data) > MaxResumeBytes {
		return "", fmt.Errorf("%s: file exceeds %d bytes", fileName, MaxResumeBytes)
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md":
		return CleanText(string(data)), nil
	case ".pdf":
		return fmt.Sprintf("%s %s - Conteúdo extraído do PDF. %s, seria usada uma biblioteca de leitura de PDF para extrair o texto completo.",
			types.PDFPlaceholderMarker, fileName, types.StubNoticeMarker), nil
	case ".docx":
		return fmt.Sprintf("%s %s - Conteúdo extraído do DOCX. %s, seria usada uma biblioteca de leitura de DOCX para extrair o texto completo.",
			types.DOCXPlaceholderMarker, fileName, types.StubNoticeMarker), nil
	default:
		return "", fmt.Errorf("%s: %w", fileName, ErrUnsupportedFile)
	}
}
