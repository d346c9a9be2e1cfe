package resumes

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/syneepse/ResumeFix/internal/documents"
	"github.com/syneepse/ResumeFix/internal/utils"
)

// MaxUploadSize is the largest resume accepted, 10 MiB.
const MaxUploadSize int64 = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported resume type")
	ErrFileTooLarge    = errors.New("resume exceeds upload size limit")
	ErrNoFile          = errors.New("no resume file in request")
)

var allowedTypes = map[string]bool{
	documents.TypePDF:  true,
	documents.TypeDOC:  true,
	documents.TypeDOCX: true,
}

// ValidateUpload checks the declared media type and size and returns the bare media type.
func ValidateUpload(contentType string, size int64) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedTypes[mediaType] {
		return "", ErrUnsupportedType
	}
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}
	return mediaType, nil
}

// uploadTypeLabel keeps metric labels to the allowed media types plus "other".
func uploadTypeLabel(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedTypes[mediaType] {
		return "other"
	}
	return mediaType
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// GenerateFilename builds a collision resistant storage name that keeps a readable
// version of the original.
func GenerateFilename(original string) (string, error) {
	suffix, err := utils.RandomToken(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), suffix, sanitizeName(original)), nil
}

func sanitizeName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, "._")
	if base == "" {
		return "resume"
	}
	if len(base) > 100 {
		ext := filepath.Ext(base)
		if len(ext) > 10 {
			ext = ""
		}
		base = base[:100-len(ext)] + ext
	}
	return base
}
