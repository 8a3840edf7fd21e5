package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	apperrors "sheetlens/internal/errors"
)

const (
	// SniffBytes is the number of leading bytes inspected by SniffContent
	SniffBytes = 3072

	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipMIME  = "application/zip"
)

// SniffContent inspects the leading bytes of an upload and rejects content
// that cannot be an Office Open XML package. The returned reader yields the
// full stream, sniffed bytes included.
func (v *FileValidator) SniffContent(r io.Reader) (io.Reader, error) {
	head := make([]byte, SniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !isPackage(detected) {
		v.logger.Warn("upload rejected: content is not a workbook",
			slog.String("detected", detected.String()))
		return nil, apperrors.NewWithDetails(http.StatusBadRequest, apperrors.CodeValidationFailed,
			fmt.Sprintf("Only %s files are supported.", v.extension),
			apperrors.ValidationError{Field: "file", Message: "content is " + detected.String()})
	}

	v.logger.Debug("upload content sniffed", slog.String("detected", detected.String()))
	return io.MultiReader(bytes.NewReader(head), r), nil
}

// isPackage reports whether m is xlsx or descends from zip
func isPackage(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(xlsxMIME) || m.Is(zipMIME) {
			return true
		}
	}
	return false
}
