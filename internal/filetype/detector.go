package filetype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// PDFMIMEType is the MIME type of a PDF document
const PDFMIMEType = "application/pdf"

// FileTypeInfo contains detected file type information
type FileTypeInfo struct {
	MIMEType    string
	Extension   string
	Supported   bool
	Description string
}

// Detector handles file type detection using magic bytes
type Detector struct{}

// New creates a new file type detector
func New() *Detector {
	return &Detector{}
}

// Detect detects the actual file type using magic bytes, not filename
func (d *Detector) Detect(filePath string) (*FileTypeInfo, error) {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}

	info := &FileTypeInfo{
		MIMEType:  mtype.String(),
		Extension: mtype.Extension(),
	}
	log.Debug().Str("mime", info.MIMEType).Str("ext", info.Extension).Str("file", filePath).Msg("detected file type")

	if mtype.Is(PDFMIMEType) {
		info.Supported = true
		info.Description = "PDF document"
	} else {
		info.Description = fmt.Sprintf("Unsupported file type: %s", info.MIMEType)
	}
	return info, nil
}

// IsPDF reports whether the file content is a PDF, regardless of its name
func (d *Detector) IsPDF(filePath string) (bool, error) {
	info, err := d.Detect(filePath)
	if err != nil {
		return false, err
	}
	return info.Supported, nil
}
