package chat

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxAttachmentBytes is the advertised attachment size limit (~10MB).
// It is a hint shown next to the composer; this layer never enforces it.
const MaxAttachmentBytes = 10 * 1000 * 1000

// AcceptedTypesHint is the human-readable summary of supported attachment
// types shown in the composer.
const AcceptedTypesHint = "images, PDF, Office docs, text, spreadsheets"

// FileKind classifies an attachment for icon display.
type FileKind int

const (
	KindOther FileKind = iota
	KindImage
	KindPDF
	KindDocument
	KindSpreadsheet
	KindText
)

// Icon returns the glyph shown on the attachment chip.
func (k FileKind) Icon() string {
	switch k {
	case KindImage:
		return "◨"
	case KindPDF:
		return "▤"
	case KindDocument:
		return "▭"
	case KindSpreadsheet:
		return "▦"
	case KindText:
		return "≡"
	default:
		return "•"
	}
}

func (k FileKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	case KindDocument:
		return "document"
	case KindSpreadsheet:
		return "spreadsheet"
	case KindText:
		return "text"
	default:
		return "other"
	}
}

// Attachment is an opaque file handle attached to a draft or message.
// The UI only ever displays name, size, and kind; content stays with the caller.
type Attachment struct {
	Name string
	Size int64
	Path string
	Kind FileKind
}

// ClassifyFile maps a file name to a FileKind by extension.
func ClassifyFile(name string) FileKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tiff", ".tif", ".svg":
		return KindImage
	case ".pdf":
		return KindPDF
	case ".doc", ".docx", ".odt", ".rtf", ".pages":
		return KindDocument
	case ".xls", ".xlsx", ".ods", ".csv", ".tsv", ".numbers":
		return KindSpreadsheet
	case ".txt", ".md", ".markdown", ".log", ".json", ".yaml", ".yml", ".toml":
		return KindText
	default:
		return KindOther
	}
}

// NewAttachment builds an attachment from a path, classifying by extension.
func NewAttachment(path string, size int64) Attachment {
	name := filepath.Base(path)
	return Attachment{
		Name: name,
		Size: size,
		Path: path,
		Kind: ClassifyFile(name),
	}
}

// FormatSize renders a byte count for chip display (e.g., "482 B", "1.2 KB", "3.4 MB").
func FormatSize(bytes int64) string {
	switch {
	case bytes >= 1000*1000:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1000*1000))
	case bytes >= 1000:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1000)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
