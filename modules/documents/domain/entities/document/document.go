package document

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ati-intranet/portal/pkg/types"
)

const TypeAll = "all"

// Types are the filters offered on the documents page, TypeAll first.
var Types = []string{TypeAll, "policy", "handbook", "form"}

func ValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Document struct {
	ID          types.ID `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	FileSize    int64    `json:"file_size"`
	CreatedAt   string   `json:"created_at"`
}

var icons = map[string]string{
	"policy":   "📋",
	"handbook": "📘",
	"form":     "📝",
}

// Icon is the glyph shown on the document card.
func (d Document) Icon() string {
	if i, ok := icons[d.Type]; ok {
		return i
	}
	return "📄"
}

func (d Document) Size() string {
	return FormatSize(d.FileSize)
}

const (
	kib = 1024
	mib = 1024 * 1024
)

// FormatSize renders bytes as B, or KB and MB with one decimal.
func FormatSize(bytes int64) string {
	switch {
	case bytes < kib:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mib:
		return decimal.NewFromInt(bytes).Div(decimal.NewFromInt(kib)).StringFixed(1) + " KB"
	default:
		return decimal.NewFromInt(bytes).Div(decimal.NewFromInt(mib)).StringFixed(1) + " MB"
	}
}
