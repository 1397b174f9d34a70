// Package export renders an order into a tabular document: a spreadsheet or
// a paginated PDF. Rendered files go to a scratch directory under unique
// names; callers are responsible for removing them.
package export

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salesdesk/internal/media"
	"salesdesk/internal/models"
)

// Format selects the rendered document type.
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// ErrUnknownFormat is returned for a file type the renderer does not know.
var ErrUnknownFormat = errors.New("unknown export file type")

// Table captions, kept in Russian to match the documents the back office
// circulates.
const (
	labelClient     = "Название клиента:"
	labelVAT        = "Использованный НДС:"
	labelSubtotal   = "Итого без НДС:"
	labelTotalVAT   = "Итого с НДС:"
	labelExtras     = "Дополнительные расходы:"
	labelGrandTotal = "Общий итог:"
	labelNoImage    = "Изображение недоступно"
)

// Prefixes for the PDF header lines.
const (
	labelPDFClient = "Клиент: "
	labelPDFVAT    = "НДС: "
	labelPDFExtras = "Дополнительные расходы: "
)

var tableHeaders = []string{"Название товара", "Фото", "Количество", "Цена за единицу", "Общая стоимость"}

// Renderer produces export documents for orders.
type Renderer struct {
	scratchDir string
	fontPath   string
	logoPath   string
	media      *media.Store
}

// NewRenderer creates a Renderer writing into scratchDir. fontPath points to
// a TTF with Cyrillic glyphs for the PDF output; logoPath is optional.
func NewRenderer(scratchDir, fontPath, logoPath string, store *media.Store) (*Renderer, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Renderer{
		scratchDir: scratchDir,
		fontPath:   fontPath,
		logoPath:   logoPath,
		media:      store,
	}, nil
}

// Render produces a single document for the order in the requested format
// and returns its path in the scratch directory.
func (r *Renderer) Render(order *models.Order, format Format) (string, error) {
	switch format {
	case FormatExcel:
		return r.renderExcel(order)
	case FormatPDF:
		return r.renderPDF(order)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (r *Renderer) scratchFile(orderID uint, ext string) string {
	return filepath.Join(r.scratchDir, fmt.Sprintf("order-%d-%s%s", orderID, uuid.New().String(), ext))
}

// photoPath resolves a product photo to an embeddable raster file,
// converting webp to png on the fly. Returns "" when the product has no
// photo; errors cover a single row only, never the whole document.
func (r *Renderer) photoPath(product *models.OrderProduct) (string, error) {
	if product.Photo == "" {
		return "", nil
	}
	path := r.media.Path(product.Photo)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("photo %s unreadable: %w", product.Photo, err)
	}
	return media.NormalizePNG(path)
}

// imageSize reads the pixel dimensions of a raster file.
func imageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return "0%"
	}
	return d.Decimal.String() + "%"
}
