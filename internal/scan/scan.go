package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"strings"
	"time"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/fatali-fataliyev/finance_ledger/internal/advisor"
	"github.com/fatali-fataliyev/finance_ledger/internal/category"
	"github.com/fatali-fataliyev/finance_ledger/internal/ledger"
	"github.com/fatali-fataliyev/finance_ledger/logging"
	"github.com/nfnt/resize"
	ocr "github.com/ranghetto/go_ocr_space"
)

// Receipts photographed on phones are much larger than OCR needs.
const maxImageWidth = 1024

// OCRClient extracts raw text from a base64 data URI image.
type OCRClient interface {
	ParseImage(dataURI string) (string, error)
}

type ocrSpaceClient struct {
	config ocr.Config
}

func NewOCRSpaceClient(apiKey string) OCRClient {
	return &ocrSpaceClient{config: ocr.InitConfig(apiKey, "eng", ocr.OCREngine2)}
}

func (c *ocrSpaceClient) ParseImage(dataURI string) (string, error) {
	result, err := c.config.ParseFromBase64(dataURI)
	if err != nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrExternalService,
			Message: fmt.Sprintf("OCR request failed: %v", err),
		}
	}
	return result.JustText(), nil
}

// ScanResult is a pre-filled transaction suggestion. The user reviews it
// before anything is persisted.
type ScanResult struct {
	Description string
	Amount      int64
	Date        time.Time
	Category    category.Category
}

type Scanner struct {
	ocr        OCRClient
	advisor    advisor.Advisor
	categories *category.Registry
}

func NewScanner(ocrClient OCRClient, adv advisor.Advisor, categories *category.Registry) Scanner {
	return Scanner{ocr: ocrClient, advisor: adv, categories: categories}
}

// ScanBill turns a bill photo into a transaction suggestion: downscale, OCR,
// structure via the advisor with a regex fallback, then match the category
// guess against the live registry.
func (s *Scanner) ScanBill(ctx context.Context, imageData []byte) (ScanResult, error) {
	if len(imageData) == 0 {
		return ScanResult{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: "Image is empty.",
		}
	}

	dataURI, err := normalizeImage(imageData)
	if err != nil {
		return ScanResult{}, err
	}

	rawText, err := s.ocr.ParseImage(dataURI)
	if err != nil {
		return ScanResult{}, err
	}
	if strings.TrimSpace(rawText) == "" {
		return ScanResult{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrExternalService,
			Message: "Could not read any text from the image.",
		}
	}

	fields, err := s.advisor.ExtractBillFields(ctx, rawText)
	if err != nil {
		logging.Logger.Warnf("advisor failed to structure bill text, falling back to raw extraction: %v", err)
		fields, err = fieldsFromRawText(rawText)
		if err != nil {
			return ScanResult{}, err
		}
	}

	matched, err := s.categories.MatchOrFallback(fields.Category)
	if err != nil {
		return ScanResult{}, err
	}

	return ScanResult{
		Description: fields.Description,
		Amount:      fields.Amount,
		Date:        fields.Date,
		Category:    matched,
	}, nil
}

func normalizeImage(imageData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", appErrors.ErrorResponse{
			Code:    appErrors.ErrInvalidInput,
			Message: fmt.Sprintf("Unsupported or corrupt image: %v", err),
		}
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

var amountRegex = regexp.MustCompile(`\d+[.,]\d{2}`)

// fieldsFromRawText is the degraded path when the advisor is unavailable: the
// largest decimal on the receipt is taken as the total.
func fieldsFromRawText(rawText string) (advisor.BillFields, error) {
	var largest int64 = -1
	for _, match := range amountRegex.FindAllString(rawText, -1) {
		cents, err := ledger.ParseDecimalToCents(match)
		if err != nil {
			continue
		}
		if cents > largest {
			largest = cents
		}
	}
	if largest < 0 {
		return advisor.BillFields{}, appErrors.ErrorResponse{
			Code:    appErrors.ErrExternalService,
			Message: "Could not find an amount on the bill, enter it manually.",
		}
	}

	description := ""
	for _, line := range strings.Split(rawText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			description = line
			break
		}
	}

	return advisor.BillFields{
		Description: description,
		Amount:      largest,
		Date:        time.Now().UTC(),
		Category:    category.FallbackCategoryName,
	}, nil
}
