package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nandovidal/platewise/internal/models"
)

// PriceTagParser parses OCR text from supermarket price tags
type PriceTagParser struct {
	pricePatterns []*regexp.Regexp
	unitPatterns  []unitPattern
	namePattern   *regexp.Regexp
}

type unitPattern struct {
	pattern *regexp.Regexp
	unit    models.PriceUnit
}

// NewPriceTagParser creates a new price-tag parser
func NewPriceTagParser() *PriceTagParser {
	return &PriceTagParser{
		pricePatterns: []*regexp.Regexp{
			// Pattern: €X.XX or € X,XX (euro sign first)
			regexp.MustCompile(`€\s*(\d{1,3}[.,]\d{2})`),
			// Pattern: X.XX€ or X,XX EUR (euro sign last)
			regexp.MustCompile(`(\d{1,3}[.,]\d{2})\s*(?:€|EUR)`),
			// Pattern: bare X.XX on its own line
			regexp.MustCompile(`^\s*(\d{1,3}[.,]\d{2})\s*$`),
		},
		unitPatterns: []unitPattern{
			{regexp.MustCompile(`(?i)(?:per|/|por)\s*(?:kg|kilo|quilo)`), models.PriceUnitKg},
			{regexp.MustCompile(`(?i)(?:per|/|por)\s*(?:l|lt|liter|litre|litro)\b`), models.PriceUnitLiter},
			{regexp.MustCompile(`(?i)(?:per|/|por)\s*(?:unit|un|unid|piece|pc|each|ea)`), models.PriceUnitPiece},
		},
		// A line of mostly letters is probably the product name
		namePattern: regexp.MustCompile(`^[\p{L}][\p{L}\s.,'-]{2,}$`),
	}
}

// Parse parses OCR text from a price-tag photo. Unit stays nil when the
// tag does not state a per-quantity price.
func (p *PriceTagParser) Parse(ocrText string) *models.ScannedPrice {
	result := &models.ScannedPrice{
		RawText: ocrText,
	}

	lines := strings.Split(ocrText, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if result.PricePerUnit == 0 {
			if price, ok := p.extractPrice(line); ok {
				result.PricePerUnit = price
			}
		}

		if result.Unit == nil {
			if unit, ok := p.extractUnit(line); ok {
				result.Unit = &unit
			}
		}

		if result.ProductName == "" {
			if name, ok := p.extractName(line); ok {
				result.ProductName = name
			}
		}
	}

	return result
}

// extractPrice tries to find a price on a line
func (p *PriceTagParser) extractPrice(line string) (float64, bool) {
	for _, pattern := range p.pricePatterns {
		matches := pattern.FindStringSubmatch(line)
		if len(matches) >= 2 {
			priceStr := strings.ReplaceAll(matches[1], ",", ".")
			price, err := strconv.ParseFloat(priceStr, 64)
			if err == nil && price > 0 {
				return price, true
			}
		}
	}
	return 0, false
}

// extractUnit tries to find a per-quantity marker on a line
func (p *PriceTagParser) extractUnit(line string) (models.PriceUnit, bool) {
	for _, up := range p.unitPatterns {
		if up.pattern.MatchString(line) {
			return up.unit, true
		}
	}
	return "", false
}

// extractName tries to treat a line as the product name
func (p *PriceTagParser) extractName(line string) (string, bool) {
	if p.namePattern.MatchString(line) {
		return strings.TrimSpace(line), true
	}
	return "", false
}
