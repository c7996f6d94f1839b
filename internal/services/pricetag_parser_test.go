package services

import (
	"testing"

	"github.com/nandovidal/platewise/internal/models"
)

func TestPriceTagParserParse(t *testing.T) {
	parser := NewPriceTagParser()

	tests := []struct {
		name      string
		text      string
		wantPrice float64
		wantUnit  *models.PriceUnit
		wantName  string
	}{
		{
			name:      "euro sign first with per kg",
			text:      "Tomate Rama\n€ 1,99 / kg",
			wantPrice: 1.99,
			wantUnit:  unitPtr(models.PriceUnitKg),
			wantName:  "Tomate Rama",
		},
		{
			name:      "euro sign last with per litre",
			text:      "Leite Meio Gordo\n0,89€ por litro",
			wantPrice: 0.89,
			wantUnit:  unitPtr(models.PriceUnitLiter),
			wantName:  "Leite Meio Gordo",
		},
		{
			name:      "bare price with per unit",
			text:      "Abacate\n1.45\npor unidade",
			wantPrice: 1.45,
			wantUnit:  unitPtr(models.PriceUnitPiece),
			wantName:  "Abacate",
		},
		{
			name:      "no unit marker leaves unit unset",
			text:      "Massa Esparguete\n€0.79",
			wantPrice: 0.79,
			wantUnit:  nil,
			wantName:  "Massa Esparguete",
		},
		{
			name:      "first price wins",
			text:      "Azeite Virgem Extra\n€ 5,49 / l\n€ 7,99 / l",
			wantPrice: 5.49,
			wantUnit:  unitPtr(models.PriceUnitLiter),
			wantName:  "Azeite Virgem Extra",
		},
		{
			name:      "garbage text yields empty result",
			text:      "== 123 ==\n%%%",
			wantPrice: 0,
			wantUnit:  nil,
			wantName:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.text)

			if got.PricePerUnit != tt.wantPrice {
				t.Errorf("PricePerUnit = %v, want %v", got.PricePerUnit, tt.wantPrice)
			}
			if (got.Unit == nil) != (tt.wantUnit == nil) {
				t.Fatalf("Unit = %v, want %v", got.Unit, tt.wantUnit)
			}
			if got.Unit != nil && *got.Unit != *tt.wantUnit {
				t.Errorf("Unit = %v, want %v", *got.Unit, *tt.wantUnit)
			}
			if got.ProductName != tt.wantName {
				t.Errorf("ProductName = %q, want %q", got.ProductName, tt.wantName)
			}
			if got.RawText != tt.text {
				t.Errorf("RawText not preserved")
			}
		})
	}
}

func unitPtr(u models.PriceUnit) *models.PriceUnit {
	return &u
}
