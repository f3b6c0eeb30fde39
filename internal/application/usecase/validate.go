package usecase

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocks-api/internal/application/dto"
	"github.com/jhoicas/stocks-api/internal/domain"
)

const (
	maxTitleLen   = 200
	maxAddressLen = 300
	// NUMERIC(10,2): hasta 8 dígitos enteros y 2 decimales.
	maxPriceFractionDigits = 2
)

// maxPriceAbs límite absoluto del precio (10^8, excluido).
var maxPriceAbs = decimal.New(1, 8)

// validatePositions valida la forma de todas las posiciones del payload antes
// de cualquier mutación (validar-luego-aplicar). La existencia de los
// productos referenciados se comprueba aparte, dentro de la transacción.
func validatePositions(positions []dto.StockPositionInput) *domain.ValidationError {
	verr := &domain.ValidationError{}
	for i, p := range positions {
		if p.Product <= 0 {
			verr.Add(fmt.Sprintf("positions[%d].product", i), "referencia de producto inválida")
		}
		if p.Quantity < 0 {
			verr.Add(fmt.Sprintf("positions[%d].quantity", i), "la cantidad no puede ser negativa")
		}
		if p.Price == nil {
			verr.Add(fmt.Sprintf("positions[%d].price", i), "price es requerido")
			continue
		}
		if p.Price.Exponent() < -maxPriceFractionDigits {
			verr.Add(fmt.Sprintf("positions[%d].price", i), "máximo 2 decimales")
		} else if p.Price.Abs().GreaterThanOrEqual(maxPriceAbs) {
			verr.Add(fmt.Sprintf("positions[%d].price", i), "máximo 10 dígitos")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

// validatePrice valida un precio suelto (alta/edición administrativa).
func validatePrice(price *decimal.Decimal) string {
	if price == nil {
		return "price es requerido"
	}
	if price.Exponent() < -maxPriceFractionDigits {
		return "máximo 2 decimales"
	}
	if price.Abs().GreaterThanOrEqual(maxPriceAbs) {
		return "máximo 10 dígitos"
	}
	return ""
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
