package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFCFA(t *testing.T) {
	formatted := FormatFCFA(1500000)

	// Le symbole est toujours en suffixe
	assert.True(t, strings.HasSuffix(formatted, " "+CurrencySymbol))
	// Le montant commence par le premier groupe de chiffres
	assert.True(t, strings.HasPrefix(formatted, "1"))
	// Tous les chiffres sont présents dans l'ordre
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, formatted)
	assert.Equal(t, "1500000", digits)
}

func TestFormatFCFAZeroAndInvalid(t *testing.T) {
	assert.Equal(t, "0 FCFA", FormatFCFA(0))
	assert.Equal(t, "0 FCFA", FormatFCFA(math.NaN()))
	assert.Equal(t, "0 FCFA", FormatFCFA(math.Inf(1)))
	assert.Equal(t, "0", FormatCurrency(math.NaN(), CurrencyOptions{}))
}

func TestParseCurrency(t *testing.T) {
	assert.Equal(t, float64(0), ParseCurrency(""))
	assert.Equal(t, float64(0), ParseCurrency("abc"))
	assert.Equal(t, float64(1500000), ParseCurrency("1 500 000 FCFA"))
	assert.Equal(t, 1500.5, ParseCurrency("1 500,50"))
	assert.Equal(t, float64(-2000), ParseCurrency("-2 000 FCFA"))
}

// La propriété de base du formatage: parse(format(n)) == round(n)
// pour tout n >= 0 avec la précision par défaut (0 décimale)
func TestParseFormatRoundTrip(t *testing.T) {
	// Les demi-entiers vérifient l'arrondi à la demie supérieure
	// (0,5 → 1 et 2,5 → 3, pas l'arrondi à la valeur paire)
	values := []float64{0, 0.5, 1, 2.5, 42, 999, 1000, 65000, 150000, 1500000, 1234567.89, 99999999.4}

	for _, n := range values {
		got := ParseCurrency(FormatFCFA(n))
		assert.Equal(t, math.Round(n), got, "valeur de départ: %f", n)
	}
}

func TestFormatFCFAHalfRoundsUp(t *testing.T) {
	assert.Equal(t, "1 FCFA", FormatFCFA(0.5))
	assert.Equal(t, "3 FCFA", FormatFCFA(2.5))
}

func TestFormatCurrencyDecimals(t *testing.T) {
	formatted := FormatCurrency(1234.5, CurrencyOptions{ShowSymbol: true, Decimals: 2})
	parsed := ParseCurrency(formatted)
	assert.Equal(t, 1234.5, parsed)
}
