package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol est le symbole monétaire affiché après les montants
const CurrencySymbol = "FCFA"

// CurrencyCode est le code ISO de la devise
const CurrencyCode = "XOF"

// Imprimante fr-FR pour le groupement des milliers
var frPrinter = message.NewPrinter(language.French)

// CurrencyOptions représente les options de formatage d'un montant
type CurrencyOptions struct {
	ShowSymbol bool
	Decimals   int
}

// FormatCurrency formate un montant avec séparateurs de milliers fr-FR
// et le symbole FCFA en suffixe
func FormatCurrency(amount float64, opts CurrencyOptions) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		if opts.ShowSymbol {
			return "0 " + CurrencySymbol
		}
		return "0"
	}

	// Arrondi à la demie supérieure avant formatage: number.Decimal
	// arrondit à la valeur paire la plus proche (2,5 → "2")
	scale := math.Pow(10, float64(opts.Decimals))
	rounded := math.Round(amount*scale) / scale

	formatted := frPrinter.Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(opts.Decimals),
		number.MaxFractionDigits(opts.Decimals),
	))

	if opts.ShowSymbol {
		return formatted + " " + CurrencySymbol
	}
	return formatted
}

// FormatFCFA formate un montant en FCFA sans décimales (ex: "1 500 000 FCFA")
func FormatFCFA(amount float64) string {
	return FormatCurrency(amount, CurrencyOptions{ShowSymbol: true, Decimals: 0})
}

// ParseCurrency relit un montant depuis une chaîne formatée.
// Retire le symbole et les séparateurs, ne garde que les chiffres.
// Retourne 0 si la chaîne n'est pas interprétable.
func ParseCurrency(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}
