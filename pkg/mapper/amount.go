package mapper

import (
	"math"
	"strconv"

	"github.com/divan/num2words"
)

// AmountInWords spells out a euro amount for legal mentions on invoices and
// receipts. French amounts use the local tables below; other locales fall
// back to English.
func AmountInWords(amount float64, locale string) string {
	if locale == "fr" {
		return frenchAmount(amount)
	}
	return englishAmount(amount)
}

func frenchAmount(amount float64) string {
	if amount == 0 {
		return "zéro euro"
	}
	if amount < 0 {
		return "moins " + frenchAmount(-amount)
	}

	euros := int(math.Floor(amount))
	cents := int(math.Round((amount - float64(euros)) * 100))

	result := frenchInteger(euros)
	if cents > 0 {
		result += " virgule " + frenchInteger(cents)
	}
	if euros > 1 {
		return result + " euros"
	}
	return result + " euro"
}

var (
	frenchUnits = []string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	frenchTeens = []string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	frenchTens  = []string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante", "quatre-vingt", "quatre-vingt"}
)

func frenchInteger(num int) string {
	switch {
	case num == 0:
		return ""
	case num < 10:
		return frenchUnits[num]
	case num < 20:
		return frenchTeens[num-10]
	case num < 100:
		ten := num / 10
		unit := num % 10
		result := frenchTens[ten]
		switch {
		case ten == 7 || ten == 9:
			// 70..79 and 90..99 borrow the teen words.
			if unit == 1 {
				result += "-et-"
			} else {
				result += "-"
			}
			return result + frenchInteger(10+unit)
		case unit == 1 && ten != 8:
			return result + "-et-" + frenchInteger(unit)
		case unit > 0:
			return result + "-" + frenchInteger(unit)
		case ten == 8:
			return result + "s"
		}
		return result
	case num < 1000:
		hundred := num / 100
		remainder := num % 100
		result := "cent"
		if hundred > 1 {
			result = frenchInteger(hundred) + "-cent"
		}
		if remainder > 0 {
			return result + "-" + frenchInteger(remainder)
		}
		if hundred > 1 {
			return result + "s"
		}
		return result
	case num < 1000000:
		thousand := num / 1000
		remainder := num % 1000
		result := "mille"
		if thousand > 1 {
			result = frenchInteger(thousand) + "-mille"
		}
		if remainder > 0 {
			return result + "-" + frenchInteger(remainder)
		}
		return result
	}
	return strconv.Itoa(num)
}

func englishAmount(amount float64) string {
	if amount < 0 {
		return "minus " + englishAmount(-amount)
	}

	euros := int(math.Floor(amount))
	cents := int(math.Round((amount - float64(euros)) * 100))

	result := num2words.Convert(euros)
	if euros == 1 {
		result += " euro"
	} else {
		result += " euros"
	}
	if cents > 0 {
		result += " and " + num2words.Convert(cents)
		if cents == 1 {
			result += " cent"
		} else {
			result += " cents"
		}
	}
	return result
}
