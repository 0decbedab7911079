package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats a rupiah amount for display.
// Example: Currency(150000, "id") => "Rp150.000".
func Currency(amount int64, lang string) string {
	sep := "."
	if strings.ToLower(lang) == "en" {
		sep = ","
	}
	neg := amount < 0
	if neg {
		amount = -amount
	}
	out := groupDigits(amount, sep)
	if neg {
		return "-Rp" + out
	}
	return "Rp" + out
}

func groupDigits(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += sep
		}
		out += string(c)
	}
	return out
}

// Date formats time in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	switch strings.ToLower(lang) {
	case "id":
		return t.Format("02-01-2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}
