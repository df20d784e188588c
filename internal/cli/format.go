package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var jaPrinter = message.NewPrinter(language.Japanese)

// yen は 3 桁区切りの円表記を返す (例: 72000 -> "¥72,000")
func yen(n int) string {
	if n < 0 {
		return jaPrinter.Sprintf("-¥%d", -n)
	}
	return jaPrinter.Sprintf("¥%d", n)
}
