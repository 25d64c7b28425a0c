package board

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNodeCount renders a perft node count with thousands separators, for
// readability when printing large search trees.
func FormatNodeCount(n int64) string {
	return printer.Sprintf("%d", n)
}
