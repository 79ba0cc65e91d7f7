package admatrix

import "strings"

// NormalizeText lowercases text before keyword matching. Nothing else is
// touched: whitespace and punctuation are significant to keywords such as
// "here's how" and "30%".
func NormalizeText(text string) string {
	return strings.ToLower(text)
}
