// Package grapheme measures text in terminal cells.
package grapheme

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Bounds returns the rune offsets at which the clusters of line start,
// followed by len(line).
func Bounds(line []rune) []int {
	out := make([]int, 0, len(line)+1)
	rest := string(line)
	state := -1
	at := 0
	for rest != "" {
		out = append(out, at)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		at += utf8.RuneCountInString(cluster)
	}
	return append(out, at)
}

// Next returns the rune offset of the first cluster boundary after col, or
// len(line) at the end of the line.
func Next(line []rune, col int) int {
	for _, b := range Bounds(line) {
		if b > col {
			return b
		}
	}
	return len(line)
}

// Prev returns the rune offset of the last cluster boundary before col, or 0.
func Prev(line []rune, col int) int {
	prev := 0
	for _, b := range Bounds(line) {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

// Snap moves col back to the start of the cluster containing it.
func Snap(line []rune, col int) int {
	if col <= 0 {
		return 0
	}
	if col >= len(line) {
		return len(line)
	}
	return Prev(line, col+1)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Width returns the terminal cell width of text. Tabs are not expanded.
func Width(text string) int {
	w := 0
	for _, cluster := range Split(text) {
		w += clusterWidth(cluster)
	}
	return w
}

// Cells returns the cell width of cluster drawn at visualCol. Tabs advance to
// the next multiple of tabWidth.
func Cells(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		return TabAdvance(visualCol, tabWidth)
	}
	return clusterWidth(cluster)
}

// TabAdvance returns the number of cells a tab occupies at visualCol.
func TabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}

// Truncate cuts text to at most width cells without splitting a cluster.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, cluster := range Split(text) {
		w := clusterWidth(cluster)
		if used+w > width {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String()
}

func clusterWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}
