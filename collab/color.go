package collab

import (
	"github.com/lucasb-eyer/go-colorful"
)

// parseColor accepts "#rgb" or "#rrggbb" and returns the color in
// lower-case "#rrggbb" form.
func parseColor(s string) (string, colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", colorful.Color{}, err
	}
	return c.Hex(), c, nil
}

// labelForeground picks black or white text for a label drawn on c.
func labelForeground(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}
