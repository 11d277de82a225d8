// Package render draws the word cloud, the sentiment chart and the topic
// chart of an analysis run.
package render

import (
	"errors"
	"image/color"
)

// ErrNothingToDraw is returned when a chart receives no data.
var ErrNothingToDraw = errors.New("render: nothing to draw")

var (
	positiveColor = color.RGBA{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff}
	negativeColor = color.RGBA{R: 0xd9, G: 0x5f, B: 0x02, A: 0xff}

	// palette cycles over words and topics.
	palette = []color.RGBA{
		{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff},
		{R: 0xd9, G: 0x5f, B: 0x02, A: 0xff},
		{R: 0x75, G: 0x70, B: 0xb3, A: 0xff},
		{R: 0xe7, G: 0x29, B: 0x8a, A: 0xff},
		{R: 0x66, G: 0xa6, B: 0x1e, A: 0xff},
		{R: 0xe6, G: 0xab, B: 0x02, A: 0xff},
		{R: 0xa6, G: 0x76, B: 0x1d, A: 0xff},
		{R: 0x66, G: 0x66, B: 0x66, A: 0xff},
	}
)

func paletteAt(i int) color.RGBA {
	return palette[i%len(palette)]
}
