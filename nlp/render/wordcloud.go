package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/oarkflow/transcripts/nlp/frequency"
)

// ptToMM converts a font size in points into millimetres.
const ptToMM = 25.4 / 72

// CloudOptions sizes the word cloud.
type CloudOptions struct {
	// MinFreq drops words counted fewer times.
	MinFreq int
	// MinSize and MaxSize bound the font size in points.
	MinSize float64
	MaxSize float64
	// MaxWords caps the number of words drawn; 0 means no cap.
	MaxWords int
	Title    string
}

// DefaultCloudOptions draws every word counted at least twice.
func DefaultCloudOptions() CloudOptions {
	return CloudOptions{MinFreq: 2, MinSize: 10, MaxSize: 64}
}

// Placement is where a word lands in the cloud.
type Placement struct {
	Word  string
	Count int
	Size  float64 // points
	Page  int
	X, Y  float64 // mm, baseline origin
}

// WordCloud writes a PDF word cloud of table to w.
func WordCloud(w io.Writer, table frequency.Table, opts CloudOptions) error {
	pdf := newCloudPDF()
	places := layout(pdf, table, opts)
	if len(places) == 0 {
		return fmt.Errorf("%w: no word counted at least %d times", ErrNothingToDraw, opts.MinFreq)
	}
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	page := 0
	for i, p := range places {
		for page < p.Page {
			pdf.AddPage()
			page++
		}
		c := paletteAt(i)
		pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
		pdf.SetFont("Helvetica", "B", p.Size)
		pdf.Text(p.X, p.Y, p.Word)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render: word cloud: %w", err)
	}
	return nil
}

// Layout computes the word placements WordCloud would draw.
func Layout(table frequency.Table, opts CloudOptions) []Placement {
	return layout(newCloudPDF(), table, opts)
}

func newCloudPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// layout flows words into centred lines, biggest first. Font size grows
// linearly with the count between MinSize and MaxSize.
func layout(pdf *gofpdf.Fpdf, table frequency.Table, opts CloudOptions) []Placement {
	words := table.AtLeast(opts.MinFreq)
	if opts.MaxWords > 0 {
		words = words.Top(opts.MaxWords)
	}
	if len(words) == 0 {
		return nil
	}
	if opts.MinSize <= 0 {
		opts.MinSize = 10
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}
	hi, lo := words[0].Count, words[len(words)-1].Count
	size := func(c int) float64 {
		if hi == lo {
			return (opts.MinSize + opts.MaxSize) / 2
		}
		return opts.MinSize + (opts.MaxSize-opts.MinSize)*float64(c-lo)/float64(hi-lo)
	}

	pageW, pageH := pdf.GetPageSize()
	left, top, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	const gap = 3.0

	var (
		out   []Placement
		line  []Placement
		lineW float64
		y     = top
		page  = 1
	)
	flush := func() {
		if len(line) == 0 {
			return
		}
		height := line[0].Size * ptToMM
		if y+height > pageH-top {
			page++
			y = top
		}
		y += height
		x := left + (usable-lineW)/2
		for _, p := range line {
			pdf.SetFont("Helvetica", "B", p.Size)
			p.X, p.Y, p.Page = x, y, page
			x += pdf.GetStringWidth(p.Word) + gap
			out = append(out, p)
		}
		y += gap
		line, lineW = nil, 0
	}
	for _, wc := range words {
		s := size(wc.Count)
		pdf.SetFont("Helvetica", "B", s)
		width := pdf.GetStringWidth(wc.Word)
		if len(line) > 0 && lineW+gap+width > usable {
			flush()
		}
		if len(line) > 0 {
			lineW += gap
		}
		lineW += width
		line = append(line, Placement{Word: wc.Word, Count: wc.Count, Size: s})
	}
	flush()
	return out
}
