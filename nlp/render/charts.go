package render

import (
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/topic"
)

// SentimentChart writes a PNG bar chart with one bar per file showing its
// net sentiment, coloured by sign.
func SentimentChart(w io.Writer, tallies []sentiment.Tally) error {
	if len(tallies) == 0 {
		return fmt.Errorf("%w: no sentiment tallies", ErrNothingToDraw)
	}
	pos := make(plotter.Values, len(tallies))
	neg := make(plotter.Values, len(tallies))
	names := make([]string, len(tallies))
	for i, t := range tallies {
		names[i] = t.FileName
		if t.Net >= 0 {
			pos[i] = float64(t.Net)
		} else {
			neg[i] = float64(t.Net)
		}
	}

	p := plot.New()
	p.Title.Text = "Net sentiment per transcript"
	p.Y.Label.Text = "positive - negative"
	width := vg.Points(20)
	for _, s := range []struct {
		vals plotter.Values
		c    color.Color
	}{{pos, positiveColor}, {neg, negativeColor}} {
		bars, err := plotter.NewBarChart(s.vals, width)
		if err != nil {
			return fmt.Errorf("render: sentiment chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = s.c
		p.Add(bars)
	}
	p.Add(plotter.NewGrid())
	p.NominalX(names...)

	chartW := vg.Length(len(tallies))*vg.Centimeter*1.5 + 4*vg.Inch
	wt, err := p.WriterTo(chartW, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render: sentiment chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: sentiment chart: %w", err)
	}
	return nil
}

// TopicChart writes a PNG with one horizontal bar chart per topic showing
// the beta of its top terms.
func TopicChart(w io.Writer, terms []topic.TopicTerm) error {
	if len(terms) == 0 {
		return fmt.Errorf("%w: no topic terms", ErrNothingToDraw)
	}
	byTopic := make(map[int][]topic.TopicTerm)
	for _, t := range terms {
		byTopic[t.Topic] = append(byTopic[t.Topic], t)
	}
	ids := make([]int, 0, len(byTopic))
	for id := range byTopic {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	row := make([]*plot.Plot, len(ids))
	for i, id := range ids {
		tt := byTopic[id]
		// Nominal axes grow upwards: list the heaviest term last so it is on top.
		sort.Slice(tt, func(a, b int) bool {
			if tt[a].Beta != tt[b].Beta {
				return tt[a].Beta < tt[b].Beta
			}
			return tt[a].Term > tt[b].Term
		})
		vals := make(plotter.Values, len(tt))
		labels := make([]string, len(tt))
		for j, t := range tt {
			vals[j] = t.Beta
			labels[j] = t.Term
		}
		bars, err := plotter.NewBarChart(vals, vg.Points(14))
		if err != nil {
			return fmt.Errorf("render: topic %d: %w", id, err)
		}
		bars.Horizontal = true
		bars.LineStyle.Width = 0
		bars.Color = paletteAt(i)

		p := plot.New()
		p.Title.Text = fmt.Sprintf("Topic %d", id)
		p.X.Label.Text = "beta"
		p.X.Min = 0
		p.Add(bars)
		p.NominalY(labels...)
		row[i] = p
	}

	const tileW, tileH = 3 * vg.Inch, 3 * vg.Inch
	img := vgimg.New(tileW*vg.Length(len(row)), tileH)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(row),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, dc)
	for i, p := range row {
		p.Draw(canvases[0][i])
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("render: topic chart: %w", err)
	}
	return nil
}
