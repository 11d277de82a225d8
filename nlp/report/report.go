// Package report prints analysis tables for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/oarkflow/transcripts/nlp/dtm"
	"github.com/oarkflow/transcripts/nlp/export"
	"github.com/oarkflow/transcripts/nlp/frequency"
	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/topic"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	posStyle    = cellStyle.Foreground(lipgloss.Color("35"))
	negStyle    = cellStyle.Foreground(lipgloss.Color("166"))
)

func render(title string, headers []string, rows [][]string, style table.StyleFunc) string {
	if style == nil {
		style = func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(style)
	return titleStyle.Render(title) + "\n" + t.Render() + "\n"
}

// Frequencies renders a ranked word-count table.
func Frequencies(words frequency.Table) string {
	return ranked("Most frequent words", "WORD", words)
}

// Bigrams renders a ranked table of word pairs.
func Bigrams(grams frequency.Table) string {
	return ranked("Most frequent bigrams", "BIGRAM", grams)
}

func ranked(title, label string, t frequency.Table) string {
	rows := make([][]string, len(t))
	for i, wc := range t {
		rows[i] = []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)}
	}
	return render(title, []string{"#", label, "COUNT"}, rows, nil)
}

// Sentiment renders per-file tallies, colouring the net column by sign.
func Sentiment(tallies []sentiment.Tally) string {
	rows := make([][]string, len(tallies))
	for i, t := range tallies {
		rows[i] = []string{t.FileName, strconv.Itoa(t.Positive), strconv.Itoa(t.Negative), strconv.Itoa(t.Net)}
	}
	style := func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row < 0 || row >= len(tallies):
			return cellStyle
		case col == 3 && tallies[row].Net > 0:
			return posStyle
		case col == 3 && tallies[row].Net < 0:
			return negStyle
		}
		return cellStyle
	}
	return render("Sentiment per transcript", []string{"FILE", "POSITIVE", "NEGATIVE", "NET"}, rows, style)
}

// Contributions renders the words driving each polarity.
func Contributions(cs []sentiment.Contribution) string {
	rows := make([][]string, len(cs))
	for i, c := range cs {
		rows[i] = []string{string(c.Polarity), c.Word, strconv.Itoa(c.Count)}
	}
	return render("Sentiment words", []string{"POLARITY", "WORD", "COUNT"}, rows, nil)
}

// TopTerms renders the top terms of every topic.
func TopTerms(terms []topic.TopicTerm) string {
	rows := make([][]string, len(terms))
	for i, t := range terms {
		rows[i] = []string{strconv.Itoa(t.Topic), t.Term, fmt.Sprintf("%.4f", t.Beta)}
	}
	return render("Top terms per topic", []string{"TOPIC", "TERM", "BETA"}, rows, nil)
}

// Dominant renders the main topic of every document.
func Dominant(docs []topic.DocumentTopic) string {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{d.FileName, strconv.Itoa(d.Topic), fmt.Sprintf("%.3f", d.Gamma)}
	}
	return render("Dominant topic per transcript", []string{"FILE", "TOPIC", "GAMMA"}, rows, nil)
}

// Distinctive renders the highest tf-idf terms per document.
func Distinctive(scores []dtm.TermScore) string {
	rows := make([][]string, len(scores))
	for i, s := range scores {
		rows[i] = []string{s.FileName, s.Term, strconv.Itoa(s.Count), fmt.Sprintf("%.4f", s.TFIDF)}
	}
	return render("Distinctive terms (tf-idf)", []string{"FILE", "TERM", "COUNT", "TF-IDF"}, rows, nil)
}

// Print writes each non-empty section to w.
func Print(w io.Writer, sections ...string) error {
	for _, s := range sections {
		if s == "" {
			continue
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// Sections renders every table of rep in display order.
func Sections(rep *export.Report) []string {
	head := fmt.Sprintf("run %s  %d documents  %d tokens  %d topics (seed %d)\n",
		rep.RunID, len(rep.Documents), rep.Tokens, rep.Topics, rep.Seed)
	out := []string{
		titleStyle.Render(head),
		Frequencies(rep.TopWords),
	}
	if len(rep.Bigrams) > 0 {
		out = append(out, Bigrams(rep.Bigrams))
	}
	out = append(out, Sentiment(rep.Sentiment))
	if len(rep.Contributions) > 0 {
		out = append(out, Contributions(rep.Contributions))
	}
	out = append(out, TopTerms(rep.TopTerms))
	if len(rep.Dominant) > 0 {
		out = append(out, Dominant(rep.Dominant))
	}
	if len(rep.Distinctive) > 0 {
		out = append(out, Distinctive(rep.Distinctive))
	}
	return out
}
