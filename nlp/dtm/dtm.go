// Package dtm builds the document-term matrix of a cleaned corpus and
// derives tf-idf weights from it.
package dtm

import (
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/oarkflow/transcripts/nlp/cleaner"
)

// Matrix is a sparse document-term count matrix. Rows are documents and
// columns are terms, both sorted alphabetically.
type Matrix struct {
	docs   []string
	terms  []string
	docIx  map[string]int
	termIx map[string]int
	counts *sparse.DOK
}

// Entry is one non-zero cell of the matrix.
type Entry struct {
	FileName string `json:"file_name" msgpack:"file_name"`
	Term     string `json:"term" msgpack:"term"`
	Count    int    `json:"count" msgpack:"count"`
}

// Build counts tokens per (file, word).
func Build(tokens []cleaner.Token) (*Matrix, error) {
	if len(tokens) == 0 {
		return nil, cleaner.ErrEmptyInput
	}
	m := &Matrix{docIx: make(map[string]int), termIx: make(map[string]int)}
	for _, t := range tokens {
		if _, ok := m.docIx[t.FileName]; !ok {
			m.docIx[t.FileName] = 0
			m.docs = append(m.docs, t.FileName)
		}
		if _, ok := m.termIx[t.Word]; !ok {
			m.termIx[t.Word] = 0
			m.terms = append(m.terms, t.Word)
		}
	}
	sort.Strings(m.docs)
	sort.Strings(m.terms)
	for i, d := range m.docs {
		m.docIx[d] = i
	}
	for j, w := range m.terms {
		m.termIx[w] = j
	}
	m.counts = sparse.NewDOK(len(m.docs), len(m.terms))
	for _, t := range tokens {
		i, j := m.docIx[t.FileName], m.termIx[t.Word]
		m.counts.Set(i, j, m.counts.At(i, j)+1)
	}
	return m, nil
}

// Dims returns the number of documents and distinct terms.
func (m *Matrix) Dims() (docs, terms int) {
	return len(m.docs), len(m.terms)
}

// Docs returns the row labels.
func (m *Matrix) Docs() []string { return m.docs }

// Terms returns the column labels.
func (m *Matrix) Terms() []string { return m.terms }

// Count returns the number of times term occurs in doc.
func (m *Matrix) Count(doc, term string) int {
	i, ok := m.docIx[doc]
	if !ok {
		return 0
	}
	j, ok := m.termIx[term]
	if !ok {
		return 0
	}
	return int(m.counts.At(i, j))
}

// NNZ is the number of non-zero cells.
func (m *Matrix) NNZ() int {
	return m.counts.NNZ()
}

// Entries returns the non-zero cells ordered by document, then term.
func (m *Matrix) Entries() []Entry {
	out := make([]Entry, 0, m.counts.NNZ())
	m.counts.DoNonZero(func(i, j int, v float64) {
		out = append(out, Entry{FileName: m.docs[i], Term: m.terms[j], Count: int(v)})
	})
	sort.Slice(out, func(a, b int) bool {
		if out[a].FileName != out[b].FileName {
			return out[a].FileName < out[b].FileName
		}
		return out[a].Term < out[b].Term
	})
	return out
}

// TermDoc returns the transpose of the counts (terms x documents) in
// compressed sparse column form, the orientation topic models consume.
func (m *Matrix) TermDoc() mat.Matrix {
	td := sparse.NewDOK(len(m.terms), len(m.docs))
	m.counts.DoNonZero(func(i, j int, v float64) {
		td.Set(j, i, v)
	})
	return td.ToCSC()
}

// TermScore is the tf-idf weight of a term within one document.
type TermScore struct {
	FileName string  `json:"file_name" msgpack:"file_name"`
	Term     string  `json:"term" msgpack:"term"`
	Count    int     `json:"count" msgpack:"count"`
	TF       float64 `json:"tf" msgpack:"tf"`
	IDF      float64 `json:"idf" msgpack:"idf"`
	TFIDF    float64 `json:"tf_idf" msgpack:"tf_idf"`
}

// TFIDF weighs every non-zero cell. tf is the term count over the
// document's total count and idf is ln(documents / documents containing
// the term), so a term present in every document scores zero.
func (m *Matrix) TFIDF() []TermScore {
	entries := m.Entries()
	docTotal := make(map[string]int, len(m.docs))
	df := make(map[string]int, len(m.terms))
	for _, e := range entries {
		docTotal[e.FileName] += e.Count
		df[e.Term]++
	}
	n := float64(len(m.docs))
	out := make([]TermScore, len(entries))
	for i, e := range entries {
		tf := float64(e.Count) / float64(docTotal[e.FileName])
		idf := math.Log(n / float64(df[e.Term]))
		out[i] = TermScore{FileName: e.FileName, Term: e.Term, Count: e.Count, TF: tf, IDF: idf, TFIDF: tf * idf}
	}
	return out
}

// TopTFIDF returns, for every document in row order, its n terms with the
// highest tf-idf (ties broken by term). n <= 0 keeps all terms.
func (m *Matrix) TopTFIDF(n int) []TermScore {
	byDoc := make(map[string][]TermScore, len(m.docs))
	for _, s := range m.TFIDF() {
		byDoc[s.FileName] = append(byDoc[s.FileName], s)
	}
	var out []TermScore
	for _, d := range m.docs {
		scores := byDoc[d]
		sort.SliceStable(scores, func(i, j int) bool {
			if scores[i].TFIDF != scores[j].TFIDF {
				return scores[i].TFIDF > scores[j].TFIDF
			}
			return scores[i].Term < scores[j].Term
		})
		if n > 0 && n < len(scores) {
			scores = scores[:n]
		}
		out = append(out, scores...)
	}
	return out
}
