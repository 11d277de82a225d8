package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oarkflow/transcripts/nlp/dtm"
	"github.com/oarkflow/transcripts/nlp/frequency"
	"github.com/oarkflow/transcripts/nlp/sentiment"
	"github.com/oarkflow/transcripts/nlp/topic"
)

// Report is the serialisable outcome of one analysis run.
type Report struct {
	RunID         string                   `json:"run_id" msgpack:"run_id"`
	CreatedAt     time.Time                `json:"created_at" msgpack:"created_at"`
	InputDir      string                   `json:"input_dir,omitempty" msgpack:"input_dir,omitempty"`
	Documents     []string                 `json:"documents" msgpack:"documents"`
	Tokens        int                      `json:"tokens" msgpack:"tokens"`
	TopWords      frequency.Table          `json:"top_words" msgpack:"top_words"`
	Bigrams       frequency.Table          `json:"top_bigrams,omitempty" msgpack:"top_bigrams,omitempty"`
	Sentiment     []sentiment.Tally        `json:"sentiment" msgpack:"sentiment"`
	Contributions []sentiment.Contribution `json:"sentiment_words,omitempty" msgpack:"sentiment_words,omitempty"`
	Topics        int                      `json:"topics" msgpack:"topics"`
	Seed          uint64                   `json:"seed" msgpack:"seed"`
	TopTerms      []topic.TopicTerm        `json:"top_terms" msgpack:"top_terms"`
	Dominant      []topic.DocumentTopic    `json:"dominant_topics,omitempty" msgpack:"dominant_topics,omitempty"`
	Distinctive   []dtm.TermScore          `json:"distinctive_terms,omitempty" msgpack:"distinctive_terms,omitempty"`
	Artifacts     []string                 `json:"artifacts,omitempty" msgpack:"artifacts,omitempty"`
}

// Format names an encoding of Report.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// Ext returns the file extension used for f.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes r to w in the given format.
func Encode(w io.Writer, r *Report, f Format) error {
	switch f {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// Decode reads a report written by Encode.
func Decode(r io.Reader, f Format) (*Report, error) {
	var rep Report
	var err error
	switch f {
	case JSON, "":
		err = json.NewDecoder(r).Decode(&rep)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&rep)
	default:
		return nil, fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", f, err)
	}
	return &rep, nil
}

// ToJSON returns the indented JSON form of r.
func ToJSON(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, JSON); err != nil {
		return "", err
	}
	return buf.String(), nil
}
