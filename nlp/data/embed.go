// Package data embeds the reference word lists used by the analysis stages.
package data

import _ "embed"

// Stopwords is the default English stop-word list, one word per line.
//
//go:embed stopwords.txt
var Stopwords string

// BingLexicon is the default polarity lexicon in "word,sentiment" CSV form:
// 369 common words (197 positive, 172 negative) drawn from the Bing Liu
// opinion lexicon, which lists about 6,800. Supply the full list through
// lexicon_file for scores comparable with a full Bing join.
//
//go:embed bing.csv
var BingLexicon string
