// Package corpus loads transcript files into in-memory documents.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// DefaultExtension is the suffix of files picked up by Load.
const DefaultExtension = ".txt"

// ErrUnreadable is wrapped by every error caused by a directory or file
// that could not be read.
var ErrUnreadable = errors.New("corpus: unreadable input")

// Document is one transcript. It is never modified after loading.
type Document struct {
	FileName string `json:"file_name" msgpack:"file_name"`
	Text     string `json:"text" msgpack:"text"`
}

// Load reads every regular file in dir whose extension matches ext
// (case-insensitive). Subdirectories are not descended. Documents are
// returned sorted by file name.
func Load(dir, ext string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrUnreadable, dir)
	}
	return LoadFS(os.DirFS(dir), ext)
}

// LoadFS is Load over an arbitrary file system rooted at the corpus directory.
func LoadFS(fsys fs.FS, ext string) ([]Document, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	var docs []Document
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(path.Ext(e.Name()), ext) {
			continue
		}
		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, e.Name(), err)
		}
		docs = append(docs, Document{
			FileName: e.Name(),
			Text:     strings.ToValidUTF8(string(b), "�"),
		})
	}
	SortByName(docs)
	return docs, nil
}

// SortByName orders docs by file name in place.
func SortByName(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].FileName < docs[j].FileName })
}

// Names returns the file names of docs in order.
func Names(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.FileName
	}
	return out
}
