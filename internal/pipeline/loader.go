package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/tfquiz/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnsupportedEncoding is returned when no known encoding decodes a file
var ErrUnsupportedEncoding = errors.New("unable to decode text with the tried encodings")

// decoder tries one encoding on raw bytes
type decoder struct {
	name   string
	decode func([]byte) (string, bool)
}

// decoders are tried in order: utf-8, utf-8 with BOM, latin1, ISO-8859-1
var decoders = []decoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-8-sig", decode: decodeUTF8BOM},
	{name: "latin1", decode: decodeWith(charmap.Windows1252)},
	{name: "iso-8859-1", decode: decodeWith(charmap.ISO8859_1)},
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8(data []byte) (string, bool) {
	if bytes.HasPrefix(data, utf8BOM) || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeUTF8BOM accepts only valid UTF-8 led by a byte order mark; the
// x/text decoder would otherwise replace invalid bytes instead of failing
func decodeUTF8BOM(data []byte) (string, bool) {
	if !bytes.HasPrefix(data, utf8BOM) || !utf8.Valid(data) {
		return "", false
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func decodeWith(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

// Decode converts raw bytes to text, returning the encoding that worked
func Decode(data []byte) (string, string, error) {
	for _, d := range decoders {
		if text, ok := d.decode(data); ok {
			return text, d.name, nil
		}
	}
	return "", "", ErrUnsupportedEncoding
}

// LoadFile reads, decodes and cleans a text or HTML file
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return LoadBytes(filepath.Base(path), data)
}

// LoadBytes decodes and cleans uploaded content; name selects HTML handling
func LoadBytes(name string, data []byte) (string, error) {
	text, _, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		text, err = ExtractVisibleText(text)
		if err != nil {
			return "", fmt.Errorf("extract text: %w", err)
		}
	}

	return Clean(text), nil
}

// LoadFiles loads documents concurrently, keeping input order.
// Document IDs are base file names.
func LoadFiles(ctx context.Context, paths []string, limit int) ([]model.Document, error) {
	docs := make([]model.Document, len(paths))
	if limit <= 0 {
		limit = 4
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := LoadFile(path)
			if err != nil {
				return err
			}
			docs[i] = model.Document{ID: filepath.Base(path), Text: text}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
