// Package results reads and writes evaluation result documents. Files ending
// in .gz are gzip compressed and files ending in .zst are zstd compressed.
package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkfz-mic/adeval/internal/evalerr"
	"github.com/dkfz-mic/adeval/internal/models"
	"github.com/dkfz-mic/adeval/internal/validation"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the encoding of a result file.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// CompressionFor returns the compression implied by the file extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Marshal encodes a result as indented JSON and checks it against the
// results schema.
func Marshal(res *models.EvaluationResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	if problems := validation.ValidateResultBytes(data); len(problems) > 0 {
		return nil, &evalerr.ValidationError{Source: "result document", Problems: problems}
	}
	return data, nil
}

// Unmarshal validates data against the results schema and decodes it.
func Unmarshal(data []byte, source string) (*models.EvaluationResult, error) {
	if problems := validation.ValidateResultBytes(data); len(problems) > 0 {
		return nil, &evalerr.ValidationError{Source: source, Problems: problems}
	}
	var res models.EvaluationResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	return &res, nil
}

// Write stores res at path, creating parent directories as needed.
func Write(path string, res *models.EvaluationResult) error {
	data, err := Marshal(res)
	if err != nil {
		return err
	}
	data, err = compress(data, CompressionFor(path))
	if err != nil {
		return fmt.Errorf("compressing %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Read loads a result written by Write.
func Read(path string) (*models.EvaluationResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := decompress(raw, CompressionFor(path))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return Unmarshal(data, path)
}

func compress(data []byte, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	switch c {
	case CompressionGzip:
		zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case CompressionZstd:
		zw, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer zw.Close()
		return zw.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
	return buf.Bytes(), nil
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionZstd:
		zr, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return zr.DecodeAll(data, nil)
	default:
		return data, nil
	}
}
