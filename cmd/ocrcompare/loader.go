package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/extract"
	"github.com/baditaflorin/go_ocr_similarity/internal/adapters/storage"
	"github.com/baditaflorin/go_ocr_similarity/internal/config"
)

// sourceLoader resolves local paths and r2:// object paths to text. The R2
// client is created on first remote path.
type sourceLoader struct {
	storageCfg config.StorageConfig
	remote     *storage.R2
}

func newSourceLoader(cfg config.StorageConfig) *sourceLoader {
	return &sourceLoader{storageCfg: cfg}
}

func (l *sourceLoader) load(ctx context.Context, path string) (string, error) {
	if !storage.IsRemotePath(path) {
		return extract.LoadFile(path)
	}

	bucket, key, err := storage.ParsePath(path)
	if err != nil {
		return "", err
	}
	if l.remote == nil {
		l.remote, err = storage.NewR2(ctx, storage.R2Config{
			Endpoint: l.storageCfg.Endpoint,
			Region:   l.storageCfg.Region,
			Profile:  l.storageCfg.Profile,
		})
		if err != nil {
			return "", err
		}
	}

	text, err := l.remote.Fetch(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	// Remote OCR output keeps its JSON envelope; unwrap it like a local
	// file would be.
	if strings.ToLower(filepath.Ext(key)) == ".json" {
		unwrapped, err := extract.ExtractOCRText([]byte(text))
		if err != nil {
			return "", fmt.Errorf("unwrapping %s: %w", path, err)
		}
		return unwrapped, nil
	}
	return text, nil
}
