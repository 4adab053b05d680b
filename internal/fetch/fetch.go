// Package fetch acquires the raw documentation corpus: it downloads a
// repository zip archive and extracts it to a stable local directory.
// Pure I/O boundary, no record semantics.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DownloadAndExtract downloads the zip at zipURL and extracts it into
// dest. Archives produced by source forges wrap everything in a single
// top-level folder; that component is stripped so dest itself becomes
// the repository root. When dest already exists the download is skipped.
func DownloadAndExtract(ctx context.Context, zipURL, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		slog.Info("corpus already present, skipping download", "dest", dest)
		return nil
	}

	slog.Info("downloading corpus archive", "url", zipURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, zipURL, nil)
	if err != nil {
		return fmt.Errorf("building download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", zipURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: unexpected status %s", zipURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading archive body: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	slog.Info("extracting corpus archive", "entries", len(zr.File), "dest", dest)

	return Extract(zr, dest)
}

// Extract unpacks zr into dest, stripping the archive's top-level
// folder. Entries that would escape dest are rejected.
func Extract(zr *zip.Reader, dest string) error {
	for _, file := range zr.File {
		rel := stripTopLevel(file.Name)
		if rel == "" {
			continue
		}

		target, err := secureJoin(dest, rel)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}

			continue
		}

		if err := extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("extracting %s: %w", file.Name, err)
	}

	return dst.Close()
}

// stripTopLevel drops the first path component of an archive entry name.
func stripTopLevel(name string) string {
	name = strings.TrimPrefix(name, "/")

	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}

	return rest
}

// secureJoin joins rel onto dest, rejecting entries that resolve
// outside of dest (zip-slip).
func secureJoin(dest, rel string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(rel))

	cleanDest := filepath.Clean(dest) + string(os.PathSeparator)
	if !strings.HasPrefix(target, cleanDest) {
		return "", fmt.Errorf("archive entry %q escapes destination", rel)
	}

	return target, nil
}
