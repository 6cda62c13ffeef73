// Package upload validates incoming PDF streams and buffers them to local
// disk. Payloads are written chunk by chunk under a size cap rather than
// being held in memory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Validation errors returned by Receive.
var (
	// ErrEmptyFile is returned when the incoming stream yields no bytes.
	ErrEmptyFile = errors.New("upload: empty file")
	// ErrTooLarge is returned once the cumulative payload exceeds the size cap.
	ErrTooLarge = errors.New("upload: file exceeds size limit")
	// ErrInvalidType is returned when the payload neither starts with the PDF
	// signature nor carries a .pdf filename.
	ErrInvalidType = errors.New("upload: only PDF files are allowed")
)

// pdfSignature is the leading magic bytes of a PDF document.
var pdfSignature = []byte("%PDF")

const (
	// firstChunkSize covers the signature check without waiting for a full chunk.
	firstChunkSize = 4 * 1024
	chunkSize      = 64 * 1024
)

// Receiver buffers incoming upload streams to uniquely named files in a
// scoped temporary directory.
type Receiver struct {
	tempDir  string
	maxBytes int64
}

// NewReceiver creates a Receiver writing to tempDir with the given byte cap.
// The directory is created if it doesn't exist.
func NewReceiver(tempDir string, maxBytes int64) (*Receiver, error) {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "drivepdf")
	}

	if err := os.MkdirAll(tempDir, 0750); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	return &Receiver{tempDir: tempDir, maxBytes: maxBytes}, nil
}

// TempDir returns the temporary directory path.
func (rc *Receiver) TempDir() string {
	return rc.tempDir
}

// Receive reads the stream in chunks and writes it to a uniquely named file,
// validating the byte count after every chunk and the PDF signature on the
// first one. A payload missing the signature is still accepted when filename
// ends in ".pdf".
//
// The returned path is non-empty as soon as the file has been created, even
// on error; the caller owns the file and must remove it on every failure
// path. Nothing is created when the first read already fails validation.
func (rc *Receiver) Receive(r io.Reader, filename string) (string, error) {
	first := make([]byte, firstChunkSize)
	n, err := io.ReadFull(r, first)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read first chunk: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}
	first = first[:n]

	total := int64(n)
	if total > rc.maxBytes {
		return "", ErrTooLarge
	}

	if !startsWithPDFSignature(first) && !hasPDFExtension(filename) {
		return "", ErrInvalidType
	}

	path := filepath.Join(rc.tempDir, fmt.Sprintf("upload_%s.pdf", strings.ReplaceAll(uuid.NewString(), "-", "")))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(first); err != nil {
		_ = f.Close()
		return path, fmt.Errorf("write temp file: %w", err)
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			total += int64(n)
			if total > rc.maxBytes {
				_ = f.Close()
				return path, ErrTooLarge
			}
			if _, werr := f.Write(buf[:n]); werr != nil {
				_ = f.Close()
				return path, fmt.Errorf("write temp file: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = f.Close()
			return path, fmt.Errorf("read upload stream: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		return path, fmt.Errorf("close temp file: %w", err)
	}

	return path, nil
}

func startsWithPDFSignature(chunk []byte) bool {
	return len(chunk) >= len(pdfSignature) && string(chunk[:len(pdfSignature)]) == string(pdfSignature)
}

func hasPDFExtension(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
