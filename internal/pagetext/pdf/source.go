// Package pdf provides a page source for PDF reports.
//
// Text is extracted with pdftotext (poppler-utils) when it is installed;
// otherwise pages are decoded from their content streams with pdfcpu.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/domain"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/core/ports/driven"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/logger"
	"github.com/Tanishh2203/Financial-PDF-RAG-System/internal/pagetext"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, ErrPDFToolNotFound
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

// Source reads PDF pages.
type Source struct {
	runner   CommandRunner
	fallback func(path string) ([]string, error)
}

// New creates a PDF page source using the system pdftotext.
func New() *Source {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a PDF page source with a custom command runner.
func NewWithRunner(runner CommandRunner) *Source {
	return &Source{runner: runner, fallback: extractWithPDFCPU}
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns instructions for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is recommended for PDF text extraction.

Install poppler-utils:
  macOS:   brew install poppler
  Ubuntu:  apt install poppler-utils
  Fedora:  dnf install poppler-utils

Without it, finrag falls back to a built-in extractor that may miss text in some PDFs.`
}

// Name returns the source name.
func (s *Source) Name() string {
	return "pdf"
}

// Extensions returns the file extensions this source handles.
func (s *Source) Extensions() []string {
	return []string{".pdf"}
}

// Pages extracts the text of every page.
func (s *Source) Pages(ctx context.Context, path string) ([]domain.Page, error) {
	out, err := s.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err == nil {
		pages := pagetext.SplitPages(string(out))
		if pagetext.CheckReadable(path, pages) == nil {
			return pages, nil
		}
		logger.Debug("pdftotext found no text in %s, trying pdfcpu", path)
	} else {
		logger.Debug("pdftotext failed for %s: %v, trying pdfcpu", path, err)
	}

	texts, ferr := s.fallback(path)
	if ferr != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrDocumentUnreadable, errors.Join(err, ferr))
	}

	pages := make([]domain.Page, len(texts))
	for i, t := range texts {
		pages[i] = domain.Page{Number: i + 1, Text: t, Unreadable: t == ""}
	}
	if err := pagetext.CheckReadable(path, pages); err != nil {
		return nil, err
	}
	return pages, nil
}
