//go:build !windows

package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"
)

// OCRService extracts text from price-tag photos
type OCRService struct {
	client *gosseract.Client
}

// OCRResult contains the OCR processing result
type OCRResult struct {
	Text string
}

// NewOCRService creates a new OCR service
func NewOCRService() (*OCRService, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Price tags are a single block of text
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &OCRService{
		client: client,
	}, nil
}

// ProcessImage processes an image from bytes and returns extracted text
func (s *OCRService) ProcessImage(imageBytes []byte) (*OCRResult, error) {
	tmpFile, err := os.CreateTemp("", "pricetag-*.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(imageBytes); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	absPath, err := filepath.Abs(tmpFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	if err := s.client.SetImage(absPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := s.client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return &OCRResult{Text: text}, nil
}

// Close releases OCR resources
func (s *OCRService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
