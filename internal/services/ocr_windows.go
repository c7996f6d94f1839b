//go:build windows

package services

import "errors"

// OCRService is not supported on Windows builds
type OCRService struct{}

// OCRResult contains the OCR processing result
type OCRResult struct {
	Text string
}

var errOCRUnsupported = errors.New("OCR is not supported on this platform")

// NewOCRService always fails on Windows
func NewOCRService() (*OCRService, error) {
	return nil, errOCRUnsupported
}

// ProcessImage always fails on Windows
func (s *OCRService) ProcessImage(imageBytes []byte) (*OCRResult, error) {
	return nil, errOCRUnsupported
}

// Close is a no-op on Windows
func (s *OCRService) Close() error {
	return nil
}
