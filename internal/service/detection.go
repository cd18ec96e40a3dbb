package service

import (
	"context"
	"errors"
	"time"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

const defaultDetectTimeout = 30 * time.Second

// DetectionService runs the configured detector over a single image
// and shapes the outcome into the response contract: an undecodable
// payload is a negative result, not an error; a backend failure is an
// error the transport layer turns into a 5xx.
type DetectionService struct {
	detector detector.Detector
	timeout  time.Duration
}

func NewDetectionService(det detector.Detector) *DetectionService {
	return &DetectionService{
		detector: det,
		timeout:  defaultDetectTimeout,
	}
}

// WithTimeout overrides the per-detection timeout.
func (s *DetectionService) WithTimeout(timeout time.Duration) *DetectionService {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

// Detect produces a DetectionResult for one image. The same payload
// always yields the same result for a deterministic backend; nothing
// is retained between calls.
func (s *DetectionService) Detect(ctx context.Context, image []byte) (*domain.DetectionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	boxes, err := s.detector.Detect(ctx, image)
	if err != nil {
		if errors.Is(err, detector.ErrUndecodableImage) {
			return domain.FailedDetection(), nil
		}
		return nil, domain.ErrDetectorUnavailable.WithError(err)
	}

	return domain.NewDetectionResult(boxes), nil
}
