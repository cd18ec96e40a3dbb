// Package face wires detector backends to configuration.
package face

import (
	"context"
	"fmt"

	"github.com/MihaiVisu/facedetect/internal/config"
	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/detector/cascade"
	"github.com/MihaiVisu/facedetect/internal/detector/deepface"
	"github.com/MihaiVisu/facedetect/internal/detector/mock"
	"github.com/MihaiVisu/facedetect/internal/detector/rekognition"
)

// DetectorType identifies a detector backend.
type DetectorType string

const (
	// DetectorTypeCascade runs a local OpenCV Haar cascade (default).
	DetectorTypeCascade DetectorType = "cascade"
	// DetectorTypeDeepFace calls a remote DeepFace service.
	DetectorTypeDeepFace DetectorType = "deepface"
	// DetectorTypeRekognition calls AWS Rekognition.
	DetectorTypeRekognition DetectorType = "rekognition"
	// DetectorTypeMock is a deterministic in-process backend for dev and tests.
	DetectorTypeMock DetectorType = "mock"
)

// NewDetector creates the detector backend selected by cfg.Detector.
//
// Environment variables:
//   - DETECTOR: "cascade", "deepface", "rekognition" or "mock" (default: "cascade")
//   - CASCADE_PATH: Haar cascade XML file for the cascade backend
//   - DEEPFACE_URL: DeepFace API URL
//   - AWS_REGION + AWS credential chain for the rekognition backend
func NewDetector(ctx context.Context, cfg *config.Config) (detector.Detector, error) {
	switch DetectorType(cfg.Detector) {
	case DetectorTypeCascade, "":
		return createCascadeDetector(cfg)

	case DetectorTypeDeepFace:
		return createDeepFaceDetector(cfg), nil

	case DetectorTypeRekognition:
		det, err := rekognition.New(ctx, rekognition.Config{Region: cfg.AWSRegion})
		if err != nil {
			return nil, fmt.Errorf("create rekognition detector: %w", err)
		}
		return det, nil

	case DetectorTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown detector type: %s (supported: %s, %s, %s, %s)",
			cfg.Detector, DetectorTypeCascade, DetectorTypeDeepFace, DetectorTypeRekognition, DetectorTypeMock)
	}
}

func createCascadeDetector(cfg *config.Config) (detector.Detector, error) {
	det, err := cascade.New(cascade.Config{
		CascadePath:  cfg.CascadePath,
		ScaleFactor:  cfg.CascadeScaleFactor,
		MinNeighbors: cfg.CascadeMinNeighbors,
		MinSize:      cfg.CascadeMinSize,
	})
	if err != nil {
		return nil, fmt.Errorf("create cascade detector: %w", err)
	}
	return det, nil
}

func createDeepFaceDetector(cfg *config.Config) detector.Detector {
	dfCfg := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		dfCfg.BaseURL = cfg.DeepFaceURL
	}
	return deepface.New(dfCfg)
}
