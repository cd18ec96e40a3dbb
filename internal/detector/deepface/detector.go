// Package deepface implements face detection against a remote DeepFace
// HTTP service.
package deepface

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

// Detector implements detector.Detector using the DeepFace /analyze API.
type Detector struct {
	client *Client
}

var _ detector.Detector = (*Detector)(nil)

// New creates a new DeepFace detector
func New(config Config) *Detector {
	return &Detector{
		client: NewClient(config),
	}
}

// Detect sends the image to DeepFace and maps the reported facial
// regions to pixel boxes. A 400 from DeepFace means it could not read
// the payload as an image.
func (d *Detector) Detect(ctx context.Context, image []byte) ([]domain.Box, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := d.client.Analyze(ctx, imageBase64)
	if err != nil {
		if errors.Is(err, ErrInvalidImageFormat) {
			return nil, fmt.Errorf("%w: %v", detector.ErrUndecodableImage, err)
		}
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	boxes := make([]domain.Box, 0, len(resp.Results))
	for _, result := range resp.Results {
		boxes = append(boxes, domain.Box{
			X: result.Region.X,
			Y: result.Region.Y,
			W: result.Region.W,
			H: result.Region.H,
		})
	}

	return boxes, nil
}
