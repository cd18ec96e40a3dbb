// Package mock provides a deterministic detector backend for
// development and tests. It decodes the image header for real, so the
// undecodable-payload path behaves like the production backends, but it
// invents the face it reports.
package mock

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

// Detector implements detector.Detector without any real detection.
type Detector struct {
	boxes []domain.Box
}

var _ detector.Detector = (*Detector)(nil)

// New creates a mock detector that reports one face covering the
// central half of any decodable image.
func New() *Detector {
	return &Detector{}
}

// WithBoxes fixes the boxes reported for every decodable image.
func (d *Detector) WithBoxes(boxes []domain.Box) *Detector {
	d.boxes = boxes
	return d
}

// Detect validates that the payload decodes as an image and returns
// the configured boxes, or a single synthetic one scaled to the frame.
func (d *Detector) Detect(ctx context.Context, img []byte) ([]domain.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", detector.ErrUndecodableImage, err)
	}

	if d.boxes != nil {
		out := make([]domain.Box, len(d.boxes))
		copy(out, d.boxes)
		return out, nil
	}

	return []domain.Box{
		{
			X: cfg.Width / 4,
			Y: cfg.Height / 4,
			W: cfg.Width / 2,
			H: cfg.Height / 2,
		},
	}, nil
}
