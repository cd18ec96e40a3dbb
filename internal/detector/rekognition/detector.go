// Package rekognition implements face detection using the AWS
// Rekognition DetectFaces API.
package rekognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	// Rekognition accepts JPEG and PNG; register the matching decoders
	// so image dimensions can be read locally.
	_ "image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

const (
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeInvalidParameter   = "InvalidParameterException"
	errCodeImageTooLarge      = "ImageTooLargeException"
)

// Detector implements detector.Detector using AWS Rekognition.
type Detector struct {
	client DetectFacesAPI
}

var _ detector.Detector = (*Detector)(nil)

// New creates a Rekognition detector using the default credential chain.
func New(ctx context.Context, cfg Config) (*Detector, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}
	return NewWithClient(client), nil
}

// NewWithClient creates a detector with an explicit API client.
func NewWithClient(client DetectFacesAPI) *Detector {
	return &Detector{client: client}
}

// Detect calls DetectFaces and converts the relative bounding boxes
// Rekognition returns into pixel boxes using the image dimensions.
func (d *Detector) Detect(ctx context.Context, img []byte) ([]domain.Box, error) {
	// Rekognition reports coordinates as ratios of the frame, so the
	// dimensions are needed up front. A payload the local decoders
	// reject would be rejected by the service as well.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", detector.ErrUndecodableImage, err)
	}

	input := &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: img,
		},
		Attributes: []types.Attribute{types.AttributeDefault},
	}

	output, err := d.client.DetectFaces(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case errCodeInvalidImageFormat, errCodeInvalidParameter, errCodeImageTooLarge:
				return nil, fmt.Errorf("%w: %v", detector.ErrUndecodableImage, err)
			}
		}
		return nil, fmt.Errorf("detect faces: %w", err)
	}

	boxes := make([]domain.Box, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		if detail.BoundingBox == nil {
			continue
		}
		boxes = append(boxes, toPixelBox(detail.BoundingBox, cfg.Width, cfg.Height))
	}

	return boxes, nil
}

// toPixelBox converts a relative Rekognition bounding box to pixel
// coordinates, clamped to the image frame.
func toPixelBox(bb *types.BoundingBox, width, height int) domain.Box {
	left := float64(deref(bb.Left)) * float64(width)
	top := float64(deref(bb.Top)) * float64(height)
	w := float64(deref(bb.Width)) * float64(width)
	h := float64(deref(bb.Height)) * float64(height)

	// Rekognition may report boxes partially outside the frame.
	if left < 0 {
		w += left
		left = 0
	}
	if top < 0 {
		h += top
		top = 0
	}

	return domain.Box{
		X: int(math.Round(left)),
		Y: int(math.Round(top)),
		W: max(0, int(math.Round(w))),
		H: max(0, int(math.Round(h))),
	}
}

func deref(f *float32) float32 {
	if f == nil {
		return 0
	}
	return *f
}
