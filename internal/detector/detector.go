// Package detector defines the narrow capability the API delegates to:
// given raw image bytes, return face bounding boxes. Backends live in
// subpackages and are selected at startup by the factory.
package detector

import (
	"context"
	"errors"

	"github.com/MihaiVisu/facedetect/internal/domain"
)

// ErrUndecodableImage is returned (possibly wrapped) when the payload
// cannot be interpreted as an image. The service layer maps it to the
// in-band success:false response; it is never a transport error.
var ErrUndecodableImage = errors.New("payload is not a decodable image")

// Detector locates faces in an encoded image.
//
// Boxes use pixel coordinates with x,y at the top-left corner and w,h
// as width and height. Order is whatever the backend reports and
// carries no meaning. An image with no faces yields an empty slice,
// not an error.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]domain.Box, error)
}
