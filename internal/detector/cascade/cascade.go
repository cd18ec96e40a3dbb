// Package cascade implements face detection with a local OpenCV Haar
// cascade classifier via gocv.
package cascade

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

// Config holds the cascade classifier parameters.
type Config struct {
	// CascadePath is the Haar cascade XML file to load.
	CascadePath string

	// ScaleFactor is how much the image is shrunk at each pyramid step.
	ScaleFactor float64

	// MinNeighbors is how many neighboring candidate rectangles a
	// detection needs to be kept.
	MinNeighbors int

	// MinSize is the minimum face size in pixels (square).
	MinSize int
}

// DefaultConfig returns the classifier parameters used by the frontal
// face cascade: scale factor 1.1, 5 min neighbors, 30x30 min size.
func DefaultConfig() Config {
	return Config{
		CascadePath:  "haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	}
}

// Detector runs a Haar cascade over uploaded images.
type Detector struct {
	// The classifier handle is not safe for concurrent use.
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	config     Config
}

var _ detector.Detector = (*Detector)(nil)

// New loads the cascade file and returns a ready detector.
func New(cfg Config) (*Detector, error) {
	if cfg.ScaleFactor <= 1.0 {
		cfg.ScaleFactor = DefaultConfig().ScaleFactor
	}
	if cfg.MinNeighbors <= 0 {
		cfg.MinNeighbors = DefaultConfig().MinNeighbors
	}
	if cfg.MinSize <= 0 {
		cfg.MinSize = DefaultConfig().MinSize
	}

	if _, err := os.Stat(cfg.CascadePath); err != nil {
		return nil, fmt.Errorf("cascade file not found: %s: %w", cfg.CascadePath, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cfg.CascadePath) {
		_ = classifier.Close()
		return nil, fmt.Errorf("failed to load cascade file: %s", cfg.CascadePath)
	}

	return &Detector{
		classifier: classifier,
		config:     cfg,
	}, nil
}

// Detect decodes the image, converts it to grayscale and runs the
// cascade over it. An undecodable payload yields ErrUndecodableImage.
func (d *Detector) Detect(ctx context.Context, img []byte) ([]domain.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.IMDecode(img, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", detector.ErrUndecodableImage, err)
	}
	defer func() {
		_ = mat.Close()
	}()

	if mat.Empty() {
		return nil, detector.ErrUndecodableImage
	}

	gray := gocv.NewMat()
	defer func() {
		_ = gray.Close()
	}()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	minSize := image.Pt(d.config.MinSize, d.config.MinSize)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.config.ScaleFactor,
		d.config.MinNeighbors,
		0,
		minSize,
		image.Pt(0, 0),
	)
	d.mu.Unlock()

	boxes := make([]domain.Box, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, domain.Box{
			X: r.Min.X,
			Y: r.Min.Y,
			W: r.Dx(),
			H: r.Dy(),
		})
	}

	return boxes, nil
}

// Close releases the underlying classifier.
func (d *Detector) Close() error {
	return d.classifier.Close()
}
