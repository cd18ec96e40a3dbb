package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MihaiVisu/facedetect/internal/domain"
)

// DefaultMaxImageSize caps uploads when no explicit limit is configured.
const DefaultMaxImageSize = 10 * 1024 * 1024 // 10MB

// DetectionService interface for the service
type DetectionService interface {
	Detect(ctx context.Context, image []byte) (*domain.DetectionResult, error)
}

// ImageFetcher downloads an image referenced by URL.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DetectHandler handles face detection requests
type DetectHandler struct {
	service      DetectionService
	fetcher      ImageFetcher
	maxImageSize int64
	logger       *slog.Logger
}

// NewDetectHandler creates a new DetectHandler instance
func NewDetectHandler(service DetectionService, fetcher ImageFetcher, logger *slog.Logger) *DetectHandler {
	return &DetectHandler{
		service:      service,
		fetcher:      fetcher,
		maxImageSize: DefaultMaxImageSize,
		logger:       logger,
	}
}

// WithMaxImageSize overrides the upload size cap.
func (h *DetectHandler) WithMaxImageSize(size int64) *DetectHandler {
	if size > 0 {
		h.maxImageSize = size
	}
	return h
}

// Detect POST /v1/detect - detect faces in one image
//
// The image arrives either as a multipart file field "image" or as a
// form/query field "url" pointing at a remote image. The response is
// always HTTP 200 with the detection body; a payload that cannot be
// decoded as an image yields {"num_faces":0,"success":false,"faces":[]}
// rather than an error status.
func (h *DetectHandler) Detect(c *fiber.Ctx) error {
	// 1. Extract the image payload
	imageBytes, err := h.extractImage(c)
	if err != nil {
		return err
	}

	// 2. Run detection
	result, err := h.service.Detect(c.Context(), imageBytes)
	if err != nil {
		return err
	}

	h.logger.Debug("detection completed",
		slog.String("request_id", requestID(c)),
		slog.Int("image_bytes", len(imageBytes)),
		slog.Bool("success", result.Success),
		slog.Int("num_faces", result.NumFaces),
	)

	// 3. Return response (200 on both outcomes)
	return c.JSON(result)
}

// extractImage pulls the image bytes out of the request: uploaded file
// first, remote URL second. A present-but-empty upload is passed
// through so the decoder reports it as a failed detection.
func (h *DetectHandler) extractImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err == nil {
		if file.Size > h.maxImageSize {
			return nil, domain.ErrImageTooLarge.WithError(nil)
		}

		f, err := file.Open()
		if err != nil {
			return nil, domain.ErrValidationFailed.WithError(err)
		}
		defer func() {
			_ = f.Close()
		}()

		imageBytes, err := io.ReadAll(f)
		if err != nil {
			return nil, domain.ErrValidationFailed.WithError(err)
		}
		return imageBytes, nil
	}

	url := strings.TrimSpace(c.FormValue("url"))
	if url == "" {
		url = strings.TrimSpace(c.Query("url"))
	}
	if url == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("an image file or url is required"))
	}

	imageBytes, err := h.fetcher.Fetch(c.Context(), url)
	if err != nil {
		return nil, domain.ErrImageFetchFailed.WithError(err)
	}
	return imageBytes, nil
}

// requestID reads the id minted by the requestid middleware.
func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
