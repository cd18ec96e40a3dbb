package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// DetectResponse represents the response for a detection request
type DetectResponse struct {
	NumFaces int     `json:"num_faces" example:"2"`
	Success  bool    `json:"success" example:"true"`
	Faces    [][]int `json:"faces"`
}

// HealthCheckResponse represents the health endpoint response
type HealthCheckResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"1.0.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Face Detection API",
		Version:     "v1.0.0",
		Description: "Detects faces in an uploaded or URL-referenced image and returns their bounding boxes as [x, y, w, h] (top-left corner, width, height, pixel coordinates)",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/detect - Detect faces
		endpoint.New(
			endpoint.POST,
			"/detect",
			endpoint.WithTags("Detection"),
			endpoint.WithSummary("Detect faces in an image"),
			endpoint.WithDescription("Runs face detection over one image, supplied either as the multipart file field 'image' or as a 'url' form/query field. Always returns 200 with the detection body; an unreadable payload yields num_faces=0, success=false, faces=[]."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("url", parameter.Query, parameter.WithDescription("Remote image URL, used when no file is uploaded")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(DetectResponse{}, "200", "Detection completed (success may still be false for unreadable payloads)"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "An image file or url is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "IMAGE_TOO_LARGE", Message: "Image exceeds the maximum allowed size"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "IMAGE_FETCH_FAILED", Message: "Could not download image from the provided URL"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "DETECTOR_UNAVAILABLE", Message: "Face detector backend is unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health - Health check
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Health check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthCheckResponse{}, "200", "Service is healthy"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
