package rekognition

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihaiVisu/facedetect/internal/detector"
	"github.com/MihaiVisu/facedetect/internal/domain"
)

// mockDetectFacesAPI is a stub implementation of DetectFacesAPI
type mockDetectFacesAPI struct {
	detectFacesFunc func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
	calls           int
}

func (m *mockDetectFacesAPI) DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
	m.calls++
	if m.detectFacesFunc != nil {
		return m.detectFacesFunc(ctx, params, optFns...)
	}
	return &rekognition.DetectFacesOutput{}, nil
}

// encodePNG returns a valid PNG of the given size
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetector_Detect_ConvertsRelativeBoxes(t *testing.T) {
	// 200x100 frame: relative (0.05, 0.1, 0.25, 0.5) is pixel (10, 10, 50, 50)
	payload := encodePNG(t, 200, 100)

	mockAPI := &mockDetectFacesAPI{
		detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
			assert.Equal(t, payload, params.Image.Bytes)
			return &rekognition.DetectFacesOutput{
				FaceDetails: []types.FaceDetail{
					{
						BoundingBox: &types.BoundingBox{
							Left:   aws.Float32(0.05),
							Top:    aws.Float32(0.1),
							Width:  aws.Float32(0.25),
							Height: aws.Float32(0.5),
						},
					},
				},
			}, nil
		},
	}

	det := NewWithClient(mockAPI)

	boxes, err := det.Detect(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, []domain.Box{{X: 10, Y: 10, W: 50, H: 50}}, boxes)
}

func TestDetector_Detect_ClampsOutOfFrameBoxes(t *testing.T) {
	payload := encodePNG(t, 100, 100)

	mockAPI := &mockDetectFacesAPI{
		detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
			return &rekognition.DetectFacesOutput{
				FaceDetails: []types.FaceDetail{
					{
						BoundingBox: &types.BoundingBox{
							Left:   aws.Float32(-0.1),
							Top:    aws.Float32(-0.2),
							Width:  aws.Float32(0.5),
							Height: aws.Float32(0.5),
						},
					},
				},
			}, nil
		},
	}

	det := NewWithClient(mockAPI)

	boxes, err := det.Detect(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	assert.Equal(t, domain.Box{X: 0, Y: 0, W: 40, H: 30}, boxes[0])
	assert.GreaterOrEqual(t, boxes[0].W, 0)
	assert.GreaterOrEqual(t, boxes[0].H, 0)
}

func TestDetector_Detect_UndecodablePayloadSkipsAPI(t *testing.T) {
	mockAPI := &mockDetectFacesAPI{}
	det := NewWithClient(mockAPI)

	_, err := det.Detect(context.Background(), []byte("not-an-image"))
	assert.ErrorIs(t, err, detector.ErrUndecodableImage)
	assert.Zero(t, mockAPI.calls, "API must not be called for undecodable payloads")
}

func TestDetector_Detect_MapsAPIErrors(t *testing.T) {
	payload := encodePNG(t, 50, 50)

	tests := []struct {
		name            string
		apiErr          error
		wantUndecodable bool
	}{
		{
			name:            "invalid image format",
			apiErr:          &smithy.GenericAPIError{Code: "InvalidImageFormatException", Message: "bad image"},
			wantUndecodable: true,
		},
		{
			name:            "invalid parameter",
			apiErr:          &smithy.GenericAPIError{Code: "InvalidParameterException", Message: "bad param"},
			wantUndecodable: true,
		},
		{
			name:            "throttling",
			apiErr:          &smithy.GenericAPIError{Code: "ThrottlingException", Message: "slow down"},
			wantUndecodable: false,
		},
		{
			name:            "plain error",
			apiErr:          errors.New("connection reset"),
			wantUndecodable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := &mockDetectFacesAPI{
				detectFacesFunc: func(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error) {
					return nil, tt.apiErr
				},
			}
			det := NewWithClient(mockAPI)

			_, err := det.Detect(context.Background(), payload)
			require.Error(t, err)
			if tt.wantUndecodable {
				assert.ErrorIs(t, err, detector.ErrUndecodableImage)
			} else {
				assert.NotErrorIs(t, err, detector.ErrUndecodableImage)
			}
		})
	}
}

func TestDetector_Detect_NoFaces(t *testing.T) {
	det := NewWithClient(&mockDetectFacesAPI{})

	boxes, err := det.Detect(context.Background(), encodePNG(t, 50, 50))
	require.NoError(t, err)
	assert.Empty(t, boxes)
	assert.NotNil(t, boxes)
}
