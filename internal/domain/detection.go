package domain

import (
	"encoding/json"
	"fmt"
)

// Box is a face bounding box in pixel coordinates: x,y is the top-left
// corner, w,h the width and height. It marshals to the wire form
// [x, y, w, h] expected by existing API consumers.
type Box struct {
	X int
	Y int
	W int
	H int
}

// MarshalJSON encodes the box as a 4-element integer array.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X, b.Y, b.W, b.H})
}

// UnmarshalJSON decodes the [x, y, w, h] wire form.
func (b *Box) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("unmarshal box: %w", err)
	}
	b.X, b.Y, b.W, b.H = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// DetectionResult is the response body of the detect endpoint. It is
// built fresh per request and never mutated afterwards.
type DetectionResult struct {
	NumFaces int   `json:"num_faces"`
	Success  bool  `json:"success"`
	Faces    []Box `json:"faces"`
}

// NewDetectionResult builds a successful result from detector output.
// Faces is never nil so the JSON field is always an array.
func NewDetectionResult(faces []Box) *DetectionResult {
	if faces == nil {
		faces = []Box{}
	}
	return &DetectionResult{
		NumFaces: len(faces),
		Success:  true,
		Faces:    faces,
	}
}

// FailedDetection is the fixed body returned when the payload cannot be
// decoded as an image.
func FailedDetection() *DetectionResult {
	return &DetectionResult{
		NumFaces: 0,
		Success:  false,
		Faces:    []Box{},
	}
}
