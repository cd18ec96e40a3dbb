package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Detector backend: cascade, deepface, rekognition or mock
	Detector string `envconfig:"DETECTOR" default:"cascade"`

	// Cascade backend
	CascadePath         string  `envconfig:"CASCADE_PATH" default:"haarcascade_frontalface_default.xml"`
	CascadeScaleFactor  float64 `envconfig:"CASCADE_SCALE_FACTOR" default:"1.1"`
	CascadeMinNeighbors int     `envconfig:"CASCADE_MIN_NEIGHBORS" default:"5"`
	CascadeMinSize      int     `envconfig:"CASCADE_MIN_SIZE" default:"30"`

	// DeepFace backend
	DeepFaceURL string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`

	// Rekognition backend
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Request limits
	MaxImageSize  int64         `envconfig:"MAX_IMAGE_SIZE" default:"10485760"`
	DetectTimeout time.Duration `envconfig:"DETECT_TIMEOUT" default:"30s"`
	FetchTimeout  time.Duration `envconfig:"FETCH_TIMEOUT" default:"15s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
