package rekognition

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// Config holds configuration for the AWS Rekognition detector
type Config struct {
	// Region is the AWS region where the Rekognition service will be used (e.g., "us-east-1")
	Region string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region: "us-east-1",
	}
}

// DetectFacesAPI is the slice of the Rekognition client this detector
// uses, extracted so tests can substitute it.
type DetectFacesAPI interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// NewClient creates an AWS Rekognition client with the provided
// configuration, authenticating via the AWS default credential chain.
func NewClient(ctx context.Context, cfg Config) (*rekognition.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return rekognition.NewFromConfig(awsCfg), nil
}
