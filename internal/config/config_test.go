package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads explicit values",
			envVars: map[string]string{
				"PORT":           "8080",
				"ENV":            "production",
				"DETECTOR":       "rekognition",
				"AWS_REGION":     "eu-west-1",
				"DETECT_TIMEOUT": "5s",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 8080 &&
					c.Environment == "production" &&
					c.Detector == "rekognition" &&
					c.AWSRegion == "eu-west-1" &&
					c.DetectTimeout == 5*time.Second
			},
		},
		{
			name:    "uses defaults when vars missing",
			envVars: map[string]string{},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 3000 &&
					c.Environment == "development" &&
					c.Detector == "cascade" &&
					c.CascadeScaleFactor == 1.1 &&
					c.CascadeMinNeighbors == 5 &&
					c.CascadeMinSize == 30 &&
					c.MaxImageSize == 10*1024*1024 &&
					c.DetectTimeout == 30*time.Second
			},
		},
		{
			name: "fails on malformed duration",
			envVars: map[string]string{
				"DETECT_TIMEOUT": "not-a-duration",
			},
			wantErr: true,
			check:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config check failed, got: %+v", cfg)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"development", "development", true},
		{"production", "production", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsDevelopment(); got != tt.want {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"production", "production", true},
		{"development", "development", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{Environment: tt.env}
			if got := c.IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}
