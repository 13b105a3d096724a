package modelstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/causewaylab/crossing/core/logger"
	"github.com/causewaylab/crossing/core/prediction"
)

// LoadError reports a missing or corrupt model source. The service
// catches it at startup and proceeds in model-absent mode.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load model from %s: %v", e.Source, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Config selects the model source.
type Config struct {
	Path     string `json:"path"`
	UseS3    bool   `json:"use_s3"`
	S3Bucket string `json:"s3_bucket"`
	S3Key    string `json:"s3_key"`
	// S3TimeoutSeconds bounds the object download.
	S3TimeoutSeconds int `json:"s3_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "models/travel_time_model.json"
	}
	if c.S3TimeoutSeconds <= 0 {
		c.S3TimeoutSeconds = 10
	}
}

// Load reads the model from the configured source.
func Load(ctx context.Context, cfg Config, log logger.Logger) (prediction.Model, error) {
	cfg.SetDefaults()
	if cfg.UseS3 {
		return LoadS3(ctx, cfg, log)
	}
	return LoadFile(cfg.Path, log)
}

// LoadFile reads a model artifact from the local filesystem.
func LoadFile(path string, log logger.Logger) (prediction.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	m, err := parseArtifact(data)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	if log != nil {
		log.Infof("model loaded from %s", path)
	}
	return m, nil
}

// LoadS3 downloads a model artifact from the configured S3 object.
func LoadS3(ctx context.Context, cfg Config, log logger.Logger) (prediction.Model, error) {
	source := fmt.Sprintf("s3://%s/%s", cfg.S3Bucket, cfg.S3Key)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.S3TimeoutSeconds)*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	client := s3.NewFromConfig(awsCfg)
	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: &cfg.S3Bucket, Key: &cfg.S3Key})
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	defer func() { _ = out.Body.Close() }()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	m, err := parseArtifact(data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if log != nil {
		log.Infof("model loaded from %s", source)
	}
	return m, nil
}
