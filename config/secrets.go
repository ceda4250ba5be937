package config

import (
	"context"
	"fmt"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// LoadAWSConfig loads the SDK config for the configured region, using static
// credentials when they are set (LocalStack) and the default chain otherwise.
// Endpoint overrides are applied per client via BaseEndpoint.
func LoadAWSConfig(ctx context.Context, c AWSConfig) (sdkaws.Config, error) {
	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" || c.SecretAccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// SecretsClient reads string secrets from AWS Secrets Manager and caches them
// for the lifetime of the process.
type SecretsClient struct {
	client *secretsmanager.Client
	cache  map[string]string
	mu     sync.RWMutex
}

func NewSecretsClient(cfg sdkaws.Config, endpoint string) *SecretsClient {
	return &SecretsClient{
		client: secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
			if endpoint != "" {
				o.BaseEndpoint = sdkaws.String(endpoint)
			}
		}),
		cache: make(map[string]string),
	}
}

// NewSecretsClientFromConfig loads AWS config and returns a SecretsClient.
func NewSecretsClientFromConfig(ctx context.Context, c AWSConfig) (*SecretsClient, error) {
	cfg, err := LoadAWSConfig(ctx, c)
	if err != nil {
		return nil, err
	}
	return NewSecretsClient(cfg, c.Endpoint), nil
}

func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	if v, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &name})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	s.mu.Lock()
	s.cache[name] = *out.SecretString
	s.mu.Unlock()

	return *out.SecretString, nil
}
