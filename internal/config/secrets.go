package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var errNoSecretData = errors.New("no secret data found in AWS Secrets Manager")

// SecretsOverlay represents the structure of secrets stored in AWS Secrets Manager
type SecretsOverlay struct {
	DatabasePassword string `json:"database_password"`
	FeedAPIKey       string `json:"feed_api_key"`
	RedisPassword    string `json:"redis_password"`
}

// SecretsClient is the part of the Secrets Manager API the overlay needs.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewSecretsClient builds a Secrets Manager client from the default AWS credential chain.
func NewSecretsClient(ctx context.Context, region string) (SecretsClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// FetchSecrets retrieves and decodes the named secret.
func FetchSecrets(ctx context.Context, client SecretsClient, secretName string) (*SecretsOverlay, error) {
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret from AWS Secrets Manager: %w", err)
	}
	return parseSecretData(result)
}

func parseSecretData(result *secretsmanager.GetSecretValueOutput) (*SecretsOverlay, error) {
	var raw []byte
	switch {
	case result.SecretString != nil:
		raw = []byte(*result.SecretString)
	case result.SecretBinary != nil:
		raw = result.SecretBinary
	default:
		return nil, errNoSecretData
	}

	var secrets SecretsOverlay
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	return &secrets, nil
}

// Apply overlays non-empty secrets onto cfg.
func (s *SecretsOverlay) Apply(cfg *Config) {
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.FeedAPIKey != "" {
		cfg.Feed.APIKey = s.FeedAPIKey
	}
	if s.RedisPassword != "" {
		cfg.Publish.Redis.Password = s.RedisPassword
	}
}

// LoadSecretsFromAWS overlays the configured secret onto cfg. It is a no-op when
// no secret name is configured.
func LoadSecretsFromAWS(ctx context.Context, cfg *Config) error {
	if cfg.Secrets.SecretName == "" {
		return nil
	}
	client, err := NewSecretsClient(ctx, cfg.Secrets.Region)
	if err != nil {
		return err
	}
	secrets, err := FetchSecrets(ctx, client, cfg.Secrets.SecretName)
	if err != nil {
		return err
	}
	secrets.Apply(cfg)
	return nil
}
