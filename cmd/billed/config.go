package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"billed/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/gorilla/securecookie"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	backendPostgres = "postgres"
	backendMemory   = "memory"

	storageS3       = "s3"
	storageSupabase = "supabase"
)

func loadConfig(logger logrus.FieldLogger) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if err := validateConfig(c); err != nil {
		return nil, err
	}

	if c.CookieHashKey == "" || c.CookieBlockKey == "" {
		if c.Environment != "development" {
			return nil, errors.New("set COOKIE_HASH_KEY and COOKIE_BLOCK_KEY")
		}

		// Sessions will not survive a restart.
		logger.Warn("cookie keys not set, generating ephemeral keys")
		c.CookieHashKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
		c.CookieBlockKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	return c, nil
}

func validateConfig(c *types.Config) error {
	switch c.Backend {
	case backendMemory:
	case backendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("set DATABASE_URL")
		}

		switch c.StorageDriver {
		case storageS3:
			if c.S3BucketName == "" {
				return errors.New("set S3_BUCKET_NAME")
			}
		case storageSupabase:
			if c.SupabaseProjectID == "" || c.SupabaseAPIKey == "" {
				return errors.New("set SUPABASE_PROJECT_ID and SUPABASE_API_KEY")
			}
		default:
			return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}

	if (c.CognitoClientID == "") != (c.CognitoIssuerURL == "") {
		return errors.New("set both COGNITO_CLIENT_ID and COGNITO_ISSUER_URL, or neither")
	}

	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}

	return nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
