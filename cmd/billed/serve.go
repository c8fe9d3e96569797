package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"billed/internal/backend"
	"billed/internal/container"
	"billed/internal/db"
	"billed/internal/server"
	"billed/internal/storage"
	"billed/internal/store"
	"billed/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(logger)
	if err != nil {
		return err
	}

	var awsConfig aws.Config
	if (config.Backend == backendPostgres && config.StorageDriver == storageS3) || config.CognitoClientID != "" {
		awsConfig, err = loadAWSConfig(ctx)
		if err != nil {
			return err
		}
	}

	var billsBackend container.Backend
	switch config.Backend {
	case backendMemory:
		logger.Warn("running on the in-memory backend, bills are lost on restart")
		billsBackend = backend.NewMemory("/files")
	default:
		pool, err := db.Connect(ctx, config)
		if err != nil {
			return err
		}
		defer pool.Close()

		billsBackend = backend.NewStore(store.NewBillRepository(pool), fileStorage(config, awsConfig))
	}

	var (
		cognitoClient *cognitoidentityprovider.Client
		jwkCache      *jwk.Cache
		jwksURL       string
	)
	if config.CognitoClientID != "" {
		cognitoClient = cognitoidentityprovider.NewFromConfig(awsConfig)

		jwkCache, err = jwk.NewCache(context.Background(), httprc.NewClient())
		if err != nil {
			return fmt.Errorf("failed to initialize jwk cache: %w", err)
		}

		jwksURL = fmt.Sprintf("%s/.well-known/jwks.json", strings.TrimSuffix(config.CognitoIssuerURL, "/"))

		err = jwkCache.Register(context.Background(), jwksURL)
		if err != nil {
			return fmt.Errorf("failed to register cognito jwk with cache: %w", err)
		}
	} else {
		logger.Warn("COGNITO_CLIENT_ID not set, login trusts the typed email")
	}

	srv, err := newServer(config, logger, billsBackend, cognitoClient, jwkCache, jwksURL)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newServer(
	config *types.Config,
	logger *logrus.Logger,
	billsBackend container.Backend,
	cognitoClient *cognitoidentityprovider.Client,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*server.Service, error) {
	// A nil client must reach the server as a nil interface.
	if cognitoClient == nil {
		return server.New(config, logger, billsBackend, nil, nil, "")
	}
	return server.New(config, logger, billsBackend, cognitoClient, jwkCache, jwksURL)
}

func fileStorage(config *types.Config, awsConfig aws.Config) backend.FileStorage {
	if config.StorageDriver == storageSupabase {
		return storage.NewSupabaseStorage(config.SupabaseProjectID, config.SupabaseAPIKey, config.SupabaseBucket)
	}

	return storage.NewS3Storage(
		s3.NewFromConfig(awsConfig),
		config.S3BucketName,
		time.Duration(config.S3URLTTLMin)*time.Minute,
	)
}
