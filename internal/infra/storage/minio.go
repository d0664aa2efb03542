package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioConfig holds connection settings for an S3-compatible bucket
type MinioConfig struct {
	Endpoint   string
	Region     string
	BucketName string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
}

// MinioStore keeps one JSON object per tenant key: <tenant>/<key>.json
type MinioStore struct {
	client     *minio.Client
	bucketName string
	region     string
}

// NewMinio buat koneksi MinIO dan pastikan bucket ada
func NewMinio(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
		log.Info().Str("bucket", cfg.BucketName).Msg("created storage bucket")
	}

	return &MinioStore{client: cli, bucketName: cfg.BucketName, region: cfg.Region}, nil
}

func objectKey(tenant, key string) string {
	return path.Join(tenant, key+".json")
}

// Get returns nil, nil when the object does not exist
func (s *MinioStore) Get(ctx context.Context, tenant, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, objectKey(tenant, key), minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return data, nil
}

func (s *MinioStore) Set(ctx context.Context, tenant, key string, value []byte) error {
	_, err := s.client.PutObject(ctx, s.bucketName, objectKey(tenant, key),
		bytes.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", objectKey(tenant, key), err)
	}
	return nil
}

func (s *MinioStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucketName)
	}
	return nil
}

func notFoundAsNil(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("failed to read object: %w", err)
}
