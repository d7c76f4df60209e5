// Package objectstore реализует запись объектов в S3-совместимое хранилище.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Interface определяет интерфейс для записи объектов
type Interface interface {
	// Put записывает один объект в бакет
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Ping проверяет доступность бакета
	Ping(ctx context.Context) error

	// Bucket возвращает имя настроенного бакета
	Bucket() string
}

// Store представляет клиент объектного хранилища
type Store struct {
	client *minio.Client
	bucket string
	region string
	logger *zap.Logger
}

var _ Interface = (*Store)(nil)

// NewStore создает новый клиент объектного хранилища
func NewStore(cfg Config, logger *zap.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("objectstore config invalid: %w", err)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	logger.Info("Object store client created",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket))

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
	}, nil
}

// EnsureBucket создает бакет если он отсутствует
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists check failed: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	s.logger.Info("Bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Put записывает один объект в бакет
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, opts)
	if err != nil {
		return fmt.Errorf("failed to put object %q: %w", key, err)
	}

	s.logger.Info("Object written",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int64("size", info.Size))

	return nil
}

// Ping проверяет доступность бакета
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket missing: %s", s.bucket)
	}
	return nil
}

// Bucket возвращает имя настроенного бакета
func (s *Store) Bucket() string {
	return s.bucket
}

// newTransport создает HTTP транспорт с таймаутами
func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
