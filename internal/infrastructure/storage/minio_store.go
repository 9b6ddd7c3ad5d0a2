// Package storage guarda comprobantes de pago y adjuntos de siniestros en un bucket MinIO/S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/assecol/seguros-api/pkg/config"
	"github.com/assecol/seguros-api/pkg/logger"
)

// MinioStore implementa cartera.ComprobanteStore y siniestros.ArchivoStore.
type MinioStore struct {
	client *minio.Client
	bucket string
	log    *logger.Logger
}

// NewMinioStore conecta con MinIO y asegura que el bucket exista.
func NewMinioStore(ctx context.Context, cfg config.MinIOConfig, log *logger.Logger) (*MinioStore, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente minio: %w", err)
	}

	s := &MinioStore{client: client, bucket: cfg.Bucket, log: log}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.asegurarBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStore) asegurarBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: verificar bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("storage: crear bucket %s: %w", s.bucket, err)
	}
	s.log.Info().Str("bucket", s.bucket).Msg("bucket de comprobantes creado")
	return nil
}

// Guardar sube el objeto y devuelve "bucket/llave".
func (s *MinioStore) Guardar(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	return info.Bucket + "/" + info.Key, nil
}
