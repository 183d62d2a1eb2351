package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro-booking/internal/config"
)

// Storage grava um objeto e devolve a URL pública.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Storage(cfg config.S3Config) *S3Storage {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.Endpoint != "",
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %q: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

// Uploader converte imagens e grava no Storage.
type Uploader struct {
	storage Storage
}

func NewUploader(storage Storage) *Uploader {
	return &Uploader{storage: storage}
}

// ObjectKey segue {kind}/{tenant}/{uuid}.webp.
func ObjectKey(kind string, tenantID uint) string {
	return fmt.Sprintf("%s/%d/%s.webp", kind, tenantID, uuid.NewString())
}

func (u *Uploader) Logo(ctx context.Context, tenantID uint, body []byte) (string, error) {
	return u.upload(ctx, "logos", tenantID, LogoMaxSide, body)
}

func (u *Uploader) Avatar(ctx context.Context, tenantID uint, body []byte) (string, error) {
	return u.upload(ctx, "avatars", tenantID, AvatarMaxSide, body)
}

func (u *Uploader) upload(ctx context.Context, kind string, tenantID uint, maxSide int, body []byte) (string, error) {
	img, err := ToWebP(bytes.NewReader(body), maxSide)
	if err != nil {
		return "", err
	}
	return u.storage.Put(ctx, ObjectKey(kind, tenantID), "image/webp", img)
}
