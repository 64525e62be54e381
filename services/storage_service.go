package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// UploadedFile describes a stored object.
type UploadedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// StorageService stores product images in a Cloudflare R2 bucket.
// R2 speaks the S3 API, so the standard S3 client works against a
// Cloudflare endpoint.
type StorageService struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewStorageService creates a StorageService over an S3-compatible
// client. publicURL is the public base of the bucket.
func NewStorageService(client *s3.Client, bucket, publicURL string) *StorageService {
	return &StorageService{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Upload stores one file under folder and returns its key and public
// URL.
func (s *StorageService) Upload(ctx context.Context, folder string, header *multipart.FileHeader) (*UploadedFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	key := s.objectKey(folder, header.Filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &UploadedFile{Key: key, URL: s.PublicURL(key)}, nil
}

// UploadMultiple stores a batch of files. Failures are logged and
// skipped so one bad file does not sink the batch.
func (s *StorageService) UploadMultiple(ctx context.Context, folder string, headers []*multipart.FileHeader) ([]UploadedFile, error) {
	uploaded := []UploadedFile{}
	for _, header := range headers {
		result, err := s.Upload(ctx, folder, header)
		if err != nil {
			zap.L().Warn("failed to upload file",
				zap.String("filename", header.Filename), zap.Error(err))
			continue
		}
		uploaded = append(uploaded, *result)
	}
	return uploaded, nil
}

// Delete removes an object by key.
func (s *StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// DeleteByURL removes an object given its public URL. URLs outside the
// bucket's public base are ignored.
func (s *StorageService) DeleteByURL(ctx context.Context, url string) error {
	if s.publicURL == "" || !strings.HasPrefix(url, s.publicURL+"/") {
		return nil
	}
	return s.Delete(ctx, strings.TrimPrefix(url, s.publicURL+"/"))
}

// SignedUploadURL returns a presigned PUT URL for direct browser
// upload, plus the key and eventual public URL.
func (s *StorageService) SignedUploadURL(ctx context.Context, folder, filename, contentType string, expires time.Duration) (string, *UploadedFile, error) {
	key := s.objectKey(folder, filename)

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expires
	})
	if err != nil {
		return "", nil, fmt.Errorf("presign put object: %w", err)
	}

	return req.URL, &UploadedFile{Key: key, URL: s.PublicURL(key)}, nil
}

// PublicURL returns the public URL for a stored key.
func (s *StorageService) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicURL, key)
}

func (s *StorageService) objectKey(folder, filename string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixMilli(), sanitizeFileName(filename))
}

// sanitizeFileName lowercases the name and collapses anything outside
// [a-z0-9._] into dashes, keeping the extension intact.
func sanitizeFileName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.ToLower(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	clean := strings.Trim(b.String(), "-")
	if clean == "" {
		clean = "file"
	}
	return clean + ext
}
