package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"workdesk_backend/internals/configs"
)

// OSSService stores documents in an Alibaba OSS bucket and hands back
// public URLs as references.
type OSSService struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
	prefix     string
}

func NewOSSFromEnv() (*OSSService, error) {
	endpoint := configs.GetEnv("OSS_ENDPOINT")
	keyID := configs.GetEnv("OSS_ACCESS_KEY_ID")
	keySecret := configs.GetEnv("OSS_ACCESS_KEY_SECRET")
	bucketName := configs.GetEnv("OSS_BUCKET")
	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, errors.New("oss not configured")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}
	return &OSSService{
		bucket:     bucket,
		bucketName: bucketName,
		endpoint:   strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://"),
		prefix:     configs.GetEnv("OSS_PREFIX", "workdesk"),
	}, nil
}

func (s *OSSService) Write(ctx context.Context, data []byte, suggestedName, contentType string) (string, error) {
	key := buildObjectKey(s.prefix, suggestedName)
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", err
	}
	return s.publicURL(key), nil
}

func (s *OSSService) Read(ctx context.Context, ref string) ([]byte, error) {
	key, err := s.keyFromPublicURL(ref)
	if err != nil {
		return nil, err
	}
	body, err := s.bucket.GetObject(key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (s *OSSService) publicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, key)
}

func (s *OSSService) keyFromPublicURL(publicURL string) (string, error) {
	host := fmt.Sprintf("https://%s.%s/", s.bucketName, s.endpoint)
	if !strings.HasPrefix(publicURL, host) {
		return "", fmt.Errorf("reference not in bucket %s", s.bucketName)
	}
	return strings.TrimPrefix(publicURL, host), nil
}
