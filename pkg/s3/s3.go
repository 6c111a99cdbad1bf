package s3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"rankings-admin/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrNotConfigured is returned by NewClient when no bucket is set.
var ErrNotConfigured = errors.New("s3 bucket is not configured")

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.S3BucketName == "" {
		return nil, ErrNotConfigured
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// MinIO and other S3-compatible endpoints
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	if _, err := client.s3Client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
		if _, err := client.s3Client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket %s: %w", cfg.S3BucketName, err)
		}
	}

	return client, nil
}

// CoverKey builds the object key for a ranking cover image.
func CoverKey(rankingID, name, filename string) string {
	return fmt.Sprintf("rankings/%s/cover/%s%s", rankingID, name, strings.ToLower(path.Ext(filename)))
}

// CoverKeyFromURL recovers the object key from a URL built for one of the
// ranking's own covers. Covers hosted elsewhere report false.
func CoverKeyFromURL(rankingID, url string) (string, bool) {
	prefix := fmt.Sprintf("rankings/%s/cover/", rankingID)
	idx := strings.Index(url, prefix)
	if rankingID == "" || idx < 0 || len(url) == idx+len(prefix) {
		return "", false
	}
	return url[idx:], true
}

func (c *Client) UploadFile(key string, file multipart.File, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	disableSSL := c.s3Client.Config.DisableSSL != nil && *c.s3Client.Config.DisableSSL
	return objectURL(aws.StringValue(c.s3Client.Config.Endpoint), aws.StringValue(c.s3Client.Config.Region), c.bucket, key, disableSSL), nil
}

func (c *Client) DeleteFile(key string) error {
	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// objectURL returns a path-style URL for custom endpoints and a
// virtual-hosted URL for AWS itself.
func objectURL(endpoint, region, bucket, key string, disableSSL bool) string {
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if disableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, strings.TrimSuffix(endpoint, "/"), bucket, key)
	}

	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}
