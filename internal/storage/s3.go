// Package storage uploads admin images to an S3-compatible object store
// and hands back the public URL stored on the entities.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	MaxImageSize = 5 * 1024 * 1024
)

type Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
}

type Uploader struct {
	client   *s3.S3
	endpoint string
	bucket   string
}

func NewUploader(cfg Config) (*Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &Uploader{
		client:   s3.New(sess),
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
	}, nil
}

// ValidImage accepts image/* payloads up to MaxImageSize bytes.
func ValidImage(contentType string, size int64) bool {
	return strings.HasPrefix(contentType, "image/") && size > 0 && size <= MaxImageSize
}

// Upload stores the object under uploads/ with a collision-resistant
// name and returns its public URL.
func (u *Uploader) Upload(body io.ReadSeeker, filename, contentType string) (string, error) {
	ext := path.Ext(filename)
	key := fmt.Sprintf("uploads/%d-%06d%s", time.Now().Unix(), rand.Intn(1_000_000), ext)

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", u.endpoint, u.bucket, key), nil
}
