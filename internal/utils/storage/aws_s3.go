package storage

import (
	"Health-Kitchen-Backend/internal/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}

var (
	ErrStorageDisabled  = errors.New("object storage is not configured")
	ErrFileTypeNotAllow = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
		Enabled() bool
	}

	// ObjectAPI is the subset of the S3 client this package calls.
	ObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	}

	awsS3 struct {
		client ObjectAPI
		bucket string
		region string
	}
)

// NewAwsS3 builds the store from AWS_* config. Without a bucket it returns a
// disabled store whose writes fail with ErrStorageDisabled.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &awsS3{}
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key := utils.GetConfig("AWS_ACCESS_KEY"); key != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Printf("failed to load aws config: %v", err)
		return &awsS3{}
	}

	return NewAwsS3WithClient(s3.NewFromConfig(cfg), bucket, region)
}

func NewAwsS3WithClient(client ObjectAPI, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

func (a *awsS3) Enabled() bool {
	return a.client != nil && a.bucket != ""
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) > 0 && !contains(allowed, ext) {
		return "", ErrFileTypeNotAllow
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s-%s%s", folder, fileName, uuid.NewString(), ext)
	return a.PutObject(ctx, key, data, contentType)
}

func (a *awsS3) PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if !a.Enabled() {
		return "", ErrStorageDisabled
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
