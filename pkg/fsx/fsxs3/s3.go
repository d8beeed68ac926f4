package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used by the adapter
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem stores blobs as objects under bucket/prefix
type S3FileSystem struct {
	client S3API
	bucket string
	prefix string
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

func NewS3FileSystem(client S3API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *S3FileSystem) key(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if s.prefix == "" {
		return p
	}
	return s.prefix + "/" + p
}

func (s *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	return s.WriteFileStream(ctx, p, bytes.NewReader(data))
}

func (s *S3FileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(p)),
		Body:        r,
		ContentType: aws.String(contentType(p)),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", p, err)
	}
	return nil
}

func (s *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	rc, err := s.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *S3FileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fsx.ErrNotExist
		}
		return nil, fmt.Errorf("get object %s: %w", p, err)
	}
	return out.Body, nil
}

func (s *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", p, err)
	}
	return true, nil
}

func (s *S3FileSystem) DeleteFile(ctx context.Context, p string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", p, err)
	}
	return nil
}

func (s *S3FileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func contentType(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
