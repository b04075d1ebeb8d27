package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// s3API is the part of *s3.Client the store uses.
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	s3.ListObjectsV2APIClient
}

// S3Store keeps files in an S3-compatible bucket under the key prefix
// <root>/.
type S3Store struct {
	client  s3API
	presign *s3.PresignClient
	bucket  string
	root    string
}

// NewS3Store builds an S3 client from the static credentials and endpoint
// in cfg (MinIO in development).
func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	s := newS3Store(client, cfg.S3Bucket, cfg.StoragePath)
	s.presign = s3.NewPresignClient(client)
	return s, nil
}

func newS3Store(client s3API, bucket, root string) *S3Store {
	return &S3Store{client: client, bucket: bucket, root: CleanRoot(root)}
}

func (s *S3Store) Name() string { return "s3" }

func (s *S3Store) Root() string { return s.root }

func (s *S3Store) key(op, name string) (string, error) {
	if name == "" {
		return "", &common.StorageError{Op: op, Path: name, Err: common.ErrEmptyPath}
	}
	clean := path.Clean(name)
	if clean != name || strings.HasPrefix(name, "/") || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", &common.StorageError{Op: op, Path: name, Err: common.ErrInvalidName}
	}
	if s.root == "" {
		return name, nil
	}
	return s.root + "/" + name, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}

func s3Err(op, name string, err error) error {
	if isNotFound(err) {
		return common.NotFound(op, name)
	}
	return &common.StorageError{Op: op, Path: name, Err: err}
}

// EnsureRoot creates the bucket when it does not exist yet. Key prefixes
// need no creation.
func (s *S3Store) EnsureRoot(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return &common.StorageError{Op: "mkdir", Path: s.bucket, Err: err}
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return &common.StorageError{Op: "mkdir", Path: s.bucket, Err: err}
	}
	return nil
}

func (s *S3Store) head(ctx context.Context, op, name string) (*s3.HeadObjectOutput, error) {
	key, err := s.key(op, name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, s3Err(op, name, err)
	}
	return out, nil
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.head(ctx, "exists", name)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *S3Store) Size(ctx context.Context, name string) (int64, error) {
	out, err := s.head(ctx, "size", name)
	if err != nil {
		return 0, err
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key("open", name)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, s3Err("open", name, err)
	}
	return out.Body, nil
}

// Put buffers r in memory so the request carries a content length; icons
// are small.
func (s *S3Store) Put(ctx context.Context, name string, r io.Reader) error {
	key, err := s.key("put", name)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return &common.StorageError{Op: "put", Path: name, Err: err}
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/png"),
	})
	if err != nil {
		return s3Err("put", name, err)
	}
	return nil
}

// Delete fails with a not-found StorageError for a missing key; S3 itself
// reports success for those.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	if _, err := s.head(ctx, "delete", name); err != nil {
		return err
	}
	key, _ := s.key("delete", name)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}); err != nil {
		return s3Err("delete", name, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	prefix := ""
	if s.root != "" {
		prefix = s.root + "/"
	}

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	names := []string{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				return []string{}, nil
			}
			return nil, &common.StorageError{Op: "list", Err: err}
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// PresignGet returns a temporary GET URL for name, letting clients fetch
// icons straight from the bucket.
func (s *S3Store) PresignGet(ctx context.Context, name string, ttl time.Duration) (string, error) {
	if s.presign == nil {
		return "", &common.StorageError{Op: "presign", Path: name, Err: errors.New("presign client not configured")}
	}
	key, err := s.key("presign", name)
	if err != nil {
		return "", err
	}
	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", &common.StorageError{Op: "presign", Path: name, Err: err}
	}
	return req.URL, nil
}
