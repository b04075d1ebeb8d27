package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu        sync.Mutex
	bucket    bool
	objects   map[string][]byte
	deleteErr error
	listErr   error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{bucket: true, objects: map[string][]byte{}}
}

func notFound(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "not found"}
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if !f.bucket {
		return nil, notFound("NotFound")
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.bucket = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, notFound("NotFound")
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(b)))}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, notFound("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := aws.ToString(in.Prefix)
	var keys []string
	for k := range f.objects {
		rest, ok := strings.CutPrefix(k, prefix)
		if ok && !strings.Contains(rest, "/") {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestS3Store_Lifecycle(t *testing.T) {
	f := newFakeS3()
	f.objects["other/x.png"] = []byte("x")
	f.objects["images/site_icons/nested/y.png"] = []byte("y")
	s := newS3Store(f, "board", "/images/site_icons/")
	ctx := context.Background()

	assert.Equal(t, "s3", s.Name())
	assert.Equal(t, "images/site_icons", s.Root())

	require.NoError(t, s.Put(ctx, "b.png", strings.NewReader("bb")))
	require.NoError(t, s.Put(ctx, "a.png", strings.NewReader("a")))
	assert.Contains(t, f.objects, "images/site_icons/a.png")

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.png"}, names)

	ok, err := s.Exists(ctx, "b.png")
	require.NoError(t, err)
	assert.True(t, ok)

	size, err := s.Size(ctx, "b.png")
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	rc, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "a", string(b))

	require.NoError(t, s.Delete(ctx, "a.png"))
	ok, err = s.Exists(ctx, "a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3Store_NotFound(t *testing.T) {
	s := newS3Store(newFakeS3(), "board", "icons")
	ctx := context.Background()

	_, err := s.Size(ctx, "nope.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Open(ctx, "nope.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope.png"), common.ErrorNotFound)
}

func TestS3Store_BackendErrors(t *testing.T) {
	f := newFakeS3()
	f.objects["icons/a.png"] = []byte("a")
	f.deleteErr = errors.New("access denied")
	f.listErr = errors.New("timeout")
	s := newS3Store(f, "board", "icons")
	ctx := context.Background()

	err := s.Delete(ctx, "a.png")
	var se *common.StorageError
	require.ErrorAs(t, err, &se)
	assert.NotErrorIs(t, err, common.ErrorNotFound)

	_, err = s.List(ctx)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list", se.Op)
}

func TestS3Store_InvalidKeys(t *testing.T) {
	s := newS3Store(newFakeS3(), "board", "icons")
	for _, name := range []string{"../a.png", "/a.png", "a/../../b.png", "./a.png"} {
		_, err := s.Size(context.Background(), name)
		assert.ErrorIs(t, err, common.ErrInvalidName, name)
	}
}

func TestS3Store_EnsureRootCreatesBucket(t *testing.T) {
	f := newFakeS3()
	f.bucket = false
	s := newS3Store(f, "board", "icons")

	require.NoError(t, s.EnsureRoot(context.Background()))
	assert.True(t, f.bucket)
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageProvider = config.ProviderS3

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(c aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return s3.New(opts)
	}

	st, err := New(context.Background(), cfg)
	require.NoError(t, err)
	s3s, ok := st.(*S3Store)
	require.True(t, ok)
	assert.Equal(t, "board", s3s.bucket)
	assert.Equal(t, "images/site_icons", s3s.Root())
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "load-fail")
}

func TestNew_Providers(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	st, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, st)

	cfg.StorageProvider = "ftp"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
