package artifacts

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-tailor/internal/types"
)

func TestDocumentName(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")
	assert.Equal(t, "cover_letter-6f1c2a4e-0000-4000-8000-000000000001.pdf", DocumentName(types.KindCoverLetter, id, ".pdf"))
	assert.Equal(t, "cv-6f1c2a4e-0000-4000-8000-000000000001.pdf", DocumentName(types.KindCV, id, "pdf"))
	assert.Equal(t, "6f1c2a4e-0000-4000-8000-000000000001-page-2.png", PageName(id, 2))
}

func TestDirSink_Put(t *testing.T) {
	root := t.TempDir()
	sink := NewDirSink(filepath.Join(root, "out"))

	path, err := sink.Put(context.Background(), "nested/cv.pdf", ContentTypePDF, []byte("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "out", "nested", "cv.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestDirSink_RejectsEscapingNames(t *testing.T) {
	sink := NewDirSink(t.TempDir())

	for _, name := range []string{"../cv.pdf", "/etc/cv.pdf", ""} {
		_, err := sink.Put(context.Background(), name, ContentTypePDF, nil)
		var storeErr *StoreError
		assert.ErrorAs(t, err, &storeErr, name)
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

type fakePresigner struct {
	key string
	err error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.key = aws.ToString(in.Key)
	return &v4.PresignedHTTPRequest{URL: "https://minio.local/docs/" + f.key + "?X-Amz-Signature=abc"}, nil
}

func TestS3Sink_Put(t *testing.T) {
	putter := &fakePutter{}
	presigner := &fakePresigner{}
	sink := &S3Sink{bucket: "docs", prefix: "exports", client: putter, presigner: presigner}

	url, err := sink.Put(context.Background(), "cv.pdf", ContentTypePDF, []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "docs", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "exports/cv.pdf", aws.ToString(putter.input.Key))
	assert.Equal(t, ContentTypePDF, aws.ToString(putter.input.ContentType))
	assert.Equal(t, "%PDF", string(putter.body))
	assert.Equal(t, "exports/cv.pdf", presigner.key)
	assert.Contains(t, url, "X-Amz-Signature")
}

func TestS3Sink_PutErrors(t *testing.T) {
	boom := errors.New("access denied")

	t.Run("upload", func(t *testing.T) {
		sink := &S3Sink{bucket: "docs", client: &fakePutter{err: boom}, presigner: &fakePresigner{}}
		_, err := sink.Put(context.Background(), "cv.pdf", ContentTypePDF, nil)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "upload failed")
	})

	t.Run("presign", func(t *testing.T) {
		sink := &S3Sink{bucket: "docs", client: &fakePutter{}, presigner: &fakePresigner{err: boom}}
		_, err := sink.Put(context.Background(), "cv.pdf", ContentTypePDF, nil)
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "presign failed")
	})
}

func TestNewS3Sink(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var loaded awsconfig.LoadOptions
	loadDefaultAWSConfig = func(_ context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		for _, fn := range optFns {
			if err := fn(&loaded); err != nil {
				return aws.Config{}, err
			}
		}
		return aws.Config{Region: loaded.Region}, nil
	}

	sink, err := NewS3Sink(context.Background(), S3Config{
		Bucket:    "docs",
		Region:    "eu-central-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, "docs", sink.bucket)
	assert.Equal(t, "eu-central-1", loaded.Region)
	assert.NotNil(t, loaded.Credentials)

	_, err = NewS3Sink(context.Background(), S3Config{Region: "eu-central-1"})
	assert.ErrorContains(t, err, "bucket")

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	_, err = NewS3Sink(context.Background(), S3Config{Bucket: "docs"})
	assert.ErrorContains(t, err, "failed to load aws config")
}
