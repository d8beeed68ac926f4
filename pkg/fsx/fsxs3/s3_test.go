package fsxs3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Abraxas-365/hiretrack/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3FileSystem_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	fs := NewS3FileSystem(client, "bucket", "/uploads/")

	require.NoError(t, fs.WriteFile(ctx, "resumes/a.docx", []byte("doc")))

	assert.Contains(t, client.objects, "uploads/resumes/a.docx")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", client.types["uploads/resumes/a.docx"])

	data, err := fs.ReadFile(ctx, "resumes/a.docx")
	require.NoError(t, err)
	assert.Equal(t, "doc", string(data))
}

func TestS3FileSystem_MissingObject(t *testing.T) {
	ctx := context.Background()
	fs := NewS3FileSystem(newFakeS3(), "bucket", "")

	_, err := fs.ReadFileStream(ctx, "nope.pdf")
	assert.ErrorIs(t, err, fsx.ErrNotExist)

	ok, err := fs.Exists(ctx, "nope.pdf")
	require.NoError(t, err)
	assert.False(t, ok)
}
