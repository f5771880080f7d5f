package source

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockS3 struct {
	GetObjectFunc     func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2Func func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

func (m *MockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params, optFns...)
}

func (m *MockS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	return m.ListObjectsV2Func(ctx, params, optFns...)
}

func TestParseS3URI(t *testing.T) {
	bucket, prefix, err := ParseS3URI("s3://library-seed/books/v1/")
	require.NoError(t, err)
	assert.Equal(t, "library-seed", bucket)
	assert.Equal(t, "books/v1", prefix)

	_, _, err = ParseS3URI("s3:///books")
	assert.Error(t, err)
}

func TestS3Source_ListPaginates(t *testing.T) {
	calls := 0
	client := &MockS3{
		ListObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			calls++
			assert.Equal(t, "library-seed", aws.ToString(params.Bucket))
			assert.Equal(t, "books/", aws.ToString(params.Prefix))
			if params.ContinuationToken == nil {
				return &s3.ListObjectsV2Output{
					Contents: []types.Object{
						{Key: aws.String("books/book002.json")},
						{Key: aws.String("books/readme.md")},
					},
					IsTruncated:           aws.Bool(true),
					NextContinuationToken: aws.String("page-2"),
				}, nil
			}
			assert.Equal(t, "page-2", aws.ToString(params.ContinuationToken))
			return &s3.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("books/book001.json")},
					{Key: aws.String("books/archive/book003.json")},
				},
				IsTruncated: aws.Bool(false),
			}, nil
		},
	}

	src := &S3Source{Client: client, Bucket: "library-seed", Prefix: "books"}
	names, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"book001.json", "book002.json"}, names)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "s3://library-seed/books", src.Location())
}

func TestS3Source_Read(t *testing.T) {
	t.Run("Sucesso", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "books/book001.json", aws.ToString(params.Key))
				return &s3.GetObjectOutput{
					Body: io.NopCloser(strings.NewReader(`{"id": "book001"}`)),
				}, nil
			},
		}
		data, err := (&S3Source{Client: client, Bucket: "b", Prefix: "books"}).Read(context.Background(), "book001.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": "book001"}`, string(data))
	})

	t.Run("Erro", func(t *testing.T) {
		client := &MockS3{
			GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "book001.json", aws.ToString(params.Key))
				return nil, errors.New("NoSuchKey")
			},
		}
		_, err := (&S3Source{Client: client, Bucket: "b"}).Read(context.Background(), "book001.json")
		assert.ErrorContains(t, err, "NoSuchKey")
	})
}
