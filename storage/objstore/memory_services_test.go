package objstore_test

import (
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"segview.dev/segview/storage/objstore"
)

func TestMemoryS3Service_Paginates(t *testing.T) {
	svc := objstore.NewMemoryS3Service()
	svc.PageSize = 2
	for _, key := range []string{"p/a", "p/b", "p/c", "other/d"} {
		svc.Put("bucket", key, []byte(key))
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(svc, &s3.ListObjectsV2Input{
		Bucket: aws.String("bucket"),
		Prefix: aws.String("p/"),
	})
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(t.Context())
		require.NoError(t, err)
		pages++
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	assert.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
	assert.Equal(t, 2, pages)
}

func TestMemoryS3Service_GetMissing(t *testing.T) {
	svc := objstore.NewMemoryS3Service()
	_, err := svc.GetObject(t.Context(), &s3.GetObjectInput{Bucket: aws.String("b"), Key: aws.String("k")})
	var noSuchKey *types.NoSuchKey
	assert.True(t, errors.As(err, &noSuchKey))
}

func TestMemoryBlobService(t *testing.T) {
	svc := objstore.NewMemoryBlobService()
	svc.Put("c", "snapshots/a.yaml", []byte("a"))
	svc.Put("c", "other.yaml", []byte("b"))

	var names []string
	for name, err := range svc.List(t.Context(), "c", "snapshots/") {
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"snapshots/a.yaml"}, names)

	r, err := svc.Download(t.Context(), "c", "other.yaml")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), data)

	_, err = svc.Download(t.Context(), "c", "missing")
	assert.ErrorIs(t, err, objstore.ErrBlobNotFound)

	for _, err := range svc.List(t.Context(), "missing", "") {
		assert.ErrorIs(t, err, objstore.ErrBlobNotFound)
	}
}
