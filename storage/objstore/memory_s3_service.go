package objstore

import (
	"bytes"
	"context"
	"io"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MemoryS3Service is an in-memory implementation of the S3Service for testing.
// Listing returns at most PageSize keys per call.
type MemoryS3Service struct {
	PageSize int

	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryS3Service() *MemoryS3Service {
	return &MemoryS3Service{
		PageSize: 1000,
		data:     make(map[string][]byte),
	}
}

// Put stores an object.
func (m *MemoryS3Service) Put(bucket, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[path.Join(bucket, key)] = slices.Clone(data)
}

func (m *MemoryS3Service) GetObject(ctx context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[path.Join(*input.Bucket, *input.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// ListObjectsV2 pages through the sorted keys under the prefix. The
// continuation token is the last key of the previous page.
func (m *MemoryS3Service) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucketAndPrefix := *input.Bucket + "/" + aws.ToString(input.Prefix)
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, bucketAndPrefix) {
			keys = append(keys, strings.TrimPrefix(key, *input.Bucket+"/"))
		}
	}
	slices.Sort(keys)

	if token := aws.ToString(input.ContinuationToken); token != "" {
		i, _ := slices.BinarySearch(keys, token)
		for i < len(keys) && keys[i] <= token {
			i++
		}
		keys = keys[i:]
	}

	truncated := len(keys) > m.PageSize
	if truncated {
		keys = keys[:m.PageSize]
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(truncated)}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(m.data[path.Join(*input.Bucket, key)]))),
		})
	}
	if truncated {
		out.NextContinuationToken = aws.String(keys[len(keys)-1])
	}
	return out, nil
}

var _ S3Service = (*MemoryS3Service)(nil)
