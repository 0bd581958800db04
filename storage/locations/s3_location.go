package locations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"segview.dev/segview/storage/objstore"
)

type S3Location struct {
	s3     objstore.S3Service
	bucket string
	prefix string
	usage  *objstore.RequestUsage
}

func NewS3Location(s3 objstore.S3Service, uri string) (*S3Location, error) {
	bucket, prefix, err := splitURI("s3://", uri)
	if err != nil {
		return nil, err
	}
	return &S3Location{
		s3:     s3,
		bucket: bucket,
		prefix: prefix,
		usage:  &objstore.RequestUsage{},
	}, nil
}

func (l *S3Location) Read(ctx context.Context, path string) ([]byte, error) {
	key := l.prefix + strings.TrimPrefix(path, "/")
	l.usage.AddRead()
	output, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &l.bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("reading %s: %w", l.URI(path), ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", l.URI(path), err)
	}

	defer output.Body.Close()
	return io.ReadAll(output.Body)
}

// List pages through every object under the prefix.
func (l *S3Location) List(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		paginator := s3.NewListObjectsV2Paginator(l.s3, &s3.ListObjectsV2Input{
			Bucket: &l.bucket,
			Prefix: &l.prefix,
		})
		for paginator.HasMorePages() {
			l.usage.AddList()
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield("", fmt.Errorf("listing %s: %w", l.URI(""), err))
				return
			}
			for _, obj := range page.Contents {
				if !yield(strings.TrimPrefix(*obj.Key, l.prefix), nil) {
					return
				}
			}
		}
	}
}

func (l *S3Location) URI(path string) string {
	return "s3://" + l.bucket + "/" + l.prefix + strings.TrimPrefix(path, "/")
}

// Usage reports the requests made through this location.
func (l *S3Location) Usage() *objstore.RequestUsage {
	return l.usage
}

var _ Location = (*S3Location)(nil)

// splitURI splits a bucket URI into the bucket and a key prefix that is
// either empty or ends with a slash.
//
// example:
//
//	splitURI("s3://", "s3://bucket/some/path") => "bucket", "some/path/"
func splitURI(scheme, uri string) (bucket, prefix string, err error) {
	path := strings.TrimPrefix(uri, scheme)
	bucket, prefix, _ = strings.Cut(path, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%s path must include bucket: %s", scheme, uri)
	}

	// No one wants pathnames like "prefixfile.txt".
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, nil
}
