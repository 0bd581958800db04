package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobService is the read-only part of the Azure Blob API that snapshot
// locations use.
type BlobService interface {
	// Download returns the content of a blob. A missing blob or container is
	// reported as ErrBlobNotFound.
	Download(ctx context.Context, container, name string) (io.ReadCloser, error)
	// List iterates the names of the blobs in the container that start with
	// prefix.
	List(ctx context.Context, container, prefix string) iter.Seq2[string, error]
}

// AzureBlobService implements BlobService with the Azure SDK client.
type AzureBlobService struct {
	client *azblob.Client
}

func NewAzureBlobService(client *azblob.Client) *AzureBlobService {
	return &AzureBlobService{client: client}
}

func (s *AzureBlobService) Download(ctx context.Context, container, name string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, container, name, nil)
	if err != nil {
		return nil, wrapBlobNotFound(err)
	}
	return resp.Body, nil
}

func (s *AzureBlobService) List(ctx context.Context, container, prefix string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		pager := s.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				yield("", wrapBlobNotFound(err))
				return
			}
			for _, item := range page.Segment.BlobItems {
				if item.Name == nil {
					continue
				}
				if !yield(*item.Name, nil) {
					return
				}
			}
		}
	}
}

// wrapBlobNotFound translates the SDK's not found errors to ErrBlobNotFound
// and returns every other error as is.
func wrapBlobNotFound(err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return fmt.Errorf("%w: %w", ErrBlobNotFound, err)
	}
	return err
}

var _ BlobService = (*AzureBlobService)(nil)
