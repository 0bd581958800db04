package locations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"segview.dev/segview/storage/objstore"
	"segview.dev/segview/telemetry"
)

type S3Options struct {
	Region string
	// Endpoint overrides the S3 endpoint, e.g. for MinIO. Path style
	// addressing is used when set.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type Options struct {
	S3                    S3Options
	AzureConnectionString string
	// HTTPClient is used by the cloud clients. By default S3 wraps the SDK's
	// client and Azure uses a fresh one, both recording telemetry.
	HTTPClient *http.Client
}

// New creates a Location from the given URI: an S3Location for s3:// URIs,
// an AzureLocation for azblob:// URIs and a local directory otherwise.
func New(ctx context.Context, uri string, opts Options) (Location, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		client, err := newS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
		slog.Debug("opening s3 location", "uri", uri)
		return NewS3Location(client, uri)
	case strings.HasPrefix(uri, "azblob://"):
		client, err := newAzureClient(opts)
		if err != nil {
			return nil, err
		}
		slog.Debug("opening azure blob location", "uri", uri)
		return NewAzureLocation(objstore.NewAzureBlobService(client), uri)
	default:
		return NewLocalDirectory(strings.TrimPrefix(uri, "file://")), nil
	}
}

// newS3Client keeps the SDK's own HTTP client so that settings such as
// AWS_CA_BUNDLE can still be applied to it, and wraps it to record metrics.
// A caller supplied client is used as is.
func newS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.S3.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.S3.Region))
	}
	if opts.S3.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.S3.AccessKeyID, opts.S3.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.HTTPClient != nil {
			o.HTTPClient = opts.HTTPClient
		} else if o.HTTPClient != nil {
			o.HTTPClient = &http.Client{
				Transport: telemetry.NewMetricsTransport("s3", roundTripperFunc(o.HTTPClient.Do)),
			}
		}
		if opts.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.S3.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newAzureClient(opts Options) (*azblob.Client, error) {
	if opts.AzureConnectionString == "" {
		return nil, errors.New("azure blob locations require a connection string")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = telemetry.NewHTTPClient("azblob")
	}

	client, err := azblob.NewClientFromConnectionString(opts.AzureConnectionString, &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{Transport: httpClient},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}
	return client, nil
}
