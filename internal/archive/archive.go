// Package archive uploads result documents to Azure Blob Storage.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// Location is a parsed archive URL of the form
// https://<account>.blob.core.windows.net/<container>[/<prefix>].
type Location struct {
	ServiceURL string
	Container  string
	Prefix     string
}

// ParseURL splits an archive URL into service, container and blob prefix.
func ParseURL(raw string) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing archive URL: %w", err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("archive URL %q: scheme must be https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("archive URL %q: missing host", raw)
	}
	container, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	if container == "" {
		return nil, fmt.Errorf("archive URL %q: missing container", raw)
	}
	return &Location{
		ServiceURL: "https://" + u.Host + "/",
		Container:  container,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

// BlobName returns the blob name for a file uploaded under runID.
func (l *Location) BlobName(runID, file string) string {
	return path.Join(l.Prefix, runID, filepath.Base(file))
}

// URL returns the full URL of blobName.
func (l *Location) URL(blobName string) string {
	return l.ServiceURL + path.Join(l.Container, blobName)
}

// Uploader stores a named document.
type Uploader interface {
	Upload(ctx context.Context, runID, file string, data []byte) (string, error)
}

// BlobUploader uploads to a container of an Azure storage account.
type BlobUploader struct {
	loc    *Location
	client *azblob.Client
}

// Option configures a BlobUploader.
type Option func(*options)

type options struct {
	cred azcore.TokenCredential
}

// WithCredential uses cred instead of the default Azure credential chain.
func WithCredential(cred azcore.TokenCredential) Option {
	return func(o *options) { o.cred = cred }
}

// NewBlobUploader creates an uploader for the archive URL raw. Without
// WithCredential the default Azure credential chain is used (environment,
// workload identity, managed identity, Azure CLI).
func NewBlobUploader(raw string, opts ...Option) (*BlobUploader, error) {
	loc, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cred == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("creating Azure credential: %w", err)
		}
		o.cred = cred
	}

	client, err := azblob.NewClient(loc.ServiceURL, o.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob client: %w", err)
	}
	return &BlobUploader{loc: loc, client: client}, nil
}

// Upload stores data as <prefix>/<runID>/<base name of file> and returns
// the blob URL.
func (u *BlobUploader) Upload(ctx context.Context, runID, file string, data []byte) (string, error) {
	name := u.loc.BlobName(runID, file)
	_, err := u.client.UploadBuffer(ctx, u.loc.Container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(ContentType(file))},
		Metadata:    map[string]*string{"run_id": to.Ptr(runID)},
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	slog.Debug("archived result", "container", u.loc.Container, "blob", name, "bytes", len(data))
	return u.loc.URL(name), nil
}

// ContentType returns the MIME type for a result file name.
func ContentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".gz":
		return "application/gzip"
	case ".zst", ".zstd":
		return "application/zstd"
	default:
		return "application/json"
	}
}
