package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// InboundFolder is the container-relative prefix the workflow engine polls
// for newly submitted documents. It is fixed by the downstream contract.
const InboundFolder = "EntradaDatosParaProcesar"

// Uploader stores a single in-memory file under a container-relative path.
// Implementations do not retry; retry is a user action.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte) error
}

// AzureUploader writes blobs through a shared-access-signature URL. The SAS
// grants container-wide write access; there is no per-file access control.
type AzureUploader struct {
	client    *azblob.Client
	container string
}

func NewAzureUploader(accountURL, sasToken, container string) (*AzureUploader, error) {
	serviceURL := strings.TrimSuffix(accountURL, "/")
	if sasToken != "" {
		serviceURL = serviceURL + "?" + strings.TrimPrefix(sasToken, "?")
	}

	client, err := azblob.NewClientWithNoCredential(serviceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	return &AzureUploader{client: client, container: container}, nil
}

func (u *AzureUploader) Upload(ctx context.Context, path string, data []byte) error {
	if _, err := u.client.UploadBuffer(ctx, u.container, path, data, nil); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// InboundPath builds the deterministic blob path for a submitted file.
func InboundPath(filename string) string {
	return InboundFolder + "/" + filename
}
