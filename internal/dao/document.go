package dao

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sigap/sigap/internal/api"
)

func init() {
	RegisterAccessor(&DocumentRID, &Document{})
}

// Document is the DAO for supporting documents (KTP, KK, certificates).
type Document struct {
	Resource
}

// Init initializes the document DAO.
func (d *Document) Init(f Factory, rid *ResourceID) {
	d.Resource.Init(f, rid)
	d.SetNameKeys("title", "filename")
}

// ByOwner returns the documents attached to a record, keyed by the owning
// record's id.
func (d *Document) ByOwner(ctx context.Context, ownerID string) ([]Record, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id cannot be empty")
	}
	return d.listWhere(ctx, "ownerId", ownerID)
}

// Upload creates a document record with its file attached as multipart.
func (d *Document) Upload(ctx context.Context, doc map[string]any, filename string, content []byte) (Record, error) {
	if filename == "" {
		return nil, fmt.Errorf("document filename cannot be empty")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("document content cannot be empty")
	}

	files := []api.FilePart{{Field: "file", Filename: filename, Content: content}}
	return d.Create(ctx, doc, files)
}

// UploadFile reads a local file and uploads it as a document.
func (d *Document) UploadFile(ctx context.Context, doc map[string]any, path string) (Record, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}
	return d.Upload(ctx, doc, filepath.Base(path), content)
}
