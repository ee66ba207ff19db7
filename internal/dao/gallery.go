package dao

import (
	"context"
	"fmt"

	"github.com/sigap/sigap/internal/api"
)

func init() {
	RegisterAccessor(&GalleryRID, &Gallery{})
}

// Gallery is the DAO for program activity photos.
type Gallery struct {
	Resource
}

// Init initializes the gallery DAO.
func (g *Gallery) Init(f Factory, rid *ResourceID) {
	g.Resource.Init(f, rid)
	g.SetNameKeys("title", "caption")
}

// ByBusiness returns the gallery entries attached to a business.
func (g *Gallery) ByBusiness(ctx context.Context, businessID string) ([]Record, error) {
	if businessID == "" {
		return nil, fmt.Errorf("business id cannot be empty")
	}
	return g.listWhere(ctx, "businessId", businessID)
}

// Upload creates a gallery entry with its image attached as multipart.
func (g *Gallery) Upload(ctx context.Context, doc map[string]any, filename string, image []byte) (Record, error) {
	if filename == "" {
		return nil, fmt.Errorf("image filename cannot be empty")
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("image content cannot be empty")
	}

	files := []api.FilePart{{Field: "image", Filename: filename, Content: image}}
	return g.Create(ctx, doc, files)
}
