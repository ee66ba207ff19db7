package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sigap/sigap/internal/api"
)

// ResourceID identifies a record type managed by the console.
type ResourceID struct {
	Group    string // e.g., "case", "staff", "program"
	Resource string // e.g., "family", "child", "visit"
}

// String returns a string representation in the form "group/resource".
func (r ResourceID) String() string {
	return fmt.Sprintf("%s/%s", r.Group, r.Resource)
}

// Parse parses a string in the form "group/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	group, resource, ok := strings.Cut(s, "/")
	if !ok || group == "" || resource == "" {
		return fmt.Errorf("invalid resource ID format: %s (expected group/resource)", s)
	}
	r.Group = group
	r.Resource = resource
	return nil
}

// Predefined ResourceID variables for the record types the backend serves.
var (
	FamilyRID   = ResourceID{Group: "case", Resource: "family"}
	ChildRID    = ResourceID{Group: "case", Resource: "child"}
	GuardianRID = ResourceID{Group: "case", Resource: "guardian"}
	EmployeeRID = ResourceID{Group: "staff", Resource: "employee"}
	SpouseRID   = ResourceID{Group: "staff", Resource: "spouse"}
	BusinessRID = ResourceID{Group: "program", Resource: "business"}
	GalleryRID  = ResourceID{Group: "program", Resource: "gallery"}
	VisitRID    = ResourceID{Group: "program", Resource: "visit"}
	DocumentRID = ResourceID{Group: "program", Resource: "document"}
)

// apiPaths maps ResourceID strings to REST collection paths.
var apiPaths = map[string]string{
	"case/family":      "families",
	"case/child":       "children",
	"case/guardian":    "guardians",
	"staff/employee":   "employees",
	"staff/spouse":     "spouses",
	"program/business": "businesses",
	"program/gallery":  "galleries",
	"program/visit":    "visits",
	"program/document": "documents",
}

// APIPath returns the REST collection path for a ResourceID.
func APIPath(rid *ResourceID) (string, bool) {
	if rid == nil {
		return "", false
	}
	path, ok := apiPaths[rid.String()]
	return path, ok
}

// Record represents one fetched record with common metadata.
type Record interface {
	GetID() string
	GetName() string
	GetCreatedAt() *time.Time
	GetUpdatedAt() *time.Time
	GetFields() map[string]any
}

// Factory provides API client access to the DAOs.
type Factory interface {
	Client() api.Connection
	Server() string
}

// Getter retrieves a single record by id.
type Getter interface {
	Get(ctx context.Context, id string) (Record, error)
}

// Lister retrieves the full collection for a record type.
type Lister interface {
	List(ctx context.Context) ([]Record, error)
}

// Accessor combines getting and listing with initialization.
type Accessor interface {
	Getter
	Lister
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}

// Creator adds a new record, as multipart when files are attached.
type Creator interface {
	Create(ctx context.Context, doc map[string]any, files []api.FilePart) (Record, error)
}

// Updater applies an RFC 6902 patch to a record.
type Updater interface {
	PatchOps(ctx context.Context, id string, ops []byte) error
}

// Nuker deletes a record.
type Nuker interface {
	Delete(ctx context.Context, id string) error
}
