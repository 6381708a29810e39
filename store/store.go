// Package store is the repository layer over the backend's stores, products,
// coupons and orders tables. The editor and the public storefront both go
// through it; template_config is treated as an opaque blob that is replaced
// whole on every write.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/logging"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/shopcanvas/shopcanvas/supabase"
	"github.com/sirupsen/logrus"
)

// Store is the remote-owned store record.
type Store struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	Subdomain      string          `json:"subdomain"`
	Plan           string          `json:"plan"`
	IsPublished    bool            `json:"is_published"`
	Template       string          `json:"template"`
	TemplateConfig json.RawMessage `json:"template_config"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Config decodes the template_config blob through the normalization
// boundary.
func (s *Store) Config() (storeconfig.Config, error) {
	return storeconfig.Normalize(s.TemplateConfig)
}

// Repository performs store operations against the backend.
type Repository struct {
	client *supabase.Client
	bucket string
	logger *logrus.Entry
}

// NewRepository creates a repository over a backend client. The bucket names
// the object storage bucket for store assets.
func NewRepository(client *supabase.Client, bucket string) *Repository {
	return &Repository{
		client: client,
		bucket: bucket,
		logger: logging.NewLogger("store"),
	}
}

// Client exposes the underlying backend client for operations outside the
// store tables, like auth.
func (r *Repository) Client() *supabase.Client {
	return r.client
}

// GetByID fetches one store record.
func (r *Repository) GetByID(ctx context.Context, id string) (*Store, error) {
	resp, err := r.client.From("stores").Select("*").Eq("id", id).Single().Execute(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable("get store", err)
	}
	if resp.StatusCode == 404 || resp.StatusCode == 406 {
		return nil, errors.StoreNotFound(id)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("get store", err)
	}

	var s Store
	if err := resp.JSON(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode store record")
	}
	return &s, nil
}

// GetBySubdomain fetches a store by its subdomain. When publishedOnly is set,
// unpublished stores are reported as not found; the public storefront never
// leaks drafts.
func (r *Repository) GetBySubdomain(ctx context.Context, subdomain string, publishedOnly bool) (*Store, error) {
	q := r.client.From("stores").Select("*").Eq("subdomain", subdomain)
	if publishedOnly {
		q = q.Is("is_published", true)
	}
	resp, err := q.Single().Execute(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable("get store by subdomain", err)
	}
	if resp.StatusCode == 404 || resp.StatusCode == 406 {
		return nil, errors.StoreNotFound(subdomain)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("get store by subdomain", err)
	}

	var s Store
	if err := resp.JSON(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode store record")
	}
	return &s, nil
}

// ListByOwner lists a user's stores, newest first.
func (r *Repository) ListByOwner(ctx context.Context, userID string) ([]Store, error) {
	resp, err := r.client.From("stores").Select("*").Eq("user_id", userID).Order("created_at", false).Execute(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable("list stores", err)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("list stores", err)
	}

	var out []Store
	if err := resp.JSON(&out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode store list")
	}
	return out, nil
}

// CreateParams are the fields of a new store record.
type CreateParams struct {
	UserID    string
	Name      string
	Subdomain string
	Template  string
	Config    storeconfig.Config
}

// Create validates the subdomain, then inserts the record with the full
// config blob and returns the stored row.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*Store, error) {
	if err := ValidateSubdomain(p.Subdomain); err != nil {
		return nil, err
	}

	blob, err := storeconfig.Marshal(p.Config)
	if err != nil {
		return nil, err
	}

	row := map[string]any{
		"user_id":         p.UserID,
		"name":            p.Name,
		"subdomain":       p.Subdomain,
		"template":        p.Template,
		"template_config": json.RawMessage(blob),
	}

	resp, err := r.client.From("stores").Single().ExecuteInsert(ctx, row)
	if err != nil {
		return nil, errors.BackendUnavailable("create store", err)
	}
	if resp.StatusCode == 409 {
		return nil, errors.New(errors.ErrCodeSubdomainTaken, "subdomain is already taken").
			WithDetail("subdomain", p.Subdomain)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("create store", err)
	}

	var s Store
	if err := resp.JSON(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode created store")
	}

	r.logger.WithFields(logrus.Fields{"store": s.ID, "subdomain": s.Subdomain}).Info("Store created")
	return &s, nil
}

// UpdateParams are the writable fields of an existing store. Nil fields are
// left untouched; Config always replaces the whole blob when set.
type UpdateParams struct {
	Name        *string
	Subdomain   *string
	Config      *storeconfig.Config
	IsPublished *bool
}

// Update writes the given fields and returns the updated row.
func (r *Repository) Update(ctx context.Context, id string, p UpdateParams) (*Store, error) {
	row := map[string]any{}
	if p.Name != nil {
		row["name"] = *p.Name
	}
	if p.Subdomain != nil {
		if err := ValidateSubdomain(*p.Subdomain); err != nil {
			return nil, err
		}
		row["subdomain"] = *p.Subdomain
	}
	if p.Config != nil {
		blob, err := storeconfig.Marshal(*p.Config)
		if err != nil {
			return nil, err
		}
		row["template_config"] = json.RawMessage(blob)
	}
	if p.IsPublished != nil {
		row["is_published"] = *p.IsPublished
	}
	if len(row) == 0 {
		return r.GetByID(ctx, id)
	}

	resp, err := r.client.From("stores").Eq("id", id).Single().ExecuteUpdate(ctx, row)
	if err != nil {
		return nil, errors.BackendUnavailable("update store", err)
	}
	if resp.StatusCode == 404 || resp.StatusCode == 406 {
		return nil, errors.StoreNotFound(id)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("update store", err)
	}

	var s Store
	if err := resp.JSON(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode updated store")
	}
	return &s, nil
}

// Products lists a store's products.
func (r *Repository) Products(ctx context.Context, storeID string) ([]catalog.Product, error) {
	resp, err := r.client.From("products").Select("*").Eq("store_id", storeID).Order("created_at", true).Execute(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable("list products", err)
	}
	if err := resp.Error(); err != nil {
		return nil, errors.BackendUnavailable("list products", err)
	}

	var out []catalog.Product
	if err := resp.JSON(&out); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decode product list")
	}
	return out, nil
}

// SeedMockProducts inserts the template's mock products for a freshly
// created store.
func (r *Repository) SeedMockProducts(ctx context.Context, storeID, template string) error {
	mocks := catalog.MockProducts(template)
	rows := make([]map[string]any, 0, len(mocks))
	for _, p := range mocks {
		rows = append(rows, map[string]any{
			"store_id":            storeID,
			"name":                p.Name,
			"description":         p.Description,
			"price":               p.Price,
			"discount_percentage": p.DiscountPercentage,
			"stock":               p.Stock,
			"category":            p.Category,
			"is_new":              p.IsNew,
			"is_featured":         p.IsFeatured,
		})
	}

	resp, err := r.client.From("products").ExecuteInsert(ctx, rows)
	if err != nil {
		return errors.BackendUnavailable("seed products", err)
	}
	if err := resp.Error(); err != nil {
		return errors.BackendUnavailable("seed products", err)
	}

	r.logger.WithFields(logrus.Fields{"store": storeID, "count": len(rows)}).Info("Seeded mock products")
	return nil
}
