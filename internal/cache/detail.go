package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/carlosbandelli/superlist/internal/api"
)

// ProductService is the slice of the API client the detail cache uses.
type ProductService interface {
	GetListDetail(ctx context.Context, id int64) (*api.ListDetail, error)
	CreateProduct(ctx context.Context, listID, ownerID int64, fields api.ProductFields) (*api.Product, error)
	UpdateProduct(ctx context.Context, id int64, fields api.ProductFields) (*api.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Detail caches one list's metadata and products, scoped by list id. The
// list's total value is server-computed; every product mutation here goes
// mutate-then-reconcile and raises the refresh signal so the collection
// cache refetches the totals it displays.
type Detail struct {
	svc     ProductService
	token   api.TokenSource
	retries int
	signal  *RefreshSignal
	logger  *slog.Logger

	mu     sync.Mutex
	listID int64
	phase  Phase
	detail api.ListDetail
	has    bool
	err    error
	seq    uint64
	edits  map[int64]EditBuffer
}

// DetailSnapshot is an immutable view of the detail cache.
type DetailSnapshot struct {
	ListID    int64
	Phase     Phase
	Detail    api.ListDetail
	HasDetail bool
	Err       error
}

// NewDetail creates an empty detail cache. signal may be nil when no
// collection view needs cross-screen refreshes (tests).
func NewDetail(svc ProductService, token api.TokenSource, retries int, signal *RefreshSignal, logger *slog.Logger) *Detail {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detail{
		svc:     svc,
		token:   token,
		retries: retries,
		signal:  signal,
		logger:  logger,
		edits:   make(map[int64]EditBuffer),
	}
}

// SetList points the cache at a list, resetting state when the id changes.
// Bumping the sequence guarantees an in-flight fetch for the previous list
// can never be applied to the new one.
func (d *Detail) SetList(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listID == id {
		return
	}
	d.listID = id
	d.phase = PhaseEmpty
	d.detail = api.ListDetail{}
	d.has = false
	d.err = nil
	d.seq++
	clear(d.edits)
}

// Snapshot returns the current phase and a copy of the detail.
func (d *Detail) Snapshot() DetailSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := DetailSnapshot{
		ListID:    d.listID,
		Phase:     d.phase,
		Detail:    d.detail,
		HasDetail: d.has,
		Err:       d.err,
	}
	snap.Detail.Products = cloneProducts(d.detail.Products)
	return snap
}

// Refetch fetches the current list's detail, superseding any in-flight
// fetch. Disabled (no-op) without a token or a selected list.
func (d *Detail) Refetch(ctx context.Context) {
	if _, ok := d.token(); !ok {
		return
	}

	d.mu.Lock()
	id := d.listID
	if id == 0 {
		d.mu.Unlock()
		return
	}
	d.seq++
	seq := d.seq
	d.phase = PhaseLoading
	d.mu.Unlock()

	var detail *api.ListDetail
	err := retryFetch(ctx, d.retries, func(ctx context.Context) error {
		fetched, err := d.svc.GetListDetail(ctx, id)
		if err != nil {
			return err
		}
		detail = fetched
		return nil
	})
	d.apply(seq, detail, err)
}

func (d *Detail) apply(seq uint64, detail *api.ListDetail, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq != d.seq {
		d.logger.Debug("discarding superseded detail fetch", "seq", seq, "latest", d.seq)
		return
	}
	if err != nil {
		d.logger.Warn("detail fetch failed", "list", d.listID, "error", err)
		d.phase = PhaseError
		d.err = err
		return
	}
	d.detail = *detail
	d.has = true
	d.phase = PhaseReady
	d.err = nil
}

// BeginEdit snapshots a product's current fields into an edit buffer.
// Re-entering edit mode for a product already being edited keeps the
// existing buffer.
func (d *Detail) BeginEdit(productID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, editing := d.edits[productID]; editing {
		return true
	}
	for _, p := range d.detail.Products {
		if p.ID == productID {
			d.edits[productID] = newEditBuffer(p)
			return true
		}
	}
	return false
}

// EditBufferFor returns the provisional values for a product in edit mode.
func (d *Detail) EditBufferFor(productID int64) (EditBuffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf, ok := d.edits[productID]
	return buf, ok
}

// SetEditBuffer replaces the provisional values for a product in edit mode.
func (d *Detail) SetEditBuffer(productID int64, buf EditBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, editing := d.edits[productID]; editing {
		d.edits[productID] = buf
	}
}

// CancelEdit discards a product's edit buffer, leaving the Ready data
// untouched.
func (d *Detail) CancelEdit(productID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.edits, productID)
}

// SaveEdit parses the product's edit buffer, sends the update, then
// reconciles by refetching the detail and raising the refresh signal so the
// collection picks up the recomputed total. The buffer is discarded on a
// successful save and kept on failure so the user can retry.
func (d *Detail) SaveEdit(ctx context.Context, productID int64) error {
	d.mu.Lock()
	buf, editing := d.edits[productID]
	d.mu.Unlock()
	if !editing {
		return fmt.Errorf("product %d is not being edited", productID)
	}

	_, err := d.svc.UpdateProduct(ctx, productID, buf.Fields())
	if err == nil {
		d.CancelEdit(productID)
	}
	d.reconcile(ctx)
	return err
}

// AddProduct creates a product on the current list, then reconciles.
func (d *Detail) AddProduct(ctx context.Context, fields api.ProductFields) error {
	d.mu.Lock()
	listID := d.listID
	ownerID := d.detail.OwnerID
	d.mu.Unlock()
	if listID == 0 {
		return fmt.Errorf("no list selected")
	}

	_, err := d.svc.CreateProduct(ctx, listID, ownerID, fields)
	d.reconcile(ctx)
	return err
}

// RemoveProduct deletes a product, then reconciles. A failed delete still
// reconciles so the view returns to server truth.
func (d *Detail) RemoveProduct(ctx context.Context, productID int64) error {
	err := d.svc.DeleteProduct(ctx, productID)
	d.CancelEdit(productID)
	d.reconcile(ctx)
	return err
}

func (d *Detail) reconcile(ctx context.Context) {
	d.Refetch(ctx)
	if d.signal != nil {
		d.signal.Raise()
	}
}

func cloneProducts(products []api.Product) []api.Product {
	if len(products) == 0 {
		return nil
	}
	dup := make([]api.Product, len(products))
	copy(dup, products)
	return dup
}
