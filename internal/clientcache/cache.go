// Package clientcache mantiene en memoria las tres colecciones del API con un
// respaldo local cuando el servidor no responde. El estado de sincronización es
// explícito (synced, degraded, reconciling) y las mutaciones hechas sin conexión
// quedan encoladas hasta que Reconcile las reenvía.
package clientcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"husbandry-tracker/internal/platform/logger"
)

type SyncState string

const (
	StateSynced      SyncState = "synced"
	StateDegraded    SyncState = "degraded"
	StateReconciling SyncState = "reconciling"
)

type ConflictReason string

const (
	ConflictNotFound  ConflictReason = "not_found"
	ConflictDuplicate ConflictReason = "duplicate_id"
	ConflictRejected  ConflictReason = "rejected"
)

// Conflict es una operación encolada que el servidor no aceptó al reconciliar. No se reintenta.
type Conflict struct {
	Op     Operation      `json:"op"`
	Reason ConflictReason `json:"reason"`
	Detail string         `json:"detail,omitempty"`
}

// Server es lo que el cache necesita del API. *API lo implementa.
type Server interface {
	Fetch(ctx context.Context) (Snapshot, error)
	Create(ctx context.Context, e Entity, fields map[string]any) (string, error)
	Update(ctx context.Context, e Entity, id string, fields map[string]any) error
	Delete(ctx context.Context, e Entity, id string) error
}

type Options struct {
	Fallback FallbackStore // nil => respaldo sólo en memoria
	Logger   logger.Logger
}

type Cache struct {
	server   Server
	fallback FallbackStore
	log      logger.Logger
	now      func() time.Time

	// opMu serializa Load, mutaciones y Reconcile; mu protege la vista.
	opMu sync.Mutex

	mu        sync.RWMutex
	state     SyncState
	view      Snapshot
	pending   []Operation
	conflicts []Conflict
}

// New arranca con lo que haya en el respaldo. Hasta el primer Load la vista es local.
func New(server Server, opts Options) (*Cache, error) {
	fb := opts.Fallback
	if fb == nil {
		fb = &memoryFallback{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	st, err := fb.Load()
	if err != nil {
		return nil, err
	}

	c := &Cache{
		server:   server,
		fallback: fb,
		log:      log.With(map[string]any{"component": "clientcache"}),
		now:      time.Now,
		state:    StateSynced,
		view:     st.Snapshot.clone(),
		pending:  append([]Operation(nil), st.Pending...),
	}
	if len(c.pending) > 0 {
		c.state = StateDegraded
	}
	return c, nil
}

func (c *Cache) State() SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Cache) Animals() []Animal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Animal(nil), c.view.Animals...)
}

func (c *Cache) Breedings() []Breeding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Breeding(nil), c.view.Breedings...)
}

func (c *Cache) Hatchings() []Hatching {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Hatching(nil), c.view.Hatchings...)
}

func (c *Cache) Pending() []Operation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Operation(nil), c.pending...)
}

// Conflicts acumula lo que dejaron las reconciliaciones de este proceso.
func (c *Cache) Conflicts() []Conflict {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Conflict(nil), c.conflicts...)
}

func (c *Cache) EligibleMales() []Animal {
	return c.eligible("male")
}

func (c *Cache) EligibleFemales() []Animal {
	return c.eligible("female")
}

func (c *Cache) eligible(sex string) []Animal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Animal, 0, len(c.view.Animals))
	for _, a := range c.view.Animals {
		if a.eligibleFor(sex) {
			out = append(out, a)
		}
	}
	return out
}

// Load recarga las tres colecciones. Si el servidor no responde sustituye la
// vista por el respaldo y queda degraded; ese caso no es un error para el caller.
func (c *Cache) Load(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.load(ctx)
}

func (c *Cache) load(ctx context.Context) error {
	remote, err := c.server.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnreachable) {
			return err
		}
		return c.useFallback(err)
	}
	return c.install(remote)
}

// install reemplaza la vista por la del servidor. Con operaciones pendientes la
// vista es servidor + pendientes y el estado sigue degraded hasta reconciliar.
func (c *Cache) install(remote Snapshot) error {
	now := c.now()

	c.mu.Lock()
	state := StateSynced
	if len(c.pending) > 0 {
		state = StateDegraded
		for _, op := range c.pending {
			if err := applyLocal(&remote, op, now); err != nil {
				c.log.Debug("pending operation does not apply on server view", map[string]any{
					"op":    op.String(),
					"error": err.Error(),
				})
			}
		}
	}
	remote.refreshDerived(now)
	c.view = remote
	c.state = state
	c.mu.Unlock()

	return c.persist()
}

func (c *Cache) useFallback(cause error) error {
	st, err := c.fallback.Load()
	if err != nil {
		return errors.Join(cause, err)
	}

	c.mu.Lock()
	c.view = st.Snapshot.clone()
	c.view.refreshDerived(c.now())
	c.state = StateDegraded
	c.mu.Unlock()

	c.log.Warn("server unreachable, using local fallback", map[string]any{
		"error":   cause.Error(),
		"pending": len(st.Pending),
	})
	return nil
}

// Create devuelve el id asignado (el del caller, o uno generado localmente).
func (c *Cache) Create(ctx context.Context, e Entity, fields map[string]any) (string, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	prepared, err := prepareCreate(e, fields, c.now())
	if err != nil {
		return "", err
	}
	id := stringField(prepared, "id")
	op := Operation{Kind: OpCreate, Entity: e, ID: id, Fields: prepared}
	return id, c.mutate(ctx, op)
}

func (c *Cache) Update(ctx context.Context, e Entity, id string, fields map[string]any) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !e.Valid() || id == "" {
		return ErrInvalidInput
	}
	return c.mutate(ctx, Operation{Kind: OpUpdate, Entity: e, ID: id, Fields: fields})
}

func (c *Cache) Delete(ctx context.Context, e Entity, id string) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !e.Valid() || id == "" {
		return ErrInvalidInput
	}
	return c.mutate(ctx, Operation{Kind: OpDelete, Entity: e, ID: id})
}

// mutate aplica op de forma optimista y después la manda. Si hay pendientes
// se encola detrás de ellas para no reordenar.
func (c *Cache) mutate(ctx context.Context, op Operation) error {
	now := c.now()
	op.QueuedAt = now

	c.mu.Lock()
	prev := c.view.clone()
	next := c.view.clone()
	// Un update/delete de algo que no está en la vista local lo decide el servidor.
	localErr := applyLocal(&next, op, now)
	if localErr != nil && !errors.Is(localErr, ErrNotFound) {
		c.mu.Unlock()
		return localErr
	}
	if localErr == nil {
		c.view = next
	}
	queued := len(c.pending) > 0
	c.mu.Unlock()

	if queued {
		if localErr != nil {
			return localErr
		}
		return c.enqueue(op)
	}

	err := c.send(ctx, op)
	switch {
	case err == nil:
		return c.afterWrite(ctx)
	case errors.Is(err, ErrUnreachable):
		if localErr != nil {
			return errors.Join(localErr, err)
		}
		c.log.Warn("server unreachable, queueing mutation", map[string]any{
			"op":    op.String(),
			"error": err.Error(),
		})
		return c.enqueue(op)
	default:
		c.mu.Lock()
		c.view = prev
		c.mu.Unlock()
		return err
	}
}

func (c *Cache) send(ctx context.Context, op Operation) error {
	switch op.Kind {
	case OpCreate:
		_, err := c.server.Create(ctx, op.Entity, op.Fields)
		return err
	case OpUpdate:
		return c.server.Update(ctx, op.Entity, op.ID, op.Fields)
	case OpDelete:
		return c.server.Delete(ctx, op.Entity, op.ID)
	}
	return fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, op.Kind)
}

// afterWrite recarga desde el servidor (el servidor gana). Si la recarga falla la
// escritura ya quedó hecha: se conserva la vista local y se marca degraded.
func (c *Cache) afterWrite(ctx context.Context) error {
	remote, err := c.server.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnreachable) {
			return err
		}
		c.setState(StateDegraded)
		c.log.Warn("reload after write failed", map[string]any{"error": err.Error()})
		return c.persist()
	}
	return c.install(remote)
}

func (c *Cache) enqueue(op Operation) error {
	c.mu.Lock()
	c.pending = append(c.pending, op)
	c.state = StateDegraded
	c.mu.Unlock()
	return c.persist()
}

func (c *Cache) persist() error {
	c.mu.RLock()
	st := FallbackState{
		Snapshot: c.view.clone(),
		Pending:  append([]Operation(nil), c.pending...),
	}
	c.mu.RUnlock()

	if err := c.fallback.Save(st); err != nil {
		return fmt.Errorf("persist fallback: %w", err)
	}
	return nil
}

// Reconcile reenvía las operaciones pendientes en orden. Los 404 y los ids
// duplicados quedan como Conflict; una falla de red corta el replay y conserva
// el resto de la cola. Si todo pasa recarga y vuelve a synced.
func (c *Cache) Reconcile(ctx context.Context) ([]Conflict, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	pending := append([]Operation(nil), c.pending...)
	if len(pending) > 0 {
		c.state = StateReconciling
	}
	c.mu.Unlock()

	if len(pending) == 0 {
		return nil, c.load(ctx)
	}

	remote, err := c.server.Fetch(ctx)
	if err != nil {
		c.setState(StateDegraded)
		return nil, err
	}
	known := map[Entity]map[string]bool{
		EntityAnimals:   {},
		EntityBreedings: {},
		EntityHatchings: {},
	}
	for _, a := range remote.Animals {
		known[EntityAnimals][a.ID] = true
	}
	for _, b := range remote.Breedings {
		known[EntityBreedings][b.ID] = true
	}
	for _, h := range remote.Hatchings {
		known[EntityHatchings][h.ID] = true
	}

	var conflicts []Conflict
	for i, op := range pending {
		if reason, ok := precheck(op, known); !ok {
			conflicts = append(conflicts, Conflict{Op: op, Reason: reason})
			continue
		}

		err := c.send(ctx, op)
		if err == nil {
			switch op.Kind {
			case OpCreate:
				known[op.Entity][op.ID] = true
			case OpDelete:
				delete(known[op.Entity], op.ID)
			}
			continue
		}

		if errors.Is(err, ErrUnreachable) || ctx.Err() != nil {
			c.finishReconcile(pending[i:], conflicts, StateDegraded)
			if perr := c.persist(); perr != nil {
				return conflicts, errors.Join(err, perr)
			}
			return conflicts, err
		}
		conflicts = append(conflicts, Conflict{Op: op, Reason: reasonFor(err), Detail: err.Error()})
	}

	c.finishReconcile(nil, conflicts, StateReconciling)
	for _, cf := range conflicts {
		c.log.Warn("reconcile conflict", map[string]any{
			"op":     cf.Op.String(),
			"reason": string(cf.Reason),
		})
	}
	if err := c.persist(); err != nil {
		return conflicts, err
	}
	return conflicts, c.afterWrite(ctx)
}

// precheck detecta contra la lista remota lo que el servidor rechazaría igual.
func precheck(op Operation, known map[Entity]map[string]bool) (ConflictReason, bool) {
	exists := known[op.Entity][op.ID]
	switch op.Kind {
	case OpCreate:
		if exists {
			return ConflictDuplicate, false
		}
	case OpUpdate, OpDelete:
		if !exists {
			return ConflictNotFound, false
		}
	}
	return "", true
}

func reasonFor(err error) ConflictReason {
	switch {
	case errors.Is(err, ErrNotFound):
		return ConflictNotFound
	case statusOf(err) == http.StatusConflict:
		return ConflictDuplicate
	default:
		return ConflictRejected
	}
}

func (c *Cache) finishReconcile(rest []Operation, conflicts []Conflict, state SyncState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append([]Operation(nil), rest...)
	c.conflicts = append(c.conflicts, conflicts...)
	c.state = state
}

func (c *Cache) setState(s SyncState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
