package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"pantry/internal/model"
	"pantry/internal/notify"
	"pantry/internal/query"
	"pantry/internal/repository"
)

// RecordService defines the inventory use cases.
type RecordService interface {
	// Add validates and normalizes the input, then appends and persists a new record.
	Add(ctx context.Context, in model.RecordInput) (*model.Record, error)

	// Update edits an existing record. Empty or invalid values keep the old
	// value, except dates, where an empty value clears the date.
	Update(ctx context.Context, id string, patch model.RecordPatch) (*model.Record, error)

	// ToggleConsumed flips the consumed flag.
	ToggleConsumed(ctx context.Context, id string) (*model.Record, error)

	// Remove deletes a record. Removing an unknown id is a successful no-op.
	Remove(ctx context.Context, id string) error

	// All returns a copy of the collection in insertion order.
	All(ctx context.Context) []model.Record

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (*model.Record, error)

	// View runs a query over the collection as of the store clock.
	View(ctx context.Context, q query.Query) query.Result
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithClock sets the time source used for createdAt and for "today".
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *RecordStore) { s.newID = gen }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *RecordStore) { s.logger = l }
}

// WithDispatcher enables expiry reminders for newly added records.
func WithDispatcher(d *notify.Dispatcher) Option {
	return func(s *RecordStore) { s.dispatcher = d }
}

// WithQueryEngine sets the engine used by View, e.g. for a locale-specific collation.
func WithQueryEngine(e *query.Engine) Option {
	return func(s *RecordStore) { s.engine = e }
}

// RecordStore owns the in-memory collection and keeps it in step with a slot.
// A mutation is applied to a copy, the copy is saved, and only then does it
// replace the in-memory collection.
type RecordStore struct {
	mu      sync.Mutex
	slot    repository.Slot
	records []model.Record

	now        func() time.Time
	newID      func() string
	logger     *zap.Logger
	dispatcher *notify.Dispatcher
	engine     *query.Engine
	tracer     trace.Tracer
}

var _ RecordService = (*RecordStore)(nil)

// NewRecordStore loads the collection from slot. Undecodable content starts an
// empty collection; any other load error is returned.
func NewRecordStore(ctx context.Context, slot repository.Slot, opts ...Option) (*RecordStore, error) {
	s := &RecordStore{
		slot:   slot,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		logger: zap.NewNop(),
		engine: query.NewEngine(""),
		tracer: otel.Tracer("pantry/internal/service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	records, err := slot.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrSlotCorrupt):
		s.logger.Warn("slot_corrupt_starting_empty", zap.Error(err))
		records = nil
	case err != nil:
		return nil, fmt.Errorf("load records: %w", err)
	}
	if records == nil {
		records = []model.Record{}
	}
	s.records = records
	s.logger.Debug("records_loaded", zap.Int("count", len(records)))
	return s, nil
}

func (s *RecordStore) Add(ctx context.Context, in model.RecordInput) (*model.Record, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Add")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "item name is required"}
	}
	qty, ok := parseQty(in.Qty)
	if !ok {
		qty = 1
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	rec := model.Record{
		ID:           s.newID(),
		Name:         name,
		Qty:          qty,
		Category:     category,
		PurchaseDate: in.PurchaseDate,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    s.now().UTC(),
	}
	span.SetAttributes(attribute.String("record.id", rec.ID))

	s.mu.Lock()
	next := append(model.Clone(s.records), rec)
	err := s.commit(ctx, next)
	s.mu.Unlock()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.logger.Info("record_added", zap.String("id", rec.ID), zap.String("name", rec.Name))
	s.dispatcher.Dispatch(rec, s.now())
	return &rec, nil
}

func (s *RecordStore) Update(ctx context.Context, id string, patch model.RecordPatch) (*model.Record, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Update", trace.WithAttributes(attribute.String("record.id", id)))
	defer span.End()

	return s.mutate(ctx, id, func(r *model.Record) {
		if patch.Name != nil {
			if name := strings.TrimSpace(*patch.Name); name != "" {
				r.Name = name
			}
		}
		if patch.Qty != nil {
			if qty, ok := parseQty(*patch.Qty); ok {
				r.Qty = qty
			}
		}
		if patch.Category != nil {
			if category := strings.TrimSpace(*patch.Category); category != "" {
				r.Category = category
			}
		}
		if patch.PurchaseDate != nil {
			r.PurchaseDate = *patch.PurchaseDate
		}
		if patch.ExpiryDate != nil {
			r.ExpiryDate = *patch.ExpiryDate
		}
	})
}

func (s *RecordStore) ToggleConsumed(ctx context.Context, id string) (*model.Record, error) {
	ctx, span := s.tracer.Start(ctx, "RecordStore.ToggleConsumed", trace.WithAttributes(attribute.String("record.id", id)))
	defer span.End()

	return s.mutate(ctx, id, func(r *model.Record) {
		r.Consumed = !r.Consumed
	})
}

func (s *RecordStore) Remove(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "RecordStore.Remove", trace.WithAttributes(attribute.String("record.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := make([]model.Record, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	if err := s.commit(ctx, next); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.logger.Info("record_removed", zap.String("id", id))
	return nil
}

func (s *RecordStore) All(_ context.Context) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Clone(s.records)
}

func (s *RecordStore) Get(_ context.Context, id string) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	rec := s.records[idx]
	return &rec, nil
}

func (s *RecordStore) View(ctx context.Context, q query.Query) query.Result {
	return s.engine.Run(s.All(ctx), q, s.now())
}

// Today returns the store clock reading.
func (s *RecordStore) Today() time.Time {
	return s.now()
}

func (s *RecordStore) mutate(ctx context.Context, id string, apply func(*model.Record)) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	next := model.Clone(s.records)
	apply(&next[idx])
	if err := s.commit(ctx, next); err != nil {
		trace.SpanFromContext(ctx).SetStatus(codes.Error, err.Error())
		return nil, err
	}
	rec := next[idx]
	s.logger.Info("record_updated", zap.String("id", id))
	return &rec, nil
}

// commit saves next and adopts it. Callers hold s.mu.
func (s *RecordStore) commit(ctx context.Context, next []model.Record) error {
	if err := s.slot.Save(ctx, next); err != nil {
		s.logger.Error("persist_failed", zap.Error(err))
		return fmt.Errorf("persist records: %w", err)
	}
	s.records = next
	return nil
}

func (s *RecordStore) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// parseQty reads a leading integer the way a lenient form field does
// ("3 packs" is 3). It reports false for non-numeric input, values below 1
// and values above math.MaxInt32.
func parseQty(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			return 0, false
		}
		s = s[1:]
	}
	end := strings.IndexFunc(s, func(c rune) bool { return c < '0' || c > '9' })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil || n < 1 {
		return 0, false
	}
	return int(n), true
}
