// Package service contains the business logic for the Tribute Wall API.
// Services validate inputs, enforce ordering and de-duplication rules, and
// orchestrate store calls. No encoding or storage details live here.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// TributeStore is the persistence facade the wall reads and writes through.
// Both operations are best-effort: failures are handled (logged) inside the
// store and never reach the wall.
type TributeStore interface {
	Load(ctx context.Context, subjectName string) []domain.Tribute
	Save(ctx context.Context, subjectName string, tributes []domain.Tribute)
}

// TributeRecorder receives submission outcomes. *metrics.Metrics satisfies it.
type TributeRecorder interface {
	TributePosted()
	ValidationFailed()
}

// WallOptions tunes a TributeWall. The zero value is usable.
type WallOptions struct {
	// Rules decides which fields a submission must carry.
	Rules domain.ValidationRules

	// SubmitDelay is a fixed pause before a submission reports completion.
	// It paces the confirmation UX and is never cancelled.
	SubmitDelay time.Duration

	// Recorder is optional.
	Recorder TributeRecorder

	// Now, NewID and Sleep are seams for tests; they default to time.Now,
	// uuid.NewString and time.Sleep.
	Now   func() time.Time
	NewID func() string
	Sleep func(time.Duration)
}

// TributeWall owns the in-memory tribute list of one subject and is the only
// writer to that subject's store slot. It is safe for concurrent use.
// Submissions are serialized by submitMu, which is held across the submit
// pause; mu guards the list only, so reads never wait on a pause.
type TributeWall struct {
	store   TributeStore
	subject string
	seeds   []domain.Tribute
	seedIDs map[string]struct{}
	opts    WallOptions
	flow    *domain.Flow

	submitMu sync.Mutex

	mu          sync.Mutex
	tributes    []domain.Tribute
	initialized bool
}

// NewTributeWall constructs a wall for subjectName with the given seed records.
// The wall starts in domain.FlowLoading; call Initialize before serving it.
func NewTributeWall(store TributeStore, subjectName string, seeds []domain.Tribute, opts WallOptions) *TributeWall {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	ownSeeds := make([]domain.Tribute, len(seeds))
	copy(ownSeeds, seeds)
	ids := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		ids[s.ID] = struct{}{}
	}

	return &TributeWall{
		store:   store,
		subject: subjectName,
		seeds:   ownSeeds,
		seedIDs: ids,
		opts:    opts,
		flow:    domain.NewFlow(),
	}
}

// Subject returns the subject's full name.
func (w *TributeWall) Subject() string {
	return w.subject
}

// State returns the current page flow state.
func (w *TributeWall) State() domain.FlowState {
	return w.flow.State()
}

// Initialize loads the persisted tributes once, merges them behind the seed
// records (seed wins on an id clash), sorts newest first and moves the wall to
// domain.FlowReady. Later calls return the current list without reloading.
func (w *TributeWall) Initialize(ctx context.Context) []domain.Tribute {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.initialized {
		return w.snapshot()
	}

	loaded := w.store.Load(ctx, w.subject)

	merged := make([]domain.Tribute, 0, len(w.seeds)+len(loaded))
	merged = append(merged, w.seeds...)
	seen := make(map[string]struct{}, len(loaded))
	for _, t := range loaded {
		if w.isSeed(t.ID) {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}
	domain.SortNewestFirst(merged)

	w.tributes = merged
	w.initialized = true
	// Loading -> Ready is the only transition out of Loading; it cannot fail here.
	_ = w.flow.Transition(domain.FlowReady)

	return w.snapshot()
}

// AddTribute validates n, records it as a new tribute and persists the
// non-seed part of the list. Validation failures wrap domain.ErrValidation and
// leave both the list and the store untouched. A wall that has not been
// initialized rejects submissions with domain.ErrInvalidTransition.
// The new tribute is visible to readers as soon as it is saved; the submit
// pause only delays the return and the move to domain.FlowConfirmed.
func (w *TributeWall) AddTribute(ctx context.Context, n domain.NewTribute) (domain.Tribute, error) {
	n = n.Trimmed()
	if err := w.opts.Rules.Validate(n); err != nil {
		w.recordValidationFailure()
		return domain.Tribute{}, fmt.Errorf("service.TributeWall.AddTribute: %w", err)
	}

	w.submitMu.Lock()
	defer w.submitMu.Unlock()

	t, err := w.record(ctx, n)
	if err != nil {
		return domain.Tribute{}, fmt.Errorf("service.TributeWall.AddTribute: %w", err)
	}

	if w.opts.SubmitDelay > 0 {
		w.opts.Sleep(w.opts.SubmitDelay)
	}
	_ = w.flow.Transition(domain.FlowConfirmed)

	if w.opts.Recorder != nil {
		w.opts.Recorder.TributePosted()
	}
	return t, nil
}

// record moves the flow to Submitting, prepends the tribute built from n and
// saves the non-seed list. Callers must hold w.submitMu.
func (w *TributeWall) record(ctx context.Context, n domain.NewTribute) (domain.Tribute, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.flow.Transition(domain.FlowSubmitting); err != nil {
		return domain.Tribute{}, err
	}

	t := domain.Tribute{
		ID:           w.opts.NewID(),
		Name:         n.Name,
		Relationship: n.Relationship,
		Message:      n.Message,
		Timestamp:    w.opts.Now().UnixMilli(),
	}
	if n.AttachmentValue != "" {
		t.AttachmentType = n.AttachmentType
		t.AttachmentValue = n.AttachmentValue
	}

	next := make([]domain.Tribute, 0, len(w.tributes)+1)
	next = append(next, t)
	next = append(next, w.tributes...)
	domain.SortNewestFirst(next)
	w.tributes = next

	w.store.Save(ctx, w.subject, w.userTributes())
	return t, nil
}

// Acknowledge dismisses the confirmation of the last submission.
// Returns domain.ErrInvalidTransition when nothing is being confirmed.
func (w *TributeWall) Acknowledge() error {
	if err := w.flow.Transition(domain.FlowReady); err != nil {
		return fmt.Errorf("service.TributeWall.Acknowledge: %w", err)
	}
	return nil
}

// ClearUserTributes erases every persisted tribute for the subject and resets
// the in-memory list to the seed records. Administrative use only.
func (w *TributeWall) ClearUserTributes(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store.Save(ctx, w.subject, []domain.Tribute{})

	reset := make([]domain.Tribute, len(w.seeds))
	copy(reset, w.seeds)
	domain.SortNewestFirst(reset)
	w.tributes = reset
}

// Tributes returns a copy of the full merged list, newest first.
func (w *TributeWall) Tributes() []domain.Tribute {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Feed returns one page of the merged list and the total number of tributes.
// The returned slice is never nil.
func (w *TributeWall) Feed(p domain.PaginationParams) ([]domain.Tribute, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start, end := p.Bounds(len(w.tributes))
	page := make([]domain.Tribute, end-start)
	copy(page, w.tributes[start:end])
	return page, len(w.tributes)
}

// IsSeed reports whether id belongs to a bundled seed record.
func (w *TributeWall) IsSeed(id string) bool {
	return w.isSeed(id)
}

func (w *TributeWall) isSeed(id string) bool {
	_, ok := w.seedIDs[id]
	return ok
}

// userTributes returns the records the store owns: everything except seeds.
// Callers must hold w.mu.
func (w *TributeWall) userTributes() []domain.Tribute {
	out := make([]domain.Tribute, 0, len(w.tributes))
	for _, t := range w.tributes {
		if !w.isSeed(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// snapshot copies the current list. Callers must hold w.mu.
func (w *TributeWall) snapshot() []domain.Tribute {
	out := make([]domain.Tribute, len(w.tributes))
	copy(out, w.tributes)
	return out
}

func (w *TributeWall) recordValidationFailure() {
	if w.opts.Recorder != nil {
		w.opts.Recorder.ValidationFailed()
	}
}
