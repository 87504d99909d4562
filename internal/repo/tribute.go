package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// TributesKeyPrefix namespaces tribute slots within the facility.
const TributesKeyPrefix = "tributeWall_tributes_"

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonWordChars  = regexp.MustCompile(`[^\w-]`)
)

// DeriveKey maps a subject's full name to its tribute slot key.
// The name is lower-cased, whitespace runs become a single "_", and anything
// that is not a word character or hyphen is dropped. An empty result falls
// back to "default". Names that normalize identically share a slot.
func DeriveKey(subjectName string) string {
	suffix := strings.ToLower(subjectName)
	suffix = whitespaceRun.ReplaceAllString(suffix, "_")
	suffix = nonWordChars.ReplaceAllString(suffix, "")
	if suffix == "" {
		suffix = "default"
	}
	return TributesKeyPrefix + suffix
}

// FailureRecorder receives a notification for every swallowed persistence
// failure. *metrics.Metrics satisfies it.
type FailureRecorder interface {
	PersistenceFailure(op string)
}

// TributeStore marshals a subject's tribute list to and from a Facility slot.
// It holds no state of its own beyond its collaborators.
type TributeStore struct {
	kv       Facility
	log      *slog.Logger
	failures FailureRecorder
}

// NewTributeStore constructs a TributeStore. rec may be nil.
func NewTributeStore(kv Facility, log *slog.Logger, rec FailureRecorder) *TributeStore {
	if log == nil {
		log = slog.Default()
	}
	return &TributeStore{kv: kv, log: log, failures: rec}
}

// Load returns the subject's persisted tributes, newest first.
// It never fails: an absent slot, unreadable storage, or malformed data all
// yield an empty list, the latter two after logging the cause.
func (s *TributeStore) Load(ctx context.Context, subjectName string) []domain.Tribute {
	tributes, err := s.Read(ctx, subjectName)
	if err != nil {
		s.log.ErrorContext(ctx, "error loading tributes",
			"key", DeriveKey(subjectName),
			"error", err,
		)
		s.recordFailure("read")
		return []domain.Tribute{}
	}
	return tributes
}

// Save overwrites the subject's slot with tributes, sorted newest first.
// A failed write is logged and otherwise ignored; the caller's in-memory list
// stays authoritative for the session.
func (s *TributeStore) Save(ctx context.Context, subjectName string, tributes []domain.Tribute) {
	if err := s.Write(ctx, subjectName, tributes); err != nil {
		s.log.ErrorContext(ctx, "error saving tributes",
			"key", DeriveKey(subjectName),
			"count", len(tributes),
			"error", err,
		)
		s.recordFailure("write")
	}
}

// Read is Load without the recovery path: decoding and facility errors are
// returned wrapped in domain.ErrPersistenceRead. Administrative tooling uses it
// to tell "no tributes yet" apart from a corrupt slot.
func (s *TributeStore) Read(ctx context.Context, subjectName string) ([]domain.Tribute, error) {
	raw, ok, err := s.kv.Get(ctx, DeriveKey(subjectName))
	if err != nil {
		return nil, fmt.Errorf("repo.TributeStore.Read: %w: %w", domain.ErrPersistenceRead, err)
	}
	if !ok || raw == "" {
		return []domain.Tribute{}, nil
	}
	tributes, err := decodeTributes([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("repo.TributeStore.Read: %w: %w", domain.ErrPersistenceRead, err)
	}
	domain.SortNewestFirst(tributes)
	return tributes, nil
}

// Write is Save without the recovery path. The input slice is not modified.
func (s *TributeStore) Write(ctx context.Context, subjectName string, tributes []domain.Tribute) error {
	sorted := make([]domain.Tribute, len(tributes))
	copy(sorted, tributes)
	domain.SortNewestFirst(sorted)

	b, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("repo.TributeStore.Write: %w: %w", domain.ErrPersistenceWrite, err)
	}
	if err := s.kv.Set(ctx, DeriveKey(subjectName), string(b)); err != nil {
		return fmt.Errorf("repo.TributeStore.Write: %w: %w", domain.ErrPersistenceWrite, err)
	}
	return nil
}

func (s *TributeStore) recordFailure(op string) {
	if s.failures != nil {
		s.failures.PersistenceFailure(op)
	}
}

// persistedTribute is the on-disk schema. Optional and loosely-typed fields
// are pointers or raw JSON so decodeTributes can validate them explicitly.
type persistedTribute struct {
	ID              *string         `json:"id"`
	Name            *string         `json:"name"`
	Relationship    *string         `json:"relationship"`
	Message         *string         `json:"message"`
	Timestamp       json.RawMessage `json:"timestamp"`
	AttachmentType  *string         `json:"attachmentType"`
	AttachmentValue *string         `json:"attachmentValue"`
}

// decodeTributes parses a persisted slot. Any record that does not fit the
// schema rejects the whole slot.
func decodeTributes(raw []byte) ([]domain.Tribute, error) {
	var records []*persistedTribute
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformed, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: slot is not a JSON array", domain.ErrMalformed)
	}

	out := make([]domain.Tribute, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is null", domain.ErrMalformed, i)
		}
		if r.ID == nil || *r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", domain.ErrMalformed, i)
		}
		ts, err := coerceTimestamp(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrMalformed, i, err)
		}
		t := domain.Tribute{
			ID:           *r.ID,
			Name:         deref(r.Name),
			Relationship: deref(r.Relationship),
			Message:      deref(r.Message),
			Timestamp:    ts,
		}
		if at := deref(r.AttachmentType); at != "" {
			if domain.AttachmentType(at) != domain.AttachmentPicture {
				return nil, fmt.Errorf("%w: record %d has attachment type %q", domain.ErrMalformed, i, at)
			}
			t.AttachmentType = domain.AttachmentPicture
			t.AttachmentValue = deref(r.AttachmentValue)
		}
		out = append(out, t)
	}
	return out, nil
}

// coerceTimestamp accepts a JSON number or a numeric string, mirroring how
// older clients stored the field.
func coerceTimestamp(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, errors.New("timestamp is missing")
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, fmt.Errorf("timestamp: %w", err)
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("timestamp %s is not a number", string(raw))
	}
	return int64(f), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
