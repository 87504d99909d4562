// Package domain contains the core data types for the Tribute Wall service.
// This package depends only on the standard library and is
// imported by every other internal package (repo, service, handler).
package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// AttachmentType tags the kind of resource a tribute points at.
type AttachmentType string

// AttachmentPicture is the only attachment kind the wall renders today.
const AttachmentPicture AttachmentType = "picture"

// Tribute is a single guestbook entry on a subject's wall.
// A Tribute is created once, at submission time, and never mutated.
// Timestamp is epoch milliseconds and is the sole sort key (newest first).
type Tribute struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name" yaml:"name"`
	Relationship    string         `json:"relationship" yaml:"relationship"`
	Message         string         `json:"message" yaml:"message"`
	Timestamp       int64          `json:"timestamp" yaml:"timestamp"`
	AttachmentType  AttachmentType `json:"attachmentType,omitempty" yaml:"attachmentType,omitempty"`
	AttachmentValue string         `json:"attachmentValue,omitempty" yaml:"attachmentValue,omitempty"`
}

// PostedAt returns Timestamp as a UTC time.Time.
func (t Tribute) PostedAt() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}

// HasAttachment reports whether the tribute carries a picture reference.
func (t Tribute) HasAttachment() bool {
	return t.AttachmentType != "" && t.AttachmentValue != ""
}

// NewTribute is the visitor-supplied part of a tribute. The service fills in
// ID and Timestamp.
type NewTribute struct {
	Name            string
	Relationship    string
	Message         string
	AttachmentType  AttachmentType
	AttachmentValue string
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (n NewTribute) Trimmed() NewTribute {
	return NewTribute{
		Name:            strings.TrimSpace(n.Name),
		Relationship:    strings.TrimSpace(n.Relationship),
		Message:         strings.TrimSpace(n.Message),
		AttachmentType:  AttachmentType(strings.TrimSpace(string(n.AttachmentType))),
		AttachmentValue: strings.TrimSpace(n.AttachmentValue),
	}
}

// SortNewestFirst orders tributes by Timestamp descending, in place.
// The sort is stable so records with equal timestamps keep their relative order.
func SortNewestFirst(tributes []Tribute) {
	slices.SortStableFunc(tributes, func(a, b Tribute) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
}

// IsNewestFirst reports whether every adjacent pair satisfies a.Timestamp >= b.Timestamp.
func IsNewestFirst(tributes []Tribute) bool {
	for i := 1; i < len(tributes); i++ {
		if tributes[i-1].Timestamp < tributes[i].Timestamp {
			return false
		}
	}
	return true
}
