package export

import (
	"testing"
	"time"

	"resume-studio/resume/model"
)

func TestDraftStashConsumesExactlyOnce(t *testing.T) {
	stash := NewDraftStash(time.Minute)
	stash.Put(PendingDraftKey, model.SampleDocument())

	if _, ok := stash.Take(PendingDraftKey); !ok {
		t.Fatalf("first take must return the draft")
	}
	if _, ok := stash.Take(PendingDraftKey); ok {
		t.Fatalf("second take must report absent")
	}
}

func TestDraftStashReplacesEarlierDraft(t *testing.T) {
	stash := NewDraftStash(time.Minute)

	first := model.SampleDocument()
	first.PersonalInfo.FullName = "First Draft"
	second := model.SampleDocument()
	second.PersonalInfo.FullName = "Second Draft"

	stash.Put(PendingDraftKey, first)
	stash.Put(PendingDraftKey, second)

	got, ok := stash.Take(PendingDraftKey)
	if !ok || got.PersonalInfo.FullName != "Second Draft" {
		t.Fatalf("expected the later draft, got %+v ok=%v", got.PersonalInfo.FullName, ok)
	}
}

func TestDraftStashExpiresEntries(t *testing.T) {
	now := time.Now()
	stash := NewDraftStash(time.Minute)
	stash.now = func() time.Time { return now }

	stash.Put(PendingDraftKey, model.SampleDocument())

	now = now.Add(2 * time.Minute)
	if _, ok := stash.Take(PendingDraftKey); ok {
		t.Fatalf("expired draft must not be returned")
	}
}

func TestDraftStashMissingKey(t *testing.T) {
	stash := NewDraftStash(0)
	if _, ok := stash.Take("other"); ok {
		t.Fatalf("missing key must report absent")
	}
}
