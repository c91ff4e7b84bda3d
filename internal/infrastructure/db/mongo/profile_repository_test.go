package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func watchedDoc(id primitive.ObjectID, title, owner string) watchedVideoDoc {
	return watchedVideoDoc{
		videoDoc: videoDoc{ID: id, Title: title},
		OwnerDoc: watchedOwnerDoc{Username: owner},
	}
}

func TestOrderWatchHistory(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	third := primitive.NewObjectID()

	// The join returns videos in store order, not watch order.
	doc := watchHistoryDoc{
		WatchHistory: []primitive.ObjectID{third, first, second},
		Videos: []watchedVideoDoc{
			watchedDoc(first, "one", "alice"),
			watchedDoc(second, "two", "bob"),
			watchedDoc(third, "three", "alice"),
		},
	}

	history := orderWatchHistory(doc)
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i, wantTitle := range []string{"three", "one", "two"} {
		if history[i].Title != wantTitle {
			t.Fatalf("entry %d = %q, want %q", i, history[i].Title, wantTitle)
		}
	}
	if history[0].Owner.Username != "alice" {
		t.Fatalf("owner not carried over: %+v", history[0].Owner)
	}
}

func TestOrderWatchHistory_DeletedVideoSkipped(t *testing.T) {
	kept := primitive.NewObjectID()
	deleted := primitive.NewObjectID()

	doc := watchHistoryDoc{
		WatchHistory: []primitive.ObjectID{deleted, kept},
		Videos:       []watchedVideoDoc{watchedDoc(kept, "kept", "alice")},
	}

	history := orderWatchHistory(doc)
	if len(history) != 1 || history[0].Title != "kept" {
		t.Fatalf("deleted video not skipped: %+v", history)
	}
}

func TestOrderWatchHistory_Empty(t *testing.T) {
	if got := orderWatchHistory(watchHistoryDoc{}); len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
}
