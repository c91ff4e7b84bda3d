package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/videotube/videotube-api/internal/core/domain"
	"github.com/videotube/videotube-api/internal/core/ports"
)

type stubVideoRepo struct {
	videos map[string]*domain.Video
	views  map[string]int
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{videos: make(map[string]*domain.Video), views: make(map[string]int)}
}

func (r *stubVideoRepo) Create(_ context.Context, v *domain.Video) (*domain.Video, error) {
	clone := *v
	if clone.ID == "" {
		clone.ID = v.Title
	}
	r.videos[clone.ID] = &clone
	return &clone, nil
}

func (r *stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVideoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Video, error) {
	var out []domain.Video
	for _, v := range r.videos {
		if v.OwnerID == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVideoRepo) SetPublished(_ context.Context, id string, published bool) error {
	v, ok := r.videos[id]
	if !ok {
		return domain.ErrVideoNotFound
	}
	v.IsPublished = published
	return nil
}

func (r *stubVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.videos[id]; !ok {
		return domain.ErrVideoNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *stubVideoRepo) IncrementViews(_ context.Context, id string) error {
	r.views[id]++
	return nil
}

type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(userID, videoID string) string { return userID + "/" + videoID }

func (d *stubDedup) IsDuplicate(_ context.Context, userID, videoID string, _ time.Time) (bool, error) {
	return d.seen[d.key(userID, videoID)], nil
}

func (d *stubDedup) Mark(_ context.Context, userID, videoID string, _ time.Time) error {
	d.seen[d.key(userID, videoID)] = true
	return nil
}

func historyFixture(t *testing.T) (ports.HistoryService, *stubUserRepo, *stubVideoRepo, *stubDedup) {
	t.Helper()
	users := newStubUserRepo()
	videos := newStubVideoRepo()
	dedup := newStubDedup()
	svc := NewHistoryService(users, videos, dedup, zerolog.Nop())
	return svc, users, videos, dedup
}

func seedViewer(users *stubUserRepo) string {
	u, _ := users.Create(context.Background(), &domain.User{Username: "viewer", Email: "v@example.com"})
	return u.ID
}

func TestHistoryService_Process(t *testing.T) {
	svc, users, videos, _ := historyFixture(t)
	userID := seedViewer(users)
	videos.Create(context.Background(), &domain.Video{ID: "vid-1", Title: "vid-1"})

	event := ports.ViewEventInput{UserID: userID, VideoID: "vid-1", WatchedAt: time.Now()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	history := users.users[userID].WatchHistory
	if len(history) != 1 || history[0] != "vid-1" {
		t.Fatalf("unexpected watch history: %v", history)
	}
	if videos.views["vid-1"] != 1 {
		t.Fatalf("expected 1 view, got %d", videos.views["vid-1"])
	}
}

func TestHistoryService_DuplicateSkipped(t *testing.T) {
	svc, users, videos, _ := historyFixture(t)
	userID := seedViewer(users)
	videos.Create(context.Background(), &domain.Video{ID: "vid-1", Title: "vid-1"})

	event := ports.ViewEventInput{UserID: userID, VideoID: "vid-1", WatchedAt: time.Now()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate process failed: %v", err)
	}

	if got := videos.views["vid-1"]; got != 1 {
		t.Fatalf("duplicate view counted: views=%d", got)
	}
	if got := len(users.users[userID].WatchHistory); got != 1 {
		t.Fatalf("duplicate view appended: history=%d", got)
	}
}

func TestHistoryService_UnknownVideo(t *testing.T) {
	svc, users, _, _ := historyFixture(t)
	userID := seedViewer(users)

	event := ports.ViewEventInput{UserID: userID, VideoID: "missing", WatchedAt: time.Now()}
	if err := svc.Process(context.Background(), event); !errors.Is(err, domain.ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
	if len(users.users[userID].WatchHistory) != 0 {
		t.Fatalf("history mutated for unknown video")
	}
}

// TestHistoryService_RewatchMovesToTail verifies the ordering contract:
// rewatching an older video moves it to the end of the history.
func TestHistoryService_RewatchMovesToTail(t *testing.T) {
	svc, users, videos, dedup := historyFixture(t)
	userID := seedViewer(users)
	videos.Create(context.Background(), &domain.Video{ID: "vid-1", Title: "vid-1"})
	videos.Create(context.Background(), &domain.Video{ID: "vid-2", Title: "vid-2"})

	ts := time.Now()
	for _, videoID := range []string{"vid-1", "vid-2"} {
		if err := svc.Process(context.Background(), ports.ViewEventInput{UserID: userID, VideoID: videoID, WatchedAt: ts}); err != nil {
			t.Fatalf("process %s failed: %v", videoID, err)
		}
	}

	// A later rewatch of vid-1, outside the dedup window.
	delete(dedup.seen, dedup.key(userID, "vid-1"))
	if err := svc.Process(context.Background(), ports.ViewEventInput{UserID: userID, VideoID: "vid-1", WatchedAt: ts.Add(2 * time.Hour)}); err != nil {
		t.Fatalf("rewatch failed: %v", err)
	}

	history := users.users[userID].WatchHistory
	want := []string{"vid-2", "vid-1"}
	if len(history) != len(want) {
		t.Fatalf("unexpected history length: %v", history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Fatalf("history order = %v, want %v", history, want)
		}
	}
}
