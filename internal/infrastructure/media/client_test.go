package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/demo/image/upload/v12/abc123.png": "abc123",
		"https://cdn.example.com/abc123":                           "abc123",
		"abc123.tar.gz":                                            "abc123.tar",
		"":                                                         "",
	}
	for in, want := range cases {
		if got := publicIDFromURL(in); got != want {
			t.Fatalf("publicIDFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func stageTempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "avatar.png")
	if err := os.WriteFile(path, []byte("not-really-a-png"), 0o600); err != nil {
		t.Fatalf("stage file: %v", err)
	}
	return path
}

func TestClient_Upload(t *testing.T) {
	var gotPreset string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotPreset = r.FormValue("upload_preset")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}
		w.Write([]byte(`{"secure_url":"https://cdn.example.com/abc123.png"}`))
	}))
	defer srv.Close()

	client := NewClient(Config{UploadURL: srv.URL, UploadPreset: "unsigned-test"})
	staged := stageTempFile(t)

	url, err := client.Upload(context.Background(), staged)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "https://cdn.example.com/abc123.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if gotPreset != "unsigned-test" {
		t.Fatalf("upload preset not sent, got %q", gotPreset)
	}
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Fatalf("staged file not removed after upload")
	}
}

func TestClient_Upload_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(Config{UploadURL: srv.URL})
	staged := stageTempFile(t)

	if _, err := client.Upload(context.Background(), staged); err == nil {
		t.Fatalf("expected error on host failure")
	}
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Fatalf("staged file not removed after failed upload")
	}
}

func TestClient_Delete(t *testing.T) {
	var gotPublicID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPublicID = r.FormValue("public_id")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{DestroyURL: srv.URL})
	if err := client.Delete(context.Background(), "https://cdn.example.com/abc123.png"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if gotPublicID != "abc123" {
		t.Fatalf("public id = %q, want abc123", gotPublicID)
	}
}
