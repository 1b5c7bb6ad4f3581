package distribute

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"reelcast/internal/services"
)

func writeTestVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTelegramUpload(t *testing.T) {
	var gotChatID, gotCaption string
	var gotVideo bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendVideo" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotChatID = r.FormValue("chat_id")
		gotCaption = r.FormValue("caption")
		_, _, err := r.FormFile("video")
		gotVideo = err == nil
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	h := NewTelegramHandler("test-token", "12345").WithBaseURL(server.URL)
	err := h.Upload(context.Background(), Request{
		VideoPath: writeTestVideo(t),
		Caption:   "My Clip #fyp",
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotChatID != "12345" || gotCaption != "My Clip #fyp" || !gotVideo {
		t.Fatalf("request fields: chat=%q caption=%q video=%v", gotChatID, gotCaption, gotVideo)
	}
}

func TestTelegramUploadAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	h := NewTelegramHandler("t", "c").WithBaseURL(server.URL)
	err := h.Upload(context.Background(), Request{VideoPath: writeTestVideo(t)})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestTelegramUploadMissingCredentials(t *testing.T) {
	h := NewTelegramHandler("", "")
	err := h.Upload(context.Background(), Request{VideoPath: "unused.mp4"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTikTokUploadRunsUploader(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile")
	h := NewTikTokHandler("tiktok-upload", profile)

	var gotArgs []string
	h.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		return nil
	})

	err := h.Upload(context.Background(), Request{VideoPath: "/tmp/v.mp4", Caption: "cap"})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	want := map[string]bool{"--video": false, "--description": false, "--profile": false}
	for _, arg := range gotArgs {
		if _, ok := want[arg]; ok {
			want[arg] = true
		}
	}
	for flag, seen := range want {
		if !seen {
			t.Errorf("missing %s in args %v", flag, gotArgs)
		}
	}
}

func TestTikTokUploadRequiresBinary(t *testing.T) {
	h := NewTikTokHandler("", "")
	err := h.Upload(context.Background(), Request{VideoPath: "/tmp/v.mp4"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadCredentialsFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "TELEGRAM_BOT_TOKEN=file-token\nTELEGRAM_CHAT_ID=file-chat\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("TELEGRAM_CHAT_ID")

	creds, err := LoadCredentials(envFile)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if creds.TelegramBotToken != "file-token" || creds.TelegramChatID != "file-chat" {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}

func TestLoadCredentialsMissingFileIsFine(t *testing.T) {
	if _, err := LoadCredentials(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should not error: %v", err)
	}
}
