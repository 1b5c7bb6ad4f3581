package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newStubServer(t *testing.T, translations map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		translated, ok := translations[q]
		if !ok {
			translated = "?" + q
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["` + translated + `","` + q + `",null,null]],null,"zh"]`))
	}))
}

func TestTranslateDecodesResponse(t *testing.T) {
	server := newStubServer(t, map[string]string{"你好": "halo"})
	defer server.Close()

	client := NewClient(server.URL, "zh", "id", time.Second)
	got, err := client.Translate(context.Background(), "你好")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "halo" {
		t.Fatalf("got %q, want halo", got)
	}
}

func TestTranslateEmptyPassesThrough(t *testing.T) {
	client := NewClient("http://unused.invalid", "zh", "id", time.Second)
	got, err := client.Translate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "   " {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestTranslateReportsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "zh", "id", time.Second)
	if _, err := client.Translate(context.Background(), "hi"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestTranslateSRTPreservesStructure(t *testing.T) {
	server := newStubServer(t, map[string]string{
		"第一句": "kalimat pertama",
		"第二句": "kalimat kedua",
	})
	defer server.Close()

	srt := strings.Join([]string{
		"1",
		"00:00:00,000 --> 00:00:02,000",
		"第一句",
		"",
		"2",
		"00:00:02,000 --> 00:00:04,000",
		"第二句",
		"",
	}, "\n")

	dir := t.TempDir()
	in := filepath.Join(dir, "in.srt")
	out := filepath.Join(dir, "out.srt")
	if err := os.WriteFile(in, []byte(srt), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(server.URL, "zh", "id", time.Second)
	if err := client.TranslateSRT(context.Background(), in, out); err != nil {
		t.Fatalf("TranslateSRT: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "1" || lines[1] != "00:00:00,000 --> 00:00:02,000" {
		t.Fatalf("structure lines changed: %v", lines[:2])
	}
	if lines[2] != "kalimat pertama" {
		t.Fatalf("first cue not translated: %q", lines[2])
	}
	if lines[6] != "kalimat kedua" {
		t.Fatalf("second cue not translated: %q", lines[6])
	}
}

func TestTranslateSRTKeepsOriginalOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.srt")
	out := filepath.Join(dir, "out.srt")
	if err := os.WriteFile(in, []byte("1\n00:00:00,000 --> 00:00:01,000\nhello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(server.URL, "zh", "id", time.Second)
	if err := client.TranslateSRT(context.Background(), in, out); err != nil {
		t.Fatalf("TranslateSRT: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected original text kept, got %q", data)
	}
}

func TestIsTextLine(t *testing.T) {
	cases := map[string]bool{
		"12":                              false,
		"00:00:00,000 --> 00:00:01,000":   false,
		"":                                false,
		"  ":                              false,
		"actual dialogue":                 true,
		"line with numbers 42 in middle":  true,
	}
	for line, want := range cases {
		if got := isTextLine(line); got != want {
			t.Errorf("isTextLine(%q) = %v, want %v", line, got, want)
		}
	}
}
