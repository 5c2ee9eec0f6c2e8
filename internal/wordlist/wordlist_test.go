package wordlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDropsTrailingBlankLine(t *testing.T) {
	words, err := Parse(strings.NewReader("hi\r\nthere\n\ndude\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := []string{"hi", "there", "dude"}
	if len(words) != len(expected) {
		t.Fatalf("expected %d words, got %d (%v)", len(expected), len(words), words)
	}
	for i, word := range expected {
		if words[i] != word {
			t.Fatalf("expected %q at index %d, got %q", word, i, words[i])
		}
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(strings.NewReader("\n\n")); err == nil {
		t.Fatalf("expected error for empty word list")
	}
}

func TestLoadWordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	words, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(words) != 2 || words[1] != "beta" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsMissingFile(t *testing.T) {
	if _, err := LoadWords(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFetchWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("hi\nthere\ndude\n"))
	}))
	t.Cleanup(srv.Close)

	words, err := Load(context.Background(), srv.URL+"/scrabble.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(words) != 3 || words[0] != "hi" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestFetchWordsRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	if _, err := FetchWords(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestFetchWordsRejectsNonText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("hi\n"))
	}))
	t.Cleanup(srv.Close)

	_, err := FetchWords(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "content type") {
		t.Fatalf("expected content type error, got %v", err)
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/words.txt") || !IsURL("http://x") {
		t.Fatalf("expected http(s) sources to be URLs")
	}
	if IsURL("/usr/share/dict/words") || IsURL("words.txt") {
		t.Fatalf("expected paths not to be URLs")
	}
}

func TestLowercase(t *testing.T) {
	in := []string{"Hi", "THERE"}
	out := Lowercase(in)
	if out[0] != "hi" || out[1] != "there" {
		t.Fatalf("unexpected lowercase result: %v", out)
	}
	if in[0] != "Hi" {
		t.Fatalf("input was modified")
	}
}
