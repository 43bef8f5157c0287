// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/cliparse"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/storage"
)

// TestDeviceSalt signs device cookies in tests
const TestDeviceSalt = "test-device-salt"

// GiftCode returns the fixture code of gift i (0-based): "g01".."g19".
func GiftCode(i int) string {
	return fmt.Sprintf("g%02d", i+1)
}

// TestCatalog returns a full-size catalog: 19 gifts, 133 questions, with
// question i owned by gift i%19.
func TestCatalog() *catalog.Catalog {
	cat := &catalog.Catalog{}
	for i := 0; i < models.TotalGifts; i++ {
		cat.Gifts = append(cat.Gifts, models.Gift{
			Code:        GiftCode(i),
			Name:        fmt.Sprintf("Gift %d", i+1),
			Description: fmt.Sprintf("Description of gift %d", i+1),
		})
	}
	for i := 0; i < models.TotalQuestions; i++ {
		cat.Questions = append(cat.Questions, models.Question{
			Number:   i + 1,
			Text:     fmt.Sprintf("Statement %d", i+1),
			GiftCode: GiftCode(i % models.TotalGifts),
		})
	}
	return cat
}

// WriteDatasets writes the catalog as dataset files into a temp directory
// and returns the directory.
func WriteDatasets(t *testing.T, cat *catalog.Catalog) string {
	t.Helper()

	dir := t.TempDir()
	write := func(name string, v any) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			t.Fatalf("Failed to encode %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	write(catalog.QuestionsFile, cat.Questions)
	write(catalog.GiftsFile, cat.Gifts)
	return dir
}

// SetupTestStore returns an empty in-memory store
func SetupTestStore(t *testing.T) *storage.MemoryStore {
	t.Helper()

	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return store
}

// SetupSQLiteStore returns a SQL store on a fresh sqlite database with the
// full schema applied
func SetupSQLiteStore(t *testing.T) *storage.SQLStore {
	t.Helper()

	store, err := storage.OpenSQL(storage.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		StorageType:  storage.TypeMemory,
		DataDir:      "testdata",
		DeviceSalt:   TestDeviceSalt,
		PersistDelay: 0,
		LogLevel:     "error",
		LogFormat:    "text",
	}
}

// AnswersWith returns a full answer array with value at every index in idx.
func AnswersWith(value models.Answer, idx ...int) models.Answers {
	answers := models.NewAnswers(models.TotalQuestions)
	for _, i := range idx {
		answers[i] = value
	}
	return answers
}

// GiftIndexes returns the question indexes owned by fixture gift g (0-based).
func GiftIndexes(g int) []int {
	var idx []int
	for i := g; i < models.TotalQuestions; i += models.TotalGifts {
		idx = append(idx, i)
	}
	return idx
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
