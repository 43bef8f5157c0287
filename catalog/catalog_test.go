// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/giftquiz/catalog"
	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/testutil"
)

func TestLoadFromDir(t *testing.T) {
	want := testutil.TestCatalog()
	dir := testutil.WriteDatasets(t, want)

	cat, err := catalog.Load(context.Background(), catalog.DirSource(dir))
	require.NoError(t, err)

	assert.Equal(t, want.Questions, cat.Questions)
	assert.Equal(t, want.Gifts, cat.Gifts)
	assert.NoError(t, cat.Validate())
}

func TestLoadAcceptsCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	questions := `[
		// first statement
		{"nr": 1, "intrebare": "I like to organise", "cod_dar": "ad",},
	]`
	gifts := `[
		{"cod_dar": "ad", "nume": "Administration", "descriere": "Orders things well"}, /* only one */
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.QuestionsFile), []byte(questions), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.GiftsFile), []byte(gifts), 0o644))

	cat, err := catalog.Load(context.Background(), catalog.DirSource(dir))
	require.NoError(t, err)

	require.Len(t, cat.Questions, 1)
	assert.Equal(t, models.Question{Number: 1, Text: "I like to organise", GiftCode: "ad"}, cat.Questions[0])
	require.Len(t, cat.Gifts, 1)
	assert.Equal(t, "Administration", cat.Gifts[0].Name)
}

func TestLoadOverHTTP(t *testing.T) {
	dir := testutil.WriteDatasets(t, testutil.TestCatalog())
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	cat, err := catalog.Load(context.Background(), catalog.Source{
		Questions: srv.URL + "/" + catalog.QuestionsFile,
		Gifts:     srv.URL + "/" + catalog.GiftsFile,
		Client:    srv.Client(),
	})
	require.NoError(t, err)
	assert.Len(t, cat.Questions, models.TotalQuestions)
	assert.Len(t, cat.Gifts, models.TotalGifts)
}

func TestLoadFailures(t *testing.T) {
	dir := testutil.WriteDatasets(t, testutil.TestCatalog())

	t.Run("missing file", func(t *testing.T) {
		src := catalog.DirSource(dir)
		src.Gifts = filepath.Join(dir, "missing.json")

		cat, err := catalog.Load(context.Background(), src)
		assert.Error(t, err)
		assert.Nil(t, cat, "no partial catalog")
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		src := catalog.DirSource(dir)
		src.Questions = srv.URL + "/intrebari.json"

		cat, err := catalog.Load(context.Background(), src)
		assert.True(t, errors.Is(err, catalog.ErrStatus), "got %v", err)
		assert.Nil(t, cat)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`[{"nr": `), 0o644))

		src := catalog.DirSource(dir)
		src.Questions = bad

		_, err := catalog.Load(context.Background(), src)
		assert.Error(t, err)
	})

	t.Run("no location", func(t *testing.T) {
		_, err := catalog.Load(context.Background(), catalog.Source{Gifts: filepath.Join(dir, catalog.GiftsFile)})
		assert.Error(t, err)
	})
}

func TestPaging(t *testing.T) {
	cat := testutil.TestCatalog()
	assert.Equal(t, 10, cat.TotalPages())

	testCases := []struct {
		page       int
		start, end int
	}{
		{1, 0, 14},
		{2, 14, 28},
		{9, 112, 126},
		{10, 126, 133},
	}
	for _, tc := range testCases {
		start, end := cat.PageBounds(tc.page)
		assert.Equal(t, tc.start, start, "page %d start", tc.page)
		assert.Equal(t, tc.end, end, "page %d end", tc.page)
	}

	assert.Equal(t, 0, (&catalog.Catalog{}).TotalPages())
}

func TestGiftLookup(t *testing.T) {
	cat := testutil.TestCatalog()

	g, ok := cat.Gift("g07")
	require.True(t, ok)
	assert.Equal(t, "Gift 7", g.Name)

	g, ok = cat.Gift("G07")
	require.True(t, ok, "codes are shown upper-cased")
	assert.Equal(t, "g07", g.Code)

	_, ok = cat.Gift("nope")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	cat := testutil.TestCatalog()
	cat.Questions = cat.Questions[:130]
	cat.Questions[0].GiftCode = "zz"

	err := cat.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 133 questions, got 130")
	assert.Contains(t, err.Error(), `unknown gift "zz"`)
}
