package telegram_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/telegram"
)

func writeScratchFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "order-7.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook bytes"), 0o644))
	return path
}

func TestSendDocument(t *testing.T) {
	var gotPath, gotChatID, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		gotChatID = r.FormValue("chat_id")
		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		file.Close()
		gotFilename = header.Filename
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := telegram.NewClient("test-token", "-100500", 5*time.Second)
	client.BaseURL = server.URL

	ok, err := client.SendDocument(context.Background(), writeScratchFile(t))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/bottest-token/sendDocument", gotPath)
	assert.Equal(t, "-100500", gotChatID)
	assert.Equal(t, "order-7.xlsx", gotFilename)
}

func TestSendDocumentNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := telegram.NewClient("test-token", "-100500", 5*time.Second)
	client.BaseURL = server.URL

	ok, err := client.SendDocument(context.Background(), writeScratchFile(t))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendDocumentMissingFile(t *testing.T) {
	client := telegram.NewClient("test-token", "-100500", 5*time.Second)
	ok, err := client.SendDocument(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	assert.Error(t, err)
	assert.False(t, ok)
}
