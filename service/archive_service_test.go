package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscriptArchive_MissingConfig(t *testing.T) {
	_, err := NewTranscriptArchive(ArchiveConfig{Region: "us-east-1", Bucket: "transcripts"}, nil)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"SUPABASE_S3_ENDPOINT", "SUPABASE_ACCESS_KEY", "SUPABASE_SECRET_KEY"}, cfgErr.Missing)
}

func TestTranscriptArchive_Archive(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotBody = r.Method, r.URL.Path, string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	archive, err := NewTranscriptArchive(ArchiveConfig{
		Region:     "us-east-1",
		Endpoint:   srv.URL,
		AccessKey:  "access",
		SecretKey:  "secret",
		Bucket:     "meetings",
		DisableSSL: true,
	}, nil)
	require.NoError(t, err)
	archive.now = func() time.Time { return FixedTime }

	key, err := archive.Archive(context.Background(), "Alice: I'll send the deck.")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "transcripts/20250305T000000Z-"))
	assert.True(t, strings.HasSuffix(key, ".txt"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/meetings/"+key, gotPath)
	assert.Equal(t, "Alice: I'll send the deck.", gotBody)
}

func TestTranscriptArchive_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<Error><Code>AccessDenied</Code></Error>`)
	}))
	defer srv.Close()

	archive, err := NewTranscriptArchive(ArchiveConfig{
		Region: "us-east-1", Endpoint: srv.URL, AccessKey: "a", SecretKey: "s", Bucket: "b", DisableSSL: true,
	}, nil)
	require.NoError(t, err)

	_, err = archive.Archive(context.Background(), "transcript")
	assert.Error(t, err)
}
