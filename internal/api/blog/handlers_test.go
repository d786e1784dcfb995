package blog

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/testutil"
)

func setup(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := &config.Config{
		Pagination: config.PaginationConfig{DefaultPageSize: 30, MaxPageSize: 100},
		Uploads: config.UploadsConfig{
			Dir:       t.TempDir(),
			MaxBytes:  1 << 20,
			ThumbSize: 32,
		},
	}
	InitHandlers(database, cfg)
	return database
}

func blogMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /blog/create", HandleCreateEntry)
	mux.HandleFunc("POST /blog/{id}/delete", HandleDeleteEntry)
	return mux
}

// multipartBody builds a blog-create form with an optional PNG photo.
func multipartBody(t *testing.T, title, text, filename string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("title", title); err != nil {
		t.Fatalf("write title: %v", err)
	}
	if err := writer.WriteField("text", text); err != nil {
		t.Fatalf("write text: %v", err)
	}

	if filename != "" {
		part, err := writer.CreateFormFile("photos", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		if err := png.Encode(part, img); err != nil {
			t.Fatalf("encode png: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestCreateEntryWithPhoto(t *testing.T) {
	database := setup(t)
	mux := blogMux()
	ctx := context.Background()

	body, contentType := multipartBody(t, "Opening day", "First session.", "team.png")
	r := httptest.NewRequest("POST", "/blog/create", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}

	entries, err := database.Queries.ListEntries(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Opening day" {
		t.Fatalf("entries = %+v", entries)
	}

	attachments, err := database.Queries.ListAttachmentsByEntry(ctx, entries[0].ID)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(attachments) != 1 {
		t.Fatalf("got %d attachments, want 1", len(attachments))
	}
	name := attachments[0].Name
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("stored name %q should keep the extension", name)
	}
	if name == "team.png" {
		t.Error("stored name should not be the client-chosen filename")
	}

	// Both the original and its thumbnail exist, and the thumbnail is scaled.
	if _, err := os.Stat(filepath.Join(appConfig.Uploads.Dir, name)); err != nil {
		t.Errorf("original missing: %v", err)
	}
	thumbPath := filepath.Join(appConfig.Uploads.Dir, "thumb_"+name)
	f, err := os.Open(thumbPath)
	if err != nil {
		t.Fatalf("thumbnail missing: %v", err)
	}
	defer f.Close()
	thumb, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if dx := thumb.Bounds().Dx(); dx != 32 {
		t.Errorf("thumbnail width = %d, want 32", dx)
	}
}

func TestCreateEntryRejectsBadUploads(t *testing.T) {
	database := setup(t)
	mux := blogMux()
	ctx := context.Background()

	// Disallowed extension.
	body, contentType := multipartBody(t, "Bad", "", "script.exe")
	r := httptest.NewRequest("POST", "/blog/create", body)
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303 redirect", w.Code)
	}

	// Missing title.
	body, contentType = multipartBody(t, "", "text only", "")
	r = httptest.NewRequest("POST", "/blog/create", body)
	r.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303 redirect", w.Code)
	}

	entries, err := database.Queries.ListEntries(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected submissions created entries: %+v", entries)
	}
}

func TestDeleteEntryRemovesFiles(t *testing.T) {
	database := setup(t)
	mux := blogMux()
	ctx := context.Background()

	body, contentType := multipartBody(t, "Doomed", "", "photo.png")
	r := httptest.NewRequest("POST", "/blog/create", body)
	r.Header.Set("Content-Type", contentType)
	mux.ServeHTTP(httptest.NewRecorder(), r)

	entries, err := database.Queries.ListEntries(ctx, 10, 0)
	if err != nil || len(entries) != 1 {
		t.Fatalf("seed entry: %v (%d entries)", err, len(entries))
	}
	attachments, _ := database.Queries.ListAttachmentsByEntry(ctx, entries[0].ID)
	if len(attachments) != 1 {
		t.Fatalf("seed attachment missing")
	}
	name := attachments[0].Name

	form := url.Values{}
	dr := httptest.NewRequest("POST", "/blog/"+strconv.FormatInt(entries[0].ID, 10)+"/delete",
		strings.NewReader(form.Encode()))
	dr.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, dr)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d, want 303", w.Code)
	}

	if entries, _ := database.Queries.ListEntries(ctx, 10, 0); len(entries) != 0 {
		t.Errorf("entry survived delete")
	}
	for _, file := range []string{name, "thumb_" + name} {
		if _, err := os.Stat(filepath.Join(appConfig.Uploads.Dir, file)); !os.IsNotExist(err) {
			t.Errorf("file %s survived delete (err=%v)", file, err)
		}
	}

	// Deleting an unknown entry is a 404.
	dr = httptest.NewRequest("POST", "/blog/999/delete", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, dr)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown entry status = %d, want 404", w.Code)
	}
}
