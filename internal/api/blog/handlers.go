// internal/api/blog/handlers.go
package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tamarside/rounders/internal/api/apiutil"
	"github.com/tamarside/rounders/internal/api/auth"
	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/templates/layouts"
	"github.com/tamarside/rounders/internal/templates/pages"
)

const blogQueryTimeout = 10 * time.Second

var (
	database  *appdb.DB
	appConfig *config.Config
)

// allowedExtensions maps accepted upload extensions to their content type.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	appConfig = cfg
}

// GET /blog
func HandleBlogPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), blogQueryTimeout)
	defer cancel()

	entries, err := database.Queries.ListEntries(ctx, appConfig.Pagination.MaxPageSize, 0)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list blog entries")
		http.Error(w, "Failed to load blog", http.StatusInternalServerError)
		return
	}

	views := make([]pages.EntryView, 0, len(entries))
	for _, entry := range entries {
		attachments, err := database.Queries.ListAttachmentsByEntry(ctx, entry.ID)
		if err != nil {
			logger.Error().Err(err).Int64("entry_id", entry.ID).Msg("Failed to list attachments")
			http.Error(w, "Failed to load blog", http.StatusInternalServerError)
			return
		}
		views = append(views, pages.EntryView{Entry: entry, Attachments: attachments})
	}

	flash := apiutil.PopFlash(w, r)
	page := layouts.Base("Blog", flash, pages.BlogPage(views, auth.IsAuthenticated(r)))
	apiutil.RenderHTMLComponent(r.Context(), w, page,
		"Failed to render blog page", "Failed to render page")
}

// POST /blog/create
func HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/blog")

	r.Body = http.MaxBytesReader(w, r.Body, appConfig.Uploads.MaxBytes)
	if err := r.ParseMultipartForm(appConfig.Uploads.MaxBytes); err != nil {
		apiutil.RedirectWithFlash(w, r, next, "Upload too large or malformed")
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	if title == "" {
		apiutil.RedirectWithFlash(w, r, next, "A title is required")
		return
	}
	var text *string
	if value := strings.TrimSpace(r.PostFormValue("text")); value != "" {
		text = &value
	}

	var photos []*multipart.FileHeader
	if r.MultipartForm != nil {
		photos = r.MultipartForm.File["photos"]
	}
	for _, header := range photos {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			apiutil.RedirectWithFlash(w, r, next,
				fmt.Sprintf("Unsupported file type %q", ext))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), blogQueryTimeout)
	defer cancel()

	// Rows first, files after the commit. A failed write leaves a broken
	// image on the page rather than an orphaned file on disk.
	var saved []savedUpload
	err := database.RunInTx(ctx, func(tx *appdb.DB) error {
		entry, err := tx.Queries.CreateEntry(ctx, title, text, time.Now().Unix())
		if err != nil {
			return err
		}
		for _, header := range photos {
			ext := strings.ToLower(filepath.Ext(header.Filename))
			name := uuid.New().String() + ext
			if _, err := tx.Queries.CreateAttachment(ctx, &entry.ID, name); err != nil {
				return err
			}
			saved = append(saved, savedUpload{header: header, name: name})
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("title", title).Msg("Failed to create blog entry")
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	for _, upload := range saved {
		if err := storeUpload(upload.header, upload.name); err != nil {
			logger.Error().Err(err).Str("name", upload.name).Msg("Failed to store upload")
			apiutil.RedirectWithFlash(w, r, next, "Posted, but some photos failed to save")
			return
		}
	}

	apiutil.RedirectWithFlash(w, r, next, "Posted")
}

// POST /blog/{id}/delete
func HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	next := apiutil.NextURL(r, "/blog")

	id, err := apiutil.PathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), blogQueryTimeout)
	defer cancel()

	if _, err := database.Queries.GetEntry(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("entry_id", id).Msg("Failed to get entry")
		http.Error(w, "Failed to remove entry", http.StatusInternalServerError)
		return
	}

	attachments, err := database.Queries.ListAttachmentsByEntry(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("entry_id", id).Msg("Failed to list attachments")
		http.Error(w, "Failed to remove entry", http.StatusInternalServerError)
		return
	}

	err = database.RunInTx(ctx, func(tx *appdb.DB) error {
		if err := tx.Queries.DeleteAttachmentsByEntry(ctx, id); err != nil {
			return err
		}
		return tx.Queries.DeleteEntry(ctx, id)
	})
	if err != nil {
		logger.Error().Err(err).Int64("entry_id", id).Msg("Failed to remove entry")
		http.Error(w, "Failed to remove entry", http.StatusInternalServerError)
		return
	}

	// Best effort; a leftover file is harmless once its row is gone.
	for _, a := range attachments {
		removeUpload(a.Name, logger)
	}

	apiutil.RedirectWithFlash(w, r, next, "Entry removed")
}

type savedUpload struct {
	header *multipart.FileHeader
	name   string
}

func storeUpload(header *multipart.FileHeader, name string) error {
	src, err := header.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(appConfig.Uploads.Dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(appConfig.Uploads.Dir, name)
	if err := writeFile(path, src); err != nil {
		return err
	}

	thumbPath := filepath.Join(appConfig.Uploads.Dir, "thumb_"+name)
	return writeThumbnail(path, thumbPath, appConfig.Uploads.ThumbSize)
}
