// Package controllers holds the HTTP handlers. Each handler binds the
// request, delegates to a service, and translates taxonomy errors into the
// response helpers; no business rule lives here.
package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
	"github.com/shashiranjanraj/rasoi/app/services"
	"github.com/shashiranjanraj/rasoi/pkg/logger"
	"github.com/shashiranjanraj/rasoi/pkg/middleware"
	"github.com/shashiranjanraj/rasoi/pkg/response"
	"github.com/shashiranjanraj/rasoi/pkg/storage"
)

const maxMultipartMemory = 32 << 20 // 32 MB

// fail translates a service error into an HTTP response. Anything outside
// the taxonomy is logged and reported as a bare 500; messages and stacks of
// internal faults never reach the client.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case services.KindValidation:
			response.Error(w, http.StatusBadRequest, svcErr.Message)
		case services.KindUnauthenticated:
			response.Unauthorized(w, svcErr.Message)
		case services.KindForbidden:
			response.Forbidden(w, svcErr.Message)
		case services.KindNotFound:
			response.NotFound(w, svcErr.Message)
		default:
			response.Internal(w)
		}
		return
	}
	logger.WithCtx(r.Context()).Error("request failed", "error", err)
	response.Internal(w)
}

// caller builds the policy caller from the authenticated principal.
func caller(r *http.Request) policy.Caller {
	p, _ := middleware.PrincipalFromCtx(r.Context())
	return policy.Caller{ID: p.ID, Role: models.Role(p.Role)}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// saveUpload stores the optional file under the named form field and returns
// its storage path. A missing file is not an error; the returned path is
// empty. Files are stored as <unix-nano>-<sanitized original name>.
func saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return storeFile(file, header.Filename)
}

func storeFile(file io.Reader, original string) (string, error) {
	name := unsafeFilenameChars.ReplaceAllString(filepath.Base(original), "-")
	name = strings.TrimLeft(name, ".-")
	if name == "" {
		name = "upload"
	}
	path := fmt.Sprintf("%d-%s", time.Now().UnixNano(), name)
	if err := storage.PutStream(path, file); err != nil {
		return "", err
	}
	return path, nil
}
