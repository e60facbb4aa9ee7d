package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"media-scan/internal/logging"
	"media-scan/internal/mediatypes"

	"github.com/gorilla/mux"
)

// GetFile serves a media file addressed by its signed path. The signature
// is checked against the exact path bytes before the path is interpreted
// in any way; the token is the sole access control on the file read.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filePath := vars["path"]
	signature := vars["signature"]

	if !h.signer.Verify(filePath, signature) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !validFilePath(filePath) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	f, err := os.Open(filePath)
	if err != nil {
		logging.Warn("Signed file no longer readable: %s: %v", filePath, err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Error("failed to close file %s: %v", filePath, err)
		}
	}()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	w.Header().Set("Content-Type", mediatypes.GetMimeType(ext))

	http.ServeContent(w, r, filepath.Base(filePath), info.ModTime(), f)
}

// validFilePath reports whether path is a well-formed absolute filesystem
// path. Signatures are issued over absolute paths only, so anything else
// is malformed regardless of what it verifies against.
func validFilePath(path string) bool {
	if path == "" || !filepath.IsAbs(path) {
		return false
	}
	return !strings.ContainsRune(path, 0)
}
