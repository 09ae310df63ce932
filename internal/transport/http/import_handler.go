package http

import (
	"net/http"
	"strings"
)

// maxUploadMemory bounds how much of the multipart body stays in memory;
// larger files spill to disk.
const maxUploadMemory = 8 << 20

// handleImport accepts a .docx upload and returns the extracted draft quiz.
// Structural ambiguity comes back as warnings inside the draft; only an
// unreadable or empty document fails the request.
func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid multipart upload"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "missing file field"})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".docx") {
		a.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "only .docx files are supported"})
		return
	}

	draft, err := a.extractor.Extract(file)
	if err != nil {
		a.logger.Info("import failed", "file", header.Filename, "error", err)
		a.writeError(w, err)
		return
	}

	a.logger.Info("document imported",
		"file", header.Filename,
		"questions", len(draft.Questions),
		"warnings", len(draft.Warnings))
	a.writeJSON(w, http.StatusOK, draft)
}
