package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"homeservBack/internal/services"
)

type ExportHandler struct {
	Exports  *services.ExportService
	ErrorLog *log.Logger
}

// TriggerExport starts the CSV build in the background and answers 202; the
// professional gets a notification when the file is ready.
func (h *ExportHandler) TriggerExport(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := h.Exports.ExportSummary(ctx, professionalID); err != nil {
			h.ErrorLog.Printf("export for professional %d: %v", professionalID, err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "export started"})
}

// DownloadExport serves the professional's most recent export file.
func (h *ExportHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	path, err := h.Exports.LatestExport(professionalID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}
