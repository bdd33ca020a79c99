package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"homeservBack/internal/models"
)

// FileUploader pushes a finished export to remote storage. utils.S3Storage
// satisfies it; a nil uploader keeps exports local only.
type FileUploader interface {
	UploadFile(file []byte, fileName string, folder string) (string, error)
}

// ExportService builds the per-professional summary CSV: every request the
// professional can still act on or is currently working, plus per-status
// totals. Files land under Dir and optionally in S3.
type ExportService struct {
	Requests      RequestsRepository
	Professionals ProfessionalsDirectory
	Notifier      Notifier
	Uploader      FileUploader
	ErrorLog      *log.Logger
	Dir           string
	Loc           *time.Location

	Now func() time.Time
}

func (s *ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ExportSummary writes the CSV and returns its path. The caller decides
// whether to run it inline or in the background.
func (s *ExportService) ExportSummary(ctx context.Context, professionalID int) (string, error) {
	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return "", err
	}
	if !professional.IsApproved {
		return "", models.ErrNotApproved
	}

	pending, err := s.Requests.ListVisiblePending(ctx, professional)
	if err != nil {
		return "", err
	}
	active, err := s.Requests.ListActiveByProfessional(ctx, professionalID)
	if err != nil {
		return "", err
	}

	data, err := s.BuildCSV(append(pending, active...))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("requests_summary_%d_%s_%s.csv",
		professionalID, s.now().In(s.Loc).Format("20060102T150405"), uuid.New().String()[:8])
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if s.Uploader != nil {
		if _, err := s.Uploader.UploadFile(data, name, "exports"); err != nil {
			s.ErrorLog.Printf("export upload %s: %v", name, err)
		}
	}

	if s.Notifier != nil {
		to := Recipient{UserID: professional.ID, Role: models.RoleProfessional, Username: professional.Username, Email: professional.Email}
		if err := s.Notifier.Notify(ctx, to, "Export Ready",
			fmt.Sprintf("Your service requests summary %s is ready for download.", name)); err != nil {
			s.ErrorLog.Printf("export notify professional %d: %v", professional.ID, err)
		}
	}
	return path, nil
}

// BuildCSV renders the request rows followed by a per-status summary block.
func (s *ExportService) BuildCSV(requests []models.ServiceRequest) ([]byte, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Service ID", "Customer ID", "Date of Request", "Remarks", "Status"}); err != nil {
		return nil, err
	}
	totals := map[string]int{}
	for _, req := range requests {
		date := req.DateOfRequest
		if s.Loc != nil {
			date = date.In(s.Loc)
		}
		err := w.Write([]string{
			strconv.Itoa(req.ServiceID),
			strconv.Itoa(req.CustomerID),
			date.Format("2006-01-02 15:04:05"),
			req.Remarks,
			req.ServiceStatus,
		})
		if err != nil {
			return nil, err
		}
		totals[req.ServiceStatus]++
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Status", "Count"}); err != nil {
		return nil, err
	}
	statuses := make([]string, 0, len(totals))
	for status := range totals {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		if err := w.Write([]string{status, strconv.Itoa(totals[status])}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// LatestExport returns the newest export file path for the professional.
func (s *ExportService) LatestExport(professionalID int) (string, error) {
	pattern := filepath.Join(s.Dir, fmt.Sprintf("requests_summary_%d_*.csv", professionalID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", models.ErrNoExport
	}

	latest := ""
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", models.ErrNoExport
	}
	return latest, nil
}
