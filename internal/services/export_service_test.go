package services

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"homeservBack/internal/models"
)

func newTestExportService(store *stubStore, dir string) *ExportService {
	return &ExportService{
		Requests:      store,
		Professionals: store,
		ErrorLog:      log.New(io.Discard, "", 0),
		Dir:           dir,
		Loc:           time.UTC,
		Now:           func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestBuildCSV(t *testing.T) {
	store := newStubStore()
	svc := newTestExportService(store, t.TempDir())

	requests := []models.ServiceRequest{
		{ServiceID: 1, CustomerID: 1, DateOfRequest: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), Remarks: "leaky tap", ServiceStatus: "pending"},
		{ServiceID: 2, CustomerID: 2, DateOfRequest: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), Remarks: "", ServiceStatus: "accepted"},
		{ServiceID: 1, CustomerID: 2, DateOfRequest: time.Date(2024, 3, 3, 11, 0, 0, 0, time.UTC), Remarks: "urgent", ServiceStatus: "pending"},
	}
	data, err := svc.BuildCSV(requests)
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "Service ID,Customer ID,Date of Request,Remarks,Status" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,1,2024-03-01 09:30:00,leaky tap,pending" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines (3 rows + separator + summary), got %d", len(lines))
	}
	if lines[5] != "Status,Count" {
		t.Fatalf("expected summary header, got %q", lines[5])
	}
	if lines[6] != "accepted,1" || lines[7] != "pending,2" {
		t.Fatalf("unexpected summary rows: %q, %q", lines[6], lines[7])
	}
}

func TestExportSummaryWritesFile(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	requestSvc := newTestService(store)
	ctx := context.Background()

	created, _ := requestSvc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	requestSvc.Accept(ctx, created.ID, 10)
	requestSvc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	dir := t.TempDir()
	svc := newTestExportService(store, dir)

	path, err := svc.ExportSummary(ctx, 10)
	if err != nil {
		t.Fatalf("ExportSummary: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "Service ID,Customer ID,Date of Request,Remarks,Status") {
		t.Fatalf("export missing header: %q", content)
	}
	if !strings.Contains(content, "pending") || !strings.Contains(content, "accepted") {
		t.Fatalf("export missing request rows: %q", content)
	}

	latest, err := svc.LatestExport(10)
	if err != nil {
		t.Fatalf("LatestExport: %v", err)
	}
	if latest != path {
		t.Fatalf("expected latest export %s, got %s", path, latest)
	}
}

func TestExportSummaryGuards(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestExportService(store, t.TempDir())
	ctx := context.Background()

	if _, err := svc.ExportSummary(ctx, 30); !errors.Is(err, models.ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved, got %v", err)
	}
	if _, err := svc.ExportSummary(ctx, 999); !errors.Is(err, models.ErrProfessionalNotFound) {
		t.Fatalf("expected ErrProfessionalNotFound, got %v", err)
	}
	if _, err := svc.LatestExport(10); !errors.Is(err, models.ErrNoExport) {
		t.Fatalf("expected ErrNoExport, got %v", err)
	}
}
