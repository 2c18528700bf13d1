package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-studio/resume/model"
)

func TestPGRepoCreateStoresDocumentJSON(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	res := Resume{
		ID:        "resume-1",
		UserID:    "user-1",
		Title:     "Backend Engineer",
		Template:  "modern",
		Font:      "default",
		Document:  model.SampleDocument(),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	doc, err := json.Marshal(res.Document)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			res.ID,
			res.UserID,
			res.Title,
			res.Template,
			res.Font,
			doc,
			res.CreatedAt,
			res.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDRoundTripsDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	want := model.SampleDocument()
	doc, _ := json.Marshal(want)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "template", "font", "document", "created_at", "updated_at",
	}).AddRow("resume-1", "user-1", "Backend Engineer", "modern", "default", doc, now, now)

	mock.ExpectQuery("SELECT id, user_id, title, template, font, document, created_at, updated_at").
		WithArgs("user-1", "resume-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "user-1", "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Document.PersonalInfo.FullName != want.PersonalInfo.FullName {
		t.Fatalf("document did not round-trip: %q", got.Document.PersonalInfo.FullName)
	}
	if len(got.Document.Experience) != len(want.Experience) {
		t.Fatalf("experience count = %d, want %d", len(got.Document.Experience), len(want.Experience))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, title, template, font, document, created_at, updated_at").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "template", "font", "document", "created_at", "updated_at",
		}))

	_, err = repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateReportsMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	res := Resume{
		ID:        "resume-1",
		UserID:    "user-1",
		Document:  model.SampleDocument(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), res); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("user-1", "resume-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "user-1", "resume-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
