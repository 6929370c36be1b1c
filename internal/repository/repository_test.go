package repository_test

import (
	"context"
	"errors"
	"testing"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/internal/testutil"
)

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Email: "a@x.com", Password: "h", Role: "estudiante"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, &model.User{Email: "a@x.com", Password: "h", Role: "estudiante"})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if n := testutil.Count(t, db, &model.User{}); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestUserRepositoryFindAllNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if err := repo.Create(ctx, &model.User{Email: email, Password: "h", Role: "estudiante"}); err != nil {
			t.Fatal(err)
		}
	}
	users, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(users) != 3 || users[0].Email != "c@x.com" || users[2].Email != "a@x.com" {
		t.Fatalf("unexpected order: %+v", users)
	}
}

func TestResourceRepositoryFindByIDNotFound(t *testing.T) {
	repo := repository.NewResourceRepository(testutil.NewDB(t))
	if _, err := repo.FindByID(context.Background(), 999); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTxRollbackDiscardsWrites(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	txr := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)
	logs := repository.NewLogRepository(db)

	tx, err := txr.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	u := &model.User{Email: "a@x.com", Password: "h", Role: "estudiante"}
	if err := users.WithTx(tx).Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := logs.WithTx(tx).Create(ctx, &model.LogEntry{Entity: "user", EntityID: u.ID, Action: "USER_CREATED"}); err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if n := testutil.Count(t, db, &model.User{}); n != 0 {
		t.Fatalf("expected no users after rollback, got %d", n)
	}
	if n := testutil.Count(t, db, &model.LogEntry{}); n != 0 {
		t.Fatalf("expected no log entries after rollback, got %d", n)
	}
}

func TestTxRollbackAfterCommitIsNoop(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tx, err := repository.NewTransactor(db).Begin(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := repository.NewCategoryRepository(db).WithTx(tx).Create(ctx, &model.Category{Name: "Docs"}); err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback after commit should be a no-op, got %v", err)
	}
	if err := tx.Commit(); !errors.Is(err, repository.ErrTxDone) {
		t.Fatalf("second commit: expected ErrTxDone, got %v", err)
	}
	if n := testutil.Count(t, db, &model.Category{}); n != 1 {
		t.Fatalf("expected committed category, got %d", n)
	}
}

func TestCategoryRepositoryExists(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewCategoryRepository(db)
	c := testutil.SeedCategory(t, db, "Guías")
	ctx := context.Background()

	ok, err := repo.Exists(ctx, c.ID)
	if err != nil || !ok {
		t.Fatalf("Exists(%d) = %v, %v", c.ID, ok, err)
	}
	for _, id := range []int64{0, -1, c.ID + 100} {
		ok, err := repo.Exists(ctx, id)
		if err != nil || ok {
			t.Fatalf("Exists(%d) = %v, %v", id, ok, err)
		}
	}
}

func createResource(t *testing.T, repo repository.ResourceRepository, name string, categoryID *int64) *model.Resource {
	t.Helper()
	r := &model.Resource{
		OriginalName: name,
		StoredName:   "stored_" + name,
		MimeType:     "text/plain",
		SizeBytes:    3,
		StoragePath:  "stored_" + name,
		CategoryID:   categoryID,
	}
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("create resource: %v", err)
	}
	return r
}

func TestResourceRepositoryListWithCategory(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewResourceRepository(db)
	c := testutil.SeedCategory(t, db, "Apuntes")

	first := createResource(t, repo, "a.txt", &c.ID)
	second := createResource(t, repo, "b.txt", nil)
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("id and created_at must be filled in: %+v", first)
	}

	items, err := repo.ListWithCategory(context.Background())
	if err != nil {
		t.Fatalf("ListWithCategory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[0].CategoryID != nil || items[0].CategoryName != nil {
		t.Fatalf("newest item should come first without category: %+v", items[0])
	}
	if items[1].CategoryName == nil || *items[1].CategoryName != "Apuntes" {
		t.Fatalf("expected joined category name: %+v", items[1])
	}

	item, err := repo.FindListItemByID(context.Background(), first.ID)
	if err != nil || item.OriginalName != "a.txt" {
		t.Fatalf("FindListItemByID = %+v, %v", item, err)
	}
	if _, err := repo.FindListItemByID(context.Background(), 12345); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResourceRepositorySearchByName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewResourceRepository(db)
	createResource(t, repo, "Report-2024.pdf", nil)
	createResource(t, repo, "notes.txt", nil)
	createResource(t, repo, "100%_done.txt", nil)
	ctx := context.Background()

	items, err := repo.SearchByName(ctx, "report", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(items) != 1 || items[0].OriginalName != "Report-2024.pdf" {
		t.Fatalf("unexpected result %+v", items)
	}

	items, err = repo.SearchByName(ctx, "%", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].OriginalName != "100%_done.txt" {
		t.Fatalf("wildcards must be matched literally: %+v", items)
	}
}

func TestResourceRepositoryFindListItemsByIDsKeepsOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewResourceRepository(db)
	a := createResource(t, repo, "a.txt", nil)
	b := createResource(t, repo, "b.txt", nil)

	items, err := repo.FindListItemsByIDs(context.Background(), []int64{b.ID, 999, a.ID})
	if err != nil {
		t.Fatalf("FindListItemsByIDs: %v", err)
	}
	if len(items) != 2 || items[0].ID != b.ID || items[1].ID != a.ID {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestLogRepositoryFindByEntity(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewLogRepository(db)
	ctx := context.Background()
	if err := repo.Create(ctx, &model.LogEntry{Entity: "resource", EntityID: 7, Action: "RESOURCE_UPLOADED"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, &model.LogEntry{Entity: "user", EntityID: 7, Action: "USER_CREATED"}); err != nil {
		t.Fatal(err)
	}
	entries, err := repo.FindByEntity(ctx, "resource", 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Action != "RESOURCE_UPLOADED" || entries[0].CreatedAt.IsZero() {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
