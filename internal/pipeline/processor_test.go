package pipeline

import (
	"context"
	"errors"
	"testing"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/internal/testutil"
	"resource-hub-go/pkg/events"
)

type recordingIndexer struct {
	docs []model.ResourceDocument
	err  error
}

func (r *recordingIndexer) IndexResource(_ context.Context, doc model.ResourceDocument) error {
	if r.err != nil {
		return r.err
	}
	r.docs = append(r.docs, doc)
	return nil
}

func TestProcessorIndexesUploadedResource(t *testing.T) {
	db := testutil.NewDB(t)
	c := testutil.SeedCategory(t, db, "Apuntes")
	repo := repository.NewResourceRepository(db)
	res := &model.Resource{
		OriginalName: "tema1.pdf", StoredName: "s1", StoragePath: "s1",
		MimeType: "application/pdf", SizeBytes: 10, CategoryID: &c.ID,
	}
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatal(err)
	}

	idx := &recordingIndexer{}
	p := NewProcessor(repo, idx)
	if err := p.Publish(context.Background(), events.New(events.TypeResourceUploaded, model.EntityResource, res.ID)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(idx.docs) != 1 {
		t.Fatalf("expected 1 indexed doc, got %d", len(idx.docs))
	}
	doc := idx.docs[0]
	if doc.ResourceID != res.ID || doc.OriginalName != "tema1.pdf" || doc.CategoryName != "Apuntes" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestProcessorIgnoresOtherEvents(t *testing.T) {
	db := testutil.NewDB(t)
	idx := &recordingIndexer{}
	p := NewProcessor(repository.NewResourceRepository(db), idx)
	if err := p.Handle(context.Background(), events.New(events.TypeUserCreated, model.EntityUser, 1)); err != nil {
		t.Fatal(err)
	}
	if len(idx.docs) != 0 {
		t.Fatal("user events must not be indexed")
	}
}

func TestProcessorSkipsMissingResource(t *testing.T) {
	db := testutil.NewDB(t)
	p := NewProcessor(repository.NewResourceRepository(db), &recordingIndexer{})
	if err := p.Handle(context.Background(), events.New(events.TypeResourceUploaded, model.EntityResource, 77)); err != nil {
		t.Fatalf("missing resources are skipped, got %v", err)
	}
}

func TestProcessorReportsIndexFailure(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewResourceRepository(db)
	res := &model.Resource{OriginalName: "a", StoredName: "a", StoragePath: "a", MimeType: "text/plain"}
	if err := repo.Create(context.Background(), res); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("es down")
	p := NewProcessor(repo, &recordingIndexer{err: boom})
	if err := p.Handle(context.Background(), events.New(events.TypeResourceUploaded, model.EntityResource, res.ID)); !errors.Is(err, boom) {
		t.Fatalf("expected index error, got %v", err)
	}
}
