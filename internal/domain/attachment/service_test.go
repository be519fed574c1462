package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"trip-planner-go/pkg/logger"
)

type fakeAttachmentRepo struct {
	attachments map[string]*Attachment
	createErr   error
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[string]*Attachment)}
}

func (r *fakeAttachmentRepo) ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]Attachment, error) {
	result := make([]Attachment, 0)
	for _, item := range r.attachments {
		owner := map[EntityType]*string{
			EntityItinerary:     item.ItineraryID,
			EntityStop:          item.StopID,
			EntityActivity:      item.ActivityID,
			EntityAccommodation: item.AccommodationID,
			EntityNote:          item.NoteID,
		}[entityType]
		if owner != nil && *owner == entityID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeAttachmentRepo) GetByID(ctx context.Context, id string) (*Attachment, error) {
	item, ok := r.attachments[id]
	if !ok {
		return nil, ErrAttachmentNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, item *Attachment) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *item
	r.attachments[item.ID] = &copied
	return nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.attachments[id]; !ok {
		return false, nil
	}
	delete(r.attachments, id)
	return true, nil
}

type fakeObjectStore struct {
	objects   map[string][]byte
	removeErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Save(ctx context.Context, objectPath string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.objects[objectPath] = data
	return "http://files.local/attachments/" + objectPath, nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, objectPath string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.objects, objectPath)
	return nil
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func uploadInput() UploadInput {
	return UploadInput{
		UserID:      "user-1",
		EntityType:  EntityStop,
		EntityID:    "stop-1",
		Filename:    "map.png",
		ContentType: "image/png",
		Size:        1024,
	}
}

func TestUploadStoresObjectAndRow(t *testing.T) {
	repo := newFakeAttachmentRepo()
	store := newFakeObjectStore()
	svc := NewService(repo, store, nil, testLogger(), 0)

	result, err := svc.Upload(context.Background(), uploadInput(), strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Type != FileTypeImage {
		t.Fatalf("expected image type, got %q", result.Type)
	}
	if result.StopID == nil || *result.StopID != "stop-1" {
		t.Fatalf("expected stop owner, got %+v", result)
	}
	if result.ItineraryID != nil || result.ActivityID != nil || result.AccommodationID != nil || result.NoteID != nil {
		t.Fatalf("expected exactly one owner key set, got %+v", result)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.objects))
	}
	for objectPath := range store.objects {
		if !strings.HasPrefix(objectPath, "user-1/stop/stop-1/") {
			t.Fatalf("unexpected object path %q", objectPath)
		}
		if !strings.HasSuffix(objectPath, ".png") {
			t.Fatalf("expected original extension kept, got %q", objectPath)
		}
	}
}

func TestUploadRemovesObjectWhenInsertFails(t *testing.T) {
	repo := newFakeAttachmentRepo()
	repo.createErr = errors.New("insert rejected")
	store := newFakeObjectStore()
	svc := NewService(repo, store, nil, testLogger(), 0)

	_, err := svc.Upload(context.Background(), uploadInput(), strings.NewReader("png-bytes"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected compensating remove, %d objects left", len(store.objects))
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewService(newFakeAttachmentRepo(), newFakeObjectStore(), nil, testLogger(), 0)

	input := uploadInput()
	input.Size = DefaultMaxFileSize + 1
	_, err := svc.Upload(context.Background(), input, strings.NewReader("x"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestValidateFileReportsOffendingSize(t *testing.T) {
	err := ValidateFile(DefaultMaxFileSize+7, DefaultMaxFileSize, "image/png")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	want := fmt.Sprintf("%d bytes", int64(DefaultMaxFileSize+7))
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to name the file size, got %q", err.Error())
	}
}

func TestUploadRejectsDisallowedContentType(t *testing.T) {
	store := newFakeObjectStore()
	svc := NewService(newFakeAttachmentRepo(), store, nil, testLogger(), 0)

	input := uploadInput()
	input.Filename = "tool.exe"
	input.ContentType = "application/x-msdownload"
	_, err := svc.Upload(context.Background(), input, strings.NewReader("x"))
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected no bytes stored on validation failure")
	}
}

func TestUploadRejectsUnknownEntity(t *testing.T) {
	svc := NewService(newFakeAttachmentRepo(), newFakeObjectStore(), nil, testLogger(), 0)

	input := uploadInput()
	input.EntityType = EntityType("expense")
	_, err := svc.Upload(context.Background(), input, strings.NewReader("x"))
	if !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}
}

func TestDeleteRemovesObjectThenRow(t *testing.T) {
	repo := newFakeAttachmentRepo()
	store := newFakeObjectStore()
	store.objects["user-1/stop/stop-1/abc.png"] = []byte("png-bytes")
	repo.attachments["att-1"] = &Attachment{
		ID:     "att-1",
		UserID: "user-1",
		URL:    "http://files.local/attachments/user-1/stop/stop-1/abc.png",
	}

	svc := NewService(repo, store, nil, testLogger(), 0)
	if err := svc.Delete(context.Background(), "att-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected object removed")
	}
	if len(repo.attachments) != 0 {
		t.Fatalf("expected row removed")
	}
}

func TestDeleteKeepsRowWhenStorageFails(t *testing.T) {
	repo := newFakeAttachmentRepo()
	store := newFakeObjectStore()
	store.removeErr = errors.New("bucket unavailable")
	repo.attachments["att-1"] = &Attachment{
		ID:     "att-1",
		UserID: "user-1",
		URL:    "http://files.local/attachments/user-1/stop/stop-1/abc.png",
	}

	svc := NewService(repo, store, nil, testLogger(), 0)
	if err := svc.Delete(context.Background(), "att-1"); err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := repo.attachments["att-1"]; !ok {
		t.Fatalf("expected row kept when object removal fails")
	}
}

func TestPathFromURL(t *testing.T) {
	got, err := PathFromURL("http://files.local/attachments/user-1/stop/stop-1/abc.png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "user-1/stop/stop-1/abc.png" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestFileTypeForPDFExtensionFallback(t *testing.T) {
	if got := FileTypeFor("application/octet-stream", "itinerary.PDF"); got != FileTypePDF {
		t.Fatalf("expected pdf from extension, got %q", got)
	}
	if got := FileTypeFor("text/plain", "notes.txt"); got != FileTypeFile {
		t.Fatalf("expected generic file, got %q", got)
	}
}
