package stop

import (
	"context"
	"errors"
	"testing"
)

// fakeStopRepo backs the service with in-memory stops plus the slices of
// the accommodations and attachments collections the synchronization
// rules touch. It records write order for the cascade tests.
type fakeStopRepo struct {
	stops          map[string]*Stop
	accommodations map[string]*string // accommodation id -> stop_id
	attachments    map[string]string  // attachment id -> stop_id
	ops            []string
}

func newFakeStopRepo() *fakeStopRepo {
	return &fakeStopRepo{
		stops:          make(map[string]*Stop),
		accommodations: make(map[string]*string),
		attachments:    make(map[string]string),
	}
}

func (r *fakeStopRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeStopRepo) ListByItinerary(ctx context.Context, itineraryID string) ([]Stop, error) {
	result := make([]Stop, 0)
	for _, item := range r.stops {
		if item.ItineraryID == itineraryID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeStopRepo) GetByID(ctx context.Context, id string) (*Stop, error) {
	item, ok := r.stops[id]
	if !ok {
		return nil, ErrStopNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeStopRepo) Create(ctx context.Context, item *Stop) error {
	copied := *item
	r.stops[item.ID] = &copied
	return nil
}

func (r *fakeStopRepo) Update(ctx context.Context, item *Stop) error {
	if _, ok := r.stops[item.ID]; !ok {
		return ErrStopNotFound
	}
	copied := *item
	r.stops[item.ID] = &copied
	r.ops = append(r.ops, "update-stop")
	return nil
}

func (r *fakeStopRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.stops[id]; !ok {
		return false, nil
	}
	delete(r.stops, id)
	r.ops = append(r.ops, "delete-stop")
	return true, nil
}

func (r *fakeStopRepo) CountChildren(ctx context.Context, stopID string) (int64, error) {
	var count int64
	for _, item := range r.stops {
		if item.ParentStopID != nil && *item.ParentStopID == stopID {
			count++
		}
	}
	return count, nil
}

func (r *fakeStopRepo) DeleteChildren(ctx context.Context, parentStopID string) error {
	for id, item := range r.stops {
		if item.ParentStopID != nil && *item.ParentStopID == parentStopID {
			delete(r.stops, id)
		}
	}
	r.ops = append(r.ops, "delete-children")
	return nil
}

func (r *fakeStopRepo) DeleteAttachmentsByStop(ctx context.Context, stopID string) error {
	for id, owner := range r.attachments {
		if owner == stopID {
			delete(r.attachments, id)
		}
	}
	r.ops = append(r.ops, "delete-attachments")
	return nil
}

func (r *fakeStopRepo) SetAccommodationStop(ctx context.Context, accommodationID string, stopID *string) (bool, error) {
	if _, ok := r.accommodations[accommodationID]; !ok {
		return false, nil
	}
	r.accommodations[accommodationID] = stopID
	r.ops = append(r.ops, "set-accommodation-stop")
	return true, nil
}

func (r *fakeStopRepo) ClearAccommodationsPointingAt(ctx context.Context, stopID string) error {
	for id, owner := range r.accommodations {
		if owner != nil && *owner == stopID {
			r.accommodations[id] = nil
		}
	}
	r.ops = append(r.ops, "clear-accommodations")
	return nil
}

func (r *fakeStopRepo) ClearStopsPointingAt(ctx context.Context, accommodationID, excludeStopID string) error {
	for id, item := range r.stops {
		if id == excludeStopID {
			continue
		}
		if item.AccommodationID != nil && *item.AccommodationID == accommodationID {
			item.AccommodationID = nil
		}
	}
	return nil
}

func strptr(value string) *string { return &value }

func seedStop(repo *fakeStopRepo, id, itineraryID string, parentID *string) *Stop {
	item := &Stop{ID: id, ItineraryID: itineraryID, ParentStopID: parentID, Title: id, LocationName: strptr("somewhere")}
	repo.stops[id] = item
	return item
}

func TestCreateStopRequiresTitleAndLocation(t *testing.T) {
	svc := NewService(newFakeStopRepo(), nil)

	_, err := svc.Create(context.Background(), CreateInput{ItineraryID: "itin-1", LocationName: strptr("Tokyo")})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing title, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{ItineraryID: "itin-1", Title: "Tokyo"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing location, got %v", err)
	}
}

func TestCreateChildStop(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "root", "itin-1", nil)

	svc := NewService(repo, nil)
	result, err := svc.Create(context.Background(), CreateInput{
		ItineraryID:  "itin-1",
		ParentStopID: strptr("root"),
		Title:        "Day trip",
		LocationName: strptr("Nikko"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.ParentStopID == nil || *result.ParentStopID != "root" {
		t.Fatalf("expected parent root, got %v", result.ParentStopID)
	}
}

func TestCreateGrandchildStopRejected(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "root", "itin-1", nil)
	seedStop(repo, "child", "itin-1", strptr("root"))

	svc := NewService(repo, nil)
	_, err := svc.Create(context.Background(), CreateInput{
		ItineraryID:  "itin-1",
		ParentStopID: strptr("child"),
		Title:        "Too deep",
		LocationName: strptr("Nowhere"),
	})
	if !errors.Is(err, ErrNestedChildStop) {
		t.Fatalf("expected ErrNestedChildStop, got %v", err)
	}
}

func TestCreateChildAcrossItinerariesRejected(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "root", "itin-1", nil)

	svc := NewService(repo, nil)
	_, err := svc.Create(context.Background(), CreateInput{
		ItineraryID:  "itin-2",
		ParentStopID: strptr("root"),
		Title:        "Elsewhere",
		LocationName: strptr("Kyoto"),
	})
	if !errors.Is(err, ErrParentOtherItinerary) {
		t.Fatalf("expected ErrParentOtherItinerary, got %v", err)
	}
}

func TestUpdateStopWithChildrenCannotBecomeChild(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "root-a", "itin-1", nil)
	seedStop(repo, "root-b", "itin-1", nil)
	seedStop(repo, "child", "itin-1", strptr("root-a"))

	svc := NewService(repo, nil)
	_, err := svc.Update(context.Background(), UpdateInput{
		ID:           "root-a",
		ParentStopID: OptionalNullableString{Set: true, Value: strptr("root-b")},
	})
	if !errors.Is(err, ErrParentHasChildren) {
		t.Fatalf("expected ErrParentHasChildren, got %v", err)
	}
}

func TestUpdateStopLinksAccommodation(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "tokyo", "itin-1", nil)
	repo.accommodations["hotel-x"] = nil

	svc := NewService(repo, nil)
	result, err := svc.Update(context.Background(), UpdateInput{
		ID:              "tokyo",
		AccommodationID: OptionalNullableString{Set: true, Value: strptr("hotel-x")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AccommodationID == nil || *result.AccommodationID != "hotel-x" {
		t.Fatalf("expected stop to reference hotel-x, got %v", result.AccommodationID)
	}
	back := repo.accommodations["hotel-x"]
	if back == nil || *back != "tokyo" {
		t.Fatalf("expected accommodation back-reference tokyo, got %v", back)
	}
	// The stop row is written before the back-reference.
	if len(repo.ops) < 2 || repo.ops[0] != "update-stop" || repo.ops[1] != "set-accommodation-stop" {
		t.Fatalf("unexpected write order %v", repo.ops)
	}
}

func TestUpdateStopLinkStealsAccommodationFromOtherStop(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "tokyo", "itin-1", nil)
	previous := seedStop(repo, "osaka", "itin-1", nil)
	previous.AccommodationID = strptr("hotel-x")
	repo.accommodations["hotel-x"] = strptr("osaka")

	svc := NewService(repo, nil)
	_, err := svc.Update(context.Background(), UpdateInput{
		ID:              "tokyo",
		AccommodationID: OptionalNullableString{Set: true, Value: strptr("hotel-x")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.stops["osaka"].AccommodationID != nil {
		t.Fatalf("expected osaka unlinked, got %v", *repo.stops["osaka"].AccommodationID)
	}
	back := repo.accommodations["hotel-x"]
	if back == nil || *back != "tokyo" {
		t.Fatalf("expected hotel-x owned by tokyo, got %v", back)
	}
}

func TestUpdateStopUnlinkClearsAllAccommodations(t *testing.T) {
	repo := newFakeStopRepo()
	item := seedStop(repo, "tokyo", "itin-1", nil)
	item.AccommodationID = strptr("hotel-x")
	repo.accommodations["hotel-x"] = strptr("tokyo")
	// A second accommodation left pointing at the stop by a prior
	// partial write; the sweep clears it too.
	repo.accommodations["hotel-y"] = strptr("tokyo")

	svc := NewService(repo, nil)
	result, err := svc.Update(context.Background(), UpdateInput{
		ID:              "tokyo",
		AccommodationID: OptionalNullableString{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AccommodationID != nil {
		t.Fatalf("expected accommodation cleared, got %v", *result.AccommodationID)
	}
	if repo.accommodations["hotel-x"] != nil || repo.accommodations["hotel-y"] != nil {
		t.Fatalf("expected all back-references cleared, got %v / %v", repo.accommodations["hotel-x"], repo.accommodations["hotel-y"])
	}
}

func TestUpdateStopWithoutAccommodationFieldSkipsSync(t *testing.T) {
	repo := newFakeStopRepo()
	item := seedStop(repo, "tokyo", "itin-1", nil)
	item.AccommodationID = strptr("hotel-x")
	repo.accommodations["hotel-x"] = strptr("tokyo")

	svc := NewService(repo, nil)
	newTitle := "Tokyo (updated)"
	result, err := svc.Update(context.Background(), UpdateInput{ID: "tokyo", Title: &newTitle})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AccommodationID == nil || *result.AccommodationID != "hotel-x" {
		t.Fatalf("expected accommodation link untouched, got %v", result.AccommodationID)
	}
	back := repo.accommodations["hotel-x"]
	if back == nil || *back != "tokyo" {
		t.Fatalf("expected back-reference untouched, got %v", back)
	}
}

func TestUpdateStopLinkToMissingAccommodation(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "tokyo", "itin-1", nil)

	svc := NewService(repo, nil)
	_, err := svc.Update(context.Background(), UpdateInput{
		ID:              "tokyo",
		AccommodationID: OptionalNullableString{Set: true, Value: strptr("ghost")},
	})
	if !errors.Is(err, ErrAccommodationNotFound) {
		t.Fatalf("expected ErrAccommodationNotFound, got %v", err)
	}
}

func TestDeleteStopCascade(t *testing.T) {
	repo := newFakeStopRepo()
	seedStop(repo, "tokyo", "itin-1", nil)
	seedStop(repo, "shibuya", "itin-1", strptr("tokyo"))
	seedStop(repo, "kyoto", "itin-1", nil)
	repo.attachments["att-1"] = "tokyo"
	repo.attachments["att-2"] = "kyoto"
	repo.accommodations["hotel-x"] = strptr("tokyo")

	svc := NewService(repo, nil)
	if err := svc.Delete(context.Background(), "tokyo"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := repo.stops["tokyo"]; ok {
		t.Fatalf("expected stop deleted")
	}
	if _, ok := repo.stops["shibuya"]; ok {
		t.Fatalf("expected child stop deleted")
	}
	if _, ok := repo.stops["kyoto"]; !ok {
		t.Fatalf("expected unrelated stop kept")
	}
	if _, ok := repo.attachments["att-1"]; ok {
		t.Fatalf("expected stop attachment deleted")
	}
	if _, ok := repo.attachments["att-2"]; !ok {
		t.Fatalf("expected unrelated attachment kept")
	}

	// The accommodation is deliberately left with a dangling stop_id.
	back := repo.accommodations["hotel-x"]
	if back == nil || *back != "tokyo" {
		t.Fatalf("expected dangling accommodation reference, got %v", back)
	}

	want := []string{"delete-attachments", "delete-children", "delete-stop"}
	if len(repo.ops) != len(want) {
		t.Fatalf("unexpected op count %v", repo.ops)
	}
	for i, op := range want {
		if repo.ops[i] != op {
			t.Fatalf("expected op %d to be %s, got %v", i, op, repo.ops)
		}
	}
}

func TestDeleteStopNotFound(t *testing.T) {
	svc := NewService(newFakeStopRepo(), nil)
	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrStopNotFound) {
		t.Fatalf("expected ErrStopNotFound, got %v", err)
	}
}
