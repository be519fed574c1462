//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"trip-planner-go/internal/cache"
	"trip-planner-go/internal/config"
	"trip-planner-go/internal/db"
	accommodationdomain "trip-planner-go/internal/domain/accommodation"
	activitydomain "trip-planner-go/internal/domain/activity"
	attachmentdomain "trip-planner-go/internal/domain/attachment"
	invitedomain "trip-planner-go/internal/domain/invite"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	stopdomain "trip-planner-go/internal/domain/stop"
	userdomain "trip-planner-go/internal/domain/user"
	accommodationrepo "trip-planner-go/internal/repository/postgres/accommodation"
	activityrepo "trip-planner-go/internal/repository/postgres/activity"
	attachmentrepo "trip-planner-go/internal/repository/postgres/attachment"
	inviterepo "trip-planner-go/internal/repository/postgres/invite"
	itineraryrepo "trip-planner-go/internal/repository/postgres/itinerary"
	stoprepo "trip-planner-go/internal/repository/postgres/stop"
	userrepo "trip-planner-go/internal/repository/postgres/user"
	"trip-planner-go/internal/session"
	"trip-planner-go/internal/storage/local"
	"trip-planner-go/internal/transport/httpserver"
	"trip-planner-go/internal/transport/httpserver/handler"
	"trip-planner-go/pkg/logger"

	"gorm.io/gorm"
)

const (
	aliceToken = "11111111-1111-1111-1111-111111111111"
	bobToken   = "22222222-2222-2222-2222-222222222222"
)

type testEnv struct {
	server     *httptest.Server
	authServer *httptest.Server
	db         *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	authServer := newAuthServer(t)
	log := logger.NewFromEnv()

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Supabase: config.SupabaseConfig{
			URL:            authServer.URL,
			PublishableKey: "test-key",
			AuthTimeout:    2 * time.Second,
		},
		Storage: config.StorageConfig{
			Dir:        t.TempDir(),
			PublicBase: "/storage/attachments",
		},
		Cache: config.CacheConfig{StaleTime: time.Minute},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	objectStore, err := local.NewStore(cfg.Storage.Dir, cfg.Storage.PublicBase)
	if err != nil {
		t.Fatalf("object store: %v", err)
	}

	queryCache := cache.New(cfg.Cache.StaleTime)
	sessions := session.NewManager(session.NewMemoryStore())

	itineraries := itinerarydomain.NewService(itineraryrepo.NewPostgres(dbConn), queryCache)
	stops := stopdomain.NewService(stoprepo.NewPostgres(dbConn), queryCache)
	accommodations := accommodationdomain.NewService(accommodationrepo.NewPostgres(dbConn), queryCache)
	activities := activitydomain.NewService(activityrepo.NewPostgres(dbConn), queryCache)
	invites := invitedomain.NewService(inviterepo.NewPostgres(dbConn), queryCache, log)
	attachments := attachmentdomain.NewService(attachmentrepo.NewPostgres(dbConn), objectStore, queryCache, log, 0)
	profiles := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(itineraries, stops, accommodations, activities, invites, attachments, sessions, log)
	router := httpserver.NewRouter(cfg, handlers, profiles, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, authServer: authServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.authServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		payload := map[string]interface{}{
			"id":    token,
			"email": token + "@example.com",
			"user_metadata": map[string]interface{}{
				"name":       "User " + token,
				"avatar_url": "https://example.com/avatar.png",
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE attachments, notes, itinerary_collaborators, itinerary_invites, activities, accommodations, stops, itineraries, user_profiles RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func decodeBody(t *testing.T, body []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type itineraryResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type stopResponse struct {
	ID              string  `json:"id"`
	ItineraryID     string  `json:"itinerary_id"`
	Title           string  `json:"title"`
	AccommodationID *string `json:"accommodation_id"`
}

type accommodationResponse struct {
	ID          string  `json:"id"`
	StopID      *string `json:"stop_id"`
	ItineraryID string  `json:"itinerary_id"`
	Name        string  `json:"name"`
}

type activityResponse struct {
	ID     string `json:"id"`
	StopID string `json:"stop_id"`
	Title  string `json:"title"`
}

func createItinerary(t *testing.T, client *http.Client, baseURL, token, title, start, end string) itineraryResponse {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/itineraries", token, map[string]interface{}{
		"title":      title,
		"start_date": start,
		"end_date":   end,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create itinerary: status %d body %s", resp.StatusCode, body)
	}
	var item itineraryResponse
	decodeBody(t, body, &item)
	return item
}

func createStop(t *testing.T, client *http.Client, baseURL, token, itineraryID string, payload map[string]interface{}) stopResponse {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/itineraries/"+itineraryID+"/stops", token, payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create stop: status %d body %s", resp.StatusCode, body)
	}
	var item stopResponse
	decodeBody(t, body, &item)
	return item
}

// Plan a trip end to end: itinerary, a dated stop, an activity inside
// the stop's range, and a rejection for one outside it.
func TestE2EActivityScheduling(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL

	itin := createItinerary(t, client, base, aliceToken, "Japan 2025", "2025-12-01", "2025-12-20")
	tokyo := createStop(t, client, base, aliceToken, itin.ID, map[string]interface{}{
		"title":         "Tokyo",
		"location_name": "Tokyo, Japan",
		"start_date":    "2025-12-01",
		"end_date":      "2025-12-05",
	})

	resp, body := requestJSON(t, client, http.MethodPost, base+"/api/stops/"+tokyo.ID+"/activities", aliceToken, map[string]interface{}{
		"title":        "Shibuya Crossing",
		"scheduled_at": "2025-12-03T14:00:00Z",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create activity: status %d body %s", resp.StatusCode, body)
	}
	var act activityResponse
	decodeBody(t, body, &act)
	if act.StopID != tokyo.ID {
		t.Fatalf("expected activity under tokyo, got %q", act.StopID)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/api/stops/"+tokyo.ID+"/activities", aliceToken, map[string]interface{}{
		"title":        "Late arrival",
		"scheduled_at": "2025-12-10T14:00:00Z",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", resp.StatusCode, body)
	}
	var envlp errorEnvelope
	decodeBody(t, body, &envlp)
	if envlp.Error.Code != "schedule_out_of_range" {
		t.Fatalf("expected schedule_out_of_range, got %q", envlp.Error.Code)
	}
}

// Create a standalone accommodation, then link it to a stop via update
// and check the stop's back-reference appears.
func TestE2EAccommodationLinking(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL

	itin := createItinerary(t, client, base, aliceToken, "Japan 2025", "2025-12-01", "2025-12-20")
	tokyo := createStop(t, client, base, aliceToken, itin.ID, map[string]interface{}{
		"title":         "Tokyo",
		"location_name": "Tokyo, Japan",
	})

	resp, body := requestJSON(t, client, http.MethodPost, base+"/api/itineraries/"+itin.ID+"/accommodations", aliceToken, map[string]interface{}{
		"name": "Hotel X",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create accommodation: status %d body %s", resp.StatusCode, body)
	}
	var hotel accommodationResponse
	decodeBody(t, body, &hotel)
	if hotel.StopID != nil {
		t.Fatalf("expected standalone accommodation, got stop %v", *hotel.StopID)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, base+"/api/accommodations/"+hotel.ID, aliceToken, map[string]interface{}{
		"stop_id": tokyo.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("link accommodation: status %d body %s", resp.StatusCode, body)
	}
	decodeBody(t, body, &hotel)
	if hotel.StopID == nil || *hotel.StopID != tokyo.ID {
		t.Fatalf("expected link to tokyo, got %v", hotel.StopID)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/stops/"+tokyo.ID, aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get stop: status %d body %s", resp.StatusCode, body)
	}
	var got stopResponse
	decodeBody(t, body, &got)
	if got.AccommodationID == nil || *got.AccommodationID != hotel.ID {
		t.Fatalf("expected stop back-reference to %s, got %v", hotel.ID, got.AccommodationID)
	}
}

// Cascade: deleting a parent stop removes its sub-stops.
func TestE2EStopCascade(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL

	itin := createItinerary(t, client, base, aliceToken, "Japan 2025", "2025-12-01", "2025-12-20")
	tokyo := createStop(t, client, base, aliceToken, itin.ID, map[string]interface{}{
		"title":         "Tokyo",
		"location_name": "Tokyo, Japan",
	})
	createStop(t, client, base, aliceToken, itin.ID, map[string]interface{}{
		"title":          "Shinjuku",
		"location_name":  "Shinjuku, Tokyo",
		"parent_stop_id": tokyo.ID,
	})

	resp, body := requestJSON(t, client, http.MethodDelete, base+"/api/stops/"+tokyo.ID, aliceToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete stop: status %d body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/itineraries/"+itin.ID+"/stops", aliceToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list stops: status %d body %s", resp.StatusCode, body)
	}
	var list struct {
		Items []stopResponse `json:"items"`
	}
	decodeBody(t, body, &list)
	if len(list.Items) != 0 {
		t.Fatalf("expected no stops left, got %d", len(list.Items))
	}
}

// Invite round trip across two users, including the one-shot pending
// presentation.
func TestE2EInviteFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	base := env.server.URL

	itin := createItinerary(t, client, base, aliceToken, "Japan 2025", "2025-12-01", "2025-12-20")

	resp, body := requestJSON(t, client, http.MethodPost, base+"/api/itineraries/"+itin.ID+"/invites", aliceToken, map[string]interface{}{
		"email": bobToken + "@example.com",
		"role":  "editor",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create invite: status %d body %s", resp.StatusCode, body)
	}
	var invite struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, body, &invite)
	if invite.Status != "pending" {
		t.Fatalf("expected pending invite, got %q", invite.Status)
	}

	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/invites/pending", bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pending invites: status %d body %s", resp.StatusCode, body)
	}
	var pending struct {
		Items   []struct{ ID string } `json:"items"`
		Present bool                  `json:"present"`
	}
	decodeBody(t, body, &pending)
	if len(pending.Items) != 1 || !pending.Present {
		t.Fatalf("expected one pending invite presented, got %+v", pending)
	}

	// Second fetch in the same session does not re-prompt.
	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/invites/pending", bobToken, nil)
	decodeBody(t, body, &pending)
	if pending.Present {
		t.Fatalf("expected no re-prompt in same session")
	}

	// Before accepting, the shared itinerary is invisible to bob.
	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/itineraries/"+itin.ID, bobToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before accept, got %d body %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/api/invites/"+invite.ID+"/accept", bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept invite: status %d body %s", resp.StatusCode, body)
	}
	var accepted struct {
		Invite struct {
			Status string `json:"status"`
		} `json:"invite"`
		CollaboratorAdded bool `json:"collaborator_added"`
	}
	decodeBody(t, body, &accepted)
	if accepted.Invite.Status != "accepted" || !accepted.CollaboratorAdded {
		t.Fatalf("expected accepted with collaborator, got %+v", accepted)
	}

	// The accepted editor can now read and edit the shared itinerary.
	resp, body = requestJSON(t, client, http.MethodGet, base+"/api/itineraries/"+itin.ID, bobToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("editor read: status %d body %s", resp.StatusCode, body)
	}
	resp, body = requestJSON(t, client, http.MethodPatch, base+"/api/itineraries/"+itin.ID, bobToken, map[string]interface{}{
		"title": "Japan 2025 (shared)",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("editor update: status %d body %s", resp.StatusCode, body)
	}
	var edited itineraryResponse
	decodeBody(t, body, &edited)
	if edited.Title != "Japan 2025 (shared)" {
		t.Fatalf("expected editor's title, got %q", edited.Title)
	}

	// Deleting someone else's itinerary stays off limits.
	resp, body = requestJSON(t, client, http.MethodDelete, base+"/api/itineraries/"+itin.ID, bobToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 on collaborator delete, got %d body %s", resp.StatusCode, body)
	}

	// Accepting again hits the terminal state.
	resp, body = requestJSON(t, client, http.MethodPost, base+"/api/invites/"+invite.ID+"/accept", bobToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d body %s", resp.StatusCode, body)
	}
}
