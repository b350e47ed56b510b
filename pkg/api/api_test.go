package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"swearjar/pkg/models"
	"swearjar/pkg/swearjar"
	"swearjar/pkg/wordlist"
)

const testRequestID = "9b4f6c5d-1a32-4d8f-b5a6-23c9e1f7d2a1"

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	words, err := wordlist.LoadFromJSON("../wordlist/test_data/words.json")
	if err != nil {
		t.Fatalf("failed to load words: %v", err)
	}
	filter, err := swearjar.New(swearjar.WithWordList(words))
	if err != nil {
		t.Fatalf("failed to create filter: %v", err)
	}

	api, err := New("", filter, nil)
	if err != nil {
		t.Fatalf("failed to create API: %v", err)
	}
	return api
}

func newTestComment(t *testing.T, text string) []byte {
	t.Helper()

	targetPostID, err := uuid.NewV4()
	if err != nil {
		t.Fatalf("failed to generate uuid: %v", err)
	}
	var testComment = models.Comment{
		PostID: targetPostID,
		Author: "John Doe",
		Text:   text,
	}

	b, err := json.Marshal(testComment)
	if err != nil {
		t.Fatalf("failed to marshal comment: %v", err)
	}
	return b
}

func serve(api *API, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("X-Request-Id", testRequestID)
	rr := httptest.NewRecorder()
	api.Router().ServeHTTP(rr, req)
	return rr
}

func TestNew_NilFilter(t *testing.T) {
	if _, err := New("", nil, nil); err == nil {
		t.Error("want error for nil filter")
	}
}

func TestAPI_checkHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPost, "/check", newTestComment(t, "This is a test comment"))
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var verdict models.Verdict
	if err := json.NewDecoder(rr.Body).Decode(&verdict); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if verdict.Profane {
		t.Errorf("want clean verdict, got %+v", verdict)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("want Content-Type application/json, got %q", got)
	}
}

func TestAPI_checkHandlerBanned(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		text string
		want models.Verdict
	}{
		{"Token", "What a load of bullshit", models.Verdict{Profane: true, Match: "bullshit", Entry: "bullshit"}},
		{"Cyrillic", "ты хуй", models.Verdict{Profane: true, Match: "хуй", Entry: "хуй"}},
		{"Phrase", "God damn it!", models.Verdict{Profane: true, Match: "God damn it", Entry: "god damn it", Phrase: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(api, http.MethodPost, "/check", newTestComment(t, tt.text))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("want status code %v, got status code %v", http.StatusUnprocessableEntity, rr.Code)
			}

			var verdict models.Verdict
			if err := json.NewDecoder(rr.Body).Decode(&verdict); err != nil {
				t.Fatalf("failed to decode response body: %v", err)
			}
			if verdict != tt.want {
				t.Errorf("want verdict %+v, got %+v", tt.want, verdict)
			}
		})
	}
}

func TestAPI_checkHandlerBadBody(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPost, "/check", []byte("{not json"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want status code %v, got status code %v", http.StatusBadRequest, rr.Code)
	}
}

func TestAPI_cleanHandler(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		text     string
		want     string
		censored bool
	}{
		{"This is a test comment", "This is a test comment", false},
		{"Shit, god damn it!", "****, ***********!", true},
	}

	for _, tt := range tests {
		rr := serve(api, http.MethodPost, "/clean", newTestComment(t, tt.text))
		if rr.Code != http.StatusOK {
			t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
		}

		var got models.Comment
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
		if got.Text != tt.want {
			t.Errorf("want text %q, got %q", tt.want, got.Text)
		}
		if got.Censored != tt.censored {
			t.Errorf("want censored %v, got %v", tt.censored, got.Censored)
		}
		if got.Author != "John Doe" || got.PostID == uuid.Nil {
			t.Errorf("want other comment fields preserved, got %+v", got)
		}
	}
}

func TestAPI_blacklistHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodGet, "/blacklist", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v, got status code %v", http.StatusOK, rr.Code)
	}

	var got models.Blacklist
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	want := models.Blacklist{
		Words:   []string{"shit", "bullshit", "ass", "crap", "хуй"},
		Phrases: []string{"god damn it", "son of a bitch"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want blacklist %+v, got %+v", want, got)
	}
}

func TestAPI_addWordsHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPost, "/check", newTestComment(t, "what a kerfuffle"))
	if rr.Code != http.StatusOK {
		t.Fatalf("want status code %v before adding, got %v", http.StatusOK, rr.Code)
	}

	rr = serve(api, http.MethodPost, "/blacklist/words", []byte(`{"words":["kerfuffle,fornax"]}`))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("want status code %v, got status code %v", http.StatusNoContent, rr.Code)
	}

	for _, text := range []string{"what a kerfuffle", "fornax!"} {
		rr = serve(api, http.MethodPost, "/check", newTestComment(t, text))
		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("want status code %v for %q, got %v", http.StatusUnprocessableEntity, text, rr.Code)
		}
	}

	rr = serve(api, http.MethodPost, "/blacklist/words", []byte(`{"words":[]}`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("want status code %v for empty words, got %v", http.StatusBadRequest, rr.Code)
	}
}

func TestAPI_addPhrasesHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPost, "/blacklist/phrases", []byte(`{"phrases":["holy cow"]}`))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("want status code %v, got status code %v", http.StatusNoContent, rr.Code)
	}

	rr = serve(api, http.MethodPost, "/clean", newTestComment(t, "Holy cow."))
	var got models.Comment
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if got.Text != "********." {
		t.Errorf("want text %q, got %q", "********.", got.Text)
	}
}

func TestAPI_setBlacklistHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPut, "/blacklist", []byte(`{}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want status code %v for missing words, got %v", http.StatusBadRequest, rr.Code)
	}

	rr = serve(api, http.MethodPut, "/blacklist", []byte(`{"words":["heck"]}`))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("want status code %v, got status code %v", http.StatusNoContent, rr.Code)
	}

	rr = serve(api, http.MethodPost, "/check", newTestComment(t, "shit"))
	if rr.Code != http.StatusOK {
		t.Errorf("want replaced word to pass, got status code %v", rr.Code)
	}
	rr = serve(api, http.MethodPost, "/check", newTestComment(t, "oh heck"))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("want new word to be rejected, got status code %v", rr.Code)
	}
}

func TestAPI_setPhrasesHandler(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodPut, "/blacklist/phrases", []byte(`{}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want status code %v for missing phrases, got %v", http.StatusBadRequest, rr.Code)
	}

	rr = serve(api, http.MethodPut, "/blacklist/phrases", []byte(`{"phrases":["crap"]}`))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("want status code %v, got status code %v", http.StatusNoContent, rr.Code)
	}

	rr = serve(api, http.MethodGet, "/blacklist", nil)
	var got models.Blacklist
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	want := models.Blacklist{
		Words:   []string{"shit", "bullshit", "ass", "хуй"},
		Phrases: []string{"crap"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want blacklist %+v, got %+v", want, got)
	}

	rr = serve(api, http.MethodPost, "/check", newTestComment(t, "god damn it"))
	if rr.Code != http.StatusOK {
		t.Errorf("want replaced phrase to pass, got status code %v", rr.Code)
	}
}

func TestAPI_methodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	rr := serve(api, http.MethodGet, "/check", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("want status code %v, got status code %v", http.StatusMethodNotAllowed, rr.Code)
	}
}

func Test_shorten(t *testing.T) {
	if got := shorten(testRequestID); got != "9b4f6c..." {
		t.Errorf("want %q, got %q", "9b4f6c...", got)
	}
	if got := shorten("abc"); got != "abc" {
		t.Errorf("want %q, got %q", "abc", got)
	}
}
