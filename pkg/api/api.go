package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"swearjar/pkg/models"
	"swearjar/pkg/swearjar"
)

type API struct {
	ServiceName string

	r  *mux.Router
	kw *kafka.Writer

	// mu serializes blacklist changes against checks, the filter itself
	// is not safe for concurrent mutation.
	mu     sync.RWMutex
	filter *swearjar.Filter
}

func New(name string, filter *swearjar.Filter, kafkaWriter *kafka.Writer) (*API, error) {
	if filter == nil {
		return nil, errors.New("filter is nil")
	}

	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		kw:          kafkaWriter,
		filter:      filter,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	api.r.HandleFunc("/check", api.checkHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/clean", api.cleanHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/blacklist", api.blacklistHandler).Methods(http.MethodGet)
	api.r.HandleFunc("/blacklist", api.setBlacklistHandler).Methods(http.MethodPut)
	api.r.HandleFunc("/blacklist/words", api.addWordsHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/blacklist/phrases", api.addPhrasesHandler).Methods(http.MethodPost)
	api.r.HandleFunc("/blacklist/phrases", api.setPhrasesHandler).Methods(http.MethodPut)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}
}

// checkHandler answers 422 Unprocessable Entity when the comment text is
// profane and 200 OK otherwise.
func (api *API) checkHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var comment models.Comment
	err := json.NewDecoder(r.Body).Decode(&comment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[checkHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	api.mu.RLock()
	m, profane := api.filter.Check(comment.Text)
	api.mu.RUnlock()

	verdict := models.Verdict{Profane: profane}
	status := http.StatusOK
	if profane {
		verdict.Match = m.Token
		verdict.Entry = m.Entry
		verdict.Phrase = m.Phrase
		status = http.StatusUnprocessableEntity
		log.Infof("[checkHandler][%s] comment by %q rejected", sID, comment.Author)
	} else {
		log.Debugf("[checkHandler][%s] comment by %q accepted", sID, comment.Author)
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(verdict)
}

// cleanHandler returns the comment with profane text redacted.
func (api *API) cleanHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var comment models.Comment
	err := json.NewDecoder(r.Body).Decode(&comment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[cleanHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	api.mu.RLock()
	cleaned := api.filter.Clean(comment.Text)
	api.mu.RUnlock()

	comment.Censored = cleaned != comment.Text
	comment.Text = cleaned
	log.Debugf("[cleanHandler][%s] comment cleaned, censored:%v", sID, comment.Censored)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(comment)
}

func (api *API) blacklistHandler(w http.ResponseWriter, r *http.Request) {
	api.mu.RLock()
	bl := models.Blacklist{
		Words:   api.filter.Blacklist(),
		Phrases: api.filter.Phrases(),
	}
	api.mu.RUnlock()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(bl)
}

func (api *API) setBlacklistHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req models.WordsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[setBlacklistHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	api.mu.Lock()
	err = api.filter.SetBlacklist(req.Words)
	api.mu.Unlock()
	if err != nil {
		api.mutationError(w, "setBlacklistHandler", sID, err)
		return
	}

	log.Infof("[setBlacklistHandler][%s] blacklist replaced with %d words", sID, len(req.Words))
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) addWordsHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req models.WordsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[addWordsHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	if len(req.Words) == 0 {
		http.Error(w, "no words given", http.StatusBadRequest)
		return
	}

	api.mu.Lock()
	err = api.filter.AddWords(req.Words...)
	api.mu.Unlock()
	if err != nil {
		api.mutationError(w, "addWordsHandler", sID, err)
		return
	}

	log.Infof("[addWordsHandler][%s] %d words added", sID, len(req.Words))
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) addPhrasesHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req models.PhrasesRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[addPhrasesHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	if len(req.Phrases) == 0 {
		http.Error(w, "no phrases given", http.StatusBadRequest)
		return
	}

	api.mu.Lock()
	err = api.filter.AddPhrases(req.Phrases...)
	api.mu.Unlock()
	if err != nil {
		api.mutationError(w, "addPhrasesHandler", sID, err)
		return
	}

	log.Infof("[addPhrasesHandler][%s] %d phrases added", sID, len(req.Phrases))
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) setPhrasesHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req models.PhrasesRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[setPhrasesHandler][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	api.mu.Lock()
	err = api.filter.SetPhrases(req.Phrases)
	api.mu.Unlock()
	if err != nil {
		api.mutationError(w, "setPhrasesHandler", sID, err)
		return
	}

	log.Infof("[setPhrasesHandler][%s] phrases replaced with %d entries", sID, len(req.Phrases))
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) mutationError(w http.ResponseWriter, handler, sID string, err error) {
	if errors.Is(err, swearjar.ErrInvalidArgument) || errors.Is(err, swearjar.ErrInvalidBlacklistEntry) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warnf("[%s][%s] rejected blacklist change: %v", handler, sID, err)
		return
	}

	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	log.Errorf("[%s][%s] failed to change blacklist: %v", handler, sID, err)
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
