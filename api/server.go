package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/matt-g-everett/cakeshow/timeline"
)

// Config for the HTTP server.
type Config struct {
	Addr   string `yaml:"addr"`
	Static string `yaml:"static"`
}

// DefaultConfig serves the client pages on port 3000.
func DefaultConfig() Config {
	return Config{Addr: ":3000", Static: "client/dist"}
}

// Status is the JSON body of /status.
type Status struct {
	Phase     string `json:"phase"`
	Index     int    `json:"index"`
	Stage     string `json:"stage"`
	Stages    int    `json:"stages"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Timeline reports presentation progress.
type Timeline interface {
	State() timeline.State
	Len() int
}

// Clock reports runtime.
type Clock interface {
	Now() time.Duration
}

// Starter starts the presentation.
type Starter interface {
	Fire()
}

// Api serves the client pages and presentation status.
type Api struct {
	config   Config
	timeline Timeline
	clock    Clock
	starter  Starter
}

// NewApi creates an instance of an Api. starter may be nil, in which case
// /start is not served.
func NewApi(config Config, tl Timeline, clock Clock, starter Starter) *Api {
	a := new(Api)
	a.config = config
	a.timeline = tl
	a.clock = clock
	a.starter = starter
	return a
}

// Status returns the current presentation status.
func (a *Api) Status() Status {
	s := a.timeline.State()
	return Status{
		Phase:     s.Phase.String(),
		Index:     s.Index,
		Stage:     s.Name,
		Stages:    a.timeline.Len(),
		ElapsedMs: a.clock.Now().Milliseconds(),
	}
}

func (a *Api) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.Status()); err != nil {
		log.Printf("[!] Failed to write status: %v", err)
	}
}

func (a *Api) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a.starter.Fire()
	w.WriteHeader(http.StatusAccepted)
}

// Handler routes the api.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(a.config.Static)))
	mux.HandleFunc("/status", a.handleStatus)
	if a.starter != nil {
		mux.HandleFunc("/start", a.handleStart)
	}
	return mux
}

// Run serves until ctx ends. The server is optional: an empty address
// disables it and a failure to serve is logged, never returned, so the
// presentation keeps going without it.
func (a *Api) Run(ctx context.Context) error {
	if a.config.Addr == "" {
		log.Println("[*] HTTP server disabled")
		return nil
	}

	if err := a.Serve(ctx); err != nil {
		log.Printf("[!] HTTP server stopped: %v", err)
	}
	return nil
}

// Serve listens until ctx ends.
func (a *Api) Serve(ctx context.Context) error {
	server := &http.Server{Addr: a.config.Addr, Handler: a.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("[*] Listening on %s...", a.config.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
