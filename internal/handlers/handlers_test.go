package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"dsfs/internal/auth"
	"dsfs/internal/db/mock"
	"dsfs/internal/fixtures"
	"dsfs/internal/kv"
	"dsfs/internal/remote"
	"dsfs/internal/stellar"
	"dsfs/internal/store"
	"dsfs/internal/theme"
	"dsfs/models"
)

type paymentsStub struct {
	mu       sync.Mutex
	payments []stellar.Payment
	err      error
}

func (p *paymentsStub) SendPayment(_ context.Context, payment stellar.Payment) (stellar.Receipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payments = append(p.payments, payment)
	if p.err != nil {
		return stellar.Receipt{}, p.err
	}
	return stellar.Receipt{Success: true, TransactionID: "tx-1"}, nil
}

type registrarFunc func(context.Context, models.StudentRegistration) error

func (f registrarFunc) RegisterStudent(ctx context.Context, reg models.StudentRegistration) error {
	return f(ctx, reg)
}

type testEnv struct {
	router   http.Handler
	payments *paymentsStub
	theme    *theme.Service
}

type envOption func(*Dependencies, *store.StudentsConfig)

func withRegistrar(r store.Registrar) envOption {
	return func(_ *Dependencies, cfg *store.StudentsConfig) {
		cfg.Registrar = r
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	database, err := mock.New(ctx)
	if err != nil {
		t.Fatalf("mock.New() error = %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	source, err := fixtures.New(database)
	if err != nil {
		t.Fatalf("fixtures.New() error = %v", err)
	}

	feed, err := store.NewFeed(store.FeedConfig{Posts: source, Users: source})
	if err != nil {
		t.Fatalf("store.NewFeed() error = %v", err)
	}
	if err := feed.Prime(ctx); err != nil {
		t.Fatalf("feed.Prime() error = %v", err)
	}

	deps := Dependencies{
		Sessions: scs.New(),
		Session: store.NewSession(store.SessionConfig{
			Auth:   remote.New(""),
			Tokens: auth.NewService(kv.NewMemoryStore()),
		}),
		Feed:    feed,
		Catalog: source,
	}
	studentsCfg := store.StudentsConfig{Source: source}
	for _, opt := range opts {
		opt(&deps, &studentsCfg)
	}

	students, err := store.NewStudents(studentsCfg)
	if err != nil {
		t.Fatalf("store.NewStudents() error = %v", err)
	}
	if err := students.Prime(ctx); err != nil {
		t.Fatalf("students.Prime() error = %v", err)
	}
	deps.Students = students

	themeService := theme.NewService(kv.NewMemoryStore())
	themeService.Load(ctx)
	deps.Theme = themeService

	payments := &paymentsStub{}
	deps.Payments = payments

	h, err := New(deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r := chi.NewRouter()
	r.Use(deps.Sessions.LoadAndSave)
	r.Get("/healthz", h.Health)
	r.Get("/api/theme", h.GetTheme)
	r.Put("/api/theme", h.SetTheme)
	r.Post("/api/theme/toggle", h.ToggleTheme)
	r.Put("/api/theme/host", h.SetHostAppearance)
	r.Get("/theme.css", h.StyleSheet)
	r.Get("/api/session", h.GetSession)
	r.Post("/api/session/login", h.Login)
	r.Post("/api/session/logout", h.Logout)
	r.Patch("/api/session/profile", h.UpdateProfile)
	r.Post("/api/session/student", h.RegisterAsStudent)
	r.Get("/api/posts", h.GetPosts)
	r.Post("/api/posts/refresh", h.RefreshPosts)
	r.Post("/api/posts/{id}/like", h.LikePost)
	r.Post("/api/posts/{id}/fund", h.FundPost)
	r.Get("/api/students", h.GetStudents)
	r.Post("/api/students/refresh", h.RefreshStudents)
	r.Post("/api/students/{id}/fund", h.FundStudent)
	r.Post("/api/students/register", h.RegisterStudent)
	r.Get("/api/projects/featured", h.FeaturedProjects)
	r.Get("/api/notifications", h.Notifications)

	return &testEnv{router: r, payments: payments, theme: themeService}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

// themeView is the part of the theme response the tests inspect.
type themeView struct {
	Preference   theme.Preference `json:"preference"`
	Scheme       theme.Scheme     `json:"scheme"`
	Host         theme.Scheme     `json:"host"`
	IsSystemMode bool             `json:"isSystemMode"`
	Options      []struct {
		Value string `json:"value"`
	} `json:"options"`
}

func TestNewRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(Dependencies{}); err == nil {
		t.Fatal("New(Dependencies{}) error = nil, want error")
	}
	if _, err := New(Dependencies{Sessions: scs.New(), Theme: theme.NewService(nil)}); err == nil {
		t.Fatal("New() without stores error = nil, want error")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
	got := decodeBody[healthResponse](t, rec)
	if got.Status != "ok" || got.Feed != store.StatusIdle || got.Students != store.StatusIdle {
		t.Fatalf("unexpected health payload %+v", got)
	}
}

func TestThemeEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	got := decodeBody[themeView](t, env.do(t, http.MethodGet, "/api/theme", ""))
	if got.Preference != theme.PreferenceSystem || got.Scheme != theme.SchemeLight || !got.IsSystemMode {
		t.Fatalf("initial theme = %+v, want system/light", got)
	}
	if len(got.Options) != 3 || got.Options[0].Value != "system" {
		t.Fatalf("theme options = %+v, want system/light/dark", got.Options)
	}

	rec := env.do(t, http.MethodPut, "/api/theme", `{"preference":"dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/theme status = %d, want 200", rec.Code)
	}
	got = decodeBody[themeView](t, rec)
	if got.Scheme != theme.SchemeDark || got.IsSystemMode {
		t.Fatalf("after dark preference = %+v", got)
	}

	rec = env.do(t, http.MethodPut, "/api/theme", `{"preference":"sepia"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid preference status = %d, want 400", rec.Code)
	}
	if e := decodeBody[errorResponse](t, rec); e.Code != "invalid_preference" {
		t.Fatalf("invalid preference code = %q", e.Code)
	}

	got = decodeBody[themeView](t, env.do(t, http.MethodPost, "/api/theme/toggle", ""))
	if got.Preference != theme.PreferenceLight {
		t.Fatalf("toggle from dark = %q, want light", got.Preference)
	}

	env.do(t, http.MethodPut, "/api/theme", `{"preference":"system"}`)
	got = decodeBody[themeView](t, env.do(t, http.MethodPut, "/api/theme/host", `{"appearance":"dark"}`))
	if got.Host != theme.SchemeDark || got.Scheme != theme.SchemeDark {
		t.Fatalf("system mode with dark host = %+v", got)
	}

	if rec := env.do(t, http.MethodPut, "/api/theme/host", `{"appearance":"dim"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid appearance status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/theme.css", "")
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("stylesheet content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "color-scheme: dark") {
		t.Fatalf("stylesheet missing dark scheme: %s", rec.Body.String())
	}
}

func TestLoginAndLogout(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/session/login", `{"username":"  alice ","password":"anything"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Fatal("expected login to issue a session cookie")
	}
	state := decodeBody[store.SessionState](t, rec)
	if !state.Authenticated || state.User == nil {
		t.Fatalf("login state = %+v, want authenticated user", state)
	}
	if state.User.Username != "alice" || state.User.Name != "Alice" {
		t.Fatalf("login user = %q/%q, want alice/Alice", state.User.Username, state.User.Name)
	}

	state = decodeBody[store.SessionState](t, env.do(t, http.MethodPost, "/api/session/logout", ""))
	if state.Authenticated || state.User != nil || state.StudentRegistered {
		t.Fatalf("logout state = %+v, want cleared", state)
	}

	if rec := env.do(t, http.MethodPost, "/api/session/student", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("register without user status = %d, want 401", rec.Code)
	}
}

func TestLoginRejectsBadInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"blank username", `{"username":"  ","password":"x"}`, "invalid_username"},
		{"empty body", "", "empty_body"},
		{"unknown field", `{"user":"alice"}`, "invalid_body"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/session/login", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody[errorResponse](t, rec); got.Code != tt.code {
				t.Fatalf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestUpdateProfileAndRegister(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	state := decodeBody[store.SessionState](t, env.do(t, http.MethodPatch, "/api/session/profile", `{"bio":"Robotics at MIT"}`))
	if state.User == nil || state.User.Bio != "Robotics at MIT" || state.User.Username != "current_user" {
		t.Fatalf("profile update = %+v", state.User)
	}

	if rec := env.do(t, http.MethodPatch, "/api/session/profile", `{"username":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank username update status = %d, want 400", rec.Code)
	}

	state = decodeBody[store.SessionState](t, env.do(t, http.MethodPost, "/api/session/student", ""))
	if !state.StudentRegistered {
		t.Fatal("expected student registration flag to be set")
	}
}

func TestLikePost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/posts/1/like", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("like status = %d, want 200", rec.Code)
	}
	post := decodeBody[store.FeedPost](t, rec)
	if post.Likes != 143 {
		t.Fatalf("likes = %d, want 143", post.Likes)
	}
	if post.Author == nil || post.Author.ID != "1" {
		t.Fatalf("expected author to be joined, got %+v", post.Author)
	}

	if rec := env.do(t, http.MethodPost, "/api/posts/missing/like", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown post status = %d, want 404", rec.Code)
	}
}

func TestFundPost(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/posts/1/fund", `{"amount":"250"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("fund status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		TransactionID string         `json:"transactionId"`
		State         store.FeedPost `json:"state"`
	}](t, rec)
	if resp.TransactionID != "tx-1" {
		t.Fatalf("transaction id = %q, want tx-1", resp.TransactionID)
	}
	if resp.State.CurrentFunding != 3050 {
		t.Fatalf("current funding = %v, want 3050", resp.State.CurrentFunding)
	}

	want := []stellar.Payment{{To: "post:1", Amount: 250}}
	if diff := cmp.Diff(want, env.payments.payments); diff != "" {
		t.Fatalf("payments mismatch (-want +got):\n%s", diff)
	}
}

func TestFundPostRejectsInvalidAmounts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"amount":0}`},
		{"negative", `{"amount":-5}`},
		{"text", `{"amount":"abc"}`},
		{"over max", `{"amount":100001}`},
		{"missing", `{}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/posts/1/fund", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeBody[errorResponse](t, rec); got.Code != "invalid_amount" {
				t.Fatalf("code = %q, want invalid_amount", got.Code)
			}
		})
	}

	if rec := env.do(t, http.MethodPost, "/api/posts/missing/fund", `{"amount":10}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown post status = %d, want 404", rec.Code)
	}
	if n := len(env.payments.payments); n != 0 {
		t.Fatalf("expected no payments for rejected requests, got %d", n)
	}
}

func TestFundStudentContinuesWhenPaymentFails(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.payments.err = errors.New("network down")

	rec := env.do(t, http.MethodPost, "/api/students/1/fund", `{"amount":50}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("fund status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[struct {
		TransactionID string         `json:"transactionId"`
		State         models.Student `json:"state"`
	}](t, rec)
	if resp.TransactionID != "" {
		t.Fatalf("transaction id = %q, want empty after payment failure", resp.TransactionID)
	}
	s := resp.State
	if s.CurrentFunding != 8550 || s.TotalFunded != 12350 || s.Supporters != 44 {
		t.Fatalf("student funding = %v/%v/%d, want 8550/12350/44", s.CurrentFunding, s.TotalFunded, s.Supporters)
	}

	if rec := env.do(t, http.MethodPost, "/api/students/missing/fund", `{"amount":10}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown student status = %d, want 404", rec.Code)
	}
}

func TestRegisterStudent(t *testing.T) {
	t.Parallel()

	valid := `{"name":"Jordan Lee","username":"jlee","university":"MIT","course":"Physics","year":"Junior","gpa":3.7,"fundingGoal":5000,"bio":""}`

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		var got models.StudentRegistration
		env := newTestEnv(t, withRegistrar(registrarFunc(func(_ context.Context, reg models.StudentRegistration) error {
			got = reg
			return nil
		})))

		rec := env.do(t, http.MethodPost, "/api/students/register", valid)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body.String())
		}
		if got.Username != "jlee" || got.GPA != 3.7 {
			t.Fatalf("registrar received %+v", got)
		}

		state := decodeBody[store.StudentsState](t, env.do(t, http.MethodGet, "/api/students", ""))
		if want := len(mock.Students()); len(state.Students) != want {
			t.Fatalf("directory size = %d, want unchanged %d", len(state.Students), want)
		}
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		body := strings.Replace(valid, `"gpa":3.7`, `"gpa":4.5`, 1)
		rec := env.do(t, http.MethodPost, "/api/students/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeBody[errorResponse](t, rec); got.Code != "invalid_registration" {
			t.Fatalf("code = %q, want invalid_registration", got.Code)
		}
	})

	t.Run("registrar failure", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, withRegistrar(registrarFunc(func(context.Context, models.StudentRegistration) error {
			return errors.New("backend unavailable")
		})))
		if rec := env.do(t, http.MethodPost, "/api/students/register", valid); rec.Code != http.StatusBadGateway {
			t.Fatalf("status = %d, want 502", rec.Code)
		}
	})
}

func TestRefreshCollections(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/posts/1/like", "")
	state := decodeBody[store.FeedState](t, env.do(t, http.MethodPost, "/api/posts/refresh", ""))
	if state.Loading || state.Status != store.StatusIdle {
		t.Fatalf("feed after refresh = loading %v status %q", state.Loading, state.Status)
	}
	if len(state.Posts) != len(mock.Posts()) || state.Posts[0].Likes != 142 {
		t.Fatalf("refresh should reload fixture posts, got %d posts", len(state.Posts))
	}

	env.do(t, http.MethodPost, "/api/students/1/fund", `{"amount":50}`)
	students := decodeBody[store.StudentsState](t, env.do(t, http.MethodPost, "/api/students/refresh", ""))
	if len(students.Students) != len(mock.Students()) || students.Loading {
		t.Fatalf("students after refresh = %d loading %v", len(students.Students), students.Loading)
	}
	for _, s := range students.Students {
		if s.ID == "1" && (s.CurrentFunding != 8500 || s.Supporters != 43) {
			t.Fatalf("refresh should discard optimistic funding, got %v/%d", s.CurrentFunding, s.Supporters)
		}
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	projects := decodeBody[[]models.FeaturedProject](t, env.do(t, http.MethodGet, "/api/projects/featured", ""))
	if len(projects) != len(mock.FeaturedProjects()) {
		t.Fatalf("featured projects = %d, want %d", len(projects), len(mock.FeaturedProjects()))
	}
	notifications := decodeBody[[]models.Notification](t, env.do(t, http.MethodGet, "/api/notifications", ""))
	if len(notifications) != len(mock.Notifications()) {
		t.Fatalf("notifications = %d, want %d", len(notifications), len(mock.Notifications()))
	}
}
