package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/leanflow/leanflow-go/internal/supabase"
)

// fakeSupabase is an in-memory stand-in for the hosted backend: a GoTrue
// user endpoint plus enough of the PostgREST surface (equality filters,
// ordering, limit, conflict-key upsert, return=representation) to exercise
// every gateway operation.
type fakeSupabase struct {
	tokens   map[string]string // bearer token -> user id
	tables   map[string][]map[string]any
	seq      int
	failWith string // when set, every row request fails with this message
}

func newFakeSupabase() *fakeSupabase {
	return &fakeSupabase{
		tokens: map[string]string{
			"token-a": "user-a",
			"token-b": "user-b",
		},
		tables: make(map[string][]map[string]any),
	}
}

func (f *fakeSupabase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/auth/v1/user" {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		userID, ok := f.tokens[token]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": userID})
		return
	}

	table, ok := strings.CutPrefix(r.URL.Path, "/rest/v1/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if f.failWith != "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": f.failWith})
		return
	}

	switch r.Method {
	case http.MethodGet:
		f.handleSelect(w, r, table)
	case http.MethodPost:
		f.handleInsert(w, r, table)
	case http.MethodDelete:
		f.handleDelete(w, r, table)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeSupabase) filters(r *http.Request) map[string]string {
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		switch key {
		case "select", "order", "limit", "on_conflict":
			continue
		}
		filters[key] = strings.TrimPrefix(values[0], "eq.")
	}
	return filters
}

func matches(row map[string]any, filters map[string]string) bool {
	for column, want := range filters {
		if fmt.Sprint(row[column]) != want {
			return false
		}
	}
	return true
}

func (f *fakeSupabase) handleSelect(w http.ResponseWriter, r *http.Request, table string) {
	filters := f.filters(r)

	result := make([]map[string]any, 0)
	for _, row := range f.tables[table] {
		if matches(row, filters) {
			result = append(result, row)
		}
	}

	if order := r.URL.Query().Get("order"); strings.HasSuffix(order, ".desc") {
		column := strings.TrimSuffix(order, ".desc")
		sort.Slice(result, func(i, j int) bool {
			return result[i][column].(int) > result[j][column].(int)
		})
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, _ := strconv.Atoi(limit)
		if len(result) > n {
			result = result[:n]
		}
	}

	json.NewEncoder(w).Encode(result)
}

func (f *fakeSupabase) handleInsert(w http.ResponseWriter, r *http.Request, table string) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid body"})
		return
	}

	if conflictKey := r.URL.Query().Get("on_conflict"); conflictKey != "" {
		for i, row := range f.tables[table] {
			if fmt.Sprint(row[conflictKey]) == fmt.Sprint(payload[conflictKey]) {
				payload["id"] = row["id"]
				payload["created_at"] = row["created_at"]
				f.tables[table][i] = payload
				json.NewEncoder(w).Encode([]map[string]any{payload})
				return
			}
		}
	}

	f.seq++
	payload["id"] = uuid.NewString()
	payload["created_at"] = f.seq
	f.tables[table] = append(f.tables[table], payload)
	json.NewEncoder(w).Encode([]map[string]any{payload})
}

func (f *fakeSupabase) handleDelete(w http.ResponseWriter, r *http.Request, table string) {
	filters := f.filters(r)

	deleted := make([]map[string]any, 0)
	kept := f.tables[table][:0:0]
	for _, row := range f.tables[table] {
		if matches(row, filters) {
			deleted = append(deleted, row)
		} else {
			kept = append(kept, row)
		}
	}
	f.tables[table] = kept

	json.NewEncoder(w).Encode(deleted)
}

// testEnv is the full service wired against a fake backend.
type testEnv struct {
	router http.Handler
	fake   *fakeSupabase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := newFakeSupabase()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	return &testEnv{
		router: New(supabase.NewLazy(srv.URL, "service-key")),
		fake:   fake,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeRows(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var rows []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("response is not a JSON array: %v (%s)", err, rec.Body.String())
	}
	return rows
}

func TestHealth_NoAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/recipes"},
		{http.MethodPost, "/recipes"},
		{http.MethodDelete, "/recipes/some-id"},
		{http.MethodGet, "/meal-logs"},
		{http.MethodPost, "/meal-logs"},
		{http.MethodDelete, "/meal-logs/some-id"},
		{http.MethodGet, "/body-entries"},
		{http.MethodPost, "/body-entries"},
		{http.MethodDelete, "/body-entries/some-id"},
		{http.MethodGet, "/profiles/me"},
		{http.MethodPost, "/profiles"},
	}

	for _, route := range protected {
		rec := env.do(t, route.method, route.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, rec.Code)
		}

		rec = env.do(t, route.method, route.path, "bogus-token", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 with invalid token, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestRecipeList_EmptyIsOK(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/recipes", "token-a", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rows := decodeRows(t, rec); len(rows) != 0 {
		t.Errorf("expected empty set, got %v", rows)
	}
}

func TestRecipeCreate_StampsVerifiedOwner(t *testing.T) {
	env := newTestEnv(t)

	// The body claims to belong to someone else; the stamp must win.
	rec := env.do(t, http.MethodPost, "/recipes", "token-a",
		`{"name":"overnight oats","ingredients":"oats, milk","user_id":"user-b"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rows := decodeRows(t, rec)
	if len(rows) != 1 {
		t.Fatalf("expected 1 created row, got %d", len(rows))
	}
	if rows[0]["user_id"] != "user-a" {
		t.Errorf("expected forged user_id overwritten with user-a, got %v", rows[0]["user_id"])
	}

	stored := env.fake.tables["recipes"]
	if len(stored) != 1 || stored[0]["user_id"] != "user-a" {
		t.Errorf("expected stored row owned by user-a, got %v", stored)
	}
}

func TestRecipeCreate_MissingName(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/recipes", "token-a", `{"ingredients":"oats"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRecipeCreate_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/recipes", "token-a", `{"name":`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRecipeList_CrossUserIsolation(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/recipes", "token-a",
		`{"name":"oats","ingredients":"oats"}`)

	rec := env.do(t, http.MethodGet, "/recipes", "token-b", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rows := decodeRows(t, rec); len(rows) != 0 {
		t.Errorf("expected user-b to see no rows, got %v", rows)
	}

	rec = env.do(t, http.MethodGet, "/recipes", "token-a", "")
	if rows := decodeRows(t, rec); len(rows) != 1 {
		t.Errorf("expected user-a to see 1 row, got %v", rows)
	}
}

func TestRecipeList_NewestFirst(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/recipes", "token-a", `{"name":"first","ingredients":"x"}`)
	env.do(t, http.MethodPost, "/recipes", "token-a", `{"name":"second","ingredients":"y"}`)

	rows := decodeRows(t, env.do(t, http.MethodGet, "/recipes", "token-a", ""))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["name"] != "second" || rows[1]["name"] != "first" {
		t.Errorf("expected newest-first order, got %v then %v", rows[0]["name"], rows[1]["name"])
	}
}

func TestRecipeDelete_ForeignRowIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	created := decodeRows(t, env.do(t, http.MethodPost, "/recipes", "token-a",
		`{"name":"oats","ingredients":"oats"}`))
	id := created[0]["id"].(string)

	rec := env.do(t, http.MethodDelete, "/recipes/"+id, "token-b", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rows := decodeRows(t, rec); len(rows) != 0 {
		t.Errorf("expected empty deleted set, got %v", rows)
	}

	// The row must still exist for its owner.
	if rows := decodeRows(t, env.do(t, http.MethodGet, "/recipes", "token-a", "")); len(rows) != 1 {
		t.Errorf("expected user-a's row untouched, got %v", rows)
	}
}

func TestRecipeDelete_OwnRow(t *testing.T) {
	env := newTestEnv(t)

	created := decodeRows(t, env.do(t, http.MethodPost, "/recipes", "token-a",
		`{"name":"oats","ingredients":"oats"}`))
	id := created[0]["id"].(string)

	rec := env.do(t, http.MethodDelete, "/recipes/"+id, "token-a", "")
	if rows := decodeRows(t, rec); len(rows) != 1 {
		t.Fatalf("expected 1 deleted row, got %v", rows)
	}

	if rows := decodeRows(t, env.do(t, http.MethodGet, "/recipes", "token-a", "")); len(rows) != 0 {
		t.Errorf("expected no rows after delete, got %v", rows)
	}
}

func TestMealLogCreate_BlankLogDateOmitted(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/meal-logs", "token-a",
		`{"meal":"lunch","items":["rice","beans"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rows := decodeRows(t, rec)
	if rows[0]["user_id"] != "user-a" {
		t.Errorf("expected row owned by user-a, got %v", rows[0]["user_id"])
	}

	stored := env.fake.tables["meal_logs"][0]
	if _, present := stored["log_date"]; present {
		t.Errorf("expected log_date absent from the stored row, got %v", stored["log_date"])
	}
}

func TestMealLogCreate_EmptyItems(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/meal-logs", "token-a", `{"meal":"lunch","items":[]}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestMealLogList_DateFilter(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/meal-logs", "token-a",
		`{"meal":"lunch","items":["rice"],"log_date":"2024-06-01"}`)
	env.do(t, http.MethodPost, "/meal-logs", "token-a",
		`{"meal":"dinner","items":["soup"],"log_date":"2024-06-02"}`)

	rows := decodeRows(t, env.do(t, http.MethodGet, "/meal-logs?log_date=2024-06-01", "token-a", ""))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for the date filter, got %d", len(rows))
	}
	if rows[0]["meal"] != "lunch" {
		t.Errorf("expected the lunch log, got %v", rows[0]["meal"])
	}

	rows = decodeRows(t, env.do(t, http.MethodGet, "/meal-logs", "token-a", ""))
	if len(rows) != 2 {
		t.Errorf("expected 2 rows without a filter, got %d", len(rows))
	}
}

func TestBodyEntryCreate_AllFieldsOptional(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/body-entries", "token-a", `{}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rows := decodeRows(t, rec)
	if rows[0]["user_id"] != "user-a" {
		t.Errorf("expected row owned by user-a, got %v", rows[0]["user_id"])
	}
}

func TestBodyEntryList_DateFilter(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/body-entries", "token-a",
		`{"weight":82.5,"log_date":"2024-06-01"}`)
	env.do(t, http.MethodPost, "/body-entries", "token-a",
		`{"weight":82.1,"log_date":"2024-06-02"}`)

	rows := decodeRows(t, env.do(t, http.MethodGet, "/body-entries?log_date=2024-06-02", "token-a", ""))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for the date filter, got %d", len(rows))
	}
	if rows[0]["weight"] != 82.1 {
		t.Errorf("expected the later entry, got %v", rows[0]["weight"])
	}
}

func TestProfileGet_NoProfileIsNull(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/profiles/me", "token-a", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Errorf("expected null body, got %q", rec.Body.String())
	}
}

func TestProfileUpsert_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/profiles", "token-a",
			`{"height_cm":180,"weight_kg":82.5,"age":33}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
	}

	if n := len(env.fake.tables["profiles"]); n != 1 {
		t.Fatalf("expected exactly one profile row after repeated upserts, got %d", n)
	}

	rec := env.do(t, http.MethodGet, "/profiles/me", "token-a", "")
	var profile map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("profile is not a JSON object: %v", err)
	}
	if profile["height_cm"] != 180.0 || profile["user_id"] != "user-a" {
		t.Errorf("unexpected profile %v", profile)
	}
}

func TestProfileUpsert_PerUserRows(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/profiles", "token-a", `{"age":33}`)
	env.do(t, http.MethodPost, "/profiles", "token-b", `{"age":41}`)

	if n := len(env.fake.tables["profiles"]); n != 2 {
		t.Fatalf("expected one row per user, got %d", n)
	}

	rec := env.do(t, http.MethodGet, "/profiles/me", "token-b", "")
	var profile map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("profile is not a JSON object: %v", err)
	}
	if profile["age"] != 41.0 {
		t.Errorf("expected user-b's profile, got %v", profile)
	}
}

func TestStoreError_SurfacesVerbatimAs400(t *testing.T) {
	env := newTestEnv(t)
	env.fake.failWith = "column recipes.flavor does not exist"

	rec := env.do(t, http.MethodGet, "/recipes", "token-a", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["error"] != "column recipes.flavor does not exist" {
		t.Errorf("expected the store message verbatim, got %q", body["error"])
	}
}

func TestMissingStoreConfig_SurfacesAs500(t *testing.T) {
	router := New(supabase.NewLazy("", ""))

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Authorization", "Bearer token-a")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for missing configuration, got %d", rec.Code)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allow-origin echo, got %q", got)
	}
}
