package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/equivalent/equivalent"
	"github.com/scienceol/equivalents/pkg/core/reagent/catalog"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/trace"
	"github.com/scienceol/equivalents/pkg/repo/library"
	"github.com/scienceol/equivalents/pkg/repo/lock"
)

const seed = `[
  {"name": "tetracycline", "category": "solid", "molar mass": 444.43, "image": ""},
  {"name": "pyridine", "category": "liquid", "molar mass": 79.10, "density": 0.98, "image": ""}
]`

type envelope struct {
	Code  code.ErrCode    `json:"code"`
	Msg   string          `json:"msg"`
	Field string          `json:"field"`
	Data  json.RawMessage `json:"data"`
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.New(context.Background(), library.New(path), lock.NewLocal())
	if err != nil {
		t.Fatal(err)
	}
	g := gin.New()
	NewRouter(g, &Services{Reagent: c, Equivalent: equivalent.New(c)})
	return g
}

func do(t *testing.T, g *gin.Engine, method, target, body string) (int, *envelope) {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, r)
	env := &envelope{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), env); err != nil {
			t.Fatalf("decode %s: %v", w.Body.String(), err)
		}
	}
	return w.Code, env
}

func TestReagentRoutes(t *testing.T) {
	g := newEngine(t)

	status, env := do(t, g, http.MethodGet, "/api/v1/reagent/list", "")
	if status != http.StatusOK || env.Code != code.Success {
		t.Fatalf("list: %d %+v", status, env)
	}
	var list []map[string]any
	if err := json.Unmarshal(env.Data, &list); err != nil || len(list) != 2 {
		t.Fatalf("list data = %s", env.Data)
	}
	if list[1]["unit"] != "mL" || list[1]["density"] != 0.98 {
		t.Fatalf("pyridine = %v", list[1])
	}

	status, env = do(t, g, http.MethodGet, "/api/v1/reagent?name=tetracycline", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"unit":"g"`) {
		t.Fatalf("get: %d %s", status, env.Data)
	}

	status, env = do(t, g, http.MethodGet, "/api/v1/reagent?name=nonexistent", "")
	if status != http.StatusNotFound || env.Code != code.ReagentNotFound {
		t.Fatalf("missing: %d %+v", status, env)
	}

	status, env = do(t, g, http.MethodGet, "/api/v1/reagent", "")
	if status != http.StatusBadRequest || env.Code != code.ParamErr {
		t.Fatalf("no name: %d %+v", status, env)
	}
}

func TestCreateReagent(t *testing.T) {
	g := newEngine(t)

	status, env := do(t, g, http.MethodPost, "/api/v1/reagent/create",
		`{"name": "triethylamine", "category": "liquid", "molar_mass": 101.19}`)
	if status != http.StatusBadRequest || env.Code != code.ValidationErr || env.Field != "density" {
		t.Fatalf("no density: %d %+v", status, env)
	}

	status, env = do(t, g, http.MethodPost, "/api/v1/reagent/create",
		`{"name": "triethylamine", "category": "liquid", "molar_mass": 101.19, "density": 0.73}`)
	if status != http.StatusOK || env.Code != code.Success {
		t.Fatalf("create: %d %+v", status, env)
	}

	status, env = do(t, g, http.MethodPost, "/api/v1/reagent/create",
		`{"name": "triethylamine", "category": "liquid", "molar_mass": 101.19, "density": 0.73}`)
	if status != http.StatusConflict || env.Code != code.ReagentExist {
		t.Fatalf("duplicate: %d %+v", status, env)
	}

	status, env = do(t, g, http.MethodPost, "/api/v1/reagent/create", `{"name": `)
	if status != http.StatusBadRequest || env.Code != code.ParamErr {
		t.Fatalf("broken body: %d %+v", status, env)
	}
}

func TestCalculate(t *testing.T) {
	g := newEngine(t)

	status, env := do(t, g, http.MethodPost, "/api/v1/equivalent/calculate",
		`{"limiting": {"name": "tetracycline", "amount": 1.75}, "reagents": [{"name": "pyridine", "eq": 2}]}`)
	if status != http.StatusOK {
		t.Fatalf("calculate: %d %+v", status, env)
	}
	resp := struct {
		Report string `json:"report"`
	}{}
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Report != "For 1.75 g of tetracycline, measure:\n\n0.64 mL of pyridine (2.0 eq)" {
		t.Fatalf("report = %q", resp.Report)
	}

	status, env = do(t, g, http.MethodPost, "/api/v1/equivalent/calculate",
		`{"limiting": {"name": "tetracycline", "amount": 1.75}, "reagents": [{"name": "pyridine", "eq": -2}]}`)
	if status != http.StatusBadRequest || env.Code != code.InvalidQuantity {
		t.Fatalf("negative eq: %d %+v", status, env)
	}

	status, env = do(t, g, http.MethodPost, "/api/v1/equivalent/calculate",
		`{"limiting": {"name": "unobtainium", "amount": 1}, "reagents": [{"name": "pyridine", "eq": 1}]}`)
	if status != http.StatusNotFound || env.Code != code.ReagentNotFound {
		t.Fatalf("unknown: %d %+v", status, env)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	g := newEngine(t)

	for _, p := range []string{"/api/health", "/api/health/live", "/api/health/ready"} {
		w := httptest.NewRecorder()
		g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", p, w.Code, w.Body.String())
		}
	}

	do(t, g, http.MethodPost, "/api/v1/equivalent/calculate",
		`{"limiting": {"name": "tetracycline", "amount": 1}, "reagents": [{"name": "pyridine", "eq": 1}]}`)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "equivalents_calculations_total") {
		t.Fatalf("metrics: %d %s", w.Code, w.Body.String())
	}
}

func TestRequestLogCarriesTraceID(t *testing.T) {
	if err := trace.InitTrace(context.Background(), &trace.InitConfig{ServiceName: "equivalents-test"}); err != nil {
		t.Fatal(err)
	}
	defer trace.CloseTrace()
	logPath := filepath.Join(t.TempDir(), "info.log")
	logger.Init(&logger.LogConfig{Path: logPath, LogLevel: "info"})

	g := newEngine(t)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reagent/list", nil))
	logger.Close()
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range strings.Split(string(b), "\n") {
		if !strings.Contains(line, "/api/v1/reagent/list") {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if id, _ := entry["trace_id"].(string); len(id) != 32 {
			t.Fatalf("request log line without trace id: %s", line)
		}
		return
	}
	t.Fatalf("no request log line in %s", b)
}
