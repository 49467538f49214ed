package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/snakecharmers/boabot/common"
	"github.com/snakecharmers/boabot/db"
	"github.com/snakecharmers/boabot/model"
	"github.com/snakecharmers/boabot/ticket"
	"github.com/snakecharmers/boabot/webserver/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*gin.Engine, *ticket.Registry) {
	t.Helper()
	db.InitDB(t.TempDir())
	registry, err := ticket.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return router.New(registry), registry
}

func get(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	engine, _ := newTestServer(t)
	w := get(t, engine, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"SUCCESS"`) {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestGetQueue(t *testing.T) {
	engine, registry := newTestServer(t)
	for _, user := range []string{"7", "9"} {
		if _, err := registry.Create(user); err != nil {
			t.Fatalf("create %v: %v", user, err)
		}
	}
	if err := registry.Update("7", func(tk *model.Ticket) {
		tk.Answers["q1"] = model.TextAnswer("hello")
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	w := get(t, engine, "/api/queue")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code string
		Data struct {
			Queue []struct {
				Requester string
				Position  int
				Answered  int
			}
		}
	}
	if err := jsoniter.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "SUCCESS" || len(resp.Data.Queue) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	first := resp.Data.Queue[0]
	if first.Position != 0 || first.Answered != 1 {
		t.Fatalf("unexpected first item %+v", first)
	}
	if first.Requester != common.StringToUUID5("7") {
		t.Fatalf("requester must be anonymized, got %q", first.Requester)
	}
	if strings.Contains(w.Body.String(), `"7"`) {
		t.Fatal("raw user ids must not leave the process")
	}
}

func TestGetFeed(t *testing.T) {
	engine, registry := newTestServer(t)
	if _, err := registry.Create("7"); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := get(t, engine, "/api/feed")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<rss") {
		t.Fatalf("expected rss by default, got %d: %s", w.Code, w.Body.String())
	}
	w = get(t, engine, "/api/feed?format=atom")
	if !strings.Contains(w.Body.String(), "<feed") {
		t.Fatalf("expected atom feed, got %s", w.Body.String())
	}
	w = get(t, engine, "/api/feed?format=json")
	if !strings.Contains(w.Body.String(), "BOA request queue") {
		t.Fatalf("expected json feed, got %s", w.Body.String())
	}
	w = get(t, engine, "/api/feed?format=carrier-pigeon")
	if !strings.Contains(w.Body.String(), `"FAIL"`) {
		t.Fatalf("expected failure envelope, got %s", w.Body.String())
	}
}
