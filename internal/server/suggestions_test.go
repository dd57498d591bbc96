package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestSuggestionsEndpointTracksSeen(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{suggestions: []string{"q1", "q2"}}
	sessions := &fakeSessionStore{seen: []string{"old question"}}
	e := newTestServer(agent, sessions)

	rec := postJSON(t, e, "/api/agent/suggestions", `{"userId":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp SuggestionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(resp.Questions, []string{"q1", "q2"}) {
		t.Fatalf("questions = %v", resp.Questions)
	}

	// Previously shown questions feed the avoid list; the new ones are
	// recorded for next time.
	if !reflect.DeepEqual(agent.lastAvoid, []string{"old question"}) {
		t.Fatalf("avoid = %v", agent.lastAvoid)
	}
	if !reflect.DeepEqual(sessions.marked, []string{"q1", "q2"}) {
		t.Fatalf("marked = %v", sessions.marked)
	}
}

func TestSuggestionsEndpointSurvivesSessionStoreFailure(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{suggestions: []string{"q1"}}
	sessions := &fakeSessionStore{err: errors.New("redis down")}
	e := newTestServer(agent, sessions)

	rec := postJSON(t, e, "/api/agent/suggestions", `{"userId":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp SuggestionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Questions) != 1 {
		t.Fatalf("questions = %v", resp.Questions)
	}
}

func TestSuggestionsEndpointEmptyListShape(t *testing.T) {
	t.Parallel()
	// First visit: no history, the generator yields nothing. The body must
	// still carry an empty array, never null.
	e := newTestServer(&fakeAgent{}, &fakeSessionStore{})

	for _, path := range []string{"/api/agent/suggestions", "/api/agent/questions"} {
		rec := postJSON(t, e, path, `{"userId":"fresh"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, body = %s", path, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"questions":[]`) {
			t.Fatalf("%s body = %s, want questions to be an empty array", path, rec.Body.String())
		}
	}
}

func TestSuggestionsEndpointValidation(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, &fakeSessionStore{})

	rec := postJSON(t, e, "/api/agent/suggestions", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestQuestionsEndpointUsesClientAvoidList(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{suggestions: []string{"next"}}
	sessions := &fakeSessionStore{seen: []string{"server-side seen"}}
	e := newTestServer(agent, sessions)

	rec := postJSON(t, e, "/api/agent/questions", `{"userId":"u1","usedQuestions":["asked before"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !reflect.DeepEqual(agent.lastAvoid, []string{"asked before"}) {
		t.Fatalf("avoid = %v", agent.lastAvoid)
	}
	// Client-managed mode does not touch the session store.
	if len(sessions.marked) != 0 {
		t.Fatalf("marked = %v", sessions.marked)
	}
}

func TestQuestionsEndpointValidation(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, &fakeSessionStore{})

	rec := postJSON(t, e, "/api/agent/questions", `{"usedQuestions":["x"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
