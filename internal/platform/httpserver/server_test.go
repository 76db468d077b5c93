package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	documentationservice "eventmesh/contexts/mesh-core/documentation-service"
	meshhttp "eventmesh/contexts/mesh-core/documentation-service/transport/http"
)

func newTestServer(t *testing.T) (*httptest.Server, documentationservice.Module) {
	t.Helper()
	module := documentationservice.NewInMemoryModule(nil, nil)
	server := httptest.NewServer(New(module, nil, "").Mux())
	t.Cleanup(server.Close)
	return server, module
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func putJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func publishEvent(t *testing.T, baseURL string, req meshhttp.PublishEventRequest) meshhttp.EventDTO {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/mesh/v1/events", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("publish %s: status %d", req.EventName, resp.StatusCode)
	}
	var event meshhttp.EventDTO
	decodeBody(t, resp, &event)
	return event
}

func TestPublishAndGetEvent(t *testing.T) {
	server, module := newTestServer(t)

	published := publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		EventName: "widget.created",
		Source:    "widget_wizard",
		Payload:   json.RawMessage(`{"widgetId":"w1"}`),
		Metadata:  &meshhttp.EventMetadataDTO{UserID: "u1", SessionID: "s1", Environment: "prod"},
	})
	if published.ID == "" {
		t.Fatalf("expected a generated event id")
	}
	if !published.ShouldDocument {
		t.Fatalf("widget.created should be auto-marked documentable")
	}
	if published.Timestamp == 0 {
		t.Fatalf("expected a server-assigned timestamp")
	}

	resp, err := http.Get(server.URL + "/api/mesh/v1/events/" + published.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get event: status %d", resp.StatusCode)
	}
	var fetched meshhttp.EventDTO
	decodeBody(t, resp, &fetched)
	if fetched.ID != published.ID || fetched.EventName != "widget.created" {
		t.Fatalf("unexpected event: %+v", fetched)
	}
	if fetched.Metadata == nil || fetched.Metadata.UserID != "u1" {
		t.Fatalf("metadata lost on the wire: %+v", fetched.Metadata)
	}

	stored, err := module.Store.GetEvent(context.Background(), published.ID)
	if err != nil {
		t.Fatalf("event missing from backing store: %v", err)
	}
	if stored.EventName != "widget.created" {
		t.Fatalf("unexpected stored event: %+v", stored)
	}
}

func TestPublishRejectsMissingEventName(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/mesh/v1/events", meshhttp.PublishEventRequest{Source: "wizard"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body meshhttp.ErrorResponse
	decodeBody(t, resp, &body)
	if body.Code != "invalid_request" {
		t.Fatalf("unexpected error code %q", body.Code)
	}
}

func TestPublishDuplicateIDConflicts(t *testing.T) {
	server, _ := newTestServer(t)

	first := meshhttp.PublishEventRequest{ID: "evt-1", EventName: "widget.created"}
	if resp := postJSON(t, server.URL+"/api/mesh/v1/events", first); resp.StatusCode != http.StatusOK {
		t.Fatalf("first publish: status %d", resp.StatusCode)
	}

	resp := postJSON(t, server.URL+"/api/mesh/v1/events", first)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetUnknownEventReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/mesh/v1/events/ghost")
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body meshhttp.ErrorResponse
	decodeBody(t, resp, &body)
	if body.Code != "event_not_found" {
		t.Fatalf("unexpected error code %q", body.Code)
	}
}

func TestUpdateOutcomeRoundtrip(t *testing.T) {
	server, _ := newTestServer(t)

	published := publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		EventName:  "automation.triggered",
		UserIntent: &meshhttp.UserIntentDTO{Goal: "automate deploys"},
	})

	resp := postJSON(t, server.URL+"/api/mesh/v1/events/"+published.ID+"/outcome", meshhttp.UpdateOutcomeRequest{
		Outcome:      "deploy pipeline live",
		ImpactMetric: "deploy time cut by 40%",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update outcome: status %d", resp.StatusCode)
	}
	var updated meshhttp.EventDTO
	decodeBody(t, resp, &updated)
	if updated.Context == nil || updated.Context.Outcome != "deploy pipeline live" {
		t.Fatalf("outcome not reflected: %+v", updated.Context)
	}
	if updated.UserIntent == nil || updated.UserIntent.ImpactMetric != "deploy time cut by 40%" {
		t.Fatalf("impact metric not reflected: %+v", updated.UserIntent)
	}
}

func TestUpdateOutcomeUnknownEventReturns404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/mesh/v1/events/ghost/outcome", meshhttp.UpdateOutcomeRequest{Outcome: "done"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestNarrativeLifecycle(t *testing.T) {
	server, _ := newTestServer(t)

	published := publishEvent(t, server.URL, meshhttp.PublishEventRequest{EventName: "widget.created"})
	narrativeURL := server.URL + "/api/mesh/v1/events/" + published.ID + "/narrative"

	if resp, err := http.Get(narrativeURL); err != nil {
		t.Fatalf("get narrative: %v", err)
	} else if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 before first save, got %d", resp.StatusCode)
	}

	description := "how the first widget shipped"
	resp := putJSON(t, narrativeURL, meshhttp.SaveNarrativeRequest{LongDescription: &description})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save narrative: status %d", resp.StatusCode)
	}
	var saved meshhttp.NarrativeDTO
	decodeBody(t, resp, &saved)
	if saved.ID == "" || saved.EventID != published.ID {
		t.Fatalf("unexpected narrative identity: %+v", saved)
	}
	if saved.CreatedAt == "" || saved.UpdatedAt == "" {
		t.Fatalf("timestamps missing on the wire: %+v", saved)
	}

	summary := "shipped"
	resp = putJSON(t, narrativeURL, meshhttp.SaveNarrativeRequest{AISummary: &summary})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second save: status %d", resp.StatusCode)
	}
	var patched meshhttp.NarrativeDTO
	decodeBody(t, resp, &patched)
	if patched.ID != saved.ID {
		t.Fatalf("narrative id changed across saves: %q vs %q", patched.ID, saved.ID)
	}
	if patched.LongDescription != description {
		t.Fatalf("unpatched field lost: %+v", patched)
	}
	if patched.AISummary != "shipped" {
		t.Fatalf("patch not applied: %+v", patched)
	}

	getResp, err := http.Get(narrativeURL)
	if err != nil {
		t.Fatalf("get narrative: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get narrative: status %d", getResp.StatusCode)
	}
	var fetched meshhttp.NarrativeDTO
	decodeBody(t, getResp, &fetched)
	if fetched.AISummary != "shipped" || fetched.LongDescription != description {
		t.Fatalf("stored narrative diverges from last save: %+v", fetched)
	}
}

func TestEventHistoryFlatScanFilters(t *testing.T) {
	server, _ := newTestServer(t)

	timestamps := map[string]int64{"e1": 100, "e2": 200, "e3": 300}
	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "e1", EventName: "widget.created", Source: "wizard", Timestamp: int64Ref(timestamps["e1"]),
	})
	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "e2", EventName: "widget.created", Source: "importer", Timestamp: int64Ref(timestamps["e2"]),
	})
	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "e3", EventName: "error.occurred", Source: "wizard", Timestamp: int64Ref(timestamps["e3"]),
	})

	resp, err := http.Get(server.URL + "/api/mesh/v1/events/history?event_name=widget.created&source=wizard")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status %d", resp.StatusCode)
	}
	var items []meshhttp.EventDTO
	decodeBody(t, resp, &items)
	if len(items) != 1 || items[0].ID != "e1" {
		t.Fatalf("expected only e1, got %+v", items)
	}
}

func TestEventHistoryTraversal(t *testing.T) {
	server, _ := newTestServer(t)

	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "a", EventName: "widget.created", Timestamp: int64Ref(100),
		Context: &meshhttp.EventContextDTO{RelatedEvents: []string{"b"}},
	})
	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "b", EventName: "automation.triggered", Timestamp: int64Ref(200),
		Context: &meshhttp.EventContextDTO{RelatedEvents: []string{"c", "ghost"}},
	})
	publishEvent(t, server.URL, meshhttp.PublishEventRequest{
		ID: "c", EventName: "workflow.completed", Timestamp: int64Ref(300),
	})

	historyURL := server.URL + "/api/mesh/v1/events/history?event_id=a&include_related=true"
	resp, err := http.Get(historyURL)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: status %d", resp.StatusCode)
	}
	var items []meshhttp.EventDTO
	decodeBody(t, resp, &items)
	if len(items) != 3 {
		t.Fatalf("expected the full chain, got %+v", items)
	}
	for i, wantID := range []string{"a", "b", "c"} {
		if items[i].ID != wantID {
			t.Fatalf("position %d: expected %s, got %s", i, wantID, items[i].ID)
		}
	}

	resp, err = http.Get(historyURL + "&max_depth=1")
	if err != nil {
		t.Fatalf("bounded history: %v", err)
	}
	var bounded []meshhttp.EventDTO
	decodeBody(t, resp, &bounded)
	if len(bounded) != 2 || bounded[0].ID != "a" || bounded[1].ID != "b" {
		t.Fatalf("expected a,b at depth 1, got %+v", bounded)
	}
}

func TestEventHistoryRejectsMalformedParams(t *testing.T) {
	server, _ := newTestServer(t)

	cases := []string{
		"start_time=yesterday",
		"end_time=tomorrow",
		"max_depth=-1",
		"max_depth=0",
		"max_depth=lots",
		"include_related=maybe",
	}
	for _, params := range cases {
		resp, err := http.Get(fmt.Sprintf("%s/api/mesh/v1/events/history?%s", server.URL, params))
		if err != nil {
			t.Fatalf("history %s: %v", params, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("params %q: expected 400, got %d", params, resp.StatusCode)
		}
	}
}

func int64Ref(v int64) *int64 {
	return &v
}
