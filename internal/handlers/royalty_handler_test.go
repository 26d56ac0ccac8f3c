package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/neo-social/neo_server/internal/lineage"
)

type royaltyResponse struct {
	Data struct {
		VideoID        uuid.UUID          `json:"video_id"`
		Shares         map[string]float64 `json:"shares"`
		OwnerRemainder float64            `json:"owner_remainder"`
	} `json:"data"`
}

func getRoyalties(t *testing.T, ryh *RoyaltyHandler, videoID string) (*httptest.ResponseRecorder, royaltyResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+videoID+"/royalties", nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", videoID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	ryh.HandlerGetRoyaltyShares(rec, req)

	var resp royaltyResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode royalty response: %v", err)
		}
	}
	return rec, resp
}

func newRoyaltyHandler(graph *lineage.Graph) *RoyaltyHandler {
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime)
	return NewRoyaltyHandler(lineage.NewDistributor(graph), logger)
}

func TestHandlerGetRoyaltyShares(t *testing.T) {
	root, mid, leaf := uuid.New(), uuid.New(), uuid.New()
	graph := lineage.NewGraph(0)
	graph.AddVideo(root)
	graph.AddVideo(mid)
	graph.AddVideo(leaf)
	now := time.Now()
	if err := graph.AddEdge(root, mid, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := graph.AddEdge(mid, leaf, 10, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, resp := getRoyalties(t, newRoyaltyHandler(graph), leaf.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Data.Shares[mid.String()] != 10 {
		t.Fatalf("expected parent share 10, got %v", resp.Data.Shares[mid.String()])
	}
	if resp.Data.Shares[root.String()] != 1 {
		t.Fatalf("expected grandparent share 1, got %v", resp.Data.Shares[root.String()])
	}
	if resp.Data.OwnerRemainder != 89 {
		t.Fatalf("expected owner remainder 89, got %v", resp.Data.OwnerRemainder)
	}
}

func TestHandlerGetRoyaltySharesRootVideo(t *testing.T) {
	root := uuid.New()
	graph := lineage.NewGraph(0)
	graph.AddVideo(root)

	rec, resp := getRoyalties(t, newRoyaltyHandler(graph), root.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(resp.Data.Shares) != 0 {
		t.Fatalf("expected empty shares for root, got %v", resp.Data.Shares)
	}
	if resp.Data.OwnerRemainder != 100 {
		t.Fatalf("expected remainder 100, got %v", resp.Data.OwnerRemainder)
	}
}

func TestHandlerGetRoyaltySharesErrors(t *testing.T) {
	ryh := newRoyaltyHandler(lineage.NewGraph(0))

	if rec, _ := getRoyalties(t, ryh, "not-a-uuid"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
	if rec, _ := getRoyalties(t, ryh, uuid.New().String()); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown video, got %d", rec.Code)
	}
}
