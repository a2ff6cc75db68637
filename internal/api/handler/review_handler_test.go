package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/N1k3YB/turistic-agency-sub002/internal/core/access"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/domain"
	"github.com/N1k3YB/turistic-agency-sub002/internal/core/ports"
)

type stubReviewService struct {
	ports.ReviewService
	createFn  func(ctx context.Context, s *access.Session, slug string, in ports.CreateReviewInput) (*domain.Review, error)
	listAllFn func(ctx context.Context, s *access.Session, in ports.ListReviewsInput) (ports.Page[*domain.Review], error)
}

func (s *stubReviewService) Create(ctx context.Context, sess *access.Session, slug string, in ports.CreateReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, sess, slug, in)
}

func (s *stubReviewService) ListAll(ctx context.Context, sess *access.Session, in ports.ListReviewsInput) (ports.Page[*domain.Review], error) {
	return s.listAllFn(ctx, sess, in)
}

var adminSess = &access.Session{UserID: "admin-1", Role: domain.RoleAdmin}

func TestReviewHandler_Create_PassesSlugAndSession(t *testing.T) {
	sess := &access.Session{UserID: "u1", Role: domain.RoleUser, Name: "Alice"}
	stub := &stubReviewService{
		createFn: func(_ context.Context, s *access.Session, slug string, in ports.CreateReviewInput) (*domain.Review, error) {
			if s == nil || s.UserID != "u1" {
				t.Fatalf("session not forwarded: %+v", s)
			}
			if slug != "altai-trek" || in.Rating != 5 {
				t.Fatalf("unexpected args: %s %+v", slug, in)
			}
			return &domain.Review{ID: "r1", TourID: "t1", UserID: s.UserID, AuthorName: s.Name, Rating: in.Rating, Comment: in.Comment}, nil
		},
	}
	h := NewReviewHandler(stub)

	rec, err := call(h.Create, http.MethodPost, "/api/tours/altai-trek/reviews",
		`{"rating":5,"comment":"Unforgettable mountains"}`, sess, "slug", "altai-trek")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["isApproved"] != false || resp["authorName"] != "Alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReviewHandler_ListAll_ParsesApprovedFilter(t *testing.T) {
	var got ports.ListReviewsInput
	stub := &stubReviewService{
		listAllFn: func(_ context.Context, _ *access.Session, in ports.ListReviewsInput) (ports.Page[*domain.Review], error) {
			got = in
			q := in.PageQuery.Normalize()
			return ports.NewPage([]*domain.Review{{ID: "r2"}}, 21, q), nil
		},
	}
	h := NewReviewHandler(stub)

	rec, err := call(h.ListAll, http.MethodGet, "/api/admin/reviews?approved=false&page=2&limit=20", "", adminSess)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Approved == nil || *got.Approved {
		t.Fatalf("expected approved=false filter, got %+v", got.Approved)
	}
	if got.Page != 2 || got.Limit != 20 {
		t.Fatalf("unexpected paging: %+v", got.PageQuery)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(21) || resp["totalPages"] != float64(2) || resp["page"] != float64(2) {
		t.Fatalf("unexpected page envelope: %+v", resp)
	}
}

func TestReviewHandler_ListAll_NoFilterListsBoth(t *testing.T) {
	stub := &stubReviewService{
		listAllFn: func(_ context.Context, _ *access.Session, in ports.ListReviewsInput) (ports.Page[*domain.Review], error) {
			if in.Approved != nil {
				t.Fatalf("expected no filter, got %v", *in.Approved)
			}
			return ports.NewPage[*domain.Review](nil, 0, in.PageQuery.Normalize()), nil
		},
	}
	h := NewReviewHandler(stub)

	rec, err := call(h.ListAll, http.MethodGet, "/api/admin/reviews", "", adminSess)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	items, ok := resp["items"].([]any)
	if !ok || len(items) != 0 {
		t.Fatalf("expected empty items array, got %+v", resp["items"])
	}
}

func TestReviewHandler_ListAll_RejectsBadFilter(t *testing.T) {
	stub := &stubReviewService{
		listAllFn: func(context.Context, *access.Session, ports.ListReviewsInput) (ports.Page[*domain.Review], error) {
			t.Fatalf("should not be called")
			return ports.Page[*domain.Review]{}, nil
		},
	}
	h := NewReviewHandler(stub)

	_, err := call(h.ListAll, http.MethodGet, "/api/admin/reviews?approved=maybe", "", adminSess)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
