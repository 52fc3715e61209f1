package plan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tanklogix/loadplan/core/model"
	coreplan "github.com/tanklogix/loadplan/core/plan"
)

type stubService struct {
	res model.PlanResult
	err error
	got coreplan.Request
}

func (s *stubService) PlanFromRequest(_ context.Context, req coreplan.Request, _ string) (model.PlanResult, error) {
	s.got = req
	return s.res, s.err
}

func TestPlanHandler(t *testing.T) {
	svc := &stubService{res: model.PlanResult{FeasibleGallons: 4200, PayloadLbs: 30000}}
	h := NewPlanHandler(svc)

	body := `{"trailer_id":"trl-07","assignments":{"1":{"product_id":"regular-87"}},"bias_slider":0.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.got.TrailerID != "trl-07" {
		t.Fatalf("request not decoded: %+v", svc.got)
	}
	if svc.got.Assignments[1].ProductID != "regular-87" {
		t.Fatalf("assignments not decoded: %+v", svc.got.Assignments)
	}
	if !strings.Contains(rr.Body.String(), "4200") {
		t.Fatalf("result not encoded: %s", rr.Body.String())
	}
}

func TestPlanHandlerRejectsBadMethod(t *testing.T) {
	h := NewPlanHandler(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestPlanHandlerRejectsBadJSON(t *testing.T) {
	h := NewPlanHandler(&stubService{})
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestPlanHandlerServiceError(t *testing.T) {
	h := NewPlanHandler(&stubService{err: errors.New("unknown trailer")})
	req := httptest.NewRequest(http.MethodPost, "/api/plan", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rr.Code)
	}
}
