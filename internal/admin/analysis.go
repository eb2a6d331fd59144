package admin

import (
	"context"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
)

// AnalysisRequestPage is one page of analysis requests plus the unpaged total.
type AnalysisRequestPage struct {
	Requests []domain.AnalysisRequest `json:"requests"`
	Total    int                      `json:"total"`
}

func (s *Service) ListAnalysisRequests(ctx context.Context, params ListParams) (*AnalysisRequestPage, error) {
	params = params.Normalize()
	requests, err := s.analysis.FindAll(ctx, params)
	if err != nil {
		return nil, apperrors.Wrap(err, "list analysis requests")
	}
	total, err := s.analysis.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "count analysis requests")
	}
	return &AnalysisRequestPage{Requests: requests, Total: total}, nil
}

func (s *Service) GetAnalysisRequest(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	return s.analysis.FindByID(ctx, id)
}

// UpdateAnalysisStatus moves a request to the given status. The status
// string is matched case-insensitively; unknown values are rejected.
func (s *Service) UpdateAnalysisStatus(ctx context.Context, id uuid.UUID, status string) (*domain.AnalysisRequest, error) {
	parsed, err := domain.ParseAnalysisRequestStatus(status)
	if err != nil {
		return nil, err
	}
	req, err := s.analysis.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Status = parsed
	if err := s.analysis.Update(ctx, req); err != nil {
		return nil, apperrors.Wrap(err, "update analysis request status")
	}
	return req, nil
}

// RefreshAnalysisResult re-fetches the result from the external analysis
// service and stores it on the request. When the request never got an
// external analysis id, its own id is used as the lookup key. An empty
// upstream response surfaces as ErrNoAnalysisResult.
func (s *Service) RefreshAnalysisResult(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	req, err := s.analysis.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lookupID := req.ID.String()
	if req.AnalysisID != nil && *req.AnalysisID != "" {
		lookupID = *req.AnalysisID
	}

	result, err := s.analysisClient.FetchResult(ctx, lookupID)
	if err != nil {
		s.logger.Error("Analysis result fetch failed", map[string]interface{}{
			"request_id":  id.String(),
			"analysis_id": lookupID,
			"error":       err.Error(),
		})
		return nil, err
	}
	if len(result) == 0 {
		return nil, apperrors.ErrNoAnalysisResult
	}

	req.AnalysisResult = result
	if err := s.analysis.Update(ctx, req); err != nil {
		return nil, apperrors.Wrap(err, "store analysis result")
	}
	return req, nil
}
