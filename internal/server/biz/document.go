package biz

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/mbgplatform/mbg/internal/authz"
	"github.com/mbgplatform/mbg/internal/errs"
	"github.com/mbgplatform/mbg/internal/store"
)

type DocumentServiceParams struct {
	fx.In

	Store *store.Store
	Audit *AuditService
}

func NewDocumentService(params DocumentServiceParams) *DocumentService {
	return &DocumentService{
		AbstractService: &AbstractService{store: params.Store},
		audit:           params.Audit,
	}
}

type DocumentService struct {
	*AbstractService

	audit *AuditService
}

type SubmitDocumentInput struct {
	Title   string `json:"title"`
	DocType string `json:"doc_type"`
}

func (s *DocumentService) Submit(ctx context.Context, in SubmitDocumentInput) (*store.Document, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errs.BadRequestFields("title is required", map[string]string{"title": "required"})
	}

	p, ok := authz.GetPrincipal(ctx)
	if !ok || p.UserID == nil {
		return nil, errs.Unauthorized("authentication required")
	}

	doc := &store.Document{
		Title:       strings.TrimSpace(in.Title),
		DocType:     in.DocType,
		Status:      store.DocumentStatusPending,
		SubmittedBy: *p.UserID,
	}

	if err := s.store.Documents.Create(ctx, doc); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "DOCUMENT_SUBMIT",
		ResourceType: "DOCUMENT",
		ResourceID:   &doc.ID,
		Details:      map[string]any{"title": doc.Title},
	})

	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*store.Document, error) {
	doc, err := s.store.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "document", "")
	}

	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, params store.ListParams) ([]*store.Document, int64, error) {
	docs, total, err := s.store.Documents.List(ctx, params)
	if err != nil {
		return nil, 0, errs.Unexpected(err)
	}

	return docs, total, nil
}

// Review settles a pending submission. Approve or reject is final; a settled
// document cannot be re-reviewed.
func (s *DocumentService) Review(ctx context.Context, id uuid.UUID, approve bool, note string) (*store.Document, error) {
	doc, err := s.store.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "document", "")
	}

	if doc.Status != store.DocumentStatusPending {
		return nil, errs.BadRequest("document already reviewed")
	}

	p, ok := authz.GetPrincipal(ctx)
	if !ok || p.UserID == nil {
		return nil, errs.Unauthorized("authentication required")
	}

	if approve {
		doc.Status = store.DocumentStatusApproved
	} else {
		doc.Status = store.DocumentStatusRejected
	}

	doc.ReviewNote = note
	doc.ReviewedBy = p.UserID

	if err := s.store.Documents.Update(ctx, doc); err != nil {
		return nil, errs.Unexpected(err)
	}

	s.audit.Record(ctx, Entry{
		Action:       "DOCUMENT_REVIEW",
		ResourceType: "DOCUMENT",
		ResourceID:   &doc.ID,
		Details:      map[string]any{"status": doc.Status, "note": note},
	})

	return doc, nil
}
