package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type ReportSectionRepository struct {
	db *sqlx.DB
}

func NewReportSectionRepository(db *sqlx.DB) *ReportSectionRepository {
	return &ReportSectionRepository{db: db}
}

const reportSectionColumns = `
	id, title, description, access_tier, display_order, is_active,
	created_at, updated_at`

func (r *ReportSectionRepository) FindAll(ctx context.Context) ([]domain.ReportSection, error) {
	sections := []domain.ReportSection{}
	query := `SELECT` + reportSectionColumns + ` FROM report_sections ORDER BY display_order`

	err := r.db.SelectContext(ctx, &sections, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list report sections")
	}
	return sections, nil
}

func (r *ReportSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportSection, error) {
	var section domain.ReportSection
	query := `SELECT` + reportSectionColumns + ` FROM report_sections WHERE id = $1`

	err := r.db.GetContext(ctx, &section, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSectionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find report section")
	}
	return &section, nil
}

func (r *ReportSectionRepository) Create(ctx context.Context, section *domain.ReportSection) error {
	query := `
		INSERT INTO report_sections (
			id, title, description, access_tier, display_order, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		section.ID, section.Title, section.Description, section.AccessTier,
		section.DisplayOrder, section.IsActive,
	).Scan(&section.CreatedAt, &section.UpdatedAt)
	return errors.Wrap(err, "failed to create report section")
}

func (r *ReportSectionRepository) Update(ctx context.Context, section *domain.ReportSection) error {
	query := `
		UPDATE report_sections SET
			title = $1, description = $2, access_tier = $3,
			display_order = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		section.Title, section.Description, section.AccessTier,
		section.DisplayOrder, section.IsActive, section.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update report section")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrSectionNotFound
	}
	return nil
}

func (r *ReportSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM report_sections WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete report section")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrSectionNotFound
	}
	return nil
}

type ReportDocumentRepository struct {
	db *sqlx.DB
}

func NewReportDocumentRepository(db *sqlx.DB) *ReportDocumentRepository {
	return &ReportDocumentRepository{db: db}
}

const reportDocumentColumns = `
	id, section_id, file_name, content_type, file_size, file_content,
	uploaded_by, created_at`

func (r *ReportDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportDocument, error) {
	var doc domain.ReportDocument
	query := `SELECT` + reportDocumentColumns + ` FROM report_documents WHERE id = $1`

	err := r.db.GetContext(ctx, &doc, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrDocumentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find report document")
	}
	return &doc, nil
}

// FindBySection lists a section's documents without their file payloads;
// downloads fetch the content by id.
func (r *ReportDocumentRepository) FindBySection(ctx context.Context, sectionID uuid.UUID) ([]domain.ReportDocument, error) {
	docs := []domain.ReportDocument{}
	query := `
		SELECT id, section_id, file_name, content_type, file_size,
			'' AS file_content, uploaded_by, created_at
		FROM report_documents WHERE section_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &docs, query, sectionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list report documents")
	}
	return docs, nil
}

func (r *ReportDocumentRepository) CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM report_documents WHERE section_id = $1`, sectionID)
	return count, errors.Wrap(err, "failed to count report documents")
}

func (r *ReportDocumentRepository) Create(ctx context.Context, doc *domain.ReportDocument) error {
	query := `
		INSERT INTO report_documents (
			id, section_id, file_name, content_type, file_size, file_content,
			uploaded_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.SectionID, doc.FileName, doc.ContentType,
		doc.FileSize, doc.FileContent, doc.UploadedBy,
	).Scan(&doc.CreatedAt)
	return errors.Wrap(err, "failed to create report document")
}

func (r *ReportDocumentRepository) Update(ctx context.Context, doc *domain.ReportDocument) error {
	query := `
		UPDATE report_documents SET
			file_name = $1, content_type = $2, file_size = $3,
			file_content = $4, uploaded_by = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		doc.FileName, doc.ContentType, doc.FileSize,
		doc.FileContent, doc.UploadedBy, doc.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update report document")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrDocumentNotFound
	}
	return nil
}

func (r *ReportDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM report_documents WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete report document")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrDocumentNotFound
	}
	return nil
}

func (r *ReportDocumentRepository) DeleteBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM report_documents WHERE section_id = $1`, sectionID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete report documents")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
