package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/abhishekagarwal777/resume-analyzer/internal/apperrors"
	"github.com/abhishekagarwal777/resume-analyzer/internal/models"
)

type AnalysisRepository interface {
	Create(ctx context.Context, record *models.ResumeAnalysis) error
	FindAll(ctx context.Context) ([]models.AnalysisSummary, error)
	FindByID(ctx context.Context, id uint) (*models.ResumeAnalysis, error)
	DeleteByID(ctx context.Context, id uint) (*models.AnalysisSummary, error)
	Stats(ctx context.Context) (*models.AnalysisStats, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, record *models.ResumeAnalysis) error {
	const op = "AnalysisRepository.Create"

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return mapStorageError(op, err)
	}
	return nil
}

func (r *analysisRepository) FindAll(ctx context.Context) ([]models.AnalysisSummary, error) {
	const op = "AnalysisRepository.FindAll"

	var records []models.ResumeAnalysis
	err := r.db.WithContext(ctx).
		Select("id", "file_name", "uploaded_at", "name", "email", "resume_rating", "improvement_areas").
		Order("uploaded_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, mapStorageError(op, err)
	}

	summaries := make([]models.AnalysisSummary, 0, len(records))
	for i := range records {
		summaries = append(summaries, models.NewSummary(&records[i]))
	}
	return summaries, nil
}

func (r *analysisRepository) FindByID(ctx context.Context, id uint) (*models.ResumeAnalysis, error) {
	const op = "AnalysisRepository.FindByID"

	var record models.ResumeAnalysis
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, mapStorageError(op, err)
	}
	return &record, nil
}

func (r *analysisRepository) DeleteByID(ctx context.Context, id uint) (*models.AnalysisSummary, error) {
	const op = "AnalysisRepository.DeleteByID"

	record, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Delete(&models.ResumeAnalysis{}, id)
	if result.Error != nil {
		return nil, mapStorageError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.E(apperrors.CodeNotFound, op, "Resume not found.", nil)
	}

	summary := models.NewSummary(record)
	return &summary, nil
}

func (r *analysisRepository) Stats(ctx context.Context) (*models.AnalysisStats, error) {
	const op = "AnalysisRepository.Stats"

	var stats models.AnalysisStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_resumes,
			COALESCE(ROUND(AVG(resume_rating)::numeric, 2), 0) AS avg_rating,
			COALESCE(MAX(resume_rating), 0) AS max_rating,
			COALESCE(MIN(resume_rating), 0) AS min_rating,
			COUNT(*) FILTER (WHERE resume_rating >= 8) AS high_rated_count,
			COUNT(*) FILTER (WHERE resume_rating BETWEEN 5 AND 7) AS medium_rated_count,
			COUNT(*) FILTER (WHERE resume_rating < 5) AS low_rated_count
		FROM resume_analyses
	`).Scan(&stats).Error
	if err != nil {
		return nil, mapStorageError(op, err)
	}

	return &stats, nil
}

// mapStorageError translates gorm/driver failures into the typed taxonomy.
// Anything that is not a recognizable row-level error is treated as a
// storage outage (pool exhaustion, connectivity, capacity).
func mapStorageError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.E(apperrors.CodeNotFound, op, "Resume not found.", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.E(apperrors.CodeConflict, op, "A conflicting record already exists.", err)
		case "23514": // check_violation
			return apperrors.E(apperrors.CodeInvalidArgument, op, "The record violates a storage constraint.", err)
		}
	}

	return apperrors.E(apperrors.CodeUnavailable, op, "The database is temporarily unavailable. Please try again later.", err)
}
