package services

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "sheetlens/internal/errors"
	"sheetlens/internal/infrastructure"
	"sheetlens/pkg/contracts/domain"
)

// FileService accepts workbook uploads
type FileService struct {
	store     FileStore
	reader    WorkbookReader
	validator UploadValidator
	metrics   *infrastructure.AnalysisMetrics
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewFileService creates an upload service
func NewFileService(store FileStore, reader WorkbookReader, validator UploadValidator, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *FileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileService{
		store:     store,
		reader:    reader,
		validator: validator,
		metrics:   metrics,
		tracer:    otel.Tracer(TracerName),
		logger:    logger.With(slog.String("component", "file_service")),
	}
}

// Upload validates and stores one workbook. The stored file must open as a
// workbook; otherwise it is removed again and the open error is returned.
func (s *FileService) Upload(ctx context.Context, name string, size int64, r io.Reader) (*domain.FileUpload, error) {
	ctx, span := s.tracer.Start(ctx, "files.upload",
		trace.WithAttributes(
			attribute.String("file.name", name),
			attribute.Int64("file.size", size),
		))
	defer span.End()

	if err := s.validator.ValidateUpload(name, size); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	body, err := s.validator.SniffContent(r)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	stored, err := s.store.Save(ctx, name, body)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "failed to store upload",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(attribute.String("file.id", stored.ID))

	sheets, err := s.reader.Sheets(stored.Path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "upload is not a readable workbook",
			slog.String("file_id", stored.ID),
			slog.String("file", name),
			slog.String("error", err.Error()))
		if delErr := s.store.Delete(stored.ID); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to remove rejected upload",
				slog.String("file_id", stored.ID),
				slog.String("error", delErr.Error()))
		}
		return nil, err
	}

	s.metrics.RecordUpload(ctx, stored.Size)
	s.logger.InfoContext(ctx, "upload accepted",
		slog.String("file_id", stored.ID),
		slog.String("file", name),
		slog.Int64("size_bytes", stored.Size),
		slog.Int("sheets", len(sheets)))

	return &domain.FileUpload{
		FileID:       stored.ID,
		OriginalName: name,
		SizeBytes:    stored.Size,
	}, nil
}

// Delete removes a stored upload. Unknown ids yield a NotFound error.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	ctx, span := s.tracer.Start(ctx, "files.delete",
		trace.WithAttributes(attribute.String("file.id", fileID)))
	defer span.End()

	if err := s.store.Delete(fileID); err != nil {
		infrastructure.RecordError(ctx, err)
		if errors.Is(err, apperrors.ErrNotFoundKind) {
			return err
		}
		s.logger.ErrorContext(ctx, "failed to delete upload",
			slog.String("file_id", fileID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
