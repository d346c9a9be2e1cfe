package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/syneepse/ResumeFix/internal/auth"
	"github.com/syneepse/ResumeFix/internal/events"
	"github.com/syneepse/ResumeFix/internal/extraction"
	"github.com/syneepse/ResumeFix/internal/logger"
	"github.com/syneepse/ResumeFix/internal/metrics"
	"github.com/syneepse/ResumeFix/internal/models"
	"github.com/syneepse/ResumeFix/internal/repositories"
)

var (
	ErrNotFound        = errors.New("resume not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrFileDelete      = errors.New("failed to delete stored file")
	ErrFileMissing     = errors.New("stored file not found")
)

// TextExtractor reads plain text out of a stored document.
type TextExtractor interface {
	Extract(contentType string, data []byte) (string, error)
}

// InfoExtractor structures resume text. It never fails; ok reports whether the model answered.
type InfoExtractor interface {
	ExtractOrEmpty(ctx context.Context, text string) (*extraction.Extracted, bool)
}

type Deps struct {
	Accounts      *repositories.AccountRepository
	Resumes       *repositories.ResumeRepository
	Store         repositories.FileStore
	Text          TextExtractor
	Info          InfoExtractor
	Events        events.Publisher
	Metrics       *metrics.Metrics
	Logger        *logger.Logger
	AutoProvision bool
}

// Service runs the upload pipeline and owner-scoped access to stored resumes.
type Service struct {
	accounts      *repositories.AccountRepository
	resumes       *repositories.ResumeRepository
	store         repositories.FileStore
	text          TextExtractor
	info          InfoExtractor
	events        events.Publisher
	metrics       *metrics.Metrics
	log           *logger.Logger
	autoProvision bool
}

func NewService(d Deps) *Service {
	publisher := d.Events
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		accounts:      d.Accounts,
		resumes:       d.Resumes,
		store:         d.Store,
		text:          d.Text,
		info:          d.Info,
		events:        publisher,
		metrics:       d.Metrics,
		log:           log.WithComponent("resumes"),
		autoProvision: d.AutoProvision,
	}
}

type UploadInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type UploadResult struct {
	Resume    models.ResumeView     `json:"resume"`
	Extracted *extraction.Extracted `json:"extracted"`
}

// Upload validates, stores, parses and records a resume. The stored file is removed
// again when a later step fails.
func (s *Service) Upload(ctx context.Context, id auth.Identity, in UploadInput) (*UploadResult, error) {
	contentType, err := ValidateUpload(in.ContentType, in.Size)
	if err != nil {
		s.metrics.ObserveUpload(uploadTypeLabel(in.ContentType), "rejected", in.Size)
		return nil, err
	}

	// Unknown callers are turned away before any storage or model cost.
	account, err := s.resolveAccount(ctx, id, s.autoProvision)
	if err != nil {
		s.metrics.ObserveUpload(contentType, "rejected", in.Size)
		return nil, err
	}

	filename, err := GenerateFilename(in.OriginalName)
	if err != nil {
		return nil, err
	}

	size, err := s.store.Save(ctx, filename, io.LimitReader(in.Body, MaxUploadSize+1), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}
	if size > MaxUploadSize {
		s.discard(ctx, filename)
		s.metrics.ObserveUpload(contentType, "rejected", size)
		return nil, ErrFileTooLarge
	}

	resume, extracted, err := s.record(ctx, account, filename, in.OriginalName, contentType, size)
	if err != nil {
		s.discard(ctx, filename)
		s.metrics.ObserveUpload(contentType, "failed", size)
		return nil, err
	}
	s.metrics.ObserveUpload(contentType, "accepted", size)

	return &UploadResult{Resume: resume.View(), Extracted: extracted}, nil
}

func (s *Service) record(ctx context.Context, account *models.Account, filename, originalName, contentType string, size int64) (*models.Resume, *extraction.Extracted, error) {
	data, err := s.readStored(ctx, filename)
	if err != nil {
		return nil, nil, err
	}

	text, err := s.text.Extract(contentType, data)
	if err != nil {
		return nil, nil, err
	}

	extracted, ok := s.info.ExtractOrEmpty(ctx, text)
	s.metrics.ObserveExtraction(ok)

	skills, err := models.EncodeSkills(extracted.Skills)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	resume := &models.Resume{
		AccountID:      account.ID,
		Filename:       filename,
		OriginalName:   originalName,
		ContentType:    contentType,
		SizeBytes:      size,
		Name:           extracted.Name,
		Email:          extracted.Email,
		Phone:          extracted.Phone,
		Skills:         skills,
		WorkExperience: extracted.WorkExperience,
		Summary:        extracted.Summary,
		UploadDate:     time.Now().UTC(),
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, nil, fmt.Errorf("failed to save resume: %w", err)
	}

	s.publish(ctx, events.ResumeUploaded, events.ResumeUploadedEvent{
		ResumeID:    resume.ID,
		AccountID:   account.ID.String(),
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		Extracted:   ok,
		UploadedAt:  resume.UploadDate,
	})
	return resume, extracted, nil
}

// List returns the caller's resumes, newest first. Unknown callers have none.
func (s *Service) List(ctx context.Context, id auth.Identity) ([]models.ResumeView, error) {
	account, err := s.resolveAccount(ctx, id, false)
	if errors.Is(err, ErrAccountNotFound) {
		return []models.ResumeView{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.resumes.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	views := make([]models.ResumeView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].View())
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id auth.Identity, resumeID uint) (*models.ResumeView, error) {
	resume, err := s.owned(ctx, id, resumeID)
	if err != nil {
		return nil, err
	}
	view := resume.View()
	return &view, nil
}

// Delete removes the stored file, then the row. A file that is already gone counts as removed.
func (s *Service) Delete(ctx context.Context, id auth.Identity, resumeID uint) error {
	resume, err := s.owned(ctx, id, resumeID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, resume.Filename); err != nil {
		return fmt.Errorf("%w: %v", ErrFileDelete, err)
	}

	if err := s.resumes.Delete(ctx, resume); err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	s.publish(ctx, events.ResumeDeleted, events.ResumeDeletedEvent{
		ResumeID:  resume.ID,
		AccountID: resume.AccountID.String(),
		Filename:  resume.Filename,
	})
	return nil
}

// Download is an open stored file. The caller closes Body.
type Download struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

func (s *Service) Download(ctx context.Context, id auth.Identity, resumeID uint) (*Download, error) {
	resume, err := s.owned(ctx, id, resumeID)
	if err != nil {
		return nil, err
	}

	body, err := s.store.Open(ctx, resume.Filename)
	if errors.Is(err, repositories.ErrFileNotFound) {
		return nil, ErrFileMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return &Download{
		Filename:    resume.Filename,
		ContentType: resume.ContentType,
		Size:        resume.SizeBytes,
		Body:        body,
	}, nil
}

// Account resolves the caller without provisioning.
func (s *Service) Account(ctx context.Context, id auth.Identity) (*models.Account, error) {
	return s.resolveAccount(ctx, id, false)
}

// owned loads a resume for its owner. Missing and foreign ids are both ErrNotFound.
func (s *Service) owned(ctx context.Context, id auth.Identity, resumeID uint) (*models.Resume, error) {
	account, err := s.resolveAccount(ctx, id, false)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	resume, err := s.resumes.GetForAccount(ctx, account.ID, resumeID)
	if errors.Is(err, repositories.ErrResumeNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	return resume, nil
}

func (s *Service) resolveAccount(ctx context.Context, id auth.Identity, provision bool) (*models.Account, error) {
	var (
		account *models.Account
		err     error
	)
	switch {
	case id.HasAccount():
		account, err = s.accounts.FindByID(ctx, id.AccountID)
	case id.Value == "":
		return nil, ErrAccountNotFound
	case provision:
		account, err = s.accounts.FindOrCreateByIdentity(ctx, id.Value, nil)
	default:
		account, err = s.accounts.FindByIdentity(ctx, id.Value)
	}

	if errors.Is(err, repositories.ErrAccountNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	return account, nil
}

func (s *Service) readStored(ctx context.Context, filename string) ([]byte, error) {
	rc, err := s.store.Open(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored resume: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored resume: %w", err)
	}
	return data, nil
}

func (s *Service) discard(ctx context.Context, filename string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), filename); err != nil {
		s.log.Warn().Err(err).Str("filename", filename).Msg("failed to remove orphaned file")
	}
}

func (s *Service) publish(ctx context.Context, eventType string, data any) {
	if err := s.events.Publish(ctx, eventType, data); err != nil {
		s.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}
