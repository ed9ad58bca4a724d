package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/portfolio-cms/internal/apperror"
	"github.com/sakif/portfolio-cms/internal/model"
	"github.com/sakif/portfolio-cms/internal/repository"
)

// ContactInput is a public contact-form submission.
type ContactInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	ProjectType string `json:"projectType"`
	Message     string `json:"message"`
}

type ContactService struct {
	repo   repository.ContactRepository
	logger *slog.Logger
}

func NewContactService(repo repository.ContactRepository, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Submit validates a contact-form submission and stores it unread.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	msg, err := validateContact(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("storing contact message: %w", err)
	}

	s.logger.Info("contact message received",
		slog.String("id", msg.ID),
		slog.String("projectType", msg.ProjectType),
	)
	return msg, nil
}

// List returns the inbox, newest first.
func (s *ContactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.repo.List(ctx)
}

// UpdateFlags marks a message read/unread or starred/unstarred and returns
// the updated message.
func (s *ContactService) UpdateFlags(ctx context.Context, id string, flags model.MessageFlags) (*model.ContactMessage, error) {
	if flags.Read == nil && flags.Starred == nil {
		return nil, apperror.ValidationFailed("read", "Nothing to update: send read and/or starred")
	}
	if err := s.repo.SetFlags(ctx, id, flags); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ContactService) UnreadCount(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}

func validateContact(in ContactInput) (*model.ContactMessage, error) {
	name, err := text("name", "Name", in.Name, MinContactNameLength, MaxNameLength)
	if err != nil {
		return nil, err
	}
	if !lettersAndSpaces(name) {
		return nil, apperror.ValidationFailed("name", "Name can only contain letters and spaces")
	}

	addr, err := email("email", in.Email, true)
	if err != nil {
		return nil, err
	}

	subject, err := text("subject", "Subject", in.Subject, 1, MaxSubjectLength)
	if err != nil {
		return nil, err
	}

	projectType := strings.TrimSpace(in.ProjectType)
	if projectType == "" {
		projectType = "other"
	}
	if !oneOf(projectType, model.ProjectTypes) {
		return nil, apperror.ValidationFailed("projectType",
			"Project type must be one of: "+strings.Join(model.ProjectTypes, ", "))
	}

	message, err := text("message", "Message", in.Message, MinMessageLength, MaxMessageLength)
	if err != nil {
		return nil, err
	}

	return &model.ContactMessage{
		Name:        name,
		Email:       addr,
		Subject:     subject,
		ProjectType: projectType,
		Message:     message,
	}, nil
}
