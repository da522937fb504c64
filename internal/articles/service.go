package articles

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/partnerhub-backend/pkg/db/models"
	"github.com/angelmondragon/partnerhub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/partnerhub-backend/pkg/errors"
)

const maxSlugAttempts = 20

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Service moderates partner blog submissions and serves the public blog.
type Service interface {
	List(ctx context.Context, status string) ([]ArticleDTO, error)
	ListPublished(ctx context.Context) ([]PublicArticleDTO, error)
	Submit(ctx context.Context, input SubmitInput) (*ArticleDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ArticleDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("article repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, status string) ([]ArticleDTO, error) {
	var filter enums.ArticleStatus
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := enums.ParseArticleStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter = parsed
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}
	out := make([]ArticleDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out, nil
}

func (s *service) ListPublished(ctx context.Context) ([]PublicArticleDTO, error) {
	rows, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list published articles")
	}
	out := make([]PublicArticleDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, publicFromModel(r))
	}
	return out, nil
}

// Submit stores a partner article as pending; only an admin publishes it.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*ArticleDTO, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}
	author := strings.TrimSpace(input.AuthorName)
	if author == "" {
		author = "Partner"
	}

	slug, err := s.uniqueSlug(ctx, title)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:      title,
		Slug:       slug,
		Excerpt:    input.Excerpt,
		Body:       body,
		AuthorName: author,
		Status:     enums.ArticleStatusPending,
	}
	if input.PartnerID != uuid.Nil {
		pid := input.PartnerID
		article.AuthorPartnerID = &pid
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
	}
	dto := FromModel(*article)
	return &dto, nil
}

// Update applies status and content edits. Publishing stamps published_at the
// first time; moving away from rejected clears the rejection reason.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*ArticleDTO, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		updates["title"] = title
	}
	if input.Body != nil {
		body := strings.TrimSpace(*input.Body)
		if body == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "body cannot be empty")
		}
		updates["body"] = body
	}
	if input.Excerpt != nil {
		updates["excerpt"] = *input.Excerpt
	}
	if input.Status != nil {
		status := *input.Status
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
		}
		updates["status"] = status
		switch status {
		case enums.ArticleStatusPublished:
			if current.PublishedAt == nil {
				updates["published_at"] = s.now().UTC()
			}
			updates["rejection_reason"] = nil
		case enums.ArticleStatusRejected:
			if input.RejectionReason != nil {
				updates["rejection_reason"] = strings.TrimSpace(*input.RejectionReason)
			}
		default:
			updates["rejection_reason"] = nil
		}
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, mapWriteError(err, "update article")
	}
	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapWriteError(err, "delete article")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapWriteError(err, "load article")
	}
	return article, nil
}

func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "article"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check article slug")
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

// Slugify lowercases title and joins its alphanumeric runs with dashes.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func mapWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
