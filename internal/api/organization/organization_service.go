package organization

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ OrganizationService = (*OrganizationServiceImpl)(nil)

type OrganizationService interface {
	GetPublic(ctx context.Context) (*PublicOrganization, error)
	GetPublicByID(ctx context.Context, id uuid.UUID) (*PublicOrganization, error)
	Create(ctx context.Context, params OrganizationParams) (*types.Organization, error)
	UpdatePublic(ctx context.Context, id uuid.UUID, params UpdateOrganizationParams) (*PublicOrganization, error)
}

// PublicOrganization is the unauthenticated projection: contact details and
// social links only, no audit columns.
type PublicOrganization struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Image        *string   `json:"image,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	WelcomeText  *string   `json:"welcome_text,omitempty"`
	AboutUsText  *string   `json:"about_us_text,omitempty"`
	FacebookURL  *string   `json:"facebook_url,omitempty"`
	InstagramURL *string   `json:"instagram_url,omitempty"`
	LinkedinURL  *string   `json:"linkedin_url,omitempty"`
}

func publicView(o *types.Organization) *PublicOrganization {
	return &PublicOrganization{
		ID:           o.ID,
		Name:         o.Name,
		Image:        o.Image,
		Phone:        o.Phone,
		Address:      o.Address,
		WelcomeText:  o.WelcomeText,
		AboutUsText:  o.AboutUsText,
		FacebookURL:  o.FacebookURL,
		InstagramURL: o.InstagramURL,
		LinkedinURL:  o.LinkedinURL,
	}
}

type OrganizationParams struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Image        *string `json:"image,omitempty" validate:"omitempty,url"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	WelcomeText  *string `json:"welcome_text,omitempty"`
	AboutUsText  *string `json:"about_us_text,omitempty"`
	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	LinkedinURL  *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
}

// UpdateOrganizationParams applies partially: nil fields are left untouched.
type UpdateOrganizationParams struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Image        *string `json:"image,omitempty" validate:"omitempty,url"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	WelcomeText  *string `json:"welcome_text,omitempty"`
	AboutUsText  *string `json:"about_us_text,omitempty"`
	FacebookURL  *string `json:"facebook_url,omitempty" validate:"omitempty,url"`
	InstagramURL *string `json:"instagram_url,omitempty" validate:"omitempty,url"`
	LinkedinURL  *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
}

type OrganizationServiceImpl struct {
	logger *slog.Logger
	repo   OrganizationRepo
}

func NewOrganizationService(repo OrganizationRepo, logger *slog.Logger) *OrganizationServiceImpl {
	return &OrganizationServiceImpl{logger: logger, repo: repo}
}

func (s *OrganizationServiceImpl) GetPublic(ctx context.Context) (*PublicOrganization, error) {
	o, err := s.repo.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	return publicView(o), nil
}

func (s *OrganizationServiceImpl) GetPublicByID(ctx context.Context, id uuid.UUID) (*PublicOrganization, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return publicView(o), nil
}

func (s *OrganizationServiceImpl) Create(ctx context.Context, params OrganizationParams) (*types.Organization, error) {
	o := &types.Organization{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		Image:        params.Image,
		Phone:        params.Phone,
		Address:      params.Address,
		WelcomeText:  params.WelcomeText,
		AboutUsText:  params.AboutUsText,
		FacebookURL:  params.FacebookURL,
		InstagramURL: params.InstagramURL,
		LinkedinURL:  params.LinkedinURL,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Organization created", slog.String("id", o.ID.String()))
	return o, nil
}

func (s *OrganizationServiceImpl) UpdatePublic(ctx context.Context, id uuid.UUID, params UpdateOrganizationParams) (*PublicOrganization, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		o.Name = *params.Name
	}
	if params.Email != nil {
		o.Email = *params.Email
	}
	if params.Image != nil {
		o.Image = params.Image
	}
	if params.Phone != nil {
		o.Phone = params.Phone
	}
	if params.Address != nil {
		o.Address = params.Address
	}
	if params.WelcomeText != nil {
		o.WelcomeText = params.WelcomeText
	}
	if params.AboutUsText != nil {
		o.AboutUsText = params.AboutUsText
	}
	if params.FacebookURL != nil {
		o.FacebookURL = params.FacebookURL
	}
	if params.InstagramURL != nil {
		o.InstagramURL = params.InstagramURL
	}
	if params.LinkedinURL != nil {
		o.LinkedinURL = params.LinkedinURL
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return publicView(o), nil
}
