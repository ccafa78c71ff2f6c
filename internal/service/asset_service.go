package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/assetreg/internal/assetid"
	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/valuation"
)

// maxAllocationAttempts bounds how often CreateAsset asks for a new id after
// the store reports the allocated one as taken.
const maxAllocationAttempts = 3

// assetRepository is the subset of store.AssetStore that AssetService requires.
type assetRepository interface {
	Create(ctx context.Context, a *domain.Asset) (*domain.Asset, error)
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	List(ctx context.Context, f domain.AssetFilter) ([]*domain.Asset, error)
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id int64) error
}

type idAllocator interface {
	Allocate(ctx context.Context) assetid.Allocation
}

type userLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type activityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, format string, args ...any)
}

// AssetInput carries the caller-supplied fields of an asset. Name is
// title-cased and a zero Quantity becomes 1 before validation.
type AssetInput struct {
	Name             string              `json:"name" validate:"required,max=200,letters"`
	Category         string              `json:"category" validate:"required,max=100"`
	Status           string              `json:"status" validate:"required,max=100"`
	Location         string              `json:"location" validate:"required,max=100"`
	Description      string              `json:"description" validate:"max=2000"`
	Observation      string              `json:"observation" validate:"max=2000"`
	Quantity         int                 `json:"quantity" validate:"gte=1"`
	AcquisitionDate  time.Time           `json:"acquisitionDate" validate:"required"`
	InitialCost      decimal.Decimal     `json:"initialCost" validate:"gt=0"`
	DepreciationRate decimal.NullDecimal `json:"annualDepreciationRate"`
	AssignedUserID   *int64              `json:"assignedUserId"`
}

// CreatedAsset is the result of CreateAsset. FallbackID reports that the id
// came from the clock because the stored sequence could not be read, so its
// uniqueness is best-effort.
type CreatedAsset struct {
	Asset      *domain.Asset
	FallbackID bool
}

// AssetValuation is an asset together with its depreciation as of a date.
type AssetValuation struct {
	Asset     *domain.Asset
	AsOf      time.Time
	Valuation valuation.Result
}

type AssetService struct {
	assets   assetRepository
	ids      idAllocator
	users    userLookup
	activity activityRecorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewAssetService(
	assets assetRepository,
	ids idAllocator,
	users userLookup,
	activity activityRecorder,
	logger *slog.Logger,
) *AssetService {
	return &AssetService{
		assets:   assets,
		ids:      ids,
		users:    users,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AssetService) CreateAsset(ctx context.Context, actor domain.Actor, in AssetInput) (*CreatedAsset, error) {
	if err := s.normalize(&in); err != nil {
		return nil, err
	}

	a := &domain.Asset{
		Name:             in.Name,
		Category:         in.Category,
		Status:           in.Status,
		Location:         in.Location,
		Description:      in.Description,
		Observation:      in.Observation,
		Quantity:         in.Quantity,
		AcquisitionDate:  in.AcquisitionDate,
		InitialCost:      in.InitialCost,
		DepreciationRate: in.DepreciationRate,
	}
	if err := s.assign(ctx, a, in.AssignedUserID); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		alloc := s.ids.Allocate(ctx)
		a.ID = alloc.ID

		created, err := s.assets.Create(ctx, a)
		if errors.Is(err, domain.ErrIDTaken) {
			s.logger.Warn("allocated asset id already taken", "id", alloc.ID, "attempt", attempt)
			lastErr = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create asset: %w", err)
		}

		if alloc.Fallback {
			s.logger.Warn("asset created with timestamp id", "id", created.ID)
		}
		s.logger.Info("asset created", "id", created.ID, "name", created.Name, "user", actor.Name)
		s.activity.Record(ctx, actor, "created asset %d (%s)", created.ID, created.Name)
		return &CreatedAsset{Asset: created, FallbackID: alloc.Fallback}, nil
	}
	return nil, fmt.Errorf("failed to allocate a free asset id after %d attempts: %w", maxAllocationAttempts, lastErr)
}

// GetAsset returns the asset and its value as of asOf. A zero asOf means
// today.
func (s *AssetService) GetAsset(ctx context.Context, id int64, asOf time.Time) (*AssetValuation, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	asOf = domain.Civil(asOf)
	return &AssetValuation{Asset: a, AsOf: asOf, Valuation: valuation.ForAsset(a, asOf)}, nil
}

func (s *AssetService) ListAssets(ctx context.Context, f domain.AssetFilter) ([]*domain.Asset, error) {
	return s.assets.List(ctx, f)
}

// UpdateAsset overwrites the editable fields of an asset. The id and the
// registration timestamp are kept. Only administrators may change the cost,
// the rate, the acquisition date or the assignment.
func (s *AssetService) UpdateAsset(ctx context.Context, actor domain.Actor, id int64, in AssetInput) (*domain.Asset, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.normalize(&in); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && changesRestrictedFields(existing, in) {
		return nil, fmt.Errorf("only administrators may change cost, rate, acquisition date or assignment: %w", domain.ErrForbidden)
	}

	updated := *existing
	updated.Name = in.Name
	updated.Category = in.Category
	updated.Status = in.Status
	updated.Location = in.Location
	updated.Description = in.Description
	updated.Observation = in.Observation
	updated.Quantity = in.Quantity
	updated.AcquisitionDate = in.AcquisitionDate
	updated.InitialCost = in.InitialCost
	updated.DepreciationRate = in.DepreciationRate
	if !sameUser(existing.AssignedUserID, in.AssignedUserID) {
		if err := s.assign(ctx, &updated, in.AssignedUserID); err != nil {
			return nil, err
		}
	}

	if err := s.assets.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	s.activity.Record(ctx, actor, "updated asset %d (%s)", id, updated.Name)
	return s.assets.GetByID(ctx, id)
}

func (s *AssetService) DeleteAsset(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("only administrators may delete assets: %w", domain.ErrForbidden)
	}
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.logger.Info("asset deleted", "id", id, "user", actor.Name)
	s.activity.Record(ctx, actor, "deleted asset %d (%s)", id, a.Name)
	return nil
}

// Dashboard summarizes every asset as of asOf. A zero asOf means today.
func (s *AssetService) Dashboard(ctx context.Context, asOf time.Time) (valuation.Summary, error) {
	assets, err := s.assets.List(ctx, domain.AssetFilter{})
	if err != nil {
		return valuation.Summary{}, fmt.Errorf("failed to list assets: %w", err)
	}
	if asOf.IsZero() {
		asOf = s.now()
	}
	return valuation.Summarize(assets, domain.Civil(asOf)), nil
}

// ResolveTag returns the asset a scanned label refers to.
func (s *AssetService) ResolveTag(ctx context.Context, code string) (*domain.Asset, error) {
	id, err := ParseTag(code)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

// ParseTag extracts the asset id from a label payload: the decimal id,
// optionally surrounded by whitespace.
func ParseTag(code string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(code), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("code", "is not an asset tag")
	}
	return id, nil
}

func (s *AssetService) get(ctx context.Context, id int64) (*domain.Asset, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("asset %d: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

// normalize cleans in and validates it.
func (s *AssetService) normalize(in *AssetInput) error {
	in.Name = titleCase(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Status = strings.TrimSpace(in.Status)
	in.Location = strings.TrimSpace(in.Location)
	in.Description = strings.TrimSpace(in.Description)
	in.Observation = strings.TrimSpace(in.Observation)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if !in.AcquisitionDate.IsZero() {
		in.AcquisitionDate = domain.Civil(in.AcquisitionDate)
	}

	err := validateStruct(in)
	if in.AcquisitionDate.After(domain.Civil(s.now())) {
		err = appendFieldError(err, "acquisitionDate", "must not be in the future")
	}
	if in.DepreciationRate.Valid {
		r := in.DepreciationRate.Decimal
		if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(100)) {
			err = appendFieldError(err, "annualDepreciationRate", "must be between 0 and 100")
		}
	}
	return err
}

// assign sets the custodian of a. A nil userID clears it.
func (s *AssetService) assign(ctx context.Context, a *domain.Asset, userID *int64) error {
	if userID == nil {
		a.AssignedUserID = nil
		a.AssignedUserName = ""
		return nil
	}
	u, err := s.users.GetByID(ctx, *userID)
	if err != nil {
		return fmt.Errorf("failed to get assigned user: %w", err)
	}
	if u == nil {
		return domain.NewValidationError("assignedUserId", "unknown user")
	}
	id := u.ID
	a.AssignedUserID = &id
	a.AssignedUserName = u.Name
	return nil
}

func changesRestrictedFields(a *domain.Asset, in AssetInput) bool {
	if !a.InitialCost.Equal(in.InitialCost) {
		return true
	}
	if !a.AcquisitionDate.Equal(in.AcquisitionDate) {
		return true
	}
	if a.DepreciationRate.Valid != in.DepreciationRate.Valid ||
		(a.DepreciationRate.Valid && !a.DepreciationRate.Decimal.Equal(in.DepreciationRate.Decimal)) {
		return true
	}
	return !sameUser(a.AssignedUserID, in.AssignedUserID)
}

func sameUser(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
