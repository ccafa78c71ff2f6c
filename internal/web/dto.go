package web

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/service"
	"github.com/vbonduro/assetreg/internal/valuation"
)

// amount accepts a JSON number or a string such as "$1,200.50". Strings go
// through valuation.ParseAmountStrict; one that holds no number is kept as
// invalid and reported by toInput.
type amount struct {
	value   decimal.Decimal
	set     bool
	invalid bool
}

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = amount{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*a = amount{}
			return nil
		}
		d, err := valuation.ParseAmountStrict(s)
		if err != nil {
			*a = amount{set: true, invalid: true}
			return nil
		}
		*a = amount{value: d, set: true}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	*a = amount{value: d, set: true}
	return nil
}

type assetRequest struct {
	Name                   string `json:"name"`
	Category               string `json:"category"`
	Status                 string `json:"status"`
	Location               string `json:"location"`
	Description            string `json:"description"`
	Observation            string `json:"observation"`
	Quantity               int    `json:"quantity"`
	AcquisitionDate        string `json:"acquisitionDate"`
	InitialCost            amount `json:"initialCost"`
	AnnualDepreciationRate amount `json:"annualDepreciationRate"`
	AssignedUserID         *int64 `json:"assignedUserId"`
}

func (req assetRequest) toInput() (service.AssetInput, error) {
	in := service.AssetInput{
		Name:           req.Name,
		Category:       req.Category,
		Status:         req.Status,
		Location:       req.Location,
		Description:    req.Description,
		Observation:    req.Observation,
		Quantity:       req.Quantity,
		InitialCost:    req.InitialCost.value,
		AssignedUserID: req.AssignedUserID,
	}
	if req.AnnualDepreciationRate.set {
		in.DepreciationRate = decimal.NewNullDecimal(req.AnnualDepreciationRate.value)
	}

	var fields []domain.FieldError
	if req.InitialCost.invalid {
		fields = append(fields, domain.FieldError{Field: "initialCost", Message: "must be a number"})
	}
	if req.AnnualDepreciationRate.invalid {
		fields = append(fields, domain.FieldError{Field: "annualDepreciationRate", Message: "must be a number between 0 and 100"})
	}
	if req.AcquisitionDate != "" {
		d, err := domain.ParseDate(req.AcquisitionDate)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: "acquisitionDate", Message: "must be a date formatted YYYY-MM-DD"})
		}
		in.AcquisitionDate = d
	}
	if len(fields) > 0 {
		return in, &domain.ValidationError{Fields: fields}
	}
	return in, nil
}

type assetResponse struct {
	ID                     int64            `json:"id"`
	Name                   string           `json:"name"`
	Category               string           `json:"category"`
	Status                 string           `json:"status"`
	Location               string           `json:"location"`
	Description            string           `json:"description"`
	Observation            string           `json:"observation"`
	Quantity               int              `json:"quantity"`
	AcquisitionDate        string           `json:"acquisitionDate"`
	InitialCost            decimal.Decimal  `json:"initialCost"`
	AnnualDepreciationRate *decimal.Decimal `json:"annualDepreciationRate"`
	RegisteredAt           time.Time        `json:"registeredAt"`
	AssignedUserID         *int64           `json:"assignedUserId,omitempty"`
	AssignedUserName       string           `json:"assignedUserName,omitempty"`
}

func newAssetResponse(a *domain.Asset) assetResponse {
	resp := assetResponse{
		ID:               a.ID,
		Name:             a.Name,
		Category:         a.Category,
		Status:           a.Status,
		Location:         a.Location,
		Description:      a.Description,
		Observation:      a.Observation,
		Quantity:         a.Quantity,
		AcquisitionDate:  a.AcquisitionDate.Format(domain.DateLayout),
		InitialCost:      a.InitialCost,
		RegisteredAt:     a.RegisteredAt,
		AssignedUserID:   a.AssignedUserID,
		AssignedUserName: a.AssignedUserName,
	}
	if a.DepreciationRate.Valid {
		rate := a.DepreciationRate.Decimal
		resp.AnnualDepreciationRate = &rate
	}
	return resp
}

func newAssetResponses(assets []*domain.Asset) []assetResponse {
	out := make([]assetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, newAssetResponse(a))
	}
	return out
}

type createdAssetResponse struct {
	Asset      assetResponse `json:"asset"`
	FallbackID bool          `json:"fallbackId"`
}

type valuationResponse struct {
	AsOf              string          `json:"asOf"`
	ElapsedYears      int             `json:"elapsedYears"`
	TotalDepreciation decimal.Decimal `json:"totalDepreciation"`
	CurrentValue      decimal.Decimal `json:"currentValue"`
}

type assetDetailResponse struct {
	Asset     assetResponse     `json:"asset"`
	Valuation valuationResponse `json:"valuation"`
}

func newAssetDetailResponse(v *service.AssetValuation) assetDetailResponse {
	return assetDetailResponse{
		Asset: newAssetResponse(v.Asset),
		Valuation: valuationResponse{
			AsOf:              v.AsOf.Format(domain.DateLayout),
			ElapsedYears:      v.Valuation.ElapsedYears,
			TotalDepreciation: v.Valuation.TotalDepreciation,
			CurrentValue:      v.Valuation.CurrentValue,
		},
	}
}

type dashboardResponse struct {
	AsOf             string          `json:"asOf"`
	TotalUnits       int             `json:"totalUnits"`
	AcquisitionValue decimal.Decimal `json:"acquisitionValue"`
	CurrentValue     decimal.Decimal `json:"currentValue"`
	ByCategory       map[string]int  `json:"byCategory"`
	ByStatus         map[string]int  `json:"byStatus"`
	ByLocation       map[string]int  `json:"byLocation"`
	TopLocation      string          `json:"topLocation"`
}

func newDashboardResponse(asOf time.Time, s valuation.Summary) dashboardResponse {
	return dashboardResponse{
		AsOf:             asOf.Format(domain.DateLayout),
		TotalUnits:       s.TotalUnits,
		AcquisitionValue: s.AcquisitionValue,
		CurrentValue:     s.CurrentValue,
		ByCategory:       s.ByCategory,
		ByStatus:         s.ByStatus,
		ByLocation:       s.ByLocation,
		TopLocation:      s.TopLocation,
	}
}

type catalogEntryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	IsAccount bool      `json:"isAccount"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsAccount: u.IsAccount,
		CreatedAt: u.CreatedAt,
	}
}

type logEntryResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}
