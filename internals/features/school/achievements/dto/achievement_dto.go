package dto

import (
	"encoding/json"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/school/achievements/model"
	"sekolahku_backend/internals/features/school/achievements/service"
	helper "sekolahku_backend/internals/helpers"
)

const DateLayout = "2006-01-02"

/* =========================================================
   PatchField (tri-state): absent | null | value
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("achievement_date harus berformat YYYY-MM-DD")
	}
	return t, nil
}

/* =========================================================
   Request: CREATE (juga dipakai form dashboard)
   ========================================================= */

type AchievementRequest struct {
	Title           string  `json:"title" form:"title" validate:"required,max=200"`
	Description     string  `json:"description" form:"description" validate:"max=5000"`
	AchievementDate string  `json:"achievement_date" form:"achievement_date" validate:"required,datetime=2006-01-02"`
	ImageURL        *string `json:"image_url" form:"image_url" validate:"omitempty,url,max=2048"`
}

func (r *AchievementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AchievementDate = strings.TrimSpace(r.AchievementDate)
	if r.ImageURL != nil {
		v := strings.TrimSpace(*r.ImageURL)
		if v == "" {
			r.ImageURL = nil
		} else {
			r.ImageURL = &v
		}
	}
}

func (r *AchievementRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *AchievementRequest) ToFields() (service.AchievementFields, error) {
	d, err := parseDate(r.AchievementDate)
	if err != nil {
		return service.AchievementFields{}, err
	}
	f := service.AchievementFields{
		Title:       r.Title,
		Description: r.Description,
		Date:        d,
	}
	if r.ImageURL != nil {
		f.ImageURL = *r.ImageURL
	}
	return f, nil
}

// FromModelToRequest mengisi form edit dengan snapshot terakhir.
func FromModelToRequest(m *model.AchievementModel) AchievementRequest {
	return AchievementRequest{
		Title:           m.Title,
		Description:     m.Description,
		AchievementDate: m.Date().Format(DateLayout),
		ImageURL:        m.ImageURL,
	}
}

/* =========================================================
   Request: PATCH (partial)
   ========================================================= */

type PatchAchievementRequest struct {
	Title           PatchField[string] `json:"title"`
	Description     PatchField[string] `json:"description"`
	AchievementDate PatchField[string] `json:"achievement_date"`
	ImageURL        PatchField[string] `json:"image_url"`
}

func (p *PatchAchievementRequest) Normalize() {
	for _, f := range []*PatchField[string]{&p.Title, &p.Description, &p.AchievementDate, &p.ImageURL} {
		if f.Present && f.Value != nil {
			v := strings.TrimSpace(*f.Value)
			f.Value = &v
		}
	}
}

// ApplyPatch menggabungkan field yang dikirim ke snapshot lama.
func (p *PatchAchievementRequest) ApplyPatch(m *model.AchievementModel) (service.AchievementFields, error) {
	f := service.AchievementFields{
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date(),
	}
	if m.ImageURL != nil {
		f.ImageURL = *m.ImageURL
	}

	if val, ok := p.Title.Get(); ok {
		// NOT NULL → null ditolak
		if val == nil || *val == "" {
			return f, service.ErrTitleRequired
		}
		if len(*val) > 200 {
			return f, errors.New("title maksimal 200 karakter")
		}
		f.Title = *val
	}
	if val, ok := p.Description.Get(); ok {
		f.Description = ""
		if val != nil {
			f.Description = *val
		}
	}
	if val, ok := p.AchievementDate.Get(); ok {
		if val == nil {
			return f, service.ErrDateRequired
		}
		d, err := parseDate(*val)
		if err != nil {
			return f, err
		}
		f.Date = d
	}
	if val, ok := p.ImageURL.Get(); ok {
		// nullable → boleh nil (clear)
		f.ImageURL = ""
		if val != nil {
			f.ImageURL = *val
		}
	}
	return f, nil
}

/* =========================================================
   Response
   ========================================================= */

type AchievementResponse struct {
	ID               uuid.UUID     `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	DescriptionHTML  template.HTML `json:"description_html,omitempty"`
	AchievementDate  string        `json:"achievement_date"`
	ImageURL         *string       `json:"image_url"`
	SchoolLevel      *string       `json:"school_level"`
	SchoolLevelLabel string        `json:"school_level_label,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func FromModel(m *model.AchievementModel) AchievementResponse {
	out := AchievementResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		AchievementDate: m.Date().Format(DateLayout),
		ImageURL:        m.ImageURL,
		SchoolLevel:     m.SchoolLevel,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.SchoolLevel != nil {
		out.SchoolLevelLabel = constants.SchoolLevelLabel(*m.SchoolLevel)
	}
	return out
}

// FromModelDetail: sama seperti FromModel + deskripsi ter-render dari Markdown.
func FromModelDetail(m *model.AchievementModel) AchievementResponse {
	out := FromModel(m)
	if m.Description != "" {
		out.DescriptionHTML = helper.RenderMarkdown(m.Description)
	}
	return out
}

func FromModels(rows []model.AchievementModel) []AchievementResponse {
	out := make([]AchievementResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
