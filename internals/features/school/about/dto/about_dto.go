package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	model "sekolahku_backend/internals/features/school/about/model"
	"sekolahku_backend/internals/features/school/about/service"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

/* =========================================================
   Request: PUT /api/a/about
   ========================================================= */

// Field yang tidak dikirim / kosong → NULL (sama seperti form yang dikosongkan).
type SaveContactRequest struct {
	ContactPhone *string `json:"contact_phone" form:"contact_phone" validate:"omitempty,max=30"`
	ContactEmail *string `json:"contact_email" form:"contact_email" validate:"omitempty,email,max=255"`
}

func (r *SaveContactRequest) Normalize() {
	r.ContactPhone = trimPtr(r.ContactPhone)
	r.ContactEmail = trimPtr(r.ContactEmail)
}

func (r *SaveContactRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *SaveContactRequest) ToFields() service.ContactFields {
	return service.ContactFields{
		Phone: deref(r.ContactPhone),
		Email: deref(r.ContactEmail),
	}
}

/* =========================================================
   Response
   ========================================================= */

type AboutResponse struct {
	ID               uuid.UUID `json:"id"`
	SchoolLevel      string    `json:"school_level"`
	SchoolLevelLabel string    `json:"school_level_label"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	ContactPhone     *string   `json:"contact_phone"`
	ContactEmail     *string   `json:"contact_email"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FromModel: nil tetap nil (belum ada data untuk jenjang ini).
func FromModel(m *model.AboutModel) *AboutResponse {
	if m == nil {
		return nil
	}
	return &AboutResponse{
		ID:               m.ID,
		SchoolLevel:      m.SchoolLevel,
		SchoolLevelLabel: constants.SchoolLevelLabel(m.SchoolLevel),
		Title:            m.Title,
		Content:          m.Content,
		ContactPhone:     m.ContactPhone,
		ContactEmail:     m.ContactEmail,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToRequest mengisi form edit dengan nilai tersimpan; nil kalau belum ada data.
func ToRequest(m *model.AboutModel) *SaveContactRequest {
	if m == nil {
		return nil
	}
	return &SaveContactRequest{
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
	}
}
