package material

import (
	"github.com/avelasqz/library-management/internal"
)

// Type classifies a material in the catalog.
type Type string

const (
	TypeBook      Type = "BOOK"
	TypeArticle   Type = "ARTICLE"
	TypeReport    Type = "REPORT"
	TypeThesis    Type = "THESIS"
	TypeNewspaper Type = "NEWSPAPER"
	TypeDocument  Type = "DOCUMENT"
	TypeMagazine  Type = "MAGAZINE"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBook, TypeArticle, TypeReport, TypeThesis, TypeNewspaper, TypeDocument, TypeMagazine:
		return true
	}
	return false
}

// Material is a catalog entry. Stock per library lives in inventory, not
// here.
type Material struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Type        Type    `json:"type" gorm:"not null"`
	Title       string  `json:"title" gorm:"index;not null"`
	CodRef      string  `json:"cod_ref" gorm:"column:cod_ref;uniqueIndex;not null"`
	Price       float64 `json:"price" gorm:"not null"`
	ISBN        *string `json:"isbn,omitempty" gorm:"column:isbn"`
	ISSN        *string `json:"issn,omitempty" gorm:"column:issn"`
	Description *string `json:"description,omitempty"`
	AuthorID    int64   `json:"author_id" gorm:"not null"`
	SectionID   int64   `json:"section_id" gorm:"not null"`
}

func (Material) TableName() string {
	return "materials"
}

type Repository interface {
	Create(m *Material) error
	GetByID(id int64) (*Material, error)
	GetByCodRef(codRef string) (*Material, error)
	List(offset, limit int) ([]Material, int64, error)
	Update(m *Material) error
	Delete(id int64) error
	AuthorExists(authorID int64) (bool, error)
	SectionExists(sectionID int64) (bool, error)
}

type CreateMaterialDTO struct {
	Type        Type    `json:"type"`
	Title       string  `json:"title"`
	CodRef      string  `json:"cod_ref"`
	Price       float64 `json:"price"`
	ISBN        *string `json:"isbn,omitempty"`
	ISSN        *string `json:"issn,omitempty"`
	Description *string `json:"description,omitempty"`
	AuthorID    int64   `json:"author_id"`
	SectionID   int64   `json:"section_id"`
}

func (dto CreateMaterialDTO) Validate() error {
	if !dto.Type.Valid() {
		return internal.NewValidationError("type", "invalid material type: "+string(dto.Type))
	}
	if dto.Title == "" {
		return internal.NewValidationError("title", "title is required")
	}
	if dto.CodRef == "" {
		return internal.NewValidationError("cod_ref", "cod_ref is required")
	}
	if dto.Price < 0 {
		return internal.NewValidationError("price", "price cannot be negative")
	}
	if dto.AuthorID <= 0 {
		return internal.NewValidationError("author_id", "author_id is required")
	}
	if dto.SectionID <= 0 {
		return internal.NewValidationError("section_id", "section_id is required")
	}
	return nil
}

// MaterialPatch is a partial update: only non-nil fields are applied.
type MaterialPatch struct {
	Type        *Type    `json:"type,omitempty"`
	Title       *string  `json:"title,omitempty"`
	CodRef      *string  `json:"cod_ref,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ISBN        *string  `json:"isbn,omitempty"`
	ISSN        *string  `json:"issn,omitempty"`
	Description *string  `json:"description,omitempty"`
	AuthorID    *int64   `json:"author_id,omitempty"`
	SectionID   *int64   `json:"section_id,omitempty"`
}

func (p MaterialPatch) Apply(m *Material) {
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.CodRef != nil {
		m.CodRef = *p.CodRef
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.ISBN != nil {
		m.ISBN = p.ISBN
	}
	if p.ISSN != nil {
		m.ISSN = p.ISSN
	}
	if p.Description != nil {
		m.Description = p.Description
	}
	if p.AuthorID != nil {
		m.AuthorID = *p.AuthorID
	}
	if p.SectionID != nil {
		m.SectionID = *p.SectionID
	}
}

func (p MaterialPatch) Validate() error {
	if p.Type != nil && !p.Type.Valid() {
		return internal.NewValidationError("type", "invalid material type: "+string(*p.Type))
	}
	if p.Title != nil && *p.Title == "" {
		return internal.NewValidationError("title", "title cannot be empty")
	}
	if p.CodRef != nil && *p.CodRef == "" {
		return internal.NewValidationError("cod_ref", "cod_ref cannot be empty")
	}
	if p.Price != nil && *p.Price < 0 {
		return internal.NewValidationError("price", "price cannot be negative")
	}
	return nil
}
