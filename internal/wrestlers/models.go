package wrestlers

import (
	"time"

	"github.com/OWDB/OWDB-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wrestler is one stored wrestler profile. Every biographical column is
// nullable; nil means "not known yet".
type Wrestler struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;index" json:"name"`
	Slug string    `gorm:"not null;index" json:"slug"`

	RealName       *string    `json:"real_name,omitempty"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	DeathDate      *time.Time `gorm:"type:date" json:"death_date,omitempty"`
	Hometown       *string    `json:"hometown,omitempty"`
	Nationality    *string    `json:"nationality,omitempty"`
	Height         *string    `json:"height,omitempty"`          // e.g. 6'2"
	Weight         *string    `json:"weight,omitempty"`          // e.g. 250 lbs
	DebutYear      *int       `json:"debut_year,omitempty"`
	RetirementYear *int       `json:"retirement_year,omitempty"`
	Aliases        *string    `gorm:"type:text" json:"aliases,omitempty"`
	Finishers      *string    `gorm:"type:text" json:"finishers,omitempty"`
	SignatureMoves *string    `gorm:"type:text" json:"signature_moves,omitempty"`
	TrainedBy      *string    `gorm:"type:text" json:"trained_by,omitempty"`
	About          *string    `gorm:"type:text" json:"about,omitempty"`
	WikipediaURL   *string    `json:"wikipedia_url,omitempty"`

	LastEnriched *time.Time `json:"last_enriched,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (w *Wrestler) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Slug == "" {
		w.Slug = utils.Slugify(w.Name)
	}
	return nil
}
