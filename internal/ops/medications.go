package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/lexicon"
)

// MedicationAddInput contains parameters for AddMedication.
type MedicationAddInput struct {
	Name     string
	Category string // optional; detected from the name when empty
}

// MedicationAddOutput contains the result of AddMedication.
type MedicationAddOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category *string `json:"category,omitempty"`
}

// AddMedication registers a medication in the user's list.
func AddMedication(ctx context.Context, database *sql.DB, input MedicationAddInput) (*MedicationAddOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		if cat := lexicon.FindMedicationCategory(name); cat != lexicon.CategoryUnknown {
			category = string(cat)
		}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	row := &db.MedicationRow{
		ID:        id,
		Name:      name,
		NameNorm:  db.NormalizeName(name),
		CreatedAt: time.Now().Unix(),
	}
	if category != "" {
		row.Category = &category
	}
	if err := db.InsertMedication(ctx, database, row); err != nil {
		return nil, err
	}

	return &MedicationAddOutput{ID: id, Name: name, Category: row.Category}, nil
}

// ListMedications returns all active medications.
func ListMedications(ctx context.Context, database *sql.DB) ([]db.MedicationRow, error) {
	return db.ListMedications(ctx, database)
}

// RemoveMedication soft-deletes a medication by name.
func RemoveMedication(ctx context.Context, database *sql.DB, name string) (*db.MedicationRow, error) {
	med, err := db.GetMedicationByName(ctx, database, name)
	if err != nil {
		return nil, err
	}
	if err := db.SoftDeleteMedication(ctx, database, med.ID, time.Now().Unix()); err != nil {
		return nil, err
	}
	return med, nil
}
