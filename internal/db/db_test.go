package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hpungsan/voxplan/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestInit(t *testing.T) {
	database := testDB(t)

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatal(err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}

	// Running migrate again must be a no-op.
	if err := migrate(database); err != nil {
		t.Errorf("second migrate() error = %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ibuprofen", "ibuprofen"},
		{"  Ibuprofen   600  ", "ibuprofen 600"},
		{"IBU", "ibu"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMedications(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	cat := "nsaid"
	m := &MedicationRow{ID: "m1", Name: "Ibuprofen", NameNorm: NormalizeName("Ibuprofen"), Category: &cat, CreatedAt: 100}
	if err := InsertMedication(ctx, database, m); err != nil {
		t.Fatalf("InsertMedication() error = %v", err)
	}

	// Same normalized name is a conflict, regardless of casing.
	dup := &MedicationRow{ID: "m2", Name: "IBUPROFEN", NameNorm: NormalizeName("IBUPROFEN"), CreatedAt: 101}
	if err := InsertMedication(ctx, database, dup); !errors.Is(err, errors.ErrAlreadyExists) {
		t.Errorf("duplicate insert error = %v, want ALREADY_EXISTS", err)
	}

	got, err := GetMedicationByName(ctx, database, "ibuprofen")
	if err != nil {
		t.Fatalf("GetMedicationByName() error = %v", err)
	}
	if got.ID != "m1" || got.Category == nil || *got.Category != "nsaid" {
		t.Errorf("got %+v", got)
	}

	list, err := ListMedications(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("ListMedications() = %v, want one row", list)
	}

	if err := SoftDeleteMedication(ctx, database, "m1", 200); err != nil {
		t.Fatalf("SoftDeleteMedication() error = %v", err)
	}
	if _, err := GetMedicationByName(ctx, database, "ibuprofen"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("after delete error = %v, want NOT_FOUND", err)
	}
	// Deleting twice is NOT_FOUND, not a silent no-op.
	if err := SoftDeleteMedication(ctx, database, "m1", 201); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NOT_FOUND", err)
	}

	// The name is free again after the soft delete.
	again := &MedicationRow{ID: "m3", Name: "Ibuprofen", NameNorm: NormalizeName("Ibuprofen"), CreatedAt: 300}
	if err := InsertMedication(ctx, database, again); err != nil {
		t.Errorf("re-insert after delete error = %v", err)
	}
}

func TestReminders(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	r := &ReminderRow{ID: "r1", Medication: "Ibuprofen", ClockTime: "08:00", CreatedAt: 100, UpdatedAt: 100}
	if err := InsertReminder(ctx, database, r); err != nil {
		t.Fatalf("InsertReminder() error = %v", err)
	}

	got, err := GetReminderByMedication(ctx, database, "  IBUPROFEN ")
	if err != nil {
		t.Fatalf("GetReminderByMedication() error = %v", err)
	}
	if got.ID != "r1" || got.ClockTime != "08:00" {
		t.Errorf("got %+v", got)
	}

	if err := UpdateReminderTime(ctx, database, "r1", "20:00", 150); err != nil {
		t.Fatalf("UpdateReminderTime() error = %v", err)
	}
	got, err = GetReminderByMedication(ctx, database, "ibuprofen")
	if err != nil {
		t.Fatal(err)
	}
	if got.ClockTime != "20:00" || got.UpdatedAt != 150 {
		t.Errorf("after update: %+v", got)
	}

	if err := SoftDeleteReminder(ctx, database, "r1", 200); err != nil {
		t.Fatalf("SoftDeleteReminder() error = %v", err)
	}
	if _, err := GetReminderByMedication(ctx, database, "ibuprofen"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("after delete error = %v, want NOT_FOUND", err)
	}
	if err := UpdateReminderTime(ctx, database, "r1", "09:00", 210); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("update deleted error = %v, want NOT_FOUND", err)
	}
}

func TestEntries(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	for i, e := range []*EntryRow{
		{ID: "e1", Level: 3, CreatedAt: 100},
		{ID: "e2", Level: 5, CreatedAt: 200},
		{ID: "e3", Level: 7, CreatedAt: 300},
	} {
		if err := InsertEntry(ctx, database, e); err != nil {
			t.Fatalf("InsertEntry(%d) error = %v", i, err)
		}
	}

	// Newest first.
	list, err := ListEntries(ctx, database, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0].ID != "e3" || list[2].ID != "e1" {
		t.Fatalf("ListEntries() = %+v, want e3, e2, e1", list)
	}

	ids, err := RecentEntryIDs(ctx, database, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "e3" || ids[1] != "e2" {
		t.Errorf("RecentEntryIDs() = %v", ids)
	}

	count, err := CountEntries(ctx, database, 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("CountEntries(0) = %d, want 3", count)
	}
	count, err = CountEntries(ctx, database, 150)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("CountEntries(150) = %d, want 2", count)
	}

	if err := SoftDeleteEntry(ctx, database, "e2", 400); err != nil {
		t.Fatal(err)
	}
	if _, err := GetEntry(ctx, database, "e2"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetEntry(deleted) error = %v, want NOT_FOUND", err)
	}
	if count, _ := CountEntries(ctx, database, 0); count != 2 {
		t.Errorf("count after delete = %d, want 2", count)
	}
}

func TestIntakes(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	if err := InsertIntake(ctx, database, "i1", "m1", "Ibuprofen", 7, 100); err != nil {
		t.Fatal(err)
	}
	if err := InsertIntake(ctx, database, "i2", "", "Ibuprofen", 9, 200); err != nil {
		t.Fatal(err)
	}
	if err := InsertIntake(ctx, database, "i3", "", "Novalgin", 4, 300); err != nil {
		t.Fatal(err)
	}

	count, avg, err := IntakeStats(ctx, database, "ibuprofen", 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || avg != 8 {
		t.Errorf("IntakeStats = (%d, %v), want (2, 8)", count, avg)
	}

	// The since filter drops the older intake.
	count, avg, err = IntakeStats(ctx, database, "Ibuprofen", 150)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || avg != 9 {
		t.Errorf("IntakeStats since = (%d, %v), want (1, 9)", count, avg)
	}

	// No intakes at all.
	count, avg, err = IntakeStats(ctx, database, "Tilidin", 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 || avg != 0 {
		t.Errorf("IntakeStats empty = (%d, %v), want (0, 0)", count, avg)
	}
}

func TestNotes(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	n := &NoteRow{ID: "n1", Body: "kopfschmerzen seit dem aufstehen", CreatedAt: 100}
	if err := InsertNote(ctx, database, n); err != nil {
		t.Fatal(err)
	}
	if err := SoftDeleteNote(ctx, database, "n1", 200); err != nil {
		t.Fatal(err)
	}
	if err := SoftDeleteNote(ctx, database, "n1", 201); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second delete error = %v, want NOT_FOUND", err)
	}
}
