package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/voxplan/internal/errors"
)

// MedicationRow is one row of the medications table.
type MedicationRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NameNorm  string  `json:"name_norm"`
	Category  *string `json:"category,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

// ReminderRow is one row of the reminders table.
type ReminderRow struct {
	ID           string  `json:"id"`
	MedicationID *string `json:"medication_id,omitempty"`
	Medication   string  `json:"medication"`
	ClockTime    string  `json:"clock_time"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

// NoteRow is one row of the notes table.
type NoteRow struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"created_at"`
}

// EntryRow is one row of the entries table.
type EntryRow struct {
	ID        string  `json:"id"`
	Level     int     `json:"level"`
	Note      *string `json:"note,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

// NormalizeName lowercases and trims a medication name for the
// unique-name index.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
}

// InsertMedication adds a medication. Fails with ALREADY_EXISTS when
// an active medication with the same normalized name exists.
func InsertMedication(ctx context.Context, db *sql.DB, m *MedicationRow) error {
	existing, err := GetMedicationByName(ctx, db, m.Name)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}
	if existing != nil {
		return errors.NewAlreadyExists("medication", m.Name)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO medications (id, name, name_norm, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.NameNorm, m.Category, m.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetMedicationByName fetches an active medication by normalized name.
func GetMedicationByName(ctx context.Context, db *sql.DB, name string) (*MedicationRow, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, name_norm, category, created_at
		FROM medications
		WHERE name_norm = ? AND deleted_at IS NULL`,
		NormalizeName(name))
	m := &MedicationRow{}
	err := row.Scan(&m.ID, &m.Name, &m.NameNorm, &m.Category, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("medication", name)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return m, nil
}

// ListMedications returns all active medications in creation order.
func ListMedications(ctx context.Context, db *sql.DB) ([]MedicationRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, name_norm, category, created_at
		FROM medications
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []MedicationRow
	for rows.Next() {
		var m MedicationRow
		if err := rows.Scan(&m.ID, &m.Name, &m.NameNorm, &m.Category, &m.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// SoftDeleteMedication marks a medication deleted.
func SoftDeleteMedication(ctx context.Context, db *sql.DB, id string, now int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE medications SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireAffected(res, "medication", id)
}

// InsertReminder adds a reminder.
func InsertReminder(ctx context.Context, db *sql.DB, r *ReminderRow) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO reminders (id, medication_id, medication, clock_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.MedicationID, r.Medication, r.ClockTime, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListReminders returns all active reminders in creation order.
func ListReminders(ctx context.Context, db *sql.DB) ([]ReminderRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, medication_id, medication, clock_time, created_at, updated_at
		FROM reminders
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []ReminderRow
	for rows.Next() {
		var r ReminderRow
		if err := rows.Scan(&r.ID, &r.MedicationID, &r.Medication, &r.ClockTime, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// GetReminderByMedication fetches the active reminder for a
// medication name (case-insensitive).
func GetReminderByMedication(ctx context.Context, db *sql.DB, medication string) (*ReminderRow, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, medication_id, medication, clock_time, created_at, updated_at
		FROM reminders
		WHERE lower(medication) = ? AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`,
		strings.ToLower(strings.TrimSpace(medication)))
	r := &ReminderRow{}
	err := row.Scan(&r.ID, &r.MedicationID, &r.Medication, &r.ClockTime, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("reminder", medication)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return r, nil
}

// UpdateReminderTime moves a reminder to a new clock time.
func UpdateReminderTime(ctx context.Context, db *sql.DB, id, clockTime string, now int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE reminders SET clock_time = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`, clockTime, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireAffected(res, "reminder", id)
}

// SoftDeleteReminder marks a reminder deleted.
func SoftDeleteReminder(ctx context.Context, db *sql.DB, id string, now int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE reminders SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireAffected(res, "reminder", id)
}

// InsertNote adds a note.
func InsertNote(ctx context.Context, db *sql.DB, n *NoteRow) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO notes (id, body, created_at)
		VALUES (?, ?, ?)`,
		n.ID, n.Body, n.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// SoftDeleteNote marks a note deleted.
func SoftDeleteNote(ctx context.Context, db *sql.DB, id string, now int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE notes SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireAffected(res, "note", id)
}

// InsertEntry adds a pain diary entry.
func InsertEntry(ctx context.Context, db *sql.DB, e *EntryRow) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO entries (id, level, note, created_at)
		VALUES (?, ?, ?, ?)`,
		e.ID, e.Level, e.Note, e.CreatedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetEntry fetches an active entry by ID.
func GetEntry(ctx context.Context, db *sql.DB, id string) (*EntryRow, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, level, note, created_at
		FROM entries
		WHERE id = ? AND deleted_at IS NULL`, id)
	e := &EntryRow{}
	err := row.Scan(&e.ID, &e.Level, &e.Note, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("entry", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return e, nil
}

// ListEntries returns active entries, newest first.
func ListEntries(ctx context.Context, db *sql.DB, limit int) ([]EntryRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, level, note, created_at
		FROM entries
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var e EntryRow
		if err := rows.Scan(&e.ID, &e.Level, &e.Note, &e.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// RecentEntryIDs returns the IDs of the newest active entries.
func RecentEntryIDs(ctx context.Context, db *sql.DB, limit int) ([]string, error) {
	entries, err := ListEntries(ctx, db, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// CountEntries counts active entries created at or after since
// (Unix seconds); since <= 0 counts everything.
func CountEntries(ctx context.Context, db *sql.DB, since int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM entries
		WHERE deleted_at IS NULL AND created_at >= ?`,
		max64(since, 0)).Scan(&count)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// SoftDeleteEntry marks an entry deleted.
func SoftDeleteEntry(ctx context.Context, db *sql.DB, id string, now int64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE entries SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	return requireAffected(res, "entry", id)
}

// InsertIntake records a rated medication intake.
func InsertIntake(ctx context.Context, db *sql.DB, id, medicationID, medication string, rating int, now int64) error {
	var medID any
	if medicationID != "" {
		medID = medicationID
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO intakes (id, medication_id, medication, rating, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, medID, medication, rating, now)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// IntakeStats returns the count and average rating of intakes of a
// medication at or after since (Unix seconds).
func IntakeStats(ctx context.Context, db *sql.DB, medication string, since int64) (count int, avg float64, err error) {
	row := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM intakes
		WHERE lower(medication) = ? AND created_at >= ?`,
		strings.ToLower(strings.TrimSpace(medication)), max64(since, 0))
	if scanErr := row.Scan(&count, &avg); scanErr != nil {
		return 0, 0, errors.NewInternal(scanErr)
	}
	return count, avg, nil
}

// requireAffected converts a zero-row update into NOT_FOUND.
func requireAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if n == 0 {
		return errors.NewNotFound(what, id)
	}
	return nil
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
