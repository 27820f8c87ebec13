package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/ops"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/planner"
)

// Handlers contains HTTP route handlers for the debug console.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	planner  *planner.Planner
	renderer *Renderer
}

// HandleConsole handles GET /console, the empty planning form.
func (h *Handlers) HandleConsole(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "console", ConsolePageData{
		PageData: h.page("Console", "console"),
	})
}

// HandlePlan handles POST /console/plan: run the planner on an
// utterance and show the plan with its diagnostics.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}
	utterance := strings.TrimSpace(r.FormValue("utterance"))
	if utterance == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("utterance is required"))
		return
	}

	uc, err := ops.LoadUserContext(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result := h.planner.Plan(plan.Utterance{Text: utterance}, *uc)

	planJSON, err := json.MarshalIndent(result.Plan, "", "  ")
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return
	}

	h.renderer.renderPage(w, r, "console", ConsolePageData{
		PageData:    h.page("Console", "console"),
		Utterance:   utterance,
		HasResult:   true,
		Plan:        result.Plan,
		Diagnostics: result.Diagnostics,
		PlanJSON:    string(planJSON),
	})
}

// HandleData handles GET /data, an overview of stored medications,
// reminders, and recent entries.
func (h *Handlers) HandleData(w http.ResponseWriter, r *http.Request) {
	meds, err := db.ListMedications(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	reminders, err := db.ListReminders(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	entries, err := db.ListEntries(r.Context(), h.db, ops.DefaultEntryListLimit)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "data", DataPageData{
		PageData:    h.page("Data", "data"),
		Medications: meds,
		Reminders:   reminders,
		Entries:     entries,
	})
}

// HandleHelp handles GET /help, the rendered command reference.
func (h *Handlers) HandleHelp(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "help", HelpPageData{
		PageData:     h.page("Help", "help"),
		RenderedHTML: renderMarkdown(helpMarkdown),
	})
}

func (h *Handlers) page(title, nav string) PageData {
	return PageData{
		Title:   title,
		Version: h.renderer.version,
		Nav:     nav,
	}
}

// helpMarkdown is the command reference shown on /help, also used as
// the spoken help content.
const helpMarkdown = `# Sprachbefehle

## Navigation

- **"Öffne Tagebuch"** zeigt das Schmerztagebuch
- **"Zeige Analyse"** öffnet die Auswertung
- **"Zeige Medikamente"** öffnet die Medikamentenliste
- **"Zeige Erinnerungen"** öffnet die Erinnerungen
- **"Öffne Einstellungen"**, **"Zeige Ärzte"**

## Einträge

- **"Öffne letzten Eintrag"**, auch "vorletzten", "dritten" usw.
- **"Zeige Einträge der letzten Woche"**
- **"Wie viele Einträge habe ich diesen Monat?"**
- **"Schmerz Stärke 7"** legt einen Schnelleintrag an

## Medikamente

- **"Erinnere mich um 8 Uhr an Ibuprofen"**
- **"Verschiebe die Ibuprofen-Erinnerung auf 9 Uhr"**
- **"Lösche die Erinnerung für Ibuprofen"**
- **"Bewerte Ibuprofen mit 8"** oder "Ibuprofen hat gut geholfen"
- **"Wie oft habe ich Ibuprofen genommen?"**

## Notizen

- **"Notiz: heute starke Kopfschmerzen"**

Löschen und Bearbeiten verlangen das ausdrückliche Wort im Befehl und
werden vor der Ausführung bestätigt.
`
