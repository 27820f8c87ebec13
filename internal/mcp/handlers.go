package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/db"
	"github.com/hpungsan/voxplan/internal/errors"
	"github.com/hpungsan/voxplan/internal/ops"
	"github.com/hpungsan/voxplan/internal/plan"
	"github.com/hpungsan/voxplan/internal/planner"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	planner *planner.Planner
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(database *sql.DB, cfg *config.Config, pl *planner.Planner) *Handlers {
	return &Handlers{db: database, cfg: cfg, planner: pl}
}

// Request types for each tool

// PlanRequest represents the arguments for voice_plan.
type PlanRequest struct {
	Utterance     string   `json:"utterance"`
	STTConfidence *float64 `json:"stt_confidence,omitempty"`
	Execute       bool     `json:"execute,omitempty"`
}

// FillSlotRequest represents the arguments for voice_fill_slot.
type FillSlotRequest struct {
	Partial plan.PartialPlan `json:"partial"`
	Answer  string           `json:"answer"`
}

// ConfirmRequest represents the arguments for voice_confirm.
type ConfirmRequest struct {
	Plan   *plan.Plan `json:"plan"`
	Accept bool       `json:"accept"`
}

// UndoRequest represents the arguments for voice_undo.
type UndoRequest struct {
	Ticket *ops.UndoTicket `json:"ticket"`
}

// MedicationAddRequest represents the arguments for medication_add.
type MedicationAddRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// PlanResponse is the payload returned by the planning tools. Execution
// is only present when the plan was run in the same call.
type PlanResponse struct {
	Plan        *plan.Plan         `json:"plan"`
	Diagnostics plan.Diagnostics   `json:"diagnostics"`
	Execution   *ops.ExecuteResult `json:"execution,omitempty"`
}

// Handler implementations

// HandlePlan handles the voice_plan tool call.
func (h *Handlers) HandlePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlanRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Utterance == "" {
		return errorResult(errors.NewInvalidRequest("utterance is required")), nil
	}

	uc, err := ops.LoadUserContext(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	result := h.planner.Plan(plan.Utterance{
		Text:          input.Utterance,
		STTConfidence: input.STTConfidence,
	}, *uc)

	resp := &PlanResponse{Plan: result.Plan, Diagnostics: result.Diagnostics}
	if input.Execute && executable(result.Plan) {
		exec, err := ops.ExecutePlan(ctx, h.db, h.cfg, result.Plan)
		if err != nil {
			return errorResult(err), nil
		}
		resp.Execution = exec
	}
	return successResult(resp)
}

// HandleFillSlot handles the voice_fill_slot tool call.
func (h *Handlers) HandleFillSlot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FillSlotRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Partial.SkillID == "" {
		return errorResult(errors.NewInvalidRequest("partial.skill_id is required")), nil
	}
	if input.Answer == "" {
		return errorResult(errors.NewInvalidRequest("answer is required")), nil
	}

	uc, err := ops.LoadUserContext(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	result := h.planner.Resume(input.Partial, input.Answer, *uc)
	return successResult(&PlanResponse{Plan: result.Plan, Diagnostics: result.Diagnostics})
}

// HandleConfirm handles the voice_confirm tool call.
func (h *Handlers) HandleConfirm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ConfirmRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Plan == nil || input.Plan.Kind != plan.KindConfirm || input.Plan.Confirm == nil {
		return errorResult(errors.NewInvalidRequest("plan must be a confirm plan")), nil
	}

	if !input.Accept {
		return successResult(map[string]any{"cancelled": true})
	}
	if input.Plan.Confirm.Pending == nil {
		return errorResult(errors.NewInvalidRequest("confirm plan has no pending plan")), nil
	}

	exec, err := ops.ExecutePlan(ctx, h.db, h.cfg, input.Plan.Confirm.Pending)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(exec)
}

// HandleUndo handles the voice_undo tool call.
func (h *Handlers) HandleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UndoRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	exec, err := ops.ExecuteUndo(ctx, h.db, h.cfg, input.Ticket)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(exec)
}

// HandleMedicationAdd handles the medication_add tool call.
func (h *Handlers) HandleMedicationAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MedicationAddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddMedication(ctx, h.db, ops.MedicationAddInput{
		Name:     input.Name,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleMedicationList handles the medication_list tool call.
func (h *Handlers) HandleMedicationList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	meds, err := ops.ListMedications(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"medications": meds, "count": len(meds)})
}

// HandleReminderList handles the reminder_list tool call.
func (h *Handlers) HandleReminderList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, err := db.ListReminders(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"reminders": reminders, "count": len(reminders)})
}

// executable reports whether a plan can run without further user
// input.
func executable(p *plan.Plan) bool {
	switch p.Kind {
	case plan.KindNavigate, plan.KindOpenEntry, plan.KindOpenList, plan.KindQuery, plan.KindMutation:
		return true
	default:
		return false
	}
}

// errorResult creates an MCP error result from any error.
// Internal error details are stripped so SQL errors and file paths
// never reach the client.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if voxErr, ok := err.(*errors.VoxError); ok {
		errorObj := map[string]any{
			"code":    voxErr.Code,
			"message": voxErr.Message,
			"status":  voxErr.Status,
		}
		if voxErr.Code != errors.ErrInternal && voxErr.Details != nil {
			errorObj["details"] = voxErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
