package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/voxplan/internal/config"
	"github.com/hpungsan/voxplan/internal/planner"
	"github.com/hpungsan/voxplan/internal/skill"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"voice_plan": {
		def:     planToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlan },
	},
	"voice_fill_slot": {
		def:     fillSlotToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFillSlot },
	},
	"voice_confirm": {
		def:     confirmToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleConfirm },
	},
	"voice_undo": {
		def:     undoToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleUndo },
	},
	"medication_add": {
		def:     medicationAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMedicationAdd },
	},
	"medication_list": {
		def:     medicationListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMedicationList },
	},
	"reminder_list": {
		def:     reminderListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReminderList },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with voxplan tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"voxplan",
		version,
		server.WithToolCapabilities(true),
	)

	registry, err := skill.BuiltinRegistry(cfg.DisabledSkills)
	if err != nil {
		return nil, err
	}
	pl := planner.New(registry, planner.PolicyFromConfig(cfg))
	h := NewHandlers(db, cfg, pl)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s, nil
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s, err := NewServer(db, cfg, version)
	if err != nil {
		return err
	}
	return server.ServeStdio(s)
}
