package mcp

import "github.com/mark3labs/mcp-go/mcp"

var planToolDef = mcp.NewTool("voice_plan",
	mcp.WithDescription("Turn a German voice utterance into an executable plan. Returns the plan plus matching diagnostics; pass execute=true to also run plans that need no further input."),
	mcp.WithString("utterance",
		mcp.Required(),
		mcp.Description("Raw transcribed utterance, e.g. 'öffne tagebuch'"),
	),
	mcp.WithNumber("stt_confidence",
		mcp.Description("Speech-to-text confidence between 0 and 1, if known"),
	),
	mcp.WithBoolean("execute",
		mcp.Description("Execute the plan immediately when it needs no confirmation or slot filling"),
	),
)

var fillSlotToolDef = mcp.NewTool("voice_fill_slot",
	mcp.WithDescription("Continue a slot-filling dialogue with the user's answer to the last prompt."),
	mcp.WithObject("partial",
		mcp.Required(),
		mcp.Description("The partial plan from the previous slot_filling response"),
	),
	mcp.WithString("answer",
		mcp.Required(),
		mcp.Description("The user's spoken answer"),
	),
)

var confirmToolDef = mcp.NewTool("voice_confirm",
	mcp.WithDescription("Resolve a confirm plan. accept=true executes the pending plan; accept=false cancels it."),
	mcp.WithObject("plan",
		mcp.Required(),
		mcp.Description("The confirm plan returned by voice_plan or voice_fill_slot"),
	),
	mcp.WithBoolean("accept",
		mcp.Required(),
		mcp.Description("Whether the user confirmed"),
	),
)

var undoToolDef = mcp.NewTool("voice_undo",
	mcp.WithDescription("Revert a recent mutation using the undo ticket from its execution result. Fails once the undo window has passed."),
	mcp.WithObject("ticket",
		mcp.Required(),
		mcp.Description("The undo ticket returned when the mutation was executed"),
	),
)

var medicationAddToolDef = mcp.NewTool("medication_add",
	mcp.WithDescription("Add a medication to the user's list so voice commands can refer to it by name."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Medication name, e.g. 'Ibuprofen 600'"),
	),
	mcp.WithString("category",
		mcp.Description("Therapeutic category; detected from the name when omitted"),
	),
)

var medicationListToolDef = mcp.NewTool("medication_list",
	mcp.WithDescription("List the user's medications."),
)

var reminderListToolDef = mcp.NewTool("reminder_list",
	mcp.WithDescription("List the user's active medication reminders."),
)
