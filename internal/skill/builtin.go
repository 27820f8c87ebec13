package skill

// BuiltinSkills returns the full built-in skill set in registration
// order.
func BuiltinSkills() []*Skill {
	return []*Skill{
		navDiarySkill(),
		navAnalysisSkill(),
		navMedicationsSkill(),
		navRemindersSkill(),
		navSettingsSkill(),
		navDoctorsSkill(),
		openLastEntrySkill(),
		openEntryListSkill(),
		queryEntryCountSkill(),
		queryMedStatsSkill(),
		createReminderSkill(),
		editReminderSkill(),
		deleteReminderSkill(),
		deleteEntrySkill(),
		saveNoteSkill(),
		rateIntakeSkill(),
		quickPainEntrySkill(),
		helpSkill(),
	}
}

// BuiltinRegistry builds the default registry, excluding any skill
// IDs in disabled.
func BuiltinRegistry(disabled []string) (*Registry, error) {
	off := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		off[id] = true
	}
	b := NewRegistryBuilder()
	for _, s := range BuiltinSkills() {
		if off[s.ID] {
			continue
		}
		b.Register(s)
	}
	return b.Build()
}
