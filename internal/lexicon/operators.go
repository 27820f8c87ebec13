package lexicon

// OperatorKind is an action-verb family detected in an utterance.
type OperatorKind string

const (
	OperatorNone   OperatorKind = ""
	OperatorOpen   OperatorKind = "open"
	OperatorFind   OperatorKind = "find"
	OperatorCreate OperatorKind = "create"
	OperatorEdit   OperatorKind = "edit"
	OperatorDelete OperatorKind = "delete"
	OperatorRate   OperatorKind = "rate"
	OperatorCount  OperatorKind = "count"
	OperatorStats  OperatorKind = "stats"
	OperatorHelp   OperatorKind = "help"
)

// operatorOrder fixes the family scan order for DetectOperator.
var operatorOrder = []OperatorKind{
	OperatorOpen,
	OperatorFind,
	OperatorCreate,
	OperatorEdit,
	OperatorDelete,
	OperatorRate,
	OperatorCount,
	OperatorStats,
	OperatorHelp,
}

// operatorWords maps each family to its German trigger words.
var operatorWords = map[OperatorKind][]string{
	OperatorOpen:   {"öffne", "öffnen", "zeige", "zeigen", "zeig", "geh", "gehe", "anzeigen", "aufrufen"},
	OperatorFind:   {"suche", "suchen", "such", "finde", "finden", "find"},
	OperatorCreate: {"erstelle", "erstellen", "anlegen", "speichere", "speichern", "notiere", "notieren", "eintragen", "erinnere"},
	OperatorEdit:   {"ändere", "ändern", "bearbeite", "bearbeiten", "verschiebe", "verschieben", "korrigiere", "korrigieren"},
	OperatorDelete: {"lösche", "löschen", "entferne", "entfernen", "weg"},
	OperatorRate:   {"bewerte", "bewerten", "bewertung", "geholfen", "gewirkt", "wirkt"},
	OperatorCount:  {"zähle", "zählen", "anzahl", "viele", "oft"},
	OperatorStats:  {"statistik", "auswertung", "durchschnitt", "übersicht", "trend"},
	OperatorHelp:   {"hilfe", "help", "anleitung"},
}

// DetectOperator returns the first matching action-verb family in the
// fixed family order, or OperatorNone.
func DetectOperator(text string) OperatorKind {
	for _, kind := range operatorOrder {
		for _, word := range operatorWords[kind] {
			if containsKeyword(text, word) {
				return kind
			}
		}
	}
	return OperatorNone
}

// HasOperatorWord reports whether the text contains an explicit
// trigger word of the given family as a whole word. This is the
// safety policy's check and deliberately ignores the short-keyword
// substring relaxation: a destructive family must be spelled out.
func HasOperatorWord(text string, kind OperatorKind) bool {
	for _, word := range operatorWords[kind] {
		if ContainsWholeWord(text, word) {
			return true
		}
	}
	return false
}

// OperatorWords returns the trigger words of a family, for prompts
// and diagnostics.
func OperatorWords(kind OperatorKind) []string {
	words := operatorWords[kind]
	out := make([]string, len(words))
	copy(out, words)
	return out
}
