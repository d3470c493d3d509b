package component

// Script attaches a tengo behaviour script to an entity. Source wins over
// Path when both are set. State persists between ticks and is visible to the
// script as the `state` map.
type Script struct {
	Path   string
	Source string
	State  map[string]any
}

var ScriptComponent = NewComponent[Script]()
