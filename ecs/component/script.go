package component

// Script drives an enemy's horizontal velocity from a tengo script loaded
// through prefabs.LoadScript.
type Script struct {
	Path string
	// Vars are exposed to the script as the `params` map.
	Vars map[string]float64
}

var ScriptComponent = NewComponent[Script]()
