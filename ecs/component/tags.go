package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

// Solid marks level geometry that lives in the static body.
type Solid struct{}

var SolidComponent = NewComponent[Solid]()
