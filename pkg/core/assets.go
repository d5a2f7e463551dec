// pkg/core/assets.go
package core

// AudioFile references a sound asset played by BGM, BGS, ME and SE commands.
type AudioFile struct {
	Name   string
	Volume int
	Pitch  int
	Pan    int
}

// MoveCommand is one step of a movement route.
type MoveCommand struct {
	Code       int
	Parameters []any
	Indent     *int
}

// MoveRoute is the payload of Set Movement Route.
type MoveRoute struct {
	List      []MoveCommand
	Repeat    bool
	Skippable bool
	Wait      bool
}
