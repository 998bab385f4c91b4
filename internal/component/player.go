package component

// Player tags player-controlled entities. Zero-size.
type Player struct{}
