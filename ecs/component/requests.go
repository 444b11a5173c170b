package component

// StartRequest asks the phase system to kick off a new game. The UI adds it
// to the session entity; it is consumed on the next update.
type StartRequest struct{}

var StartRequestComponent = NewComponent[StartRequest]()

// RestartRequest asks the phase system to return from game over to the
// waiting screen.
type RestartRequest struct{}

var RestartRequestComponent = NewComponent[RestartRequest]()
