package session

import "go.uber.org/fx"

// Module provides the draft store; the janitor is assembled by the app
// layer where configuration and lifecycle hooks live.
var Module = fx.Provide(NewStore)
