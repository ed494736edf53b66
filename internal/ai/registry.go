package ai

import (
	"fmt"
	"slices"
	"strings"

	"github.com/peterkuimelis/onirim/internal/game"
)

// ActorRegistry maps actor names to their constructor functions.
var ActorRegistry = map[string]func() game.Actor{
	"discard":  func() game.Actor { return DiscardActor{} },
	"simple":   func() game.Actor { return SimpleActor{} },
	"evaluate": func() game.Actor { return NewEvaluateActor(SimpleEvaluator{}) },
}

// ActorNames returns the registered actor names in sorted order.
func ActorNames() []string {
	names := make([]string, 0, len(ActorRegistry))
	for name := range ActorRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ActorFactory looks up an actor constructor by name.
func ActorFactory(name string) (func() game.Actor, error) {
	ctor, ok := ActorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown actor %q (known: %s)", name, strings.Join(ActorNames(), ", "))
	}
	return ctor, nil
}

// LookupActor returns a new actor by name.
// Panics if the actor is not registered.
func LookupActor(name string) game.Actor {
	ctor, err := ActorFactory(name)
	if err != nil {
		panic(err)
	}
	return ctor()
}
