package domain

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Configuration describes a navigational state, typically one screen variant.
// It is a value: two configurations are equal when their names and params are equal.
type Configuration struct {
	Name   string            `json:"name" yaml:"name" mapstructure:"name"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
}

// Config is a shorthand constructor. Params are given as key/value pairs.
func Config(name string, kv ...string) Configuration {
	c := Configuration{Name: name}
	if len(kv) > 1 {
		c.Params = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			c.Params[kv[i]] = kv[i+1]
		}
	}
	return c
}

// Equal reports whether both configurations describe the same state.
// A nil and an empty Params map are considered equal.
func (c Configuration) Equal(other Configuration) bool {
	return c.Name == other.Name && maps.Equal(c.Params, other.Params)
}

// String renders the configuration as Name{k=v,...} with sorted keys.
func (c Configuration) String() string {
	if len(c.Params) == 0 {
		return c.Name
	}
	keys := slices.Sorted(maps.Keys(c.Params))
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(c.Params[k])
	}
	b.WriteByte('}')
	return b.String()
}

// RoutingKey identifies one instance of a Configuration in the pool.
// Keys are generated once per logical attach and never change.
type RoutingKey string

// NewRoutingKey generates a fresh, globally unique key.
func NewRoutingKey() RoutingKey {
	return RoutingKey(uuid.NewString())
}

// Routing binds a Configuration to the key of its pool entry.
type Routing struct {
	Key           RoutingKey    `json:"key" yaml:"key"`
	Configuration Configuration `json:"configuration" yaml:"configuration"`
}

// NewRouting creates a Routing for the configuration under a fresh key.
func NewRouting(c Configuration) Routing {
	return Routing{Key: NewRoutingKey(), Configuration: c}
}

func (r Routing) String() string {
	return r.Configuration.String() + "#" + string(r.Key)
}

// EqualConfigurations compares two configuration lists element by element.
func EqualConfigurations(a, b []Configuration) bool {
	return slices.EqualFunc(a, b, Configuration.Equal)
}
