package sim

import (
	"fmt"

	"github.com/plus3/bulletfall/ecs"
)

const (
	damping    = 0.95
	speedLimit = 15.0
)

// KinematicsSystem integrates force-driven bodies: entities with Position, Velocity, Force
// and Mass.
type KinematicsSystem struct {
	Bodies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Velocity
		*Force
		*Mass
	}]
}

func (s *KinematicsSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		if *body.Mass <= 0 {
			panic(fmt.Errorf("%w: entity %s has mass %v", ErrInvalidMass, body.EntityId, *body.Mass))
		}
		integrate(body.Position, body.Velocity, *body.Force, *body.Mass, frame.DeltaTime)
	}
}

// integrate applies one step: v += f/m*dt, damp, damp again above the speed limit, p += v.
func integrate(p *Position, v *Velocity, f Force, m Mass, dt float64) {
	v.X += f.X / float64(m) * dt
	v.Y += f.Y / float64(m) * dt

	v.X *= damping
	v.Y *= damping
	if v.Length() > speedLimit {
		v.X *= damping
		v.Y *= damping
	}

	p.X += v.X
	p.Y += v.Y
}

// CoastingSystem moves entities that have a velocity but are not force-driven.
// An entity carrying Force without Mass, or Mass without Force, still coasts.
type CoastingSystem struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
		Force *Force `ecs:"optional"`
		Mass  *Mass  `ecs:"optional"`
	}]
}

func (s *CoastingSystem) Execute(frame *ecs.UpdateFrame) {
	for mover := range s.Movers.Values() {
		if mover.Force != nil && mover.Mass != nil {
			continue
		}
		mover.Position.X += mover.Velocity.X
		mover.Position.Y += mover.Velocity.Y
	}
}
