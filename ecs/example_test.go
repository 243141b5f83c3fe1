package ecs_test

import (
	"fmt"

	"github.com/plus3/adventurer/ecs"
)

type Gravity struct {
	Y float32
}

type FallSystem struct {
	Bodies  ecs.Query[struct{ *Velocity }]
	Gravity ecs.Singleton[Gravity]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Gravity.Get()
	for item := range s.Bodies.Iter() {
		item.Velocity.DY += g.Y * float32(frame.DeltaTime)
	}
}

// ExampleScheduler wires a singleton and a query into one system and runs
// two frames.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Velocity](registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[Gravity](storage, Gravity{Y: -10})
	id := storage.Spawn(Velocity{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FallSystem{})
	scheduler.Once(0.5)
	scheduler.Once(0.5)

	fmt.Println(ecs.ReadComponent[Velocity](storage, id).DY)
	// Output:
	// -10
}

// ExampleStorage_ReadSingleton reads singletons outside of a system.
func ExampleStorage_ReadSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	storage.AddSingleton(Gravity{Y: -9.81})

	var g *Gravity
	if storage.ReadSingleton(&g) {
		fmt.Printf("gravity %.2f\n", g.Y)
	}

	var score *Score
	fmt.Println(storage.ReadSingleton(&score))
	// Output:
	// gravity -9.81
	// false
}
