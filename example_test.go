package ribs_test

import (
	"fmt"
	"log"

	"github.com/aretw0/ribs"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/ports"
)

// One view node per routing, named after its configuration.
var byName = ports.ResolverFunc(func(domain.Routing) ports.RoutingAction {
	return ports.BuildFunc(func(r domain.Routing) []domain.Node {
		return []domain.Node{node.New(r.Configuration.Name)}
	})
})

// ExampleRouter shows the node tree following the back stack.
func ExampleRouter() {
	root := node.New("root")
	router := ribs.New(byName, root, ribs.WithInitialConfiguration(domain.Config("Home")))
	if err := router.Start(); err != nil {
		log.Fatal(err)
	}
	defer router.Dispose()

	_, _ = router.Push(domain.Config("Details", "id", "42"))
	_, _ = router.PushOverlay(domain.Config("Share"))
	fmt.Print(root.Dump())

	_, _ = router.Pop()
	_, _ = router.Pop()
	fmt.Print(root.Dump())
	// Output:
	// root
	//   Home
	//   Details [view]
	//   Share [view]
	// root
	//   Home [view]
}

// ExampleRouter_SaveInstanceState snapshots a sleeping router.
func ExampleRouter_SaveInstanceState() {
	router := ribs.New(byName, node.New("root"), ribs.WithInitialConfiguration(domain.Config("Home")))
	if err := router.Start(); err != nil {
		log.Fatal(err)
	}
	defer router.Dispose()

	_, _ = router.Push(domain.Config("Details"))
	_ = router.Sleep()

	saved, err := router.SaveInstanceState()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("level:", saved.ActivationLevel)
	fmt.Println("elements:", len(saved.Pool))
	fmt.Println("back stack:", len(saved.BackStack))
	// Output:
	// level: sleeping
	// elements: 2
	// back stack: 2
}
