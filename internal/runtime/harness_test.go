package runtime_test

import (
	"github.com/aretw0/ribs/internal/runtime"
	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/node"
	"github.com/aretw0/ribs/pkg/ports"
)

// manualScheduler queues posted callbacks until the test flushes them.
type manualScheduler struct {
	queue []func()
}

func (s *manualScheduler) Post(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *manualScheduler) Flush() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

// fakeAnimation lands only when the test completes it.
type fakeAnimation struct {
	onEnd    func()
	running  bool
	reversed int
	disposed bool
}

func (a *fakeAnimation) Start(onEnd func()) {
	a.onEnd = onEnd
	a.running = true
}

func (a *fakeAnimation) Reverse() { a.reversed++ }

func (a *fakeAnimation) End() { a.Complete() }

func (a *fakeAnimation) Dispose() { a.disposed = true }

func (a *fakeAnimation) Complete() {
	if !a.running {
		return
	}
	a.running = false
	if a.onEnd != nil {
		a.onEnd()
	}
}

// recordingHandler hands out fake animations and keeps every call.
type recordingHandler struct {
	calls [][]domain.TransitionElement
	pairs []*fakePair
	fail  bool
}

type fakePair struct {
	exit  *fakeAnimation
	enter *fakeAnimation
}

func (h *recordingHandler) OnTransition(elements []domain.TransitionElement) ports.TransitionPair {
	if h.fail {
		panic("transition handler failed")
	}
	h.calls = append(h.calls, elements)
	p := &fakePair{exit: &fakeAnimation{}, enter: &fakeAnimation{}}
	h.pairs = append(h.pairs, p)
	return ports.TransitionPair{Exiting: p.exit, Entering: p.enter}
}

func (h *recordingHandler) last() *fakePair {
	return h.pairs[len(h.pairs)-1]
}

type fixture struct {
	root      *node.Node
	scheduler *manualScheduler
	handler   *recordingHandler
	pool      *runtime.Pool
	effects   []domain.Effect
	builds    map[domain.RoutingKey]int
	nodes     map[domain.RoutingKey]*node.Node
}

func newFixture(opts ...runtime.Option) *fixture {
	f := &fixture{
		root:      node.New("root"),
		scheduler: &manualScheduler{},
		handler:   &recordingHandler{},
		builds:    make(map[domain.RoutingKey]int),
		nodes:     make(map[domain.RoutingKey]*node.Node),
	}

	resolver := ports.ResolverFunc(func(r domain.Routing) ports.RoutingAction {
		return ports.BuildFunc(func(r domain.Routing) []domain.Node {
			f.builds[r.Key]++
			n := node.New(r.Configuration.Name + "#" + string(r.Key))
			f.nodes[r.Key] = n
			return []domain.Node{n}
		})
	})

	base := []runtime.Option{
		runtime.WithScheduler(f.scheduler),
		runtime.WithTransitionHandler(f.handler),
		runtime.WithLifecycleHooks(domain.LifecycleHooks{
			OnEffect: func(e *domain.EffectEvent) { f.effects = append(f.effects, e.Effect) },
		}),
	}
	f.pool = runtime.NewPool(f.root, resolver, append(base, opts...)...)
	return f
}

func (f *fixture) accept(tx domain.Transaction) {
	if err := f.pool.Accept(tx); err != nil {
		panic(err)
	}
}

func (f *fixture) kinds() []domain.EffectKind {
	out := make([]domain.EffectKind, len(f.effects))
	for i, e := range f.effects {
		out[i] = e.Kind
	}
	return out
}

func (f *fixture) reset() {
	f.effects = nil
}

func (f *fixture) count(kind domain.EffectKind) int {
	n := 0
	for _, e := range f.effects {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (f *fixture) viewAttached(key domain.RoutingKey) bool {
	n, ok := f.nodes[key]
	return ok && f.root.IsChildViewAttached(n)
}

func (f *fixture) nodeAttached(key domain.RoutingKey) bool {
	n, ok := f.nodes[key]
	return ok && f.root.IsChildAttached(n)
}

func routing(key, name string) domain.Routing {
	return domain.Routing{Key: domain.RoutingKey(key), Configuration: domain.Config(name)}
}

func configs(names ...string) []domain.Configuration {
	out := make([]domain.Configuration, len(names))
	for i, n := range names {
		out[i] = domain.Config(n)
	}
	return out
}
